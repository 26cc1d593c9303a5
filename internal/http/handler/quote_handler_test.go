package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/resolvedesk/quote-api/internal/auth"
	"github.com/resolvedesk/quote-api/internal/domain"
	"github.com/resolvedesk/quote-api/internal/engine"
	"github.com/resolvedesk/quote-api/internal/http/handler"
	"github.com/resolvedesk/quote-api/internal/repository"
	"github.com/resolvedesk/quote-api/internal/service"
	"github.com/resolvedesk/quote-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type handlerFixture struct {
	db     *gorm.DB
	org    *domain.Organization
	actor  *auth.ActorContext
	router chi.Router
}

// newHandlerFixture mounts the quote routes behind a middleware that injects
// the fixture's actor, mirroring the production route tree. The actor's role
// can be swapped per request via f.actor.
func newHandlerFixture(t *testing.T, role domain.UserRoleType) *handlerFixture {
	t.Helper()

	db := testutil.SetupTestDB(t)
	log := zap.NewNop()
	org := testutil.CreateTestOrganization(t, db)

	quoteRepo := repository.NewQuoteRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	revisionRepo := repository.NewQuoteRevisionRepository(db)
	approvalRepo := repository.NewQuoteApprovalRepository(db)
	ruleRepo := repository.NewCalculationRuleRepository(db)
	profileRepo := repository.NewRateProfileRepository(db)
	userPermissionRepo := repository.NewUserPermissionRepository(db, log)

	resolver := engine.NewResolver(ruleRepo, profileRepo, log)
	permissions := service.NewPermissionService(userPermissionRepo, log)
	guard := service.NewVisibilityGuard(permissions, log)
	revisions := service.NewRevisionService(revisionRepo, quoteRepo, guard, permissions, log)
	quotes := service.NewQuoteService(quoteRepo, ticketRepo, revisionRepo, resolver, guard, permissions, revisions, db, log)
	approvals := service.NewApprovalService(approvalRepo, quoteRepo, guard, permissions, db, log)

	quoteHandler := handler.NewQuoteHandler(quotes, log)
	approvalHandler := handler.NewApprovalHandler(approvals, log)
	revisionHandler := handler.NewRevisionHandler(revisions, log)

	f := &handlerFixture{
		db:    db,
		org:   org,
		actor: testutil.Actor(role, org.ID),
	}

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(auth.WithActorContext(req.Context(), f.actor)))
		})
	})
	r.Route("/tickets/{ticketId}/quotes", func(r chi.Router) {
		r.Get("/", quoteHandler.List)
		r.Post("/", quoteHandler.Create)
		r.Post("/generate", quoteHandler.Generate)
		r.Route("/{quoteId}", func(r chi.Router) {
			r.Get("/", quoteHandler.Get)
			r.Patch("/", quoteHandler.Update)
			r.Get("/revisions", revisionHandler.List)
			r.Post("/submit", approvalHandler.Submit)
			r.Post("/approve", approvalHandler.Approve)
			r.Post("/reject", approvalHandler.Reject)
		})
	})
	f.router = r
	return f
}

func (f *handlerFixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data"`
	Error   *string                `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func quotesPath(ticketID domain.TicketID) string {
	return fmt.Sprintf("/tickets/%s/quotes", ticketID)
}

func quotePath(ticketID domain.TicketID, quoteID string) string {
	return fmt.Sprintf("/tickets/%s/quotes/%s", ticketID, quoteID)
}

func TestQuoteHandler_CreateManualQuote(t *testing.T) {
	f := newHandlerFixture(t, domain.RoleAgent)
	ticket := testutil.CreateTestTicket(t, f.db, f.org.ID)

	rec := f.do(t, http.MethodPost, quotesPath(ticket.ID), map[string]interface{}{
		"estimatedHoursMinimum": 2,
		"estimatedHoursMaximum": 10,
		"hourlyRate":            50,
		"fixedCost":             20,
		"quoteEffortLevelId":    2,
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Nil(t, env.Error)
	assert.Equal(t, float64(1), env.Data["version"])
	assert.Equal(t, float64(320), env.Data["estimatedCost"])
	assert.Equal(t, "manual", env.Data["origin"])
}

func TestQuoteHandler_CreateValidationError(t *testing.T) {
	f := newHandlerFixture(t, domain.RoleAgent)
	ticket := testutil.CreateTestTicket(t, f.db, f.org.ID)

	// quoteEffortLevelId is required
	rec := f.do(t, http.MethodPost, quotesPath(ticket.ID), map[string]interface{}{
		"estimatedHoursMinimum": 2,
		"estimatedHoursMaximum": 10,
		"hourlyRate":            50,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
}

func TestQuoteHandler_CreateInvalidHourRange(t *testing.T) {
	f := newHandlerFixture(t, domain.RoleAgent)
	ticket := testutil.CreateTestTicket(t, f.db, f.org.ID)

	rec := f.do(t, http.MethodPost, quotesPath(ticket.ID), map[string]interface{}{
		"estimatedHoursMinimum": 10,
		"estimatedHoursMaximum": 2,
		"hourlyRate":            50,
		"quoteEffortLevelId":    2,
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
}

func TestQuoteHandler_CreateMalformedTicketID(t *testing.T) {
	f := newHandlerFixture(t, domain.RoleAgent)

	rec := f.do(t, http.MethodPost, "/tickets/not-a-uuid/quotes", map[string]interface{}{
		"quoteEffortLevelId": 2,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQuoteHandler_GenerateWithoutRule(t *testing.T) {
	f := newHandlerFixture(t, domain.RoleAgent)
	ticket := testutil.CreateTestTicket(t, f.db, f.org.ID)

	rec := f.do(t, http.MethodPost, quotesPath(ticket.ID)+"/generate", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestQuoteHandler_Generate(t *testing.T) {
	f := newHandlerFixture(t, domain.RoleAgent)
	ticket := testutil.CreateTestTicket(t, f.db, f.org.ID)
	testutil.CreateTestRule(t, f.db, 1, 1.5)
	testutil.CreateTestRateProfile(t, f.db, 40, 1.2)

	rec := f.do(t, http.MethodPost, quotesPath(ticket.ID)+"/generate", nil)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, float64(324), env.Data["estimatedCost"])
	assert.Equal(t, "automated", env.Data["origin"])
}

func TestQuoteHandler_GetUnknownQuote(t *testing.T) {
	f := newHandlerFixture(t, domain.RoleAgent)
	ticket := testutil.CreateTestTicket(t, f.db, f.org.ID)

	rec := f.do(t, http.MethodGet, quotePath(ticket.ID, domain.NewQuoteID().String()), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestQuoteHandler_TicketNotFound(t *testing.T) {
	f := newHandlerFixture(t, domain.RoleAgent)

	rec := f.do(t, http.MethodGet, quotesPath(domain.NewTicketID()), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestQuoteHandler_UpdateRequiresReason(t *testing.T) {
	f := newHandlerFixture(t, domain.RoleAgent)
	ticket := testutil.CreateTestTicket(t, f.db, f.org.ID)

	created := f.do(t, http.MethodPost, quotesPath(ticket.ID), map[string]interface{}{
		"estimatedHoursMinimum": 2,
		"estimatedHoursMaximum": 10,
		"hourlyRate":            50,
		"quoteEffortLevelId":    2,
	})
	require.Equal(t, http.StatusCreated, created.Code)
	quoteID := decodeEnvelope(t, created).Data["id"].(string)

	rec := f.do(t, http.MethodPatch, quotePath(ticket.ID, quoteID), map[string]interface{}{
		"hourlyRate": 80,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Contains(t, *env.Error, "reason")
}

func TestQuoteHandler_UpdateCreatesNewVersion(t *testing.T) {
	f := newHandlerFixture(t, domain.RoleAgent)
	ticket := testutil.CreateTestTicket(t, f.db, f.org.ID)

	created := f.do(t, http.MethodPost, quotesPath(ticket.ID), map[string]interface{}{
		"estimatedHoursMinimum": 2,
		"estimatedHoursMaximum": 10,
		"hourlyRate":            50,
		"quoteEffortLevelId":    2,
	})
	require.Equal(t, http.StatusCreated, created.Code)
	quoteID := decodeEnvelope(t, created).Data["id"].(string)

	rec := f.do(t, http.MethodPatch, quotePath(ticket.ID, quoteID), map[string]interface{}{
		"hourlyRate": 80,
		"reason":     "rate card changed",
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	env := decodeEnvelope(t, rec)
	assert.Equal(t, float64(2), env.Data["version"])
	assert.NotEqual(t, quoteID, env.Data["id"])

	revs := f.do(t, http.MethodGet, quotePath(ticket.ID, env.Data["id"].(string))+"/revisions", nil)
	require.Equal(t, http.StatusOK, revs.Code)
	var revEnv struct {
		Data struct {
			Revisions []map[string]interface{} `json:"revisions"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(revs.Body.Bytes(), &revEnv))
	require.Len(t, revEnv.Data.Revisions, 1)
	assert.Equal(t, "hourly_rate", revEnv.Data.Revisions[0]["fieldName"])
}

func TestQuoteHandler_ListExcludesSuperseded(t *testing.T) {
	f := newHandlerFixture(t, domain.RoleAgent)
	ticket := testutil.CreateTestTicket(t, f.db, f.org.ID)

	created := f.do(t, http.MethodPost, quotesPath(ticket.ID), map[string]interface{}{
		"estimatedHoursMinimum": 2,
		"estimatedHoursMaximum": 10,
		"hourlyRate":            50,
		"quoteEffortLevelId":    2,
	})
	require.Equal(t, http.StatusCreated, created.Code)
	quoteID := decodeEnvelope(t, created).Data["id"].(string)

	patched := f.do(t, http.MethodPatch, quotePath(ticket.ID, quoteID), map[string]interface{}{
		"hourlyRate": 80,
		"reason":     "rate card changed",
	})
	require.Equal(t, http.StatusOK, patched.Code)

	rec := f.do(t, http.MethodGet, quotesPath(ticket.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listEnv struct {
		Data struct {
			Quotes []map[string]interface{} `json:"quotes"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listEnv))
	require.Len(t, listEnv.Data.Quotes, 1)
	assert.Equal(t, float64(2), listEnv.Data.Quotes[0]["version"])
}

func TestQuoteHandler_UpdateSupersededVersion(t *testing.T) {
	f := newHandlerFixture(t, domain.RoleAgent)
	ticket := testutil.CreateTestTicket(t, f.db, f.org.ID)

	created := f.do(t, http.MethodPost, quotesPath(ticket.ID), map[string]interface{}{
		"estimatedHoursMinimum": 2,
		"estimatedHoursMaximum": 10,
		"hourlyRate":            50,
		"quoteEffortLevelId":    2,
	})
	require.Equal(t, http.StatusCreated, created.Code)
	quoteID := decodeEnvelope(t, created).Data["id"].(string)

	patched := f.do(t, http.MethodPatch, quotePath(ticket.ID, quoteID), map[string]interface{}{
		"hourlyRate": 80,
		"reason":     "rate card changed",
	})
	require.Equal(t, http.StatusOK, patched.Code)

	// Patching the old version again targets a superseded row
	rec := f.do(t, http.MethodPatch, quotePath(ticket.ID, quoteID), map[string]interface{}{
		"hourlyRate": 90,
		"reason":     "stale update",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Contains(t, *env.Error, "superseded")
}

func TestApprovalHandler_SubmitAndApprove(t *testing.T) {
	f := newHandlerFixture(t, domain.RoleSupportLead)
	ticket := testutil.CreateTestTicket(t, f.db, f.org.ID)

	created := f.do(t, http.MethodPost, quotesPath(ticket.ID), map[string]interface{}{
		"estimatedHoursMinimum": 2,
		"estimatedHoursMaximum": 10,
		"hourlyRate":            50,
		"quoteEffortLevelId":    2,
	})
	require.Equal(t, http.StatusCreated, created.Code)
	quoteID := decodeEnvelope(t, created).Data["id"].(string)

	submitted := f.do(t, http.MethodPost, quotePath(ticket.ID, quoteID)+"/submit", nil)
	require.Equal(t, http.StatusCreated, submitted.Code, submitted.Body.String())
	env := decodeEnvelope(t, submitted)
	assert.Equal(t, "pending", env.Data["approvalStatus"])

	approved := f.do(t, http.MethodPost, quotePath(ticket.ID, quoteID)+"/approve", map[string]interface{}{
		"comment": "within budget",
	})
	require.Equal(t, http.StatusOK, approved.Code, approved.Body.String())
	env = decodeEnvelope(t, approved)
	assert.Equal(t, "approved", env.Data["approvalStatus"])
	assert.NotNil(t, env.Data["approvedAt"])
}

func TestApprovalHandler_RejectRequiresComment(t *testing.T) {
	f := newHandlerFixture(t, domain.RoleSupportLead)
	ticket := testutil.CreateTestTicket(t, f.db, f.org.ID)

	created := f.do(t, http.MethodPost, quotesPath(ticket.ID), map[string]interface{}{
		"estimatedHoursMinimum": 2,
		"estimatedHoursMaximum": 10,
		"hourlyRate":            50,
		"quoteEffortLevelId":    2,
	})
	require.Equal(t, http.StatusCreated, created.Code)
	quoteID := decodeEnvelope(t, created).Data["id"].(string)

	submitted := f.do(t, http.MethodPost, quotePath(ticket.ID, quoteID)+"/submit", nil)
	require.Equal(t, http.StatusCreated, submitted.Code)

	rec := f.do(t, http.MethodPost, quotePath(ticket.ID, quoteID)+"/reject", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rejected := f.do(t, http.MethodPost, quotePath(ticket.ID, quoteID)+"/reject", map[string]interface{}{
		"comment": "too expensive",
	})
	require.Equal(t, http.StatusOK, rejected.Code, rejected.Body.String())
	env := decodeEnvelope(t, rejected)
	assert.Equal(t, "rejected", env.Data["approvalStatus"])
}

func TestApprovalHandler_ApproveNotPending(t *testing.T) {
	f := newHandlerFixture(t, domain.RoleSupportLead)
	ticket := testutil.CreateTestTicket(t, f.db, f.org.ID)

	created := f.do(t, http.MethodPost, quotesPath(ticket.ID), map[string]interface{}{
		"estimatedHoursMinimum": 2,
		"estimatedHoursMaximum": 10,
		"hourlyRate":            50,
		"quoteEffortLevelId":    2,
	})
	require.Equal(t, http.StatusCreated, created.Code)
	quoteID := decodeEnvelope(t, created).Data["id"].(string)

	rec := f.do(t, http.MethodPost, quotePath(ticket.ID, quoteID)+"/approve", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestQuoteHandler_ForeignOrganizationForbidden(t *testing.T) {
	f := newHandlerFixture(t, domain.RoleAgent)
	otherOrg := testutil.CreateTestOrganization(t, f.db)
	ticket := testutil.CreateTestTicket(t, f.db, otherOrg.ID)

	rec := f.do(t, http.MethodPost, quotesPath(ticket.ID), map[string]interface{}{
		"estimatedHoursMinimum": 2,
		"estimatedHoursMaximum": 10,
		"hourlyRate":            50,
		"quoteEffortLevelId":    2,
	})

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
