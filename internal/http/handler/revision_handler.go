package handler

import (
	"net/http"

	"github.com/resolvedesk/quote-api/internal/service"
	"go.uber.org/zap"
)

// RevisionHandler serves the field-level audit trail endpoint
type RevisionHandler struct {
	revisionService *service.RevisionService
	logger          *zap.Logger
}

// NewRevisionHandler creates a new revision handler
func NewRevisionHandler(revisionService *service.RevisionService, logger *zap.Logger) *RevisionHandler {
	return &RevisionHandler{
		revisionService: revisionService,
		logger:          logger,
	}
}

// List godoc
// @Summary List a quote's revisions
// @Description Returns the audit rows recorded against a quote version, oldest first. Works on superseded versions too.
// @Tags Revisions
// @Produce json
// @Param ticketId path string true "Ticket ID"
// @Param quoteId path string true "Quote ID"
// @Success 200 {object} domain.Envelope{data=domain.RevisionListDTO} "Revision history"
// @Failure 400 {object} domain.Envelope "Invalid ticket or quote ID"
// @Failure 403 {object} domain.Envelope "Actor may not see this quote"
// @Failure 404 {object} domain.Envelope "Quote not found"
// @Failure 500 {object} domain.Envelope "Internal server error"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /tickets/{ticketId}/quotes/{quoteId}/revisions [get]
func (h *RevisionHandler) List(w http.ResponseWriter, r *http.Request) {
	ticketID, quoteID, ok := parseQuotePath(w, r)
	if !ok {
		return
	}

	revisions, err := h.revisionService.History(r.Context(), ticketID, quoteID)
	if err != nil {
		h.logger.Error("failed to list revisions", zap.Error(err), zap.String("quote_id", quoteID.String()))
		respondServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, revisions)
}
