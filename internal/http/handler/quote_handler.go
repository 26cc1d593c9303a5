package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/resolvedesk/quote-api/internal/domain"
	"github.com/resolvedesk/quote-api/internal/service"
	"go.uber.org/zap"
)

// QuoteHandler serves the quote version chain endpoints
type QuoteHandler struct {
	quoteService *service.QuoteService
	logger       *zap.Logger
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(quoteService *service.QuoteService, logger *zap.Logger) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
		logger:       logger,
	}
}

// Generate godoc
// @Summary Generate an automatic quote
// @Description Matches the ticket against active calculation rules and rate profiles and creates the next quote version. The ticket's priority is aligned with the matched rule's suggestion.
// @Tags Quotes
// @Produce json
// @Param ticketId path string true "Ticket ID"
// @Success 201 {object} domain.Envelope{data=domain.QuoteDTO} "Created quote version"
// @Failure 400 {object} domain.Envelope "Invalid ticket ID"
// @Failure 403 {object} domain.Envelope "Actor may not see or quote this ticket"
// @Failure 404 {object} domain.Envelope "Ticket not found"
// @Failure 422 {object} domain.Envelope "No matching rule or rate profile"
// @Failure 500 {object} domain.Envelope "Internal server error"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /tickets/{ticketId}/quotes/generate [post]
func (h *QuoteHandler) Generate(w http.ResponseWriter, r *http.Request) {
	ticketID, err := domain.ParseTicketID(chi.URLParam(r, "ticketId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid ticket ID")
		return
	}

	quote, err := h.quoteService.GenerateQuote(r.Context(), ticketID)
	if err != nil {
		h.logger.Error("failed to generate quote", zap.Error(err), zap.String("ticket_id", ticketID.String()))
		respondServiceError(w, err)
		return
	}

	respondData(w, http.StatusCreated, quote)
}

// Create godoc
// @Summary Create a manual quote
// @Description Creates the next quote version from user-supplied figures. The suggested priority mirrors the ticket's current priority.
// @Tags Quotes
// @Accept json
// @Produce json
// @Param ticketId path string true "Ticket ID"
// @Param request body domain.CreateQuoteRequest true "Quote figures"
// @Success 201 {object} domain.Envelope{data=domain.QuoteDTO} "Created quote version"
// @Failure 400 {object} domain.Envelope "Invalid ticket ID or request body"
// @Failure 403 {object} domain.Envelope "Actor may not see or quote this ticket"
// @Failure 404 {object} domain.Envelope "Ticket not found"
// @Failure 422 {object} domain.Envelope "Maximum hours below minimum"
// @Failure 500 {object} domain.Envelope "Internal server error"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /tickets/{ticketId}/quotes [post]
func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	ticketID, err := domain.ParseTicketID(chi.URLParam(r, "ticketId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid ticket ID")
		return
	}

	var req domain.CreateQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	quote, err := h.quoteService.CreateQuote(r.Context(), ticketID, &req)
	if err != nil {
		h.logger.Error("failed to create quote", zap.Error(err), zap.String("ticket_id", ticketID.String()))
		respondServiceError(w, err)
		return
	}

	respondData(w, http.StatusCreated, quote)
}

// List godoc
// @Summary List a ticket's quote versions
// @Description Returns the live versions of the ticket's quote chain, newest first. Superseded versions are visible through the revision history.
// @Tags Quotes
// @Produce json
// @Param ticketId path string true "Ticket ID"
// @Success 200 {object} domain.Envelope{data=domain.QuoteListDTO} "Quote versions"
// @Failure 400 {object} domain.Envelope "Invalid ticket ID"
// @Failure 403 {object} domain.Envelope "Actor may not see this ticket"
// @Failure 404 {object} domain.Envelope "Ticket not found"
// @Failure 500 {object} domain.Envelope "Internal server error"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /tickets/{ticketId}/quotes [get]
func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	ticketID, err := domain.ParseTicketID(chi.URLParam(r, "ticketId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid ticket ID")
		return
	}

	quotes, err := h.quoteService.ListQuotesForTicket(r.Context(), ticketID)
	if err != nil {
		h.logger.Error("failed to list quotes", zap.Error(err), zap.String("ticket_id", ticketID.String()))
		respondServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, quotes)
}

// Get godoc
// @Summary Get a quote version
// @Description Returns one live quote version with its linked approval.
// @Tags Quotes
// @Produce json
// @Param ticketId path string true "Ticket ID"
// @Param quoteId path string true "Quote ID"
// @Success 200 {object} domain.Envelope{data=domain.QuoteDetailDTO} "Quote with approval"
// @Failure 400 {object} domain.Envelope "Invalid ticket or quote ID"
// @Failure 403 {object} domain.Envelope "Actor may not see this quote"
// @Failure 404 {object} domain.Envelope "Quote not found"
// @Failure 500 {object} domain.Envelope "Internal server error"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /tickets/{ticketId}/quotes/{quoteId} [get]
func (h *QuoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	ticketID, quoteID, ok := parseQuotePath(w, r)
	if !ok {
		return
	}

	quote, err := h.quoteService.GetQuote(r.Context(), ticketID, quoteID)
	if err != nil {
		h.logger.Error("failed to get quote", zap.Error(err), zap.String("quote_id", quoteID.String()))
		respondServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, quote)
}

// Update godoc
// @Summary Update a quote
// @Description Merges the partial body onto the current version and persists it as a new version. The superseded version is soft-deleted and one audit row is written per changed field. Reason is mandatory.
// @Tags Quotes
// @Accept json
// @Produce json
// @Param ticketId path string true "Ticket ID"
// @Param quoteId path string true "Quote ID"
// @Param request body domain.UpdateQuoteRequest true "Partial update with reason"
// @Success 200 {object} domain.Envelope{data=domain.QuoteDTO} "New quote version"
// @Failure 400 {object} domain.Envelope "Invalid IDs or request body"
// @Failure 403 {object} domain.Envelope "Actor may not update this quote"
// @Failure 404 {object} domain.Envelope "Quote not found"
// @Failure 422 {object} domain.Envelope "Merged maximum hours below minimum"
// @Failure 500 {object} domain.Envelope "Internal server error"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /tickets/{ticketId}/quotes/{quoteId} [patch]
func (h *QuoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	ticketID, quoteID, ok := parseQuotePath(w, r)
	if !ok {
		return
	}

	var req domain.UpdateQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	quote, err := h.quoteService.UpdateQuote(r.Context(), ticketID, quoteID, &req)
	if err != nil {
		h.logger.Error("failed to update quote", zap.Error(err), zap.String("quote_id", quoteID.String()))
		respondServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, quote)
}

// parseQuotePath reads the ticket and quote IDs from the URL, responding 400
// on malformed input
func parseQuotePath(w http.ResponseWriter, r *http.Request) (domain.TicketID, domain.QuoteID, bool) {
	ticketID, err := domain.ParseTicketID(chi.URLParam(r, "ticketId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid ticket ID")
		return domain.TicketID{}, domain.QuoteID{}, false
	}
	quoteID, err := domain.ParseQuoteID(chi.URLParam(r, "quoteId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID")
		return domain.TicketID{}, domain.QuoteID{}, false
	}
	return ticketID, quoteID, true
}
