package handler

import (
	"encoding/json"
	"net/http"

	"github.com/resolvedesk/quote-api/internal/domain"
	"github.com/resolvedesk/quote-api/internal/service"
	"go.uber.org/zap"
)

// ApprovalHandler serves the approval workflow endpoints
type ApprovalHandler struct {
	approvalService *service.ApprovalService
	logger          *zap.Logger
}

// NewApprovalHandler creates a new approval handler
func NewApprovalHandler(approvalService *service.ApprovalService, logger *zap.Logger) *ApprovalHandler {
	return &ApprovalHandler{
		approvalService: approvalService,
		logger:          logger,
	}
}

// Submit godoc
// @Summary Submit a quote for approval
// @Description Creates a new pending approval record and links it to the quote version. Each submission creates a fresh record.
// @Tags Approvals
// @Produce json
// @Param ticketId path string true "Ticket ID"
// @Param quoteId path string true "Quote ID"
// @Success 201 {object} domain.Envelope{data=domain.QuoteApprovalDTO} "Pending approval"
// @Failure 400 {object} domain.Envelope "Invalid ticket or quote ID"
// @Failure 403 {object} domain.Envelope "Actor may not submit this quote"
// @Failure 404 {object} domain.Envelope "Quote not found"
// @Failure 500 {object} domain.Envelope "Internal server error"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /tickets/{ticketId}/quotes/{quoteId}/submit [post]
func (h *ApprovalHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ticketID, quoteID, ok := parseQuotePath(w, r)
	if !ok {
		return
	}

	approval, err := h.approvalService.Submit(r.Context(), ticketID, quoteID)
	if err != nil {
		h.logger.Error("failed to submit quote for approval", zap.Error(err), zap.String("quote_id", quoteID.String()))
		respondServiceError(w, err)
		return
	}

	respondData(w, http.StatusCreated, approval)
}

// Approve godoc
// @Summary Approve a quote
// @Description Moves the quote's pending approval to approved. Fails when no pending approval is linked.
// @Tags Approvals
// @Accept json
// @Produce json
// @Param ticketId path string true "Ticket ID"
// @Param quoteId path string true "Quote ID"
// @Param request body domain.ApproveQuoteRequest false "Optional comment"
// @Success 200 {object} domain.Envelope{data=domain.QuoteApprovalDTO} "Approved approval record"
// @Failure 400 {object} domain.Envelope "Invalid IDs or request body"
// @Failure 403 {object} domain.Envelope "Actor may not approve this quote"
// @Failure 404 {object} domain.Envelope "Quote not found"
// @Failure 422 {object} domain.Envelope "No pending approval, or already approved"
// @Failure 500 {object} domain.Envelope "Internal server error"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /tickets/{ticketId}/quotes/{quoteId}/approve [post]
func (h *ApprovalHandler) Approve(w http.ResponseWriter, r *http.Request) {
	ticketID, quoteID, ok := parseQuotePath(w, r)
	if !ok {
		return
	}

	var req domain.ApproveQuoteRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	approval, err := h.approvalService.Approve(r.Context(), ticketID, quoteID, req.Comment)
	if err != nil {
		h.logger.Error("failed to approve quote", zap.Error(err), zap.String("quote_id", quoteID.String()))
		respondServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, approval)
}

// Reject godoc
// @Summary Reject a quote
// @Description Moves the quote's pending approval to rejected. A comment explaining the rejection is mandatory.
// @Tags Approvals
// @Accept json
// @Produce json
// @Param ticketId path string true "Ticket ID"
// @Param quoteId path string true "Quote ID"
// @Param request body domain.RejectQuoteRequest true "Rejection comment"
// @Success 200 {object} domain.Envelope{data=domain.QuoteApprovalDTO} "Rejected approval record"
// @Failure 400 {object} domain.Envelope "Invalid IDs, request body, or missing comment"
// @Failure 403 {object} domain.Envelope "Actor may not reject this quote"
// @Failure 404 {object} domain.Envelope "Quote not found"
// @Failure 422 {object} domain.Envelope "No pending approval"
// @Failure 500 {object} domain.Envelope "Internal server error"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /tickets/{ticketId}/quotes/{quoteId}/reject [post]
func (h *ApprovalHandler) Reject(w http.ResponseWriter, r *http.Request) {
	ticketID, quoteID, ok := parseQuotePath(w, r)
	if !ok {
		return
	}

	var req domain.RejectQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	approval, err := h.approvalService.Reject(r.Context(), ticketID, quoteID, req.Comment)
	if err != nil {
		h.logger.Error("failed to reject quote", zap.Error(err), zap.String("quote_id", quoteID.String()))
		respondServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, approval)
}
