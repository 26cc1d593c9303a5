package mapper

import (
	"github.com/resolvedesk/quote-api/internal/domain"
)

const timeFormat = "2006-01-02T15:04:05Z"

// ToQuoteDTO converts Quote to QuoteDTO
func ToQuoteDTO(quote *domain.Quote) domain.QuoteDTO {
	return domain.QuoteDTO{
		ID:                        quote.ID,
		TicketID:                  quote.TicketID,
		Version:                   quote.Version,
		EstimatedHoursMinimum:     quote.EstimatedHoursMinimum,
		EstimatedHoursMaximum:     quote.EstimatedHoursMaximum,
		EstimatedResolutionTime:   quote.EstimatedResolutionTime,
		HourlyRate:                quote.HourlyRate,
		EstimatedCost:             quote.EstimatedCost,
		FixedCost:                 quote.FixedCost,
		FinalCost:                 quote.FinalCost,
		QuoteConfidenceLevelID:    quote.QuoteConfidenceLevelID,
		QuoteApprovalID:           quote.QuoteApprovalID,
		SuggestedTicketPriorityID: quote.SuggestedTicketPriorityID,
		QuoteEffortLevelID:        quote.QuoteEffortLevelID,
		Origin:                    quote.Origin,
		Deleted:                   quote.DeletedAt.Valid,
		CreatedAt:                 quote.CreatedAt.UTC().Format(timeFormat),
		UpdatedAt:                 quote.UpdatedAt.UTC().Format(timeFormat),
	}
}

// ToQuoteDetailDTO converts Quote to QuoteDetailDTO, including the linked
// approval when it is loaded
func ToQuoteDetailDTO(quote *domain.Quote) domain.QuoteDetailDTO {
	dto := domain.QuoteDetailDTO{
		QuoteDTO: ToQuoteDTO(quote),
	}
	if quote.QuoteApproval != nil {
		approval := ToApprovalDTO(quote.QuoteApproval)
		dto.Approval = &approval
	}
	return dto
}

// ToApprovalDTO converts QuoteApproval to QuoteApprovalDTO
func ToApprovalDTO(approval *domain.QuoteApproval) domain.QuoteApprovalDTO {
	dto := domain.QuoteApprovalDTO{
		ID:               approval.ID,
		ApprovedByUserID: approval.ApprovedByUserID,
		UserRole:         approval.UserRole,
		ApprovalStatusID: approval.ApprovalStatusID,
		ApprovalStatus:   approval.ApprovalStatusID.String(),
		Comment:          approval.Comment,
		CreatedAt:        approval.CreatedAt.UTC().Format(timeFormat),
		UpdatedAt:        approval.UpdatedAt.UTC().Format(timeFormat),
	}
	if approval.ApprovedAt != nil {
		approvedAt := approval.ApprovedAt.UTC().Format(timeFormat)
		dto.ApprovedAt = &approvedAt
	}
	return dto
}

// ToRevisionDTO converts QuoteRevision to QuoteRevisionDTO
func ToRevisionDTO(revision *domain.QuoteRevision) domain.QuoteRevisionDTO {
	return domain.QuoteRevisionDTO{
		ID:              revision.ID,
		QuoteID:         revision.QuoteID,
		ChangedByUserID: revision.ChangedByUserID,
		FieldName:       revision.FieldName,
		OldValue:        revision.OldValue,
		NewValue:        revision.NewValue,
		Reason:          revision.Reason,
		CreatedAt:       revision.CreatedAt.UTC().Format(timeFormat),
	}
}
