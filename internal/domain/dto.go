package domain

// Envelope is the uniform response wrapper for every endpoint. Exactly one of
// Data and Error is set.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Error   *string     `json:"error"`
}

// QuoteDTO is the API representation of one quote version.
type QuoteDTO struct {
	ID                        QuoteID     `json:"id"`
	TicketID                  TicketID    `json:"ticketId"`
	Version                   int         `json:"version"`
	EstimatedHoursMinimum     float64     `json:"estimatedHoursMinimum"`
	EstimatedHoursMaximum     float64     `json:"estimatedHoursMaximum"`
	EstimatedResolutionTime   float64     `json:"estimatedResolutionTime"`
	HourlyRate                float64     `json:"hourlyRate"`
	EstimatedCost             float64     `json:"estimatedCost"`
	FixedCost                 float64     `json:"fixedCost"`
	FinalCost                 *float64    `json:"finalCost,omitempty"`
	QuoteConfidenceLevelID    *int        `json:"quoteConfidenceLevelId,omitempty"`
	QuoteApprovalID           *ApprovalID `json:"quoteApprovalId,omitempty"`
	SuggestedTicketPriorityID int         `json:"suggestedTicketPriorityId"`
	QuoteEffortLevelID        int         `json:"quoteEffortLevelId"`
	Origin                    QuoteOrigin `json:"origin"`
	Deleted                   bool        `json:"deleted"`
	CreatedAt                 string      `json:"createdAt"` // ISO 8601
	UpdatedAt                 string      `json:"updatedAt"` // ISO 8601
}

// QuoteDetailDTO adds the linked approval to a quote.
type QuoteDetailDTO struct {
	QuoteDTO
	Approval *QuoteApprovalDTO `json:"approval,omitempty"`
}

// QuoteListDTO wraps the version-descending quote list for a ticket.
type QuoteListDTO struct {
	Quotes []QuoteDTO `json:"quotes"`
}

// QuoteApprovalDTO is the API representation of an approval record.
type QuoteApprovalDTO struct {
	ID               ApprovalID     `json:"id"`
	ApprovedByUserID string         `json:"approvedByUserId"`
	UserRole         string         `json:"userRole"`
	ApprovalStatusID ApprovalStatus `json:"approvalStatusId"`
	ApprovalStatus   string         `json:"approvalStatus"`
	Comment          string         `json:"comment,omitempty"`
	ApprovedAt       *string        `json:"approvedAt,omitempty"`
	CreatedAt        string         `json:"createdAt"`
	UpdatedAt        string         `json:"updatedAt"`
}

// QuoteRevisionDTO is one field-level audit entry.
type QuoteRevisionDTO struct {
	ID              RevisionID `json:"id"`
	QuoteID         QuoteID    `json:"quoteId"`
	ChangedByUserID string     `json:"changedByUserId"`
	FieldName       string     `json:"fieldName"`
	OldValue        string     `json:"oldValue"`
	NewValue        string     `json:"newValue"`
	Reason          string     `json:"reason"`
	CreatedAt       string     `json:"createdAt"`
}

// RevisionListDTO wraps the oldest-first revision history of a quote chain.
type RevisionListDTO struct {
	Revisions []QuoteRevisionDTO `json:"revisions"`
}

// CreateQuoteRequest is the body of the manual quote endpoint.
type CreateQuoteRequest struct {
	EstimatedHoursMinimum  float64 `json:"estimatedHoursMinimum" validate:"gte=0"`
	EstimatedHoursMaximum  float64 `json:"estimatedHoursMaximum" validate:"gte=0"`
	HourlyRate             float64 `json:"hourlyRate" validate:"gte=0"`
	FixedCost              float64 `json:"fixedCost" validate:"gte=0"`
	QuoteEffortLevelID     int     `json:"quoteEffortLevelId" validate:"required,gt=0"`
	QuoteConfidenceLevelID *int    `json:"quoteConfidenceLevelId,omitempty" validate:"omitempty,gt=0"`
}

// UpdateQuoteRequest carries a partial quote update. Nil fields keep the
// current version's value. Reason is mandatory for the audit trail.
type UpdateQuoteRequest struct {
	EstimatedHoursMinimum  *float64 `json:"estimatedHoursMinimum,omitempty" validate:"omitempty,gte=0"`
	EstimatedHoursMaximum  *float64 `json:"estimatedHoursMaximum,omitempty" validate:"omitempty,gte=0"`
	HourlyRate             *float64 `json:"hourlyRate,omitempty" validate:"omitempty,gte=0"`
	FixedCost              *float64 `json:"fixedCost,omitempty" validate:"omitempty,gte=0"`
	QuoteEffortLevelID     *int     `json:"quoteEffortLevelId,omitempty" validate:"omitempty,gt=0"`
	QuoteConfidenceLevelID *int     `json:"quoteConfidenceLevelId,omitempty" validate:"omitempty,gt=0"`
	Reason                 string   `json:"reason" validate:"required,min=1,max=1000"`
}

// ApproveQuoteRequest is the body of the approve endpoint.
type ApproveQuoteRequest struct {
	Comment string `json:"comment,omitempty" validate:"max=2000"`
}

// RejectQuoteRequest is the body of the reject endpoint. Comment is mandatory.
type RejectQuoteRequest struct {
	Comment string `json:"comment" validate:"required,min=1,max=2000"`
}
