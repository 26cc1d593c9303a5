package domain

import (
	"time"

	"gorm.io/gorm"
)

// QuoteOrigin records whether a quote version was entered by hand or produced
// by the calculation engine.
type QuoteOrigin string

const (
	QuoteOriginManual    QuoteOrigin = "manual"
	QuoteOriginAutomated QuoteOrigin = "automated"
)

// IsValid checks if the QuoteOrigin is a valid enum value
func (o QuoteOrigin) IsValid() bool {
	switch o {
	case QuoteOriginManual, QuoteOriginAutomated:
		return true
	}
	return false
}

// ApprovalStatus is the three-state approval code. The numeric values are part
// of the storage contract.
type ApprovalStatus int

const (
	ApprovalStatusPending  ApprovalStatus = 1
	ApprovalStatusApproved ApprovalStatus = 2
	ApprovalStatusRejected ApprovalStatus = 3
)

// IsTerminal reports whether the status can no longer change.
func (s ApprovalStatus) IsTerminal() bool {
	return s == ApprovalStatusApproved || s == ApprovalStatusRejected
}

// String returns the canonical name for the status code
func (s ApprovalStatus) String() string {
	switch s {
	case ApprovalStatusPending:
		return "pending"
	case ApprovalStatusApproved:
		return "approved"
	case ApprovalStatusRejected:
		return "rejected"
	}
	return "unknown"
}

// Organization owns tickets and users. Quotes are scoped to the organization
// of the ticket they belong to.
type Organization struct {
	ID        OrganizationID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"type:varchar(200);not null" json:"name"`
	IsActive  bool           `gorm:"not null;default:true;column:is_active" json:"isActive"`
	CreatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// Ticket is the external collaborator the quote engine reads. Only the fields
// the engine consumes are modeled here; ticket lifecycle lives elsewhere.
type Ticket struct {
	ID               TicketID       `gorm:"type:uuid;primaryKey"`
	OrganizationID   OrganizationID `gorm:"type:uuid;not null;index;column:organization_id"`
	Organization     *Organization  `gorm:"foreignKey:OrganizationID"`
	TicketTypeID     int            `gorm:"not null;column:ticket_type_id"`
	TicketSeverityID int            `gorm:"not null;column:ticket_severity_id"`
	BusinessImpactID int            `gorm:"not null;column:business_impact_id"`
	UsersImpacted    int            `gorm:"not null;default:0;column:users_impacted"`
	TicketPriorityID int            `gorm:"not null;column:ticket_priority_id"`
	CreatedAt        time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt        time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// Quote is one immutable version in a ticket's quote chain. A new version is
// inserted on every update and the superseded version is soft-deleted. The
// only mutations allowed after insert are the soft delete and the approval
// link.
type Quote struct {
	ID                        QuoteID        `gorm:"type:uuid;primaryKey"`
	TicketID                  TicketID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_quotes_ticket_version,priority:1;column:ticket_id"`
	Ticket                    *Ticket        `gorm:"foreignKey:TicketID"`
	Version                   int            `gorm:"not null;uniqueIndex:idx_quotes_ticket_version,priority:2"`
	EstimatedHoursMinimum     float64        `gorm:"type:decimal(10,2);not null;column:estimated_hours_minimum"`
	EstimatedHoursMaximum     float64        `gorm:"type:decimal(10,2);not null;column:estimated_hours_maximum"`
	EstimatedResolutionTime   float64        `gorm:"type:decimal(10,2);not null;column:estimated_resolution_time"`
	HourlyRate                float64        `gorm:"type:decimal(15,2);not null;column:hourly_rate"`
	EstimatedCost             float64        `gorm:"type:decimal(15,2);not null;column:estimated_cost"`
	FixedCost                 float64        `gorm:"type:decimal(15,2);not null;default:0;column:fixed_cost"`
	FinalCost                 *float64       `gorm:"type:decimal(15,2);column:final_cost"`
	QuoteConfidenceLevelID    *int           `gorm:"column:quote_confidence_level_id"`
	QuoteApprovalID           *ApprovalID    `gorm:"type:uuid;index;column:quote_approval_id"`
	QuoteApproval             *QuoteApproval `gorm:"foreignKey:QuoteApprovalID"`
	SuggestedTicketPriorityID int            `gorm:"not null;column:suggested_ticket_priority_id"`
	QuoteEffortLevelID        int            `gorm:"not null;column:quote_effort_level_id"`
	Origin                    QuoteOrigin    `gorm:"type:varchar(20);not null;column:origin"`
	CreatedAt                 time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt                 time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
	DeletedAt                 gorm.DeletedAt `gorm:"index"`
}

// QuoteApproval is the approval record layered on one quote version. Created
// in pending state by submit; decided exactly once by approve or reject.
type QuoteApproval struct {
	ID               ApprovalID     `gorm:"type:uuid;primaryKey"`
	ApprovedByUserID string         `gorm:"type:varchar(100);not null;column:approved_by_user_id"`
	UserRole         string         `gorm:"type:varchar(100);not null;column:user_role"`
	ApprovalStatusID ApprovalStatus `gorm:"not null;default:1;column:approval_status_id"`
	Comment          string         `gorm:"type:text"`
	ApprovedAt       *time.Time     `gorm:"column:approved_at"`
	CreatedAt        time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt        time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// QuoteRevision is one append-only audit row recording a single field change
// between two consecutive quote versions, keyed to the NEW version's id.
type QuoteRevision struct {
	ID              RevisionID `gorm:"type:uuid;primaryKey"`
	QuoteID         QuoteID    `gorm:"type:uuid;not null;index;column:quote_id"`
	ChangedByUserID string     `gorm:"type:varchar(100);not null;column:changed_by_user_id"`
	FieldName       string     `gorm:"type:varchar(100);not null;column:field_name"`
	OldValue        string     `gorm:"type:varchar(500);column:old_value"`
	NewValue        string     `gorm:"type:varchar(500);column:new_value"`
	Reason          string     `gorm:"type:varchar(1000);not null"`
	CreatedAt       time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName keeps the historical table name for the revision log
func (QuoteRevision) TableName() string {
	return "quote_detail_revisions"
}

// CalculationRule matches a ticket's severity, impact and impacted-user count
// to an urgency multiplier and a suggested priority. Lowest priority_order
// wins among matching rules.
type CalculationRule struct {
	ID                        RuleID    `gorm:"type:uuid;primaryKey"`
	TicketSeverityID          int       `gorm:"not null;column:ticket_severity_id"`
	BusinessImpactID          int       `gorm:"not null;column:business_impact_id"`
	SuggestedTicketPriorityID int       `gorm:"not null;column:suggested_ticket_priority_id"`
	UsersImpactedMin          int       `gorm:"not null;column:users_impacted_min"`
	UsersImpactedMax          int       `gorm:"not null;column:users_impacted_max"`
	UrgencyMultiplier         float64   `gorm:"type:decimal(6,3);not null;column:urgency_multiplier"`
	QuoteEffortLevelID        int       `gorm:"not null;default:1;column:quote_effort_level_id"`
	PriorityOrder             int       `gorm:"not null;index;column:priority_order"`
	IsActive                  bool      `gorm:"not null;default:true;column:is_active"`
	CreatedAt                 time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt                 time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// Matches reports whether the rule applies to the given ticket dimensions.
// The users-impacted range is inclusive on both ends.
func (r *CalculationRule) Matches(severityID, impactID, usersImpacted int) bool {
	return r.TicketSeverityID == severityID &&
		r.BusinessImpactID == impactID &&
		usersImpacted >= r.UsersImpactedMin &&
		usersImpacted <= r.UsersImpactedMax
}

// RateProfile is a time-bounded hourly rate configuration keyed by ticket
// type, severity and impact.
type RateProfile struct {
	ID               RateProfileID `gorm:"type:uuid;primaryKey"`
	TicketTypeID     int           `gorm:"not null;column:ticket_type_id"`
	TicketSeverityID int           `gorm:"not null;column:ticket_severity_id"`
	BusinessImpactID int           `gorm:"not null;column:business_impact_id"`
	BaseHourlyRate   float64       `gorm:"type:decimal(15,2);not null;column:base_hourly_rate"`
	Multiplier       float64       `gorm:"type:decimal(6,3);not null;default:1;column:multiplier"`
	EffectiveFrom    time.Time     `gorm:"not null;column:effective_from"`
	EffectiveTo      time.Time     `gorm:"not null;column:effective_to"`
	IsActive         bool          `gorm:"not null;default:true;column:is_active"`
	CreatedAt        time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt        time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// CoversAt reports whether the profile's effective window includes t,
// inclusive on both ends.
func (p *RateProfile) CoversAt(t time.Time) bool {
	return !t.Before(p.EffectiveFrom) && !t.After(p.EffectiveTo)
}

// UserRoleType represents a role a user can have
type UserRoleType string

const (
	RoleAdmin       UserRoleType = "admin"
	RoleSupportLead UserRoleType = "support_lead"
	RoleAgent       UserRoleType = "agent"
	RoleViewer      UserRoleType = "viewer"
	RoleAPIService  UserRoleType = "api_service"
)

// IsValid checks if the UserRoleType is a valid enum value
func (r UserRoleType) IsValid() bool {
	switch r {
	case RoleAdmin, RoleSupportLead, RoleAgent, RoleViewer, RoleAPIService:
		return true
	}
	return false
}

// User represents an actor in the system
type User struct {
	ID             string         `gorm:"type:varchar(100);primaryKey" json:"id"`
	Email          string         `gorm:"type:varchar(255);not null;unique" json:"email"`
	DisplayName    string         `gorm:"type:varchar(200);not null;column:display_name" json:"displayName"`
	Role           UserRoleType   `gorm:"type:varchar(50);not null" json:"role"`
	OrganizationID OrganizationID `gorm:"type:uuid;not null;index;column:organization_id" json:"organizationId"`
	Organization   *Organization  `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	IsActive       bool           `gorm:"not null;default:true;column:is_active" json:"isActive"`
	CreatedAt      time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt      time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// PermissionType represents a specific permission
type PermissionType string

const (
	PermissionQuotesRead    PermissionType = "quotes:read"
	PermissionQuotesCreate  PermissionType = "quotes:create"
	PermissionQuotesUpdate  PermissionType = "quotes:update"
	PermissionQuotesApprove PermissionType = "quotes:approve"
	PermissionQuotesReject  PermissionType = "quotes:reject"
	PermissionQuotesReadAll PermissionType = "quotes:read_all"

	PermissionTicketsRead    PermissionType = "tickets:read"
	PermissionTicketsReadAll PermissionType = "tickets:read_all"
)

// UserPermission represents a per-user permission override. A granted row
// adds a permission beyond the role defaults; a revoked row removes one.
type UserPermission struct {
	ID         int            `gorm:"primaryKey;autoIncrement"`
	UserID     string         `gorm:"type:varchar(100);not null;index;column:user_id"`
	User       *User          `gorm:"foreignKey:UserID"`
	Permission PermissionType `gorm:"type:varchar(100);not null"`
	IsGranted  bool           `gorm:"not null;default:true;column:is_granted"`
	GrantedBy  string         `gorm:"type:varchar(100);column:granted_by"`
	ExpiresAt  *time.Time     `gorm:"column:expires_at"`
	CreatedAt  time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt  time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// Session is an issued API session. Sessions are validated by the auth layer
// and purged by a background job once expired; the job never touches quotes.
type Session struct {
	ID        string    `gorm:"type:varchar(100);primaryKey"`
	UserID    string    `gorm:"type:varchar(100);not null;index;column:user_id"`
	TokenHash string    `gorm:"type:varchar(255);not null;column:token_hash"`
	ExpiresAt time.Time `gorm:"not null;index;column:expires_at"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}
