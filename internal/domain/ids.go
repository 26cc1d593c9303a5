package domain

import (
	"database/sql/driver"

	"github.com/google/uuid"
)

// Entity identifiers are distinct newtypes over uuid.UUID so the compiler
// rejects a TicketID where a QuoteID is expected. Each type delegates SQL and
// text encoding to the underlying uuid.

// TicketID identifies a support ticket.
type TicketID uuid.UUID

func NewTicketID() TicketID                      { return TicketID(uuid.New()) }
func ParseTicketID(s string) (TicketID, error)   { id, err := uuid.Parse(s); return TicketID(id), err }
func (id TicketID) String() string               { return uuid.UUID(id).String() }
func (id TicketID) IsNil() bool                  { return uuid.UUID(id) == uuid.Nil }
func (id TicketID) Value() (driver.Value, error) { return uuid.UUID(id).Value() }
func (id *TicketID) Scan(src interface{}) error  { return (*uuid.UUID)(id).Scan(src) }
func (id TicketID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id *TicketID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

// QuoteID identifies a single quote version row.
type QuoteID uuid.UUID

func NewQuoteID() QuoteID                       { return QuoteID(uuid.New()) }
func ParseQuoteID(s string) (QuoteID, error)    { id, err := uuid.Parse(s); return QuoteID(id), err }
func (id QuoteID) String() string               { return uuid.UUID(id).String() }
func (id QuoteID) IsNil() bool                  { return uuid.UUID(id) == uuid.Nil }
func (id QuoteID) Value() (driver.Value, error) { return uuid.UUID(id).Value() }
func (id *QuoteID) Scan(src interface{}) error  { return (*uuid.UUID)(id).Scan(src) }
func (id QuoteID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id *QuoteID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

// ApprovalID identifies a quote approval record.
type ApprovalID uuid.UUID

func NewApprovalID() ApprovalID                    { return ApprovalID(uuid.New()) }
func (id ApprovalID) String() string               { return uuid.UUID(id).String() }
func (id ApprovalID) IsNil() bool                  { return uuid.UUID(id) == uuid.Nil }
func (id ApprovalID) Value() (driver.Value, error) { return uuid.UUID(id).Value() }
func (id *ApprovalID) Scan(src interface{}) error  { return (*uuid.UUID)(id).Scan(src) }
func (id ApprovalID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id *ApprovalID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

// RevisionID identifies one audit row in the revision log.
type RevisionID uuid.UUID

func NewRevisionID() RevisionID                    { return RevisionID(uuid.New()) }
func (id RevisionID) String() string               { return uuid.UUID(id).String() }
func (id RevisionID) Value() (driver.Value, error) { return uuid.UUID(id).Value() }
func (id *RevisionID) Scan(src interface{}) error  { return (*uuid.UUID)(id).Scan(src) }
func (id RevisionID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id *RevisionID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

// RuleID identifies a calculation rule.
type RuleID uuid.UUID

func NewRuleID() RuleID                        { return RuleID(uuid.New()) }
func (id RuleID) String() string               { return uuid.UUID(id).String() }
func (id RuleID) Value() (driver.Value, error) { return uuid.UUID(id).Value() }
func (id *RuleID) Scan(src interface{}) error  { return (*uuid.UUID)(id).Scan(src) }
func (id RuleID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id *RuleID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

// RateProfileID identifies a rate profile.
type RateProfileID uuid.UUID

func NewRateProfileID() RateProfileID                 { return RateProfileID(uuid.New()) }
func (id RateProfileID) String() string               { return uuid.UUID(id).String() }
func (id RateProfileID) Value() (driver.Value, error) { return uuid.UUID(id).Value() }
func (id *RateProfileID) Scan(src interface{}) error  { return (*uuid.UUID)(id).Scan(src) }
func (id RateProfileID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id *RateProfileID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

// OrganizationID identifies the organization that owns tickets and users.
type OrganizationID uuid.UUID

func NewOrganizationID() OrganizationID { return OrganizationID(uuid.New()) }
func ParseOrganizationID(s string) (OrganizationID, error) {
	id, err := uuid.Parse(s)
	return OrganizationID(id), err
}
func (id OrganizationID) String() string               { return uuid.UUID(id).String() }
func (id OrganizationID) IsNil() bool                  { return uuid.UUID(id) == uuid.Nil }
func (id OrganizationID) Value() (driver.Value, error) { return uuid.UUID(id).Value() }
func (id *OrganizationID) Scan(src interface{}) error  { return (*uuid.UUID)(id).Scan(src) }
func (id OrganizationID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id *OrganizationID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}
