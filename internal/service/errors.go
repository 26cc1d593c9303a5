package service

import "errors"

// Common service errors
var (
	// ErrPermissionDenied is returned when a user doesn't have permission for an action
	ErrPermissionDenied = errors.New("permission denied")

	// ErrUnauthorized is returned when no authenticated actor is present
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTicketNotFound is returned when a ticket is not found or not visible
	ErrTicketNotFound = errors.New("ticket not found")

	// ErrQuoteNotFound is returned when a quote is not found or not visible
	ErrQuoteNotFound = errors.New("quote not found")

	// ErrNoMatchingRule is returned when no calculation rule covers the ticket
	ErrNoMatchingRule = errors.New("no matching calculation rule for ticket")

	// ErrNoActiveRateProfile is returned when no rate profile covers the ticket
	ErrNoActiveRateProfile = errors.New("no active rate profile for ticket")

	// ErrInvalidHourRange is returned when the maximum estimated hours would
	// fall below the minimum
	ErrInvalidHourRange = errors.New("estimated hours maximum must be greater than or equal to minimum")

	// ErrQuoteSuperseded is returned when the targeted quote version exists
	// but has been replaced by a newer version
	ErrQuoteSuperseded = errors.New("quote version has been superseded")

	// ErrNotPending is returned when approving or rejecting a quote whose
	// approval is missing or already decided
	ErrNotPending = errors.New("quote has no pending approval")

	// ErrAlreadyApproved is returned when re-approving an approved quote
	ErrAlreadyApproved = errors.New("quote is already approved")
)
