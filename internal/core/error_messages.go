// Error Codes Reference
//
// This file defines user-friendly error messages with codes for support reference.
// When users encounter errors, they can quote the error code to support staff
// for faster diagnosis.
//
// # Database Errors (DB001-DB099)
//
//	DB001 - Duplicate key: A record with this value already exists
//	        Patterns: "duplicate key"
//
//	DB002 - Foreign key: Referenced record does not exist or is still in use
//	        Patterns: "foreign key constraint", "violates foreign key"
//
//	DB003 - Check constraint: A value is outside the allowed range
//	        Patterns: "check constraint"
//
//	DB004 - Connection refused: Unable to connect to database
//	        Patterns: "connection refused"
//
//	DB005 - Connection reset: Database connection was interrupted
//	        Patterns: "connection reset"
//
//	DB006 - Timeout: Operation timed out
//	        Patterns: "timeout", "context deadline exceeded"
//
//	DB099 - Generic store failure: Database Error: Failed to <op> <entity>.
//	        Returned for every *DatabaseError that matches nothing more specific
//
// # Not Found (NF001-NF099)
//
//	NF001 - Record not found
//	NF002 - Unknown entity
//
// # Rate Limiting (RATE001)
//
//	RATE001 - Too many requests
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches. Check the application log for
// the original technical error (logged with the request id).

package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a single record lookup finds nothing.
	ErrNotFound = errors.New("record not found")

	// ErrUnknownEntity is returned for entity keys missing from the registry.
	ErrUnknownEntity = errors.New("unknown entity")
)

// DatabaseError is the only form in which store failures leave the gateway.
// Error() is safe to show to users; Unwrap() exposes the original cause for logs.
type DatabaseError struct {
	Entity string // Singular entity label, e.g. "Category"
	Op     string // Create, Update, Delete, Fetch, Count
	Err    error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("Database Error: Failed to %s %s.", e.Op, e.Entity)
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}

// Detail returns the original error text for server-side logging.
func (e *DatabaseError) Detail() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns are matched case-insensitively against the full error chain.
// The first match wins, so specific patterns come first.
var errorPatterns = []errorPattern{
	{
		pattern: "duplicate key",
		msg: UserMessage{
			Message: "A record with this value already exists",
			Action:  "Change the value and submit again",
			Code:    "DB001",
		},
	},
	{
		pattern: "foreign key",
		msg: UserMessage{
			Message: "Referenced record does not exist or is still in use",
			Action:  "Check related records before saving or deleting",
			Code:    "DB002",
		},
	},
	{
		pattern: "check constraint",
		msg: UserMessage{
			Message: "A value is outside the allowed range",
			Action:  "Amounts and prices must not be negative",
			Code:    "DB003",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Please try again in a few moments",
			Code:    "DB004",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "Database connection was interrupted",
			Action:  "Please try again",
			Code:    "DB005",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Please try again later",
			Code:    "DB006",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Please try again later",
			Code:    "DB006",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error into a user-facing message.
// Returns an empty UserMessage for nil.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return UserMessage{Message: "Record not found", Action: "It may have been deleted", Code: "NF001"}
	case errors.Is(err, ErrUnknownEntity):
		return UserMessage{Message: "Page not found", Action: "Check the address", Code: "NF002"}
	}

	lower := strings.ToLower(err.Error())
	var dbErr *DatabaseError
	if errors.As(err, &dbErr) {
		lower += " " + strings.ToLower(dbErr.Detail())
	}

	for _, p := range errorPatterns {
		if strings.Contains(lower, p.pattern) {
			return p.msg
		}
	}

	if dbErr != nil {
		return UserMessage{Message: dbErr.Error(), Action: "Please try again", Code: "DB099"}
	}
	return defaultMessage
}
