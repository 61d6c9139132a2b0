// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support reference.
// Handlers and the terminal client show the code next to the message so a
// reported failure can be traced back to its pattern.
//
// # Editor Errors (EDT001-EDT099)
//
//	EDT001 - Malformed value: The editor text is not a number
//	         Patterns: "malformed commit"
//
//	EDT002 - Cell busy: Another edit is open on this cell
//	         Patterns: "cell is already being edited"
//
//	EDT003 - Session expired: Edit session not found
//	         Patterns: "edit session not found"
//
//	EDT004 - Session closed: The session no longer accepts input
//	         Patterns: "session is not editing"
//
//	EDT005 - Edit not started: The keystroke cancelled the edit
//	         Patterns: "edit cancelled before start"
//
// # Grid Errors (GRD001-GRD099)
//
//	GRD001 - Read only: Column is not editable
//	GRD002 - Unknown column
//	GRD003 - Row out of range
//	GRD004 - Unknown grid
//	GRD005 - Editor misconfigured: "unknown editor", "select editor requires values"
//
// # Storage Errors (STO001-STO099)
//
//	STO001 - Connection refused
//	STO002 - Database locked (SQLite busy)
//	STO003 - Timeout
//	STO004 - Persist failed: "persist edit"
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Request cancelled: "context canceled"
//	REQ002 - Request timeout: "context deadline exceeded"
//	REQ003 - Bad request body: "invalid request"
//
// # Rate Limiting (RATE001)
//
//	RATE001 - Rate limited: "rate limit"
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches. Check the application log for
// the original error.
//
// Patterns are matched case-insensitively using strings.Contains and the first
// match wins, so specific patterns come before general ones.

package core

import (
	"fmt"
	"strings"
)

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

var errorPatterns = []errorPattern{
	// Editor
	{
		pattern: "malformed commit",
		msg: UserMessage{
			Message: "The value is not a valid number",
			Action:  "Type digits only, with at most one decimal point for floats",
			Code:    "EDT001",
		},
	},
	{
		pattern: "cell is already being edited",
		msg: UserMessage{
			Message: "This cell is already being edited",
			Action:  "Finish or cancel the open edit first",
			Code:    "EDT002",
		},
	},
	{
		pattern: "edit session not found",
		msg: UserMessage{
			Message: "Edit session not found",
			Action:  "The edit may have expired. Start editing the cell again",
			Code:    "EDT003",
		},
	},
	{
		pattern: "session is not editing",
		msg: UserMessage{
			Message: "This edit is already closed",
			Action:  "Start editing the cell again",
			Code:    "EDT004",
		},
	},
	{
		pattern: "edit cancelled before start",
		msg: UserMessage{
			Message: "The keystroke is not accepted by this editor",
			Action:  "Start the edit with a digit or press Enter",
			Code:    "EDT005",
		},
	},

	// Grid
	{
		pattern: "column is not editable",
		msg: UserMessage{
			Message: "This column is read only",
			Action:  "Choose an editable column",
			Code:    "GRD001",
		},
	},
	{
		pattern: "unknown column",
		msg: UserMessage{
			Message: "Column not found",
			Action:  "Verify the column name is correct",
			Code:    "GRD002",
		},
	},
	{
		pattern: "row out of range",
		msg: UserMessage{
			Message: "Row not found",
			Action:  "Reload the grid and try again",
			Code:    "GRD003",
		},
	},
	{
		pattern: "unknown grid",
		msg: UserMessage{
			Message: "Grid not found",
			Action:  "Use the basic or custom grid",
			Code:    "GRD004",
		},
	},
	{
		pattern: "unknown editor",
		msg: UserMessage{
			Message: "The column has no usable editor",
			Action:  "Check the column's cellEditor setting",
			Code:    "GRD005",
		},
	},
	{
		pattern: "select editor requires values",
		msg: UserMessage{
			Message: "The select editor has no values",
			Action:  "Add values to the column's cellEditorParams",
			Code:    "GRD005",
		},
	},

	// Storage
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Please try again in a few moments",
			Code:    "STO001",
		},
	},
	{
		pattern: "database is locked",
		msg: UserMessage{
			Message: "The edit store is busy",
			Action:  "Please try again",
			Code:    "STO002",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Check your connection and try again",
			Code:    "REQ002",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Please try again later",
			Code:    "STO003",
		},
	},
	{
		pattern: "persist edit",
		msg: UserMessage{
			Message: "The edit could not be saved",
			Action:  "Commit again to retry",
			Code:    "STO004",
		},
	},

	// Request
	{
		pattern: "invalid request",
		msg: UserMessage{
			Message: "The request could not be read",
			Action:  "Check the request body and try again",
			Code:    "REQ003",
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

// MapError converts a technical error to a user-friendly message.
// It returns the first matching pattern, or ERR000 if none matches.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern rather than the
// ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
