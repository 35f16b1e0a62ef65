// Package core provides the dataset model and the whole-dataset reducers.
//
// # Error Codes Reference
//
// This file defines operator-facing error messages with codes. Per-field
// problems never surface here: unparsable or absent values degrade to
// missing and show up in the quality metrics instead. Only failures that
// stop a run (or skip a whole stage) are mapped.
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - Source not found: The input file does not exist
//	          Action: Check the configured input path and re-run
//	          Sentinel: ErrSourceNotFound
//
//	FILE002 - Invalid CSV: The input file could not be parsed as CSV
//	          Action: Ensure the file is comma-separated with a header row
//	          Patterns: "invalid csv"
//
//	FILE005 - Empty file: The input file has no header row
//	          Action: Provide a CSV file with a header and data rows
//	          Sentinel: ErrEmptyFile
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL004 - Missing column: A required column is missing from the input
//	         Action: Check that all required columns are present in the file
//	         Sentinel: ErrMissingColumns
//
//	VAL005 - Column not found: A referenced column does not exist
//	         Sentinel: ErrUnknownColumn
//
// # Deduplication Errors (DUP001-DUP099)
//
//	DUP001 - No key columns: No column identifies a duplicate entity
//	         Action: Add a name or email column, or configure key columns
//	         Sentinel: ErrNoKeyColumns
//
// # Output Errors (OUT001-OUT099)
//
//	OUT001 - Write failed: A cleaned file or report could not be written
//	         Action: Check that the output directory is writable
//	         Patterns: "write output"
//
// # Default Error (ERR000)
//
// Fallback when nothing matches. Check the logs for the technical error.
//
// Sentinels are matched first with errors.Is; the remaining patterns are
// matched case-insensitively with strings.Contains, first match wins.
package core

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for run-level failures.
var (
	ErrSourceNotFound = errors.New("source file not found")
	ErrEmptyFile      = errors.New("empty file")
	ErrMissingColumns = errors.New("missing required column")
	ErrUnknownColumn  = errors.New("column not found")
	ErrNoKeyColumns   = errors.New("no key columns for deduplication")
)

// UserMessage provides operator-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type sentinelMessage struct {
	err error
	msg UserMessage
}

// sentinelMessages is checked before errorPatterns, in order.
var sentinelMessages = []sentinelMessage{
	{
		err: ErrSourceNotFound,
		msg: UserMessage{
			Message: "The input file does not exist",
			Action:  "Check the configured input path and re-run",
			Code:    "FILE001",
		},
	},
	{
		err: ErrEmptyFile,
		msg: UserMessage{
			Message: "The input file has no header row",
			Action:  "Provide a CSV file with a header and data rows",
			Code:    "FILE005",
		},
	},
	{
		err: ErrMissingColumns,
		msg: UserMessage{
			Message: "A required column is missing from the input",
			Action:  "Check that all required columns are present in the file",
			Code:    "VAL004",
		},
	},
	{
		err: ErrNoKeyColumns,
		msg: UserMessage{
			Message: "No column identifies duplicate rows",
			Action:  "Add a name or email column to the input file",
			Code:    "DUP001",
		},
	},
	{
		err: ErrUnknownColumn,
		msg: UserMessage{
			Message: "A referenced column does not exist",
			Action:  "Verify the input headers",
			Code:    "VAL005",
		},
	},
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "The input file could not be parsed as CSV",
			Action:  "Ensure the file is comma-separated with a header row",
			Code:    "FILE002",
		},
	},
	{
		pattern: "write output",
		msg: UserMessage{
			Message: "A cleaned file or report could not be written",
			Action:  "Check that the output directory is writable",
			Code:    "OUT001",
		},
	},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Check the logs and re-run",
	Code:    "ERR000",
}

// MapError converts a technical error to an operator-friendly message.
// Returns the zero UserMessage for a nil error.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, sm := range sentinelMessages {
		if errors.Is(err, sm.err) {
			return sm.msg
		}
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

// IsUserFacing reports whether err maps to a specific message rather than
// the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// IsFatal reports whether err must stop a run. Only a missing key column
// set is recoverable: the deduplication stage is skipped instead.
func IsFatal(err error) bool {
	return err != nil && !errors.Is(err, ErrNoKeyColumns)
}
