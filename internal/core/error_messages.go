package core

// error_messages.go maps technical errors to messages shown on preview
// pages and in API responses. Each message carries a code for support:
//
//	SRC001  - Data file missing or unreadable    ("source unavailable")
//	DRV001  - Linked file not published to Drive ("not in drive")
//	PAGE001 - Page does not exist                ("page not found")
//	BAG001  - Databag could not be loaded        ("databag")
//	TPL001  - Site template failed               ("template:")
//	DB001   - Databag database unreachable       ("connection refused")
//	REQ001  - Request cancelled                  ("context canceled")
//	REQ002  - Request timed out                  ("context deadline exceeded")
//	ERR000  - Anything else
//
// Patterns are matched case-insensitively with strings.Contains and the
// first match wins, so specific patterns come before general ones.

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
	{
		pattern: "source unavailable",
		msg: UserMessage{
			Message: "A data file for this page could not be read",
			Action:  "Check that the CSV attachment exists and is readable",
			Code:    "SRC001",
		},
	},
	{
		pattern: "not in drive",
		msg: UserMessage{
			Message: "A linked file has not been published to Google Drive",
			Action:  "Add the path to the drivepaths databag",
			Code:    "DRV001",
		},
	},
	{
		pattern: "page not found",
		msg: UserMessage{
			Message: "Page not found",
			Action:  "Check the address or the content directory",
			Code:    "PAGE001",
		},
	},
	{
		pattern: "databag",
		msg: UserMessage{
			Message: "Site data could not be loaded",
			Action:  "Check the databag files for syntax errors",
			Code:    "BAG001",
		},
	},
	{
		pattern: "template:",
		msg: UserMessage{
			Message: "The page template failed to render",
			Action:  "Check the server log for the template error",
			Code:    "TPL001",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to the databag database",
			Action:  "Please try again in a few moments",
			Code:    "DB001",
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
			Action:  "Please try again",
			Code:    "REQ002",
		},
	},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or check the server log",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Returns an empty UserMessage for nil.
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

// FormatUserError returns "Message (Code: X). Action" for err.
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
