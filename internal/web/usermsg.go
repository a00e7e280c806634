package web

// usermsg.go maps technical errors onto user-friendly messages with
// support codes. Patterns are matched case-insensitively with
// strings.Contains; the first match wins, so specific patterns come
// before general ones. When a user reports a code, support staff look
// up the pattern here to find what triggered it; ERR000 means "check
// the server logs for the original error".

import (
	"errors"
	"strings"
)

// errRateLimited is the sentinel the rate limiter reports.
var errRateLimited = errors.New("rate limit exceeded")

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
	// File errors (FILE001-FILE004)
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "Upload exceeds the maximum size limit",
			Action:  "The source sheets should be small CSV exports; check you attached the right files",
			Code:    "FILE001",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "A file is not a valid CSV",
			Action:  "Export each sheet as comma-separated UTF-8 and retry",
			Code:    "FILE002",
		},
	},
	{
		pattern: "no sheet provided",
		msg: UserMessage{
			Message: "No source sheet was attached",
			Action:  "Attach at least one of the units, nursecalls, or clinicals parts",
			Code:    "FILE003",
		},
	},
	{
		pattern: "invalid form",
		msg: UserMessage{
			Message: "The upload form could not be parsed",
			Action:  "Send the sheets as multipart/form-data file parts",
			Code:    "FILE004",
		},
	},

	// Conversion errors (CONV001-CONV003)
	{
		pattern: "too many concurrent conversions",
		msg: UserMessage{
			Message: "The service is busy with other conversions",
			Action:  "Please wait a moment and try again",
			Code:    "CONV001",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "The request was cancelled",
			Action:  "Please try again",
			Code:    "CONV002",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "The request timed out",
			Action:  "Check your connection and try again",
			Code:    "CONV003",
		},
	},

	// Database errors (DB001-DB002)
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "The conversion log database is unreachable",
			Action:  "Please try again in a few moments",
			Code:    "DB001",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "A backend operation timed out",
			Action:  "Please try again",
			Code:    "DB002",
		},
	},

	// Rate limiting (RATE001)
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is the ERR000 fallback when no pattern matches.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
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
