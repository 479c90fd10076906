package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure so handlers can pick the right HTTP status
// without inspecting message text.
type Kind int

const (
	Authorization Kind = iota + 1
	Validation
	NotFound
	UpstreamUnavailable
	UpstreamProtocol
	Persistence
)

func (k Kind) String() string {
	switch k {
	case Authorization:
		return "authorization"
	case Validation:
		return "validation"
	case NotFound:
		return "not_found"
	case UpstreamUnavailable:
		return "upstream_unavailable"
	case UpstreamProtocol:
		return "upstream_protocol"
	case Persistence:
		return "persistence"
	default:
		return "internal"
	}
}

// Status maps an error kind to the HTTP status the portal responds with.
// Upstream and persistence failures are all surfaced as 500, matching the
// error envelope the dashboard frontend expects.
func (k Kind) Status() int {
	switch k {
	case Authorization:
		return http.StatusForbidden
	case Validation:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is a tagged failure. Message is user-visible; Err keeps the
// underlying cause for logs and wrapping.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a tagged error with a user-visible message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap tags an underlying error while keeping it reachable via errors.Is/As.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of err, or 0 if err carries no tag.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return 0
}

// IsKind reports whether err is tagged with kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Message returns the user-visible message for err. Untagged errors get a
// generic message so internal details never leak into responses.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "Internal server error"
}

// WriteJSON renders the standard failure envelope:
//
//	{"success": false, "error": "...", "debug": {...}}
//
// The debug block carries best-effort context (timestamp, caller identity)
// supplied by the handler.
func WriteJSON(w http.ResponseWriter, err error, debug map[string]interface{}) {
	status := http.StatusInternalServerError
	if k := KindOf(err); k != 0 {
		status = k.Status()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   Message(err),
		"debug":   debug,
	})
}
