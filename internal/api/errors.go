package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind classifies a failed request into the client-facing taxonomy.
type Kind int

const (
	// KindNetwork means no response reached the client.
	KindNetwork Kind = iota
	// KindAuth means the backend rejected the credential (401).
	KindAuth
	// KindValidation means the backend returned field-level errors.
	KindValidation
	// KindServer covers every other non-2xx response.
	KindServer
)

// Fixed user-facing messages.
const (
	NetworkErrorMessage = "Unable to connect to the server. Please check your internet connection and ensure the backend server is running."

	SessionExpiredMessage = "Your session has expired. Please log in again."

	FallbackErrorMessage = "An unexpected error occurred. Please try again."

	genericErrorMessage = "An error occurred while processing your request."
)

// Error is the uniform representation of a failed request. Exactly one
// of General or Fields carries the user-facing content: Fields for
// validation errors co-located with inputs, General for everything else.
type Error struct {
	Kind    Kind
	Status  int
	General string
	Fields  map[string]string

	cause error
}

func (e *Error) Error() string {
	if e.General != "" {
		return e.General
	}
	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for field, msg := range e.Fields {
			parts = append(parts, field+": "+msg)
		}
		sort.Strings(parts)
		return strings.Join(parts, "; ")
	}
	return FallbackErrorMessage
}

func (e *Error) Unwrap() error {
	return e.cause
}

// HasFields reports whether the error carries field-level messages.
func (e *Error) HasFields() bool {
	return len(e.Fields) > 0
}

// AsError extracts an *Error from an error chain.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsAuthError reports whether err is a credential rejection.
func IsAuthError(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Kind == KindAuth
}

// IsNetworkError reports whether err is a connectivity failure.
func IsNetworkError(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Kind == KindNetwork
}

// Normalize converts an arbitrary backend error payload from a failed
// non-401 response into an *Error. The backend emits several shapes
// (DRF field errors, non_field_errors lists, {detail: ...},
// {error: ...} envelopes, bare strings); this is the single place that
// reconciles them. Precedence, first match wins:
//
//  1. a JSON array of messages, joined with ", " as a general message
//  2. a non_field_errors entry, joined the same way
//  3. a field→message(s) mapping with neither "error" nor "detail":
//     field errors, taking the first element of list values
//  4. "detail" or "error", preferring "detail" when both are present
//  5. a bare JSON string
//  6. anything else: "field: message" pairs joined with "; "
//  7. an empty body: a fixed fallback message
func Normalize(status int, body []byte) *Error {
	e := &Error{Kind: KindServer, Status: status}

	if len(body) == 0 {
		e.General = FallbackErrorMessage
		return e
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		// Not JSON; surface the raw body when it is printable.
		if s := strings.TrimSpace(string(body)); s != "" {
			e.General = s
		} else {
			e.General = FallbackErrorMessage
		}
		return e
	}

	switch v := payload.(type) {
	case []any:
		e.General = joinMessages(v, ", ")
		if e.General == "" {
			e.General = FallbackErrorMessage
		}
		return e

	case map[string]any:
		if nfe, ok := v["non_field_errors"]; ok {
			if msg := stringify(nfe, ", "); msg != "" {
				e.General = msg
				return e
			}
		}

		_, hasError := v["error"]
		_, hasDetail := v["detail"]
		if !hasError && !hasDetail {
			fields := make(map[string]string, len(v))
			for field, raw := range v {
				if msg := firstMessage(raw); msg != "" {
					fields[field] = msg
				}
			}
			if len(fields) > 0 {
				e.Kind = KindValidation
				e.Fields = fields
				return e
			}
		}

		if detail, ok := v["detail"].(string); ok && detail != "" {
			e.General = detail
			return e
		}
		if errMsg, ok := v["error"].(string); ok && errMsg != "" {
			e.General = errMsg
			return e
		}

		e.General = concatFieldPairs(v)
		return e

	case string:
		if v != "" {
			e.General = v
			return e
		}
	}

	e.General = FallbackErrorMessage
	return e
}

// firstMessage extracts a single message from a field value: the first
// element of a list, or the value itself.
func firstMessage(raw any) string {
	switch v := raw.(type) {
	case []any:
		if len(v) == 0 {
			return ""
		}
		return fmt.Sprint(v[0])
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// stringify renders a value that may be a string or a list of strings.
func stringify(raw any, sep string) string {
	switch v := raw.(type) {
	case []any:
		return joinMessages(v, sep)
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func joinMessages(raw []any, sep string) string {
	parts := make([]string, 0, len(raw))
	for _, item := range raw {
		if s := fmt.Sprint(item); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, sep)
}

// concatFieldPairs synthesizes a general message from every key of an
// otherwise unrecognized payload.
func concatFieldPairs(v map[string]any) string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		if msg := stringify(v[field], ", "); msg != "" {
			parts = append(parts, field+": "+msg)
		}
	}
	if len(parts) == 0 {
		return genericErrorMessage
	}
	return strings.Join(parts, "; ")
}
