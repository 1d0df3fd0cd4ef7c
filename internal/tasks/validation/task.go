// Package validation checks raw request members before they reach the
// services. Each check returns a domain InvalidInput error carrying the
// client-facing message.
//
// Members are passed as json.RawMessage: a nil value means the member was
// absent from the body, while JSON null is present but not a string.
package validation

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/aussiebroadwan/tasktrack/internal/tasks/domain"
)

const (
	MinTitleLength = 3
	MaxTitleLength = 100
)

const (
	MsgTitleRequired       = "Title is required"
	MsgTitleNotString      = "Title must be a string"
	MsgTitleTooShort       = "Title must be at least 3 characters long"
	MsgTitleTooLong        = "Title must be less than 100 characters"
	MsgDescriptionNotStr   = "Description must be a string"
	MsgStatusNotString     = "Status must be a string"
	MsgStatusEmpty         = "Status cannot be empty"
	MsgStatusInvalid       = "Invalid status value"
	MsgStatusFilterInvalid = "Invalid status filter"
)

// asString decodes raw when it holds a JSON string.
func asString(raw json.RawMessage) (string, bool) {
	var s string
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// RequiredTitle returns the trimmed title.
func RequiredTitle(raw json.RawMessage) (string, error) {
	if raw == nil {
		return "", domain.InvalidInput(MsgTitleRequired)
	}
	return title(raw)
}

// OptionalTitle returns nil when the member is absent.
func OptionalTitle(raw json.RawMessage) (*string, error) {
	if raw == nil {
		return nil, nil
	}
	t, err := title(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func title(raw json.RawMessage) (string, error) {
	s, ok := asString(raw)
	if !ok {
		return "", domain.InvalidInput(MsgTitleNotString)
	}

	trimmed := strings.TrimSpace(s)
	switch n := utf8.RuneCountInString(trimmed); {
	case n < MinTitleLength:
		return "", domain.InvalidInput(MsgTitleTooShort)
	case n > MaxTitleLength:
		return "", domain.InvalidInput(MsgTitleTooLong)
	}
	return trimmed, nil
}

// OptionalDescription accepts any string verbatim, including "".
func OptionalDescription(raw json.RawMessage) (*string, error) {
	if raw == nil {
		return nil, nil
	}
	s, ok := asString(raw)
	if !ok {
		return nil, domain.InvalidInput(MsgDescriptionNotStr)
	}
	return &s, nil
}

// OptionalStatus returns the trimmed status, or nil when absent.
func OptionalStatus(raw json.RawMessage) (*domain.Status, error) {
	if raw == nil {
		return nil, nil
	}
	s, ok := asString(raw)
	if !ok {
		return nil, domain.InvalidInput(MsgStatusNotString)
	}

	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, domain.InvalidInput(MsgStatusEmpty)
	}
	st, ok := domain.ParseStatus(trimmed)
	if !ok {
		return nil, domain.InvalidInput(MsgStatusInvalid)
	}
	return &st, nil
}

// StatusFilter validates the ?status= query values. A repeated parameter is
// not a single string and is rejected.
func StatusFilter(values []string) (*domain.Status, error) {
	switch len(values) {
	case 0:
		return nil, nil
	case 1:
	default:
		return nil, domain.InvalidInput(MsgStatusNotString)
	}

	st, ok := domain.ParseStatus(strings.TrimSpace(values[0]))
	if !ok {
		return nil, domain.InvalidInput(MsgStatusFilterInvalid)
	}
	return &st, nil
}
