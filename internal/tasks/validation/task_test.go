package validation_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/aussiebroadwan/tasktrack/internal/tasks/domain"
	"github.com/aussiebroadwan/tasktrack/internal/tasks/validation"
	"github.com/stretchr/testify/require"
)

func raw(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

// requireInvalid asserts err is an InvalidInput error with msg.
func requireInvalid(t *testing.T, err error, msg string) {
	t.Helper()
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	require.Equal(t, domain.KindInvalidInput, de.Kind)
	require.Equal(t, msg, de.Message)
}

func TestRequiredTitle(t *testing.T) {
	tests := []struct {
		name string
		in   json.RawMessage
		want string
		msg  string
	}{
		{"absent", nil, "", "Title is required"},
		{"null", json.RawMessage("null"), "", "Title must be a string"},
		{"number", json.RawMessage("42"), "", "Title must be a string"},
		{"array", json.RawMessage(`["abc"]`), "", "Title must be a string"},
		{"empty", raw(t, ""), "", "Title must be at least 3 characters long"},
		{"two chars", raw(t, "ab"), "", "Title must be at least 3 characters long"},
		{"padded two chars", raw(t, "   ab   "), "", "Title must be at least 3 characters long"},
		{"three chars", raw(t, "abc"), "abc", ""},
		{"trimmed", raw(t, "  Buy milk  "), "Buy milk", ""},
		{"hundred chars", raw(t, strings.Repeat("x", 100)), strings.Repeat("x", 100), ""},
		{"hundred and one chars", raw(t, strings.Repeat("x", 101)), "", "Title must be less than 100 characters"},
		{"padded hundred chars", raw(t, " "+strings.Repeat("x", 100)+" "), strings.Repeat("x", 100), ""},
		{"multibyte counts code points", raw(t, "日本語"), "日本語", ""},
		{"hundred multibyte", raw(t, strings.Repeat("é", 100)), strings.Repeat("é", 100), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validation.RequiredTitle(tt.in)
			if tt.msg != "" {
				requireInvalid(t, err, tt.msg)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestOptionalTitle(t *testing.T) {
	got, err := validation.OptionalTitle(nil)
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = validation.OptionalTitle(raw(t, " New title "))
	require.NoError(t, err)
	require.Equal(t, "New title", *got)

	_, err = validation.OptionalTitle(json.RawMessage("null"))
	requireInvalid(t, err, "Title must be a string")

	_, err = validation.OptionalTitle(raw(t, "no"))
	requireInvalid(t, err, "Title must be at least 3 characters long")
}

func TestOptionalDescription(t *testing.T) {
	got, err := validation.OptionalDescription(nil)
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = validation.OptionalDescription(raw(t, ""))
	require.NoError(t, err)
	require.Equal(t, "", *got)

	got, err = validation.OptionalDescription(raw(t, "  kept verbatim  "))
	require.NoError(t, err)
	require.Equal(t, "  kept verbatim  ", *got)

	for _, bad := range []string{"null", "1", "true", "{}"} {
		_, err := validation.OptionalDescription(json.RawMessage(bad))
		requireInvalid(t, err, "Description must be a string")
	}
}

func TestOptionalStatus(t *testing.T) {
	tests := []struct {
		name string
		in   json.RawMessage
		want domain.Status
		msg  string
	}{
		{"todo", raw(t, "todo"), domain.StatusTodo, ""},
		{"in-progress", raw(t, "in-progress"), domain.StatusInProgress, ""},
		{"padded done", raw(t, " done "), domain.StatusDone, ""},
		{"null", json.RawMessage("null"), "", "Status must be a string"},
		{"number", json.RawMessage("3"), "", "Status must be a string"},
		{"empty", raw(t, ""), "", "Status cannot be empty"},
		{"blank", raw(t, "   "), "", "Status cannot be empty"},
		{"unknown", raw(t, "doing"), "", "Invalid status value"},
		{"wrong case", raw(t, "Done"), "", "Invalid status value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validation.OptionalStatus(tt.in)
			if tt.msg != "" {
				requireInvalid(t, err, tt.msg)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, *got)
		})
	}

	got, err := validation.OptionalStatus(nil)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestStatusFilter(t *testing.T) {
	got, err := validation.StatusFilter(nil)
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = validation.StatusFilter([]string{" done "})
	require.NoError(t, err)
	require.Equal(t, domain.StatusDone, *got)

	_, err = validation.StatusFilter([]string{"todo", "done"})
	requireInvalid(t, err, "Status must be a string")

	for _, bad := range []string{"", " ", "pending", "TODO"} {
		_, err := validation.StatusFilter([]string{bad})
		requireInvalid(t, err, "Invalid status filter")
	}
}
