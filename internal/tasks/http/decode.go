package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/aussiebroadwan/tasktrack/internal/tasks/domain"
)

const maxBodyBytes = 1 << 20

// body is a JSON object with its members left undecoded so validators can
// tell an absent member from a null one.
type body map[string]json.RawMessage

// decodeBody reads the request body as a JSON object. An empty body is an
// empty object.
func decodeBody(w http.ResponseWriter, r *http.Request) (body, error) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, &domain.Error{Kind: domain.KindInvalidInput, Message: domain.MsgInvalidJSON, Err: err}
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return body{}, nil
	}

	var b body
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, &domain.Error{Kind: domain.KindInvalidInput, Message: domain.MsgInvalidJSON, Err: err}
	}
	if b == nil {
		// Literal null.
		return nil, &domain.Error{
			Kind:    domain.KindInvalidInput,
			Message: domain.MsgInvalidJSON,
			Err:     errors.New("body is null"),
		}
	}
	return b, nil
}
