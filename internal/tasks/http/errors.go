package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/tasktrack/internal/tasks/domain"
	"github.com/aussiebroadwan/tasktrack/pkg/httpx"
	"github.com/aussiebroadwan/tasktrack/pkg/slogx"
)

// appHandler is a handler that reports failure by returning an error.
type appHandler func(w http.ResponseWriter, r *http.Request) error

// handle adapts an appHandler, sending any returned error through
// writeError.
func handle(h appHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			writeError(w, r, err)
		}
	}
}

// writeError is the single place errors become responses. Classified
// errors keep their message; everything else is a 500 with a generic one.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := slogx.FromContext(r.Context())

	var de *domain.Error
	if !errors.As(err, &de) {
		de = &domain.Error{Kind: domain.KindInternal, Message: domain.MsgServerError, Err: err}
	}

	code := de.Kind.Status()
	msg := de.Message
	if code >= http.StatusInternalServerError {
		msg = domain.MsgServerError
		log.Error("request failed", slog.Int("code", code), slog.Any("err", err))
	} else {
		log.Warn("request rejected",
			slog.Int("code", code),
			slog.String("kind", de.Kind.String()),
			slog.String("msg", de.Message),
		)
	}

	httpx.WriteMessage(w, code, msg)
}

// routeNotFound answers every unmatched path or method.
func routeNotFound(w http.ResponseWriter, r *http.Request) {
	httpx.WriteMessage(w, http.StatusNotFound, "Route "+r.URL.RequestURI()+" not found")
}
