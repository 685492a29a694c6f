package http

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-field-sync/internal/utils"
)

const (
	traceIDHeader = "X-Trace-ID"
	// maxTraceIDLen bounds a caller-supplied id; it ends up in every log
	// line and in sync history.
	maxTraceIDLen = 64
)

// withTraceID tags the request logger with a trace id and reuses it as the
// run id of any sync started by the request. A missing or oversized
// X-Trace-ID is replaced by a UUIDv7 so runs sort by start time.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	ids := utils.NewUUIDGenerator()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if traceID == "" || len(traceID) > maxTraceIDLen {
			traceID = ids.Generate()
		}

		l := h.logger.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})
		r = r.WithContext(utils.WithRunID(l.WithContext(r.Context()), traceID))

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r)
	})
}
