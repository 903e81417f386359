package http

import (
	"log/slog"
	"net/http"
	"time"
)

// handleSummary returns the per-type Today/Week/Month sums. Responses are
// cached per calendar day and invalidated on every write; the 2-digit
// rounding happens in the response builder only.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	now := time.Now()
	key := now.Format("2006-01-02") + "/" + s.weekStart.String()

	if cached, found := s.summaryCache.Get(key); found {
		slog.DebugContext(r.Context(), "Summary cache hit", "key", key)
		writeJSON(w, http.StatusOK, buildSummaryResponse(cached, s.weekStart))
		return
	}

	summary, err := s.entries.Summary(r.Context(), now, s.weekStart)
	if err != nil {
		slog.ErrorContext(r.Context(), "Summary error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute summary")
		return
	}

	s.summaryCache.Set(key, summary)
	writeJSON(w, http.StatusOK, buildSummaryResponse(summary, s.weekStart))
}
