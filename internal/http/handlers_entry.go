package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"heiyubudget/internal/core"
	"heiyubudget/internal/export"
	"heiyubudget/internal/ledger"
)

// handleVoiceEntry accepts one utterance and saves the parsed entry.
// Parse failures come back as 422 with the hint verbatim, ready for the
// client to display.
func (s *Server) handleVoiceEntry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var req voiceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	entry, err := s.entries.CreateFromUtterance(r.Context(), req.Text, time.Now())
	if err != nil {
		var parseErr *core.ParseError
		if errors.As(err, &parseErr) {
			writeErrorWithHint(w, http.StatusUnprocessableEntity, string(parseErr.Kind), parseErr.Hint)
			return
		}
		slog.ErrorContext(r.Context(), "Voice entry save error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save entry")
		return
	}

	s.invalidateSummaries()
	writeJSON(w, http.StatusCreated, buildEntryResponse(entry))
}

func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listEntries(w, r)
	case http.MethodPost:
		s.createEntry(w, r)
	case http.MethodDelete:
		s.deleteEntryByQuery(w, r)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost, http.MethodDelete)
	}
}

func (s *Server) listEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.entries.ListEntries(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List entries error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list entries")
		return
	}
	writeJSON(w, http.StatusOK, buildEntryListResponse(entries))
}

func (s *Server) createEntry(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	t, amount, category, text, err := req.parse()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	entry, err := s.entries.CreateEntry(r.Context(), t, amount, category, text, time.Now())
	if err != nil {
		if errors.Is(err, core.ErrInvalidAmount) {
			writeError(w, http.StatusUnprocessableEntity, "invalid amount")
			return
		}
		slog.ErrorContext(r.Context(), "Entry create error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save entry")
		return
	}

	s.invalidateSummaries()
	writeJSON(w, http.StatusCreated, buildEntryResponse(entry))
}

func (s *Server) deleteEntryByQuery(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "id query parameter is required")
		return
	}
	s.deleteEntry(w, r, id)
}

// handleEntryByID serves /entries/{id}: full replacement via PUT, removal
// via DELETE.
func (s *Server) handleEntryByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r.URL.Path, "/entries/")
	if !ok {
		writeError(w, http.StatusNotFound, "entry not found")
		return
	}

	switch r.Method {
	case http.MethodPut:
		s.updateEntry(w, r, id)
	case http.MethodDelete:
		s.deleteEntry(w, r, id)
	default:
		methodNotAllowed(w, http.MethodPut, http.MethodDelete)
	}
}

func (s *Server) updateEntry(w http.ResponseWriter, r *http.Request, id int64) {
	var req entryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	t, amount, category, text, err := req.parse()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	entry, err := s.entries.UpdateEntry(r.Context(), id, t, amount, category, text, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrNotFound):
			writeError(w, http.StatusNotFound, "entry not found")
		case errors.Is(err, core.ErrInvalidAmount):
			writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		default:
			slog.ErrorContext(r.Context(), "Entry update error", "error", err, "id", id)
			writeError(w, http.StatusInternalServerError, "failed to update entry")
		}
		return
	}

	s.invalidateSummaries()
	writeJSON(w, http.StatusOK, buildEntryResponse(entry))
}

func (s *Server) deleteEntry(w http.ResponseWriter, r *http.Request, id int64) {
	if err := s.entries.DeleteEntry(r.Context(), id); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			writeError(w, http.StatusNotFound, "entry not found")
			return
		}
		slog.ErrorContext(r.Context(), "Entry delete error", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to delete entry")
		return
	}
	s.invalidateSummaries()
	w.WriteHeader(http.StatusNoContent)
}

// handleExportCSV streams the full history as CSV, newest first. Embedded
// commas in free-text fields are replaced with spaces.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	entries, err := s.entries.ListEntries(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Export list error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to export entries")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="entries.csv"`)
	if err := export.WriteCSV(w, entries); err != nil {
		slog.ErrorContext(r.Context(), "CSV write error", "error", err)
	}
}
