package http

import (
	"errors"
	"log/slog"
	"net/http"

	"heiyubudget/internal/ledger"
)

func (s *Server) handleRecurringIncomes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listRecurringIncomes(w, r)
	case http.MethodPost:
		s.createRecurringIncome(w, r)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) listRecurringIncomes(w http.ResponseWriter, r *http.Request) {
	templates, err := s.store.ListRecurringIncomes(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List recurring incomes error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list recurring incomes")
		return
	}
	out := make([]recurringResponse, len(templates))
	for i, ri := range templates {
		out[i] = buildRecurringResponse(ri)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createRecurringIncome(w http.ResponseWriter, r *http.Request) {
	var req recurringRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	ri, err := req.parse()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	saved, err := s.store.AddRecurringIncome(r.Context(), ri)
	if err != nil {
		slog.ErrorContext(r.Context(), "Add recurring income error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save recurring income")
		return
	}
	writeJSON(w, http.StatusCreated, buildRecurringResponse(saved))
}

func (s *Server) handleRecurringIncomeByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r.URL.Path, "/recurring-incomes/")
	if !ok {
		writeError(w, http.StatusNotFound, "recurring income not found")
		return
	}

	switch r.Method {
	case http.MethodPut:
		s.updateRecurringIncome(w, r, id)
	case http.MethodDelete:
		s.deleteRecurringIncome(w, r, id)
	default:
		methodNotAllowed(w, http.MethodPut, http.MethodDelete)
	}
}

func (s *Server) updateRecurringIncome(w http.ResponseWriter, r *http.Request, id int64) {
	var req recurringRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	ri, err := req.parse()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	ri.ID = id

	updated, err := s.store.UpdateRecurringIncome(r.Context(), ri)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			writeError(w, http.StatusNotFound, "recurring income not found")
			return
		}
		slog.ErrorContext(r.Context(), "Update recurring income error", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to update recurring income")
		return
	}
	writeJSON(w, http.StatusOK, buildRecurringResponse(updated))
}

func (s *Server) deleteRecurringIncome(w http.ResponseWriter, r *http.Request, id int64) {
	if err := s.store.DeleteRecurringIncome(r.Context(), id); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			writeError(w, http.StatusNotFound, "recurring income not found")
			return
		}
		slog.ErrorContext(r.Context(), "Delete recurring income error", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to delete recurring income")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
