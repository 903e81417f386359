package http

import (
	"log/slog"
	"net/http"
)

// Preference keys in the settings store.
const settingCurrencySymbol = "currency_symbol"

const defaultCurrencySymbol = "$"

type settingsRequest struct {
	CurrencySymbol string `json:"currency_symbol"`
}

type settingsResponse struct {
	CurrencySymbol string `json:"currency_symbol"`
}

// handleSettings exposes the user preferences backing the profile page.
// Unset keys come back with their defaults.
func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.getSettings(w, r)
	case http.MethodPut:
		s.putSettings(w, r)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPut)
	}
}

func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	symbol, ok, err := s.store.GetSetting(r.Context(), settingCurrencySymbol)
	if err != nil {
		slog.ErrorContext(r.Context(), "Get setting error", "error", err, "key", settingCurrencySymbol)
		writeError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}
	if !ok {
		symbol = defaultCurrencySymbol
	}
	writeJSON(w, http.StatusOK, settingsResponse{CurrencySymbol: symbol})
}

func (s *Server) putSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	symbol := sanitizeInput(req.CurrencySymbol)
	if symbol == "" {
		writeError(w, http.StatusUnprocessableEntity, "currency_symbol is required")
		return
	}

	if err := s.store.SetSetting(r.Context(), settingCurrencySymbol, symbol); err != nil {
		slog.ErrorContext(r.Context(), "Set setting error", "error", err, "key", settingCurrencySymbol)
		writeError(w, http.StatusInternalServerError, "failed to save settings")
		return
	}
	writeJSON(w, http.StatusOK, settingsResponse{CurrencySymbol: symbol})
}
