package http

import (
	"log/slog"
	"net/http"
)

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listCategories(w, r)
	case http.MethodPost:
		s.addCategory(w, r)
	case http.MethodDelete:
		s.deleteCategory(w, r)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost, http.MethodDelete)
	}
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	set, err := s.store.LoadCategories(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Load categories error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load categories")
		return
	}
	writeJSON(w, http.StatusOK, buildCategoriesResponse(set))
}

func (s *Server) addCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	t, name, err := req.parse()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	set, err := s.store.LoadCategories(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Load categories error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load categories")
		return
	}
	if !set.Add(t, name) {
		writeError(w, http.StatusConflict, "category already exists")
		return
	}
	if err := s.store.SaveCategories(r.Context(), set); err != nil {
		slog.ErrorContext(r.Context(), "Save categories error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save categories")
		return
	}
	writeJSON(w, http.StatusCreated, buildCategoriesResponse(set))
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	t, name, err := req.parse()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	set, err := s.store.LoadCategories(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Load categories error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load categories")
		return
	}
	if !set.Delete(t, name) {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	if err := s.store.SaveCategories(r.Context(), set); err != nil {
		slog.ErrorContext(r.Context(), "Save categories error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save categories")
		return
	}
	writeJSON(w, http.StatusOK, buildCategoriesResponse(set))
}

// handleRenameCategory renames a catalog entry in place. Entries recorded
// under the old name are intentionally left untouched.
func (s *Server) handleRenameCategory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var req renameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	t, oldName, newName, err := req.parse()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	set, err := s.store.LoadCategories(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Load categories error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load categories")
		return
	}
	if !set.Rename(t, oldName, newName) {
		writeError(w, http.StatusConflict, "rename failed: old name missing or new name taken")
		return
	}
	if err := s.store.SaveCategories(r.Context(), set); err != nil {
		slog.ErrorContext(r.Context(), "Save categories error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save categories")
		return
	}
	writeJSON(w, http.StatusOK, buildCategoriesResponse(set))
}
