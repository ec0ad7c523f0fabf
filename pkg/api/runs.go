package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/MarquinhoCF/alwabp-solver/pkg/errors"
	"github.com/MarquinhoCF/alwabp-solver/pkg/store"
)

// defaultRunLimit caps unqualified run listings.
const defaultRunLimit = 50

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := defaultRunLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, apperrors.New(apperrors.ErrCodeInvalidFormat, "limit must be a positive integer"))
			return
		}
		limit = n
	}

	runs, err := s.store.List(r.Context(), limit)
	if err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeStore, err, "list runs"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	run, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, apperrors.New(apperrors.ErrCodeNotFound, "run %s not found", id))
		return
	}
	if err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeStore, err, "get run"))
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeStore, err, "delete run"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
