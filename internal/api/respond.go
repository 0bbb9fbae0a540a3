package api

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "lueurstudio/internal/errors"
	"lueurstudio/internal/store"
)

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	var httpErr *apperrors.HTTPError
	switch {
	case errors.As(err, &httpErr):
		writeJSON(w, httpErr.Code, map[string]string{"error": httpErr.Message})
	case errors.Is(err, store.ErrDuplicateID):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "Un enregistrement avec cet identifiant existe déjà"})
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Enregistrement non trouvé"})
	case errors.Is(err, store.ErrCorrupted):
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "Service temporairement indisponible"})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Erreur interne"})
	}
}
