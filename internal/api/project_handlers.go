package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"lueurstudio/internal/db"
	"lueurstudio/internal/repository"
	"lueurstudio/internal/store"
)

// ProjectHandler serves the portfolio projects. Reads are public, writes are
// admin-only.
type ProjectHandler struct {
	Repo *repository.ProjectRepository
}

func NewProjectHandler(repo *repository.ProjectRepository) *ProjectHandler {
	return &ProjectHandler{Repo: repo}
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Repo.List()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"projects": projects})
}

func (h *ProjectHandler) BySlug(w http.ResponseWriter, r *http.Request) {
	project, err := h.Repo.BySlug(mux.Vars(r)["slug"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var project db.Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Requête invalide"})
		return
	}
	if project.Slug == "" || project.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Le slug et le titre sont requis"})
		return
	}
	if err := h.Repo.Create(&project); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"project": project,
	})
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	var fields store.Record
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Requête invalide"})
		return
	}
	project, err := h.Repo.Update(mux.Vars(r)["slug"], fields)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"project": project,
	})
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Delete(mux.Vars(r)["slug"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
