package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"freelanceBack/internal/models"
	"freelanceBack/internal/services"
)

type ProjectHandler struct {
	Service *services.ProjectService
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var project models.Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if project.Title == "" || project.Description == "" || project.Category == "" {
		http.Error(w, "title, description and category are required", http.StatusBadRequest)
		return
	}
	project.ClientID = callerID(r)

	created, err := h.Service.CreateProject(r.Context(), project)
	if err != nil {
		log.Printf("CreateProject error: %v", err)
		http.Error(w, "Failed to create project", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *ProjectHandler) GetProjects(w http.ResponseWriter, r *http.Request) {
	filter := models.ProjectFilter{
		Category: r.URL.Query().Get("category"),
		Status:   r.URL.Query().Get("status"),
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil {
		filter.Offset = offset
	}

	projects, err := h.Service.GetProjects(r.Context(), filter)
	if err != nil {
		http.Error(w, "Failed to get projects", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(projects)
}

func (h *ProjectHandler) GetMyProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Service.GetProjects(r.Context(), models.ProjectFilter{ClientID: callerID(r)})
	if err != nil {
		http.Error(w, "Failed to get projects", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(projects)
}

func (h *ProjectHandler) GetProjectByID(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	project, err := h.Service.GetProjectByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrProjectNotFound) {
			http.Error(w, "project not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to get project", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(project)
}

func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var project models.Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	project.ID = r.URL.Query().Get(":id")
	project.ClientID = callerID(r)

	updated, err := h.Service.UpdateProject(r.Context(), project)
	if err != nil {
		if errors.Is(err, models.ErrProjectNotFound) {
			http.Error(w, "project not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to update project", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(updated)
}

func (h *ProjectHandler) CompleteProject(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	if err := h.Service.CompleteProject(r.Context(), id, callerID(r)); err != nil {
		switch {
		case errors.Is(err, models.ErrProjectNotFound):
			http.Error(w, "project not found", http.StatusNotFound)
		case errors.Is(err, models.ErrNotProjectClient):
			http.Error(w, "forbidden", http.StatusForbidden)
		default:
			http.Error(w, "Failed to complete project", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	if err := h.Service.DeleteProject(r.Context(), id, callerID(r)); err != nil {
		if errors.Is(err, models.ErrProjectNotFound) {
			http.Error(w, "project not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to delete project", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
