package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"freelanceBack/internal/models"
	"freelanceBack/internal/services"
)

type MilestoneHandler struct {
	Service *services.MilestoneService
}

func (h *MilestoneHandler) CreateMilestone(w http.ResponseWriter, r *http.Request) {
	var m models.Milestone
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if m.ProjectID == "" || m.Title == "" {
		http.Error(w, "project_id and title are required", http.StatusBadRequest)
		return
	}

	created, err := h.Service.CreateMilestone(r.Context(), m, callerID(r))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrProjectNotFound):
			http.Error(w, "project not found", http.StatusNotFound)
		case errors.Is(err, models.ErrNotProjectClient):
			http.Error(w, "forbidden", http.StatusForbidden)
		case errors.Is(err, models.ErrInvalidAmount):
			http.Error(w, "amount must be positive", http.StatusBadRequest)
		case errors.Is(err, models.ErrMilestoneState):
			http.Error(w, "project is not funded", http.StatusConflict)
		default:
			log.Printf("CreateMilestone error: %v", err)
			http.Error(w, "Failed to create milestone", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *MilestoneHandler) GetMilestonesByProjectID(w http.ResponseWriter, r *http.Request) {
	projectID := r.URL.Query().Get(":project_id")
	milestones, err := h.Service.GetMilestonesByProjectID(r.Context(), projectID)
	if err != nil {
		http.Error(w, "Failed to get milestones", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(milestones)
}

func (h *MilestoneHandler) GetMilestoneByID(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	milestone, err := h.Service.GetMilestoneByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrMilestoneNotFound) {
			http.Error(w, "milestone not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to get milestone", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(milestone)
}

// SubmitMilestone accepts an optional deliverable file as multipart form data
// under the "attachment" field.
func (h *MilestoneHandler) SubmitMilestone(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")

	var attachment []byte
	var attachmentName string
	if err := r.ParseMultipartForm(10 << 20); err == nil {
		file, header, err := r.FormFile("attachment")
		if err == nil {
			defer file.Close()
			data, err := io.ReadAll(file)
			if err != nil {
				http.Error(w, "Failed to read attachment", http.StatusBadRequest)
				return
			}
			attachment = data
			attachmentName = header.Filename
		}
	}

	if err := h.Service.SubmitMilestone(r.Context(), id, callerID(r), attachment, attachmentName); err != nil {
		switch {
		case errors.Is(err, models.ErrMilestoneNotFound):
			http.Error(w, "milestone not found", http.StatusNotFound)
		case errors.Is(err, models.ErrMilestoneState):
			http.Error(w, "milestone is not pending", http.StatusConflict)
		default:
			log.Printf("SubmitMilestone error: %v", err)
			http.Error(w, "Failed to submit milestone", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *MilestoneHandler) RejectMilestone(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")

	var input struct {
		Feedback string `json:"feedback"`
	}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&input)
	}

	if err := h.Service.RejectMilestone(r.Context(), id, callerID(r), input.Feedback); err != nil {
		switch {
		case errors.Is(err, models.ErrMilestoneNotFound):
			http.Error(w, "milestone not found", http.StatusNotFound)
		case errors.Is(err, models.ErrNotProjectClient):
			http.Error(w, "forbidden", http.StatusForbidden)
		case errors.Is(err, models.ErrMilestoneState):
			http.Error(w, "milestone is not submitted", http.StatusConflict)
		default:
			log.Printf("RejectMilestone error: %v", err)
			http.Error(w, "Failed to reject milestone", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusOK)
}
