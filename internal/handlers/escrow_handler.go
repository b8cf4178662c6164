package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"freelanceBack/internal/models"
	"freelanceBack/internal/services"
)

type EscrowHandler struct {
	Service *services.EscrowService
}

func (h *EscrowHandler) ReleaseEscrow(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MilestoneID  string  `json:"milestone_id"`
		FreelancerID string  `json:"freelancer_id"`
		Amount       float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.MilestoneID == "" || req.FreelancerID == "" {
		http.Error(w, "milestone_id and freelancer_id are required", http.StatusBadRequest)
		return
	}

	tx, err := h.Service.ReleaseEscrow(r.Context(), callerID(r), req.MilestoneID, req.FreelancerID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidAmount):
			http.Error(w, "amount and freelancer must match the milestone", http.StatusBadRequest)
		case errors.Is(err, models.ErrMilestoneNotFound):
			http.Error(w, "milestone not found", http.StatusNotFound)
		case errors.Is(err, models.ErrProjectNotFound):
			http.Error(w, "project not found", http.StatusNotFound)
		case errors.Is(err, models.ErrNotProjectClient):
			http.Error(w, "forbidden", http.StatusForbidden)
		case errors.Is(err, models.ErrMilestoneState):
			http.Error(w, "milestone is not submitted", http.StatusConflict)
		default:
			log.Printf("ReleaseEscrow error: %v", err)
			http.Error(w, "Failed to release escrow", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tx)
}

func (h *EscrowHandler) GetMyHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.Service.GetHistoryByFreelancer(r.Context(), callerID(r))
	if err != nil {
		http.Error(w, "Failed to get escrow history", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(history)
}

func (h *EscrowHandler) GetProjectHistory(w http.ResponseWriter, r *http.Request) {
	projectID := r.URL.Query().Get(":project_id")
	history, err := h.Service.GetHistoryByProject(r.Context(), projectID)
	if err != nil {
		http.Error(w, "Failed to get escrow history", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(history)
}
