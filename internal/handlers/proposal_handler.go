package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"freelanceBack/internal/models"
	"freelanceBack/internal/services"
)

type ProposalHandler struct {
	Service *services.ProposalService
}

func (h *ProposalHandler) SubmitProposal(w http.ResponseWriter, r *http.Request) {
	var proposal models.Proposal
	if err := json.NewDecoder(r.Body).Decode(&proposal); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if proposal.ProjectID == "" || proposal.CoverLetter == "" || proposal.ProposedBudget <= 0 {
		http.Error(w, "project_id, cover_letter and proposed_budget are required", http.StatusBadRequest)
		return
	}
	proposal.FreelancerID = callerID(r)

	created, err := h.Service.SubmitProposal(r.Context(), proposal)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrProjectNotFound):
			http.Error(w, "project not found", http.StatusNotFound)
		case errors.Is(err, models.ErrProposalState):
			http.Error(w, "project is not accepting proposals", http.StatusConflict)
		default:
			log.Printf("SubmitProposal error: %v", err)
			http.Error(w, "Failed to submit proposal", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *ProposalHandler) GetProposalsByProjectID(w http.ResponseWriter, r *http.Request) {
	projectID := r.URL.Query().Get(":project_id")
	proposals, err := h.Service.GetProposalsByProjectID(r.Context(), projectID, callerID(r))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrProjectNotFound):
			http.Error(w, "project not found", http.StatusNotFound)
		case errors.Is(err, models.ErrNotProjectClient):
			http.Error(w, "forbidden", http.StatusForbidden)
		default:
			http.Error(w, "Failed to get proposals", http.StatusInternalServerError)
		}
		return
	}
	json.NewEncoder(w).Encode(proposals)
}

func (h *ProposalHandler) GetMyProposals(w http.ResponseWriter, r *http.Request) {
	proposals, err := h.Service.GetProposalsByFreelancerID(r.Context(), callerID(r))
	if err != nil {
		http.Error(w, "Failed to get proposals", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(proposals)
}

func (h *ProposalHandler) AcceptProposal(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	if err := h.Service.AcceptProposal(r.Context(), id, callerID(r)); err != nil {
		switch {
		case errors.Is(err, models.ErrProposalNotFound):
			http.Error(w, "proposal not found", http.StatusNotFound)
		case errors.Is(err, models.ErrNotProjectClient):
			http.Error(w, "forbidden", http.StatusForbidden)
		case errors.Is(err, models.ErrProposalState):
			http.Error(w, "proposal already resolved", http.StatusConflict)
		default:
			log.Printf("AcceptProposal error: %v", err)
			http.Error(w, "Failed to accept proposal", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *ProposalHandler) RejectProposal(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	if err := h.Service.RejectProposal(r.Context(), id, callerID(r)); err != nil {
		switch {
		case errors.Is(err, models.ErrProposalNotFound):
			http.Error(w, "proposal not found", http.StatusNotFound)
		case errors.Is(err, models.ErrNotProjectClient):
			http.Error(w, "forbidden", http.StatusForbidden)
		case errors.Is(err, models.ErrProposalState):
			http.Error(w, "proposal already resolved", http.StatusConflict)
		default:
			http.Error(w, "Failed to reject proposal", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusOK)
}
