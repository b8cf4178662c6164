package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"freelanceBack/internal/models"
	"freelanceBack/internal/services"
)

type PayoutHandler struct {
	Service *services.PayoutService
}

func (h *PayoutHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.Service.GetBalance(r.Context(), callerID(r))
	if err != nil {
		log.Printf("GetBalance error: %v", err)
		http.Error(w, "Failed to get balance", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(balance)
}

func (h *PayoutHandler) RequestPayout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount         float64         `json:"amount"`
		PayoutMethod   string          `json:"payout_method"`
		PaymentDetails json.RawMessage `json:"payment_details"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	payout, err := h.Service.RequestPayout(r.Context(), callerID(r), req.Amount, req.PayoutMethod, req.PaymentDetails)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidAmount):
			http.Error(w, "amount must be positive", http.StatusBadRequest)
		case errors.Is(err, models.ErrInvalidPayoutMethod):
			http.Error(w, "payout_method must be paypal or bank_transfer", http.StatusBadRequest)
		case errors.Is(err, models.ErrMissingPayoutDetails):
			http.Error(w, "payment_details are required", http.StatusBadRequest)
		case errors.Is(err, models.ErrInsufficientBalance):
			http.Error(w, "insufficient available balance", http.StatusConflict)
		default:
			log.Printf("RequestPayout error: %v", err)
			http.Error(w, "Failed to request payout", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(payout)
}

func (h *PayoutHandler) GetPayoutHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.Service.GetPayoutHistory(r.Context(), callerID(r))
	if err != nil {
		http.Error(w, "Failed to get payout history", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(history)
}

func (h *PayoutHandler) CompletePayout(w http.ResponseWriter, r *http.Request) {
	h.settle(w, r, h.Service.CompletePayout)
}

func (h *PayoutHandler) RejectPayout(w http.ResponseWriter, r *http.Request) {
	h.settle(w, r, h.Service.RejectPayout)
}

func (h *PayoutHandler) settle(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, payoutID, adminNotes string) error) {
	id := r.URL.Query().Get(":id")

	var input struct {
		AdminNotes string `json:"admin_notes"`
	}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&input)
	}

	if err := fn(r.Context(), id, input.AdminNotes); err != nil {
		switch {
		case errors.Is(err, models.ErrPayoutNotFound):
			http.Error(w, "payout not found", http.StatusNotFound)
		case errors.Is(err, models.ErrPayoutState):
			http.Error(w, "payout is not pending", http.StatusConflict)
		default:
			log.Printf("settle payout error: %v", err)
			http.Error(w, "Failed to settle payout", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusOK)
}
