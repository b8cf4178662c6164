package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"freelanceBack/internal/models"
	"freelanceBack/internal/services"
)

// webhookTolerance bounds the age of an accepted Stripe delivery.
const webhookTolerance = 5 * time.Minute

type PaymentHandler struct {
	Service *services.PaymentService
	Stripe  *services.StripeService
}

func (h *PaymentHandler) IssuePayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProjectID string  `json:"project_id"`
		Amount    float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	result, err := h.Service.IssuePayment(r.Context(), callerID(r), req.ProjectID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidAmount):
			http.Error(w, "project_id and a positive amount are required", http.StatusBadRequest)
		case errors.Is(err, models.ErrProjectNotFound):
			http.Error(w, "project not found", http.StatusNotFound)
		case errors.Is(err, models.ErrNotProjectClient):
			http.Error(w, "forbidden", http.StatusForbidden)
		case errors.Is(err, models.ErrPaymentState):
			http.Error(w, "project is already paid", http.StatusConflict)
		default:
			log.Printf("IssuePayment error: %v", err)
			http.Error(w, "create checkout session: "+err.Error(), stripeErrorStatus(err))
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (h *PaymentHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	projectID := r.URL.Query().Get(":project_id")

	result, err := h.Service.VerifyPayment(r.Context(), projectID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrPaymentNotFound):
			http.Error(w, "no payment for project", http.StatusNotFound)
		default:
			log.Printf("VerifyPayment error: %v", err)
			http.Error(w, "verify payment: "+err.Error(), stripeErrorStatus(err))
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// Webhook receives Stripe event deliveries. The signature gate runs before
// any decoding side effects; unverified payloads are dropped with 400 so
// Stripe stops retrying them.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		http.Error(w, "read body", http.StatusBadRequest)
		return
	}

	if !h.Stripe.VerifySignature(payload, r.Header.Get("Stripe-Signature"), time.Now(), webhookTolerance) {
		http.Error(w, "invalid signature", http.StatusBadRequest)
		return
	}

	event, err := h.Stripe.ParseWebhook(bytes.NewReader(payload))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Service.HandleCheckoutEvent(r.Context(), event); err != nil {
		log.Printf("Webhook event %s (%s) error: %v", event.ID, event.Type, err)
		http.Error(w, "process event", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func stripeErrorStatus(err error) int {
	var apiErr *services.StripeError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			return apiErr.StatusCode
		}
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
