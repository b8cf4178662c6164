package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"freelanceBack/internal/services"
)

func TestStripeErrorStatus(t *testing.T) {
	t.Run("propagates 4xx", func(t *testing.T) {
		status := stripeErrorStatus(&services.StripeError{StatusCode: http.StatusPaymentRequired})
		if status != http.StatusPaymentRequired {
			t.Fatalf("expected %d, got %d", http.StatusPaymentRequired, status)
		}
	})

	t.Run("maps provider 5xx to bad gateway", func(t *testing.T) {
		status := stripeErrorStatus(&services.StripeError{StatusCode: http.StatusInternalServerError})
		if status != http.StatusBadGateway {
			t.Fatalf("expected %d, got %d", http.StatusBadGateway, status)
		}
	})

	t.Run("defaults otherwise", func(t *testing.T) {
		status := stripeErrorStatus(errors.New("generic error"))
		if status != http.StatusInternalServerError {
			t.Fatalf("expected %d, got %d", http.StatusInternalServerError, status)
		}
	})
}

func TestWebhook_SignatureGate(t *testing.T) {
	stripe, err := services.NewStripeService(services.StripeConfig{
		SecretKey:     "sk_test_123",
		WebhookSecret: "whsec_test",
	})
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	handler := &PaymentHandler{Service: &services.PaymentService{}, Stripe: stripe}

	body := `{"id":"evt_1","type":"invoice.created","data":{"object":{}}}`

	t.Run("rejects unsigned delivery", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/payment/webhook", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.Webhook(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected %d, got %d", http.StatusBadRequest, rec.Code)
		}
	})

	t.Run("accepts signed delivery", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/payment/webhook", strings.NewReader(body))
		req.Header.Set("Stripe-Signature", stripe.SignPayload([]byte(body), time.Now()))
		rec := httptest.NewRecorder()

		handler.Webhook(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
		}
	})
}
