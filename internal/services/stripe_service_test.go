package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestStripeService(t *testing.T, baseURL string) *StripeService {
	t.Helper()
	svc, err := NewStripeService(StripeConfig{
		SecretKey:     "sk_test_123",
		WebhookSecret: "whsec_test",
		BaseURL:       baseURL,
		SuccessURL:    "https://app.example/success",
		CancelURL:     "https://app.example/cancel",
	})
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	return svc
}

func TestCreateCheckoutSession(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/v1/checkout/sessions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk_test_123" {
			t.Errorf("unexpected authorization header: %q", got)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.PostForm.Get("line_items[0][price_data][unit_amount]"); got != "50050" {
			t.Errorf("unexpected unit amount: %q", got)
		}
		if got := r.PostForm.Get("metadata[project_id]"); got != "proj-1" {
			t.Errorf("unexpected project metadata: %q", got)
		}
		_, _ = w.Write([]byte(`{"id":"cs_test_1","url":"https://checkout.stripe.com/c/cs_test_1","status":"open","payment_status":"unpaid"}`))
	}))
	defer ts.Close()

	svc := newTestStripeService(t, ts.URL)
	session, err := svc.CreateCheckoutSession(context.Background(), "proj-1", "client-1", 500.50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.ID != "cs_test_1" {
		t.Errorf("session id mismatch: %q", session.ID)
	}
	if session.URL != "https://checkout.stripe.com/c/cs_test_1" {
		t.Errorf("session url mismatch: %q", session.URL)
	}
}

func TestCreateCheckoutSession_Non2xxReturnsStripeError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":{"message":"card declined"}}`))
	}))
	defer ts.Close()

	svc := newTestStripeService(t, ts.URL)
	_, err := svc.CreateCheckoutSession(context.Background(), "proj-1", "client-1", 100)
	if err == nil {
		t.Fatalf("expected error, got nil")
	}

	apiErr, ok := err.(*StripeError)
	if !ok {
		t.Fatalf("expected StripeError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusPaymentRequired {
		t.Errorf("unexpected status code: %d", apiErr.StatusCode)
	}
	if apiErr.Body == "" {
		t.Errorf("expected body to be populated")
	}
}

func TestRetrieveSession(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/checkout/sessions/cs_test_9" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"id":"cs_test_9","url":"https://checkout.stripe.com/c/cs_test_9","status":"complete","payment_status":"paid"}`))
	}))
	defer ts.Close()

	svc := newTestStripeService(t, ts.URL)
	session, err := svc.RetrieveSession(context.Background(), "cs_test_9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.PaymentStatus != "paid" {
		t.Errorf("payment status mismatch: %q", session.PaymentStatus)
	}
}

func TestCheckoutSessionExpired(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	open := &CheckoutSession{Status: "open", ExpiresAt: now.Unix() + 600}
	if open.Expired(now) {
		t.Errorf("session with future expiry reported expired")
	}

	past := &CheckoutSession{Status: "open", ExpiresAt: now.Unix() - 1}
	if !past.Expired(now) {
		t.Errorf("session past its expiry reported live")
	}

	expired := &CheckoutSession{Status: "expired"}
	if !expired.Expired(now) {
		t.Errorf("expired status reported live")
	}
}

func TestVerifySignature_RoundTrip(t *testing.T) {
	svc := newTestStripeService(t, "https://api.stripe.com")
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
	at := time.Now()

	header := svc.SignPayload(payload, at)
	if !svc.VerifySignature(payload, header, at, 5*time.Minute) {
		t.Fatalf("valid signature rejected")
	}

	if svc.VerifySignature([]byte(`{"tampered":true}`), header, at, 5*time.Minute) {
		t.Errorf("tampered payload accepted")
	}
	if svc.VerifySignature(payload, "", at, 5*time.Minute) {
		t.Errorf("empty header accepted")
	}
	if svc.VerifySignature(payload, header, at.Add(time.Hour), 5*time.Minute) {
		t.Errorf("stale signature accepted outside tolerance")
	}
}

func TestParseWebhook_SessionProjectID(t *testing.T) {
	svc := newTestStripeService(t, "https://api.stripe.com")
	body := `{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"id":"cs_test_1","payment_status":"paid","metadata":{"project_id":"proj-42"}}}}`

	event, err := svc.ParseWebhook(strings.NewReader(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.Type != "checkout.session.completed" {
		t.Errorf("event type mismatch: %q", event.Type)
	}

	projectID, err := event.SessionProjectID()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if projectID != "proj-42" {
		t.Errorf("project id mismatch: %q", projectID)
	}

	session, err := event.Session()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.PaymentStatus != "paid" {
		t.Errorf("payment status mismatch: %q", session.PaymentStatus)
	}
}

func TestToMinorUnits(t *testing.T) {
	cases := []struct {
		amount float64
		want   int64
	}{
		{0.01, 1},
		{1, 100},
		{19.99, 1999},
		{500.505, 50051},
	}
	for _, c := range cases {
		if got := toMinorUnits(c.amount); got != c.want {
			t.Errorf("toMinorUnits(%v) = %d, want %d", c.amount, got, c.want)
		}
	}
}
