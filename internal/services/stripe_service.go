package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"
)

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string

	// Stripe API base, override in tests.
	// Default: https://api.stripe.com
	BaseURL string

	// Where the checkout redirects the user afterwards (front-end).
	SuccessURL string
	CancelURL  string

	Currency string

	Client *http.Client
	Logger *slog.Logger
}

type StripeService struct {
	secretKey     string
	webhookSecret string
	baseURL       *url.URL

	successURL string
	cancelURL  string
	currency   string

	httpClient *http.Client
	logger     *slog.Logger
}

func NewStripeService(cfg StripeConfig) (*StripeService, error) {
	if strings.TrimSpace(cfg.SecretKey) == "" {
		return nil, fmt.Errorf("stripe: secret key is required")
	}
	base := cfg.BaseURL
	if base == "" {
		base = "https://api.stripe.com"
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	currency := cfg.Currency
	if currency == "" {
		currency = "usd"
	}

	s := &StripeService{
		secretKey:     cfg.SecretKey,
		webhookSecret: cfg.WebhookSecret,
		baseURL:       u,
		successURL:    cfg.SuccessURL,
		cancelURL:     cfg.CancelURL,
		currency:      currency,
		httpClient:    client,
		logger:        logger,
	}
	logger.Info("Stripe initialized",
		"baseURL", u.String(),
		"successURL_set", s.successURL != "",
		"cancelURL_set", s.cancelURL != "",
	)
	return s, nil
}

// CheckoutSession mirrors the fields of a Stripe checkout session this
// service reads. PaymentStatus is "paid" once the charge settled.
type CheckoutSession struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	PaymentStatus string `json:"payment_status"`
	Status        string `json:"status"`
	AmountTotal   int64  `json:"amount_total"`
	Currency      string `json:"currency"`
	ExpiresAt     int64  `json:"expires_at"`
}

// Expired reports whether the session can no longer be completed.
func (cs *CheckoutSession) Expired(now time.Time) bool {
	if cs.Status == "expired" {
		return true
	}
	return cs.ExpiresAt > 0 && now.Unix() >= cs.ExpiresAt
}

// toMinorUnits converts a decimal currency amount to integral cents. All
// amounts cross the provider boundary as minor units.
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CreateCheckoutSession creates a checkout session holding the escrow amount
// of a project. The project id travels in the metadata so webhook events can
// be routed back.
func (s *StripeService) CreateCheckoutSession(ctx context.Context, projectID, clientID string, amount float64) (*CheckoutSession, error) {
	logger := s.logger.With("op", "CreateCheckoutSession")

	endpoint := *s.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/v1/checkout/sessions")

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", s.successURL)
	form.Set("cancel_url", s.cancelURL)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", s.currency)
	form.Set("line_items[0][price_data][product_data][name]", "Project Payment - Escrow")
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(toMinorUnits(amount), 10))
	form.Set("metadata[project_id]", projectID)
	form.Set("metadata[client_id]", clientID)

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), strings.NewReader(form.Encode()))
	req.Header.Set("Authorization", "Bearer "+s.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("checkout session request: %w", err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	logger.Debug("checkout session raw", "status", resp.Status, "body", trimBody(string(b), 2000))

	if resp.StatusCode != http.StatusOK {
		return nil, &StripeError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(b)}
	}

	var out CheckoutSession
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode checkout session: %w", err)
	}
	if strings.TrimSpace(out.ID) == "" || strings.TrimSpace(out.URL) == "" {
		return nil, fmt.Errorf("checkout session: empty id or url")
	}
	return &out, nil
}

// RetrieveSession fetches the current state of a checkout session.
func (s *StripeService) RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	endpoint := *s.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/v1/checkout/sessions", sessionID)

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	req.Header.Set("Authorization", "Bearer "+s.secretKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("retrieve session request: %w", err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, &StripeError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(b)}
	}

	var out CheckoutSession
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &out, nil
}

// WebhookEvent is the envelope of a Stripe event delivery.
type WebhookEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
	Raw json.RawMessage `json:"-"`
}

// Session decodes the event payload as a checkout session.
func (e *WebhookEvent) Session() (*CheckoutSession, error) {
	var cs struct {
		CheckoutSession
		Metadata map[string]string `json:"metadata"`
	}
	if err := json.Unmarshal(e.Data.Object, &cs); err != nil {
		return nil, fmt.Errorf("decode event object: %w", err)
	}
	return &cs.CheckoutSession, nil
}

// SessionProjectID pulls the project id out of the session metadata.
func (e *WebhookEvent) SessionProjectID() (string, error) {
	var cs struct {
		Metadata map[string]string `json:"metadata"`
	}
	if err := json.Unmarshal(e.Data.Object, &cs); err != nil {
		return "", fmt.Errorf("decode event object: %w", err)
	}
	projectID := strings.TrimSpace(cs.Metadata["project_id"])
	if projectID == "" {
		return "", fmt.Errorf("event metadata: missing project_id")
	}
	return projectID, nil
}

// ParseWebhook reads and decodes an event body without verifying it.
func (s *StripeService) ParseWebhook(r io.Reader) (*WebhookEvent, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read webhook body: %w", err)
	}
	var e WebhookEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("decode webhook: %w", err)
	}
	e.Raw = json.RawMessage(data)
	return &e, nil
}

// VerifySignature checks a Stripe-Signature header (t=...,v1=...) against
// the raw payload. The signed material is "<timestamp>.<payload>" under
// HMAC-SHA256 with the endpoint secret. Deliveries older than tolerance are
// rejected to blunt replay.
func (s *StripeService) VerifySignature(payload []byte, header string, now time.Time, tolerance time.Duration) bool {
	if s.webhookSecret == "" || strings.TrimSpace(header) == "" {
		return false
	}

	var (
		timestamp  string
		signatures []string
	)
	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			timestamp = kv[1]
		case "v1":
			signatures = append(signatures, kv[1])
		}
	}
	if timestamp == "" || len(signatures) == 0 {
		return false
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return false
	}
	if tolerance > 0 {
		age := now.Sub(time.Unix(ts, 0))
		if age > tolerance || age < -tolerance {
			return false
		}
	}

	mac := hmac.New(sha256.New, []byte(s.webhookSecret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	for _, sig := range signatures {
		if hmac.Equal([]byte(expected), []byte(sig)) {
			return true
		}
	}
	return false
}

// SignPayload produces a valid Stripe-Signature header for the payload.
// Used by tests.
func (s *StripeService) SignPayload(payload []byte, at time.Time) string {
	timestamp := strconv.FormatInt(at.Unix(), 10)
	mac := hmac.New(sha256.New, []byte(s.webhookSecret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	return fmt.Sprintf("t=%s,v1=%s", timestamp, hex.EncodeToString(mac.Sum(nil)))
}

// ---------- helpers ----------

func trimBody(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}

type StripeError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StripeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	bt := strings.TrimSpace(e.Body)
	if bt == "" {
		return fmt.Sprintf("stripe error: %s", e.Status)
	}
	return fmt.Sprintf("stripe error: %s: %s", e.Status, bt)
}
