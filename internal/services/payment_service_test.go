package services

import (
	"context"
	"testing"
	"time"

	"freelanceBack/internal/models"
)

type stubPaymentStore struct {
	payment   models.ProjectPayment
	getErr    error
	upserted  []models.ProjectPayment
	markPaid  int
	markedRow bool
}

func (s *stubPaymentStore) UpsertPending(ctx context.Context, p models.ProjectPayment) (models.ProjectPayment, error) {
	s.upserted = append(s.upserted, p)
	return p, nil
}

func (s *stubPaymentStore) GetByProjectID(ctx context.Context, projectID string) (models.ProjectPayment, error) {
	if s.getErr != nil {
		return models.ProjectPayment{}, s.getErr
	}
	return s.payment, nil
}

func (s *stubPaymentStore) MarkPaid(ctx context.Context, projectID string) (bool, error) {
	s.markPaid++
	return s.markedRow, nil
}

type stubProjectStore struct {
	project models.Project
	err     error
}

func (s *stubProjectStore) GetProjectByID(ctx context.Context, id string) (models.Project, error) {
	if s.err != nil {
		return models.Project{}, s.err
	}
	return s.project, nil
}

type stubCheckout struct {
	created   int
	retrieved int
	session   *CheckoutSession
	err       error
}

func (s *stubCheckout) CreateCheckoutSession(ctx context.Context, projectID, clientID string, amount float64) (*CheckoutSession, error) {
	s.created++
	if s.err != nil {
		return nil, s.err
	}
	return s.session, nil
}

func (s *stubCheckout) RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	s.retrieved++
	if s.err != nil {
		return nil, s.err
	}
	return s.session, nil
}

func TestIssuePayment_CreatesSessionAndStoresPending(t *testing.T) {
	payments := &stubPaymentStore{getErr: models.ErrPaymentNotFound}
	projects := &stubProjectStore{project: models.Project{ID: "proj-1", ClientID: "client-1"}}
	checkout := &stubCheckout{session: &CheckoutSession{
		ID:     "cs_new",
		URL:    "https://checkout.stripe.com/c/cs_new",
		Status: "open",
	}}
	svc := &PaymentService{Payments: payments, Projects: projects, Stripe: checkout}

	result, err := svc.IssuePayment(context.Background(), "client-1", "proj-1", 250)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SessionID != "cs_new" {
		t.Errorf("session id mismatch: %q", result.SessionID)
	}
	if checkout.created != 1 {
		t.Errorf("expected one session created, got %d", checkout.created)
	}
	if len(payments.upserted) != 1 {
		t.Fatalf("expected one pending payment stored, got %d", len(payments.upserted))
	}
	if payments.upserted[0].StripeSessionID != "cs_new" {
		t.Errorf("stored session id mismatch: %q", payments.upserted[0].StripeSessionID)
	}
}

func TestIssuePayment_ReusesOpenSession(t *testing.T) {
	payments := &stubPaymentStore{payment: models.ProjectPayment{
		ProjectID:       "proj-1",
		Amount:          250,
		PaymentStatus:   models.PaymentStatusUnpaid,
		StripeSessionID: "cs_old",
	}}
	projects := &stubProjectStore{project: models.Project{ID: "proj-1", ClientID: "client-1"}}
	checkout := &stubCheckout{session: &CheckoutSession{
		ID:        "cs_old",
		URL:       "https://checkout.stripe.com/c/cs_old",
		Status:    "open",
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}}
	svc := &PaymentService{Payments: payments, Projects: projects, Stripe: checkout}

	result, err := svc.IssuePayment(context.Background(), "client-1", "proj-1", 250)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SessionID != "cs_old" {
		t.Errorf("expected existing session to be reused, got %q", result.SessionID)
	}
	if checkout.created != 0 {
		t.Errorf("expected no new session, got %d", checkout.created)
	}
	if len(payments.upserted) != 0 {
		t.Errorf("expected no upsert on reuse, got %d", len(payments.upserted))
	}
}

func TestIssuePayment_RejectsPaidProject(t *testing.T) {
	payments := &stubPaymentStore{payment: models.ProjectPayment{
		ProjectID:       "proj-1",
		Amount:          250,
		PaymentStatus:   models.PaymentStatusPaid,
		StripeSessionID: "cs_settled",
	}}
	projects := &stubProjectStore{project: models.Project{ID: "proj-1", ClientID: "client-1"}}
	checkout := &stubCheckout{session: &CheckoutSession{
		ID:     "cs_new",
		URL:    "https://checkout.stripe.com/c/cs_new",
		Status: "open",
	}}
	svc := &PaymentService{Payments: payments, Projects: projects, Stripe: checkout}

	_, err := svc.IssuePayment(context.Background(), "client-1", "proj-1", 250)
	if err != models.ErrPaymentState {
		t.Fatalf("expected ErrPaymentState, got %v", err)
	}
	if checkout.created != 0 {
		t.Errorf("expected no session for a settled project, got %d", checkout.created)
	}
	if len(payments.upserted) != 0 {
		t.Errorf("paid row must not be overwritten, got %d upserts", len(payments.upserted))
	}
}

func TestIssuePayment_RejectsNonClient(t *testing.T) {
	projects := &stubProjectStore{project: models.Project{ID: "proj-1", ClientID: "client-1"}}
	svc := &PaymentService{
		Payments: &stubPaymentStore{getErr: models.ErrPaymentNotFound},
		Projects: projects,
		Stripe:   &stubCheckout{},
	}

	_, err := svc.IssuePayment(context.Background(), "someone-else", "proj-1", 250)
	if err != models.ErrNotProjectClient {
		t.Fatalf("expected ErrNotProjectClient, got %v", err)
	}
}

func TestIssuePayment_InvalidAmount(t *testing.T) {
	svc := &PaymentService{
		Payments: &stubPaymentStore{},
		Projects: &stubProjectStore{},
		Stripe:   &stubCheckout{},
	}
	if _, err := svc.IssuePayment(context.Background(), "client-1", "proj-1", 0); err != models.ErrInvalidAmount {
		t.Errorf("zero amount: expected ErrInvalidAmount, got %v", err)
	}
	if _, err := svc.IssuePayment(context.Background(), "client-1", "", 10); err != models.ErrInvalidAmount {
		t.Errorf("blank project: expected ErrInvalidAmount, got %v", err)
	}
}

func TestVerifyPayment_MarksPaidOnce(t *testing.T) {
	payments := &stubPaymentStore{
		payment: models.ProjectPayment{
			ProjectID:       "proj-1",
			PaymentStatus:   models.PaymentStatusUnpaid,
			StripeSessionID: "cs_1",
		},
		markedRow: true,
	}
	checkout := &stubCheckout{session: &CheckoutSession{
		ID:            "cs_1",
		PaymentStatus: models.PaymentStatusPaid,
		Status:        "complete",
	}}
	svc := &PaymentService{Payments: payments, Projects: &stubProjectStore{}, Stripe: checkout}

	result, err := svc.VerifyPayment(context.Background(), "proj-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Paid {
		t.Errorf("expected paid result")
	}
	if payments.markPaid != 1 {
		t.Errorf("expected one MarkPaid call, got %d", payments.markPaid)
	}
}

func TestVerifyPayment_AlreadyPaidSkipsProvider(t *testing.T) {
	payments := &stubPaymentStore{payment: models.ProjectPayment{
		ProjectID:     "proj-1",
		PaymentStatus: models.PaymentStatusPaid,
	}}
	checkout := &stubCheckout{}
	svc := &PaymentService{Payments: payments, Projects: &stubProjectStore{}, Stripe: checkout}

	result, err := svc.VerifyPayment(context.Background(), "proj-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Paid || result.Status != models.PaymentStatusPaid {
		t.Errorf("unexpected result: %+v", result)
	}
	if checkout.retrieved != 0 {
		t.Errorf("expected no provider call, got %d", checkout.retrieved)
	}
	if payments.markPaid != 0 {
		t.Errorf("expected no MarkPaid call, got %d", payments.markPaid)
	}
}

func TestVerifyPayment_UnpaidSessionReportsStatus(t *testing.T) {
	payments := &stubPaymentStore{payment: models.ProjectPayment{
		ProjectID:       "proj-1",
		PaymentStatus:   models.PaymentStatusUnpaid,
		StripeSessionID: "cs_1",
	}}
	checkout := &stubCheckout{session: &CheckoutSession{
		ID:            "cs_1",
		PaymentStatus: models.PaymentStatusUnpaid,
		Status:        "open",
	}}
	svc := &PaymentService{Payments: payments, Projects: &stubProjectStore{}, Stripe: checkout}

	result, err := svc.VerifyPayment(context.Background(), "proj-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Paid {
		t.Errorf("expected unpaid result")
	}
	if result.Status != models.PaymentStatusUnpaid {
		t.Errorf("status mismatch: %q", result.Status)
	}
	if payments.markPaid != 0 {
		t.Errorf("expected no MarkPaid call, got %d", payments.markPaid)
	}
}

func TestHandleCheckoutEvent_IgnoresOtherEventTypes(t *testing.T) {
	payments := &stubPaymentStore{getErr: models.ErrPaymentNotFound}
	svc := &PaymentService{Payments: payments, Projects: &stubProjectStore{}, Stripe: &stubCheckout{}}

	event := &WebhookEvent{Type: "invoice.created"}
	if err := svc.HandleCheckoutEvent(context.Background(), event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
