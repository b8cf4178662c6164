package services

import (
	"context"
	"strings"
	"time"

	"freelanceBack/internal/models"
)

type PaymentStore interface {
	UpsertPending(ctx context.Context, p models.ProjectPayment) (models.ProjectPayment, error)
	GetByProjectID(ctx context.Context, projectID string) (models.ProjectPayment, error)
	MarkPaid(ctx context.Context, projectID string) (bool, error)
}

type ProjectStore interface {
	GetProjectByID(ctx context.Context, id string) (models.Project, error)
}

type CheckoutProvider interface {
	CreateCheckoutSession(ctx context.Context, projectID, clientID string, amount float64) (*CheckoutSession, error)
	RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
}

// PaymentService drives the escrow funding pair: issuing a checkout session
// for a project and verifying its completion against the provider.
type PaymentService struct {
	Payments PaymentStore
	Projects ProjectStore
	Stripe   CheckoutProvider
}

type IssuePaymentResult struct {
	RedirectURL string `json:"redirect_url"`
	SessionID   string `json:"session_id"`
}

// IssuePayment resolves a checkout session for the project's escrow amount
// and records the pending payment row. Re-issuing for the same project and
// amount returns the existing open session instead of minting a new one.
func (s *PaymentService) IssuePayment(ctx context.Context, callerID, projectID string, amount float64) (IssuePaymentResult, error) {
	if strings.TrimSpace(projectID) == "" || amount <= 0 {
		return IssuePaymentResult{}, models.ErrInvalidAmount
	}

	project, err := s.Projects.GetProjectByID(ctx, projectID)
	if err != nil {
		return IssuePaymentResult{}, err
	}
	if project.ClientID != callerID {
		return IssuePaymentResult{}, models.ErrNotProjectClient
	}

	existing, err := s.Payments.GetByProjectID(ctx, projectID)
	if err == nil && existing.PaymentStatus == models.PaymentStatusPaid {
		// A settled project must never mint another completable session.
		return IssuePaymentResult{}, models.ErrPaymentState
	}
	if err == nil && existing.PaymentStatus == models.PaymentStatusUnpaid &&
		existing.Amount == amount && existing.StripeSessionID != "" {
		session, rerr := s.Stripe.RetrieveSession(ctx, existing.StripeSessionID)
		if rerr == nil && session.Status == "open" && !session.Expired(time.Now()) {
			return IssuePaymentResult{RedirectURL: session.URL, SessionID: session.ID}, nil
		}
	} else if err != nil && err != models.ErrPaymentNotFound {
		return IssuePaymentResult{}, err
	}

	session, err := s.Stripe.CreateCheckoutSession(ctx, projectID, callerID, amount)
	if err != nil {
		return IssuePaymentResult{}, err
	}

	payment := models.ProjectPayment{
		ProjectID:       projectID,
		ClientID:        callerID,
		Amount:          amount,
		StripeSessionID: session.ID,
	}
	if _, err := s.Payments.UpsertPending(ctx, payment); err != nil {
		return IssuePaymentResult{}, err
	}
	return IssuePaymentResult{RedirectURL: session.URL, SessionID: session.ID}, nil
}

type VerifyPaymentResult struct {
	Paid   bool   `json:"paid"`
	Status string `json:"payment_status"`
}

// VerifyPayment reconciles the stored payment row against the provider and
// promotes payment and project rows to paid at most once. Calls after the
// transition report paid without touching the provider or the database.
func (s *PaymentService) VerifyPayment(ctx context.Context, projectID string) (VerifyPaymentResult, error) {
	payment, err := s.Payments.GetByProjectID(ctx, projectID)
	if err != nil {
		return VerifyPaymentResult{}, err
	}
	if payment.PaymentStatus == models.PaymentStatusPaid {
		return VerifyPaymentResult{Paid: true, Status: models.PaymentStatusPaid}, nil
	}
	if payment.StripeSessionID == "" {
		return VerifyPaymentResult{}, models.ErrPaymentNotFound
	}

	session, err := s.Stripe.RetrieveSession(ctx, payment.StripeSessionID)
	if err != nil {
		return VerifyPaymentResult{}, err
	}
	if session.PaymentStatus != models.PaymentStatusPaid {
		status := session.PaymentStatus
		if status == "" {
			status = "pending"
		}
		return VerifyPaymentResult{Paid: false, Status: status}, nil
	}

	// A false result means a concurrent verification won the race; the
	// project is paid either way.
	if _, err := s.Payments.MarkPaid(ctx, projectID); err != nil {
		return VerifyPaymentResult{}, err
	}
	return VerifyPaymentResult{Paid: true, Status: models.PaymentStatusPaid}, nil
}

// HandleCheckoutEvent routes a verified checkout.session.completed event into
// the same verification path the client polls, so webhook and poll deliveries
// converge on the identical transition.
func (s *PaymentService) HandleCheckoutEvent(ctx context.Context, event *WebhookEvent) error {
	if event.Type != "checkout.session.completed" {
		return nil
	}
	projectID, err := event.SessionProjectID()
	if err != nil {
		return err
	}
	_, err = s.VerifyPayment(ctx, projectID)
	return err
}
