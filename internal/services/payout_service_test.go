package services

import (
	"context"
	"encoding/json"
	"testing"

	"freelanceBack/internal/models"
)

type stubBalanceStore struct {
	balance models.FreelancerBalance
	err     error
}

func (s *stubBalanceStore) GetByFreelancerID(ctx context.Context, freelancerID string) (models.FreelancerBalance, error) {
	if s.err != nil {
		return models.FreelancerBalance{}, s.err
	}
	return s.balance, nil
}

type stubPayoutStore struct {
	available float64
	created   []models.PayoutRequest
}

func (s *stubPayoutStore) CreatePayout(ctx context.Context, p models.PayoutRequest) (models.PayoutRequest, error) {
	// mirrors the conditional decrement in storage
	if s.available < p.Amount {
		return models.PayoutRequest{}, models.ErrInsufficientBalance
	}
	s.available -= p.Amount
	p.Status = models.PayoutStatusPending
	s.created = append(s.created, p)
	return p, nil
}

func (s *stubPayoutStore) CompletePayout(ctx context.Context, payoutID, adminNotes string) error {
	return nil
}

func (s *stubPayoutStore) RejectPayout(ctx context.Context, payoutID, adminNotes string) error {
	return nil
}

func (s *stubPayoutStore) GetByFreelancerID(ctx context.Context, freelancerID string) ([]models.PayoutRequest, error) {
	return s.created, nil
}

func (s *stubPayoutStore) GetByID(ctx context.Context, id string) (models.PayoutRequest, error) {
	if len(s.created) == 0 {
		return models.PayoutRequest{}, models.ErrPayoutNotFound
	}
	return s.created[0], nil
}

var paypalDetails = json.RawMessage(`{"email":"dev@example.com"}`)

func TestRequestPayout(t *testing.T) {
	payouts := &stubPayoutStore{available: 500}
	svc := &PayoutService{Balances: &stubBalanceStore{}, Payouts: payouts}

	payout, err := svc.RequestPayout(context.Background(), "free-1", 200, models.PayoutMethodPayPal, paypalDetails)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payout.Status != models.PayoutStatusPending {
		t.Errorf("status mismatch: %q", payout.Status)
	}
	if payouts.available != 300 {
		t.Errorf("available balance after reserve: %v", payouts.available)
	}
}

func TestRequestPayout_InsufficientBalance(t *testing.T) {
	payouts := &stubPayoutStore{available: 100}
	svc := &PayoutService{Balances: &stubBalanceStore{}, Payouts: payouts}

	_, err := svc.RequestPayout(context.Background(), "free-1", 200, models.PayoutMethodBankTransfer, paypalDetails)
	if err != models.ErrInsufficientBalance {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if payouts.available != 100 {
		t.Errorf("balance must not move on failed reserve: %v", payouts.available)
	}
	if len(payouts.created) != 0 {
		t.Errorf("expected no payout row, got %d", len(payouts.created))
	}
}

func TestRequestPayout_Validation(t *testing.T) {
	svc := &PayoutService{Balances: &stubBalanceStore{}, Payouts: &stubPayoutStore{available: 500}}

	if _, err := svc.RequestPayout(context.Background(), "free-1", 0, models.PayoutMethodPayPal, paypalDetails); err != models.ErrInvalidAmount {
		t.Errorf("zero amount: expected ErrInvalidAmount, got %v", err)
	}
	if _, err := svc.RequestPayout(context.Background(), "free-1", 50, "venmo", paypalDetails); err != models.ErrInvalidPayoutMethod {
		t.Errorf("unknown method: expected ErrInvalidPayoutMethod, got %v", err)
	}
	if _, err := svc.RequestPayout(context.Background(), "free-1", 50, models.PayoutMethodPayPal, nil); err != models.ErrMissingPayoutDetails {
		t.Errorf("missing details: expected ErrMissingPayoutDetails, got %v", err)
	}
}

func TestGetBalance_NoReleasesYet(t *testing.T) {
	svc := &PayoutService{
		Balances: &stubBalanceStore{err: models.ErrBalanceNotFound},
		Payouts:  &stubPayoutStore{},
	}

	balance, err := svc.GetBalance(context.Background(), "free-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if balance.FreelancerID != "free-1" {
		t.Errorf("freelancer id mismatch: %q", balance.FreelancerID)
	}
	if balance.AvailableBalance != 0 || balance.PendingBalance != 0 {
		t.Errorf("expected zero balance, got %+v", balance)
	}
}
