package services

import (
	"context"
	"encoding/json"

	"freelanceBack/internal/models"
)

type BalanceStore interface {
	GetByFreelancerID(ctx context.Context, freelancerID string) (models.FreelancerBalance, error)
}

type PayoutStore interface {
	CreatePayout(ctx context.Context, p models.PayoutRequest) (models.PayoutRequest, error)
	CompletePayout(ctx context.Context, payoutID, adminNotes string) error
	RejectPayout(ctx context.Context, payoutID, adminNotes string) error
	GetByFreelancerID(ctx context.Context, freelancerID string) ([]models.PayoutRequest, error)
	GetByID(ctx context.Context, id string) (models.PayoutRequest, error)
}

// PayoutService moves released funds out of a freelancer's available balance
// into pending payout requests and settles them.
type PayoutService struct {
	Balances BalanceStore
	Payouts  PayoutStore
}

func validPayoutMethod(method string) bool {
	return method == models.PayoutMethodPayPal || method == models.PayoutMethodBankTransfer
}

// RequestPayout reserves amount from the caller's available balance and
// records a pending request. The reservation is conditional in storage, so
// concurrent requests cannot jointly overdraw the balance.
func (s *PayoutService) RequestPayout(ctx context.Context, freelancerID string, amount float64, method string, details json.RawMessage) (models.PayoutRequest, error) {
	if amount <= 0 {
		return models.PayoutRequest{}, models.ErrInvalidAmount
	}
	if !validPayoutMethod(method) {
		return models.PayoutRequest{}, models.ErrInvalidPayoutMethod
	}
	if len(details) == 0 {
		return models.PayoutRequest{}, models.ErrMissingPayoutDetails
	}

	p := models.PayoutRequest{
		FreelancerID:   freelancerID,
		Amount:         amount,
		PaymentMethod:  method,
		PaymentDetails: details,
	}
	return s.Payouts.CreatePayout(ctx, p)
}

func (s *PayoutService) GetBalance(ctx context.Context, freelancerID string) (models.FreelancerBalance, error) {
	balance, err := s.Balances.GetByFreelancerID(ctx, freelancerID)
	if err == models.ErrBalanceNotFound {
		// No releases yet; an empty balance is a valid answer.
		return models.FreelancerBalance{FreelancerID: freelancerID}, nil
	}
	return balance, err
}

func (s *PayoutService) GetPayoutHistory(ctx context.Context, freelancerID string) ([]models.PayoutRequest, error) {
	return s.Payouts.GetByFreelancerID(ctx, freelancerID)
}

func (s *PayoutService) CompletePayout(ctx context.Context, payoutID, adminNotes string) error {
	return s.Payouts.CompletePayout(ctx, payoutID, adminNotes)
}

func (s *PayoutService) RejectPayout(ctx context.Context, payoutID, adminNotes string) error {
	return s.Payouts.RejectPayout(ctx, payoutID, adminNotes)
}
