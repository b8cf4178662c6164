package models

import (
	"errors"
)

var (
	ErrNoRecord           = errors.New("models: no matching record found")
	ErrInvalidCredentials = errors.New("models: invalid credentials")
	ErrDuplicateEmail     = errors.New("models: duplicate email")
	ErrUserNotFound       = errors.New("models: user not found")
	ErrInvalidPassword    = errors.New("models: invalid password")

	ErrProjectNotFound   = errors.New("project not found")
	ErrProposalNotFound  = errors.New("proposal not found")
	ErrMilestoneNotFound = errors.New("milestone not found")
	ErrPaymentNotFound   = errors.New("payment record not found")
	ErrBalanceNotFound   = errors.New("freelancer balance not found")
	ErrPayoutNotFound    = errors.New("payout request not found")

	ErrNotProjectClient     = errors.New("caller is not the project client")
	ErrNotProposalOwner     = errors.New("caller is not the proposal owner")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrInsufficientBalance  = errors.New("insufficient available balance")
	ErrPaymentState         = errors.New("project payment is already completed")
	ErrMilestoneState       = errors.New("milestone is not in a state that allows this transition")
	ErrProposalState        = errors.New("proposal is not in a state that allows this transition")
	ErrPayoutState          = errors.New("payout request is not in a state that allows this transition")
	ErrInvalidPayoutMethod  = errors.New("unsupported payout method")
	ErrMissingPayoutDetails = errors.New("payout details are required")
)
