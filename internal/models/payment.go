package models

import "time"

// ProjectPayment is the escrow funding record, one per project. The Stripe
// checkout session id is stored so verification can reconcile against the
// provider later.
type ProjectPayment struct {
	ID              string     `json:"id"`
	ProjectID       string     `json:"project_id"`
	ClientID        string     `json:"client_id"`
	Amount          float64    `json:"amount"`
	PaymentStatus   string     `json:"payment_status"`
	StripeSessionID string     `json:"stripe_session_id,omitempty"`
	PaidAt          *time.Time `json:"paid_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}
