package models

import (
	"encoding/json"
	"time"
)

const (
	PayoutMethodPayPal       = "paypal"
	PayoutMethodBankTransfer = "bank_transfer"
)

const (
	PayoutStatusPending   = "pending"
	PayoutStatusApproved  = "approved"
	PayoutStatusCompleted = "completed"
	PayoutStatusRejected  = "rejected"
)

type PayoutRequest struct {
	ID             string          `json:"id"`
	FreelancerID   string          `json:"freelancer_id"`
	Amount         float64         `json:"amount"`
	PaymentMethod  string          `json:"payment_method"`
	PaymentDetails json.RawMessage `json:"payment_details"`
	Status         string          `json:"status"`
	AdminNotes     string          `json:"admin_notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      *time.Time      `json:"updated_at,omitempty"`
}
