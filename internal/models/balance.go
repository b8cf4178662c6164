package models

import "time"

// FreelancerBalance tracks funds released from escrow. available_balance and
// pending_balance never go below zero; total_earned only grows.
type FreelancerBalance struct {
	ID               string     `json:"id"`
	FreelancerID     string     `json:"freelancer_id"`
	AvailableBalance float64    `json:"available_balance"`
	PendingBalance   float64    `json:"pending_balance"`
	TotalEarned      float64    `json:"total_earned"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}
