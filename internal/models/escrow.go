package models

import "time"

const (
	EscrowStatusReleased = "released"
)

// EscrowTransaction is an append-only record of a single release event.
// Rows are never mutated after insertion.
type EscrowTransaction struct {
	ID           string    `json:"id"`
	ProjectID    string    `json:"project_id"`
	MilestoneID  string    `json:"milestone_id"`
	ClientID     string    `json:"client_id"`
	FreelancerID string    `json:"freelancer_id"`
	Amount       float64   `json:"amount"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}
