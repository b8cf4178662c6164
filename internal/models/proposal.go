package models

import "time"

const (
	ProposalStatusPending  = "pending"
	ProposalStatusAccepted = "accepted"
	ProposalStatusRejected = "rejected"
)

type Proposal struct {
	ID             string    `json:"id"`
	ProjectID      string    `json:"project_id"`
	FreelancerID   string    `json:"freelancer_id"`
	CoverLetter    string    `json:"cover_letter"`
	ProposedBudget float64   `json:"proposed_budget"`
	DeliveryTime   int       `json:"delivery_time"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`

	// Joined freelancer fields for listings.
	FreelancerName   string `json:"freelancer_name,omitempty"`
	FreelancerAvatar string `json:"freelancer_avatar,omitempty"`
}
