package models

import "time"

const (
	MilestoneStatusPending   = "pending"
	MilestoneStatusSubmitted = "submitted"
	MilestoneStatusApproved  = "approved"
	MilestoneStatusRejected  = "rejected"
)

type Milestone struct {
	ID             string     `json:"id"`
	ProjectID      string     `json:"project_id"`
	FreelancerID   string     `json:"freelancer_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Amount         float64    `json:"amount"`
	Status         string     `json:"status"`
	AttachmentURL  string     `json:"attachment_url,omitempty"`
	ClientFeedback string     `json:"client_feedback,omitempty"`
	SubmittedAt    *time.Time `json:"submitted_at,omitempty"`
	ApprovedAt     *time.Time `json:"approved_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}
