package models

import "time"

const (
	ProjectStatusOpen       = "open"
	ProjectStatusInProgress = "in_progress"
	ProjectStatusCompleted  = "completed"
	ProjectStatusCancelled  = "cancelled"
)

const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

type Project struct {
	ID              string     `json:"id"`
	ClientID        string     `json:"client_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Category        string     `json:"category"`
	BudgetMin       *float64   `json:"budget_min,omitempty"`
	BudgetMax       *float64   `json:"budget_max,omitempty"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	SkillsRequired  []string   `json:"skills_required,omitempty"`
	ProjectType     string     `json:"project_type,omitempty"`
	Status          string     `json:"status"`
	PaymentRequired bool       `json:"payment_required"`
	PaymentStatus   string     `json:"payment_status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

type ProjectFilter struct {
	Category string
	Status   string
	ClientID string
	Limit    int
	Offset   int
}
