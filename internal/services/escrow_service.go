package services

import (
	"context"

	"freelanceBack/internal/models"
)

type MilestoneStore interface {
	GetMilestoneByID(ctx context.Context, id string) (models.Milestone, error)
}

type EscrowStore interface {
	Release(ctx context.Context, milestoneID string, et models.EscrowTransaction) (models.EscrowTransaction, error)
	GetByFreelancerID(ctx context.Context, freelancerID string) ([]models.EscrowTransaction, error)
	GetByProjectID(ctx context.Context, projectID string) ([]models.EscrowTransaction, error)
}

// EscrowService releases an approved milestone's amount from the client's
// escrow into the freelancer's balance.
type EscrowService struct {
	Milestones MilestoneStore
	Projects   ProjectStore
	Escrow     EscrowStore
}

// ReleaseEscrow validates the caller owns the project, then applies the
// milestone approval, the escrow transaction append and the balance credit
// as one unit. The amount and freelancer arrive from the caller and must
// match the milestone row, so a stale client cannot release a different sum
// than the one under approval.
func (s *EscrowService) ReleaseEscrow(ctx context.Context, callerID, milestoneID, freelancerID string, amount float64) (models.EscrowTransaction, error) {
	if amount <= 0 {
		return models.EscrowTransaction{}, models.ErrInvalidAmount
	}

	milestone, err := s.Milestones.GetMilestoneByID(ctx, milestoneID)
	if err != nil {
		return models.EscrowTransaction{}, err
	}
	if milestone.Amount != amount || milestone.FreelancerID != freelancerID {
		return models.EscrowTransaction{}, models.ErrInvalidAmount
	}

	project, err := s.Projects.GetProjectByID(ctx, milestone.ProjectID)
	if err != nil {
		return models.EscrowTransaction{}, err
	}
	if project.ClientID != callerID {
		return models.EscrowTransaction{}, models.ErrNotProjectClient
	}

	et := models.EscrowTransaction{
		ProjectID:    milestone.ProjectID,
		ClientID:     callerID,
		FreelancerID: freelancerID,
		Amount:       amount,
	}
	return s.Escrow.Release(ctx, milestoneID, et)
}

func (s *EscrowService) GetHistoryByFreelancer(ctx context.Context, freelancerID string) ([]models.EscrowTransaction, error) {
	return s.Escrow.GetByFreelancerID(ctx, freelancerID)
}

func (s *EscrowService) GetHistoryByProject(ctx context.Context, projectID string) ([]models.EscrowTransaction, error) {
	return s.Escrow.GetByProjectID(ctx, projectID)
}
