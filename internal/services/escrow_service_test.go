package services

import (
	"context"
	"testing"

	"freelanceBack/internal/models"
)

type stubMilestoneStore struct {
	milestone models.Milestone
	err       error
}

func (s *stubMilestoneStore) GetMilestoneByID(ctx context.Context, id string) (models.Milestone, error) {
	if s.err != nil {
		return models.Milestone{}, s.err
	}
	return s.milestone, nil
}

type stubEscrowStore struct {
	released []models.EscrowTransaction
	err      error
}

func (s *stubEscrowStore) Release(ctx context.Context, milestoneID string, et models.EscrowTransaction) (models.EscrowTransaction, error) {
	if s.err != nil {
		return models.EscrowTransaction{}, s.err
	}
	s.released = append(s.released, et)
	return et, nil
}

func (s *stubEscrowStore) GetByFreelancerID(ctx context.Context, freelancerID string) ([]models.EscrowTransaction, error) {
	return s.released, nil
}

func (s *stubEscrowStore) GetByProjectID(ctx context.Context, projectID string) ([]models.EscrowTransaction, error) {
	return s.released, nil
}

func newEscrowService(milestone models.Milestone, project models.Project, escrow *stubEscrowStore) *EscrowService {
	return &EscrowService{
		Milestones: &stubMilestoneStore{milestone: milestone},
		Projects:   &stubProjectStore{project: project},
		Escrow:     escrow,
	}
}

func TestReleaseEscrow(t *testing.T) {
	escrow := &stubEscrowStore{}
	svc := newEscrowService(
		models.Milestone{ID: "ms-1", ProjectID: "proj-1", FreelancerID: "free-1", Amount: 300, Status: models.MilestoneStatusSubmitted},
		models.Project{ID: "proj-1", ClientID: "client-1"},
		escrow,
	)

	tx, err := svc.ReleaseEscrow(context.Background(), "client-1", "ms-1", "free-1", 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tx.FreelancerID != "free-1" || tx.Amount != 300 {
		t.Errorf("unexpected transaction: %+v", tx)
	}
	if len(escrow.released) != 1 {
		t.Fatalf("expected one release, got %d", len(escrow.released))
	}
	if escrow.released[0].ProjectID != "proj-1" || escrow.released[0].ClientID != "client-1" {
		t.Errorf("unexpected stored transaction: %+v", escrow.released[0])
	}
}

func TestReleaseEscrow_SecondAttemptFails(t *testing.T) {
	// After the first release the status predicate in the store no longer
	// matches, so a repeat returns ErrMilestoneState and no new credit.
	escrow := &stubEscrowStore{err: models.ErrMilestoneState}
	svc := newEscrowService(
		models.Milestone{ID: "ms-1", ProjectID: "proj-1", FreelancerID: "free-1", Amount: 300, Status: models.MilestoneStatusApproved},
		models.Project{ID: "proj-1", ClientID: "client-1"},
		escrow,
	)

	_, err := svc.ReleaseEscrow(context.Background(), "client-1", "ms-1", "free-1", 300)
	if err != models.ErrMilestoneState {
		t.Fatalf("expected ErrMilestoneState, got %v", err)
	}
	if len(escrow.released) != 0 {
		t.Errorf("expected no credit on repeat release, got %d", len(escrow.released))
	}
}

func TestReleaseEscrow_RejectsNonClient(t *testing.T) {
	svc := newEscrowService(
		models.Milestone{ID: "ms-1", ProjectID: "proj-1", FreelancerID: "free-1", Amount: 300},
		models.Project{ID: "proj-1", ClientID: "client-1"},
		&stubEscrowStore{},
	)

	_, err := svc.ReleaseEscrow(context.Background(), "intruder", "ms-1", "free-1", 300)
	if err != models.ErrNotProjectClient {
		t.Fatalf("expected ErrNotProjectClient, got %v", err)
	}
}

func TestReleaseEscrow_RejectsMismatchedAmountOrFreelancer(t *testing.T) {
	svc := newEscrowService(
		models.Milestone{ID: "ms-1", ProjectID: "proj-1", FreelancerID: "free-1", Amount: 300},
		models.Project{ID: "proj-1", ClientID: "client-1"},
		&stubEscrowStore{},
	)

	if _, err := svc.ReleaseEscrow(context.Background(), "client-1", "ms-1", "free-1", 999); err != models.ErrInvalidAmount {
		t.Errorf("wrong amount: expected ErrInvalidAmount, got %v", err)
	}
	if _, err := svc.ReleaseEscrow(context.Background(), "client-1", "ms-1", "free-2", 300); err != models.ErrInvalidAmount {
		t.Errorf("wrong freelancer: expected ErrInvalidAmount, got %v", err)
	}
	if _, err := svc.ReleaseEscrow(context.Background(), "client-1", "ms-1", "free-1", -5); err != models.ErrInvalidAmount {
		t.Errorf("negative amount: expected ErrInvalidAmount, got %v", err)
	}
}
