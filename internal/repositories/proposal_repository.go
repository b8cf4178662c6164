package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"freelanceBack/internal/models"
)

type ProposalRepository struct {
	DB *sql.DB
}

func (r *ProposalRepository) CreateProposal(ctx context.Context, p models.Proposal) (models.Proposal, error) {
	query := `
        INSERT INTO proposals (id, project_id, freelancer_id, cover_letter, proposed_budget, delivery_time, status, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `
	p.ID = uuid.New().String()
	p.Status = models.ProposalStatusPending
	p.CreatedAt = time.Now()
	_, err := r.DB.ExecContext(ctx, query,
		p.ID, p.ProjectID, p.FreelancerID, p.CoverLetter, p.ProposedBudget, p.DeliveryTime,
		p.Status, p.CreatedAt,
	)
	if err != nil {
		return models.Proposal{}, err
	}
	return p, nil
}

func (r *ProposalRepository) GetProposalByID(ctx context.Context, id string) (models.Proposal, error) {
	var p models.Proposal
	query := `
        SELECT id, project_id, freelancer_id, cover_letter, proposed_budget, delivery_time, status, created_at
        FROM proposals
        WHERE id = ?
    `
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.ProjectID, &p.FreelancerID, &p.CoverLetter, &p.ProposedBudget,
		&p.DeliveryTime, &p.Status, &p.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return models.Proposal{}, models.ErrProposalNotFound
	}
	if err != nil {
		return models.Proposal{}, err
	}
	return p, nil
}

func (r *ProposalRepository) GetProposalsByProjectID(ctx context.Context, projectID string) ([]models.Proposal, error) {
	query := `
        SELECT p.id, p.project_id, p.freelancer_id, p.cover_letter, p.proposed_budget, p.delivery_time, p.status, p.created_at,
               CONCAT(u.first_name, ' ', u.last_name), u.avatar_url
        FROM proposals p
        JOIN users u ON u.id = p.freelancer_id
        WHERE p.project_id = ?
        ORDER BY p.created_at DESC
    `
	rows, err := r.DB.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var proposals []models.Proposal
	for rows.Next() {
		var p models.Proposal
		if err := rows.Scan(
			&p.ID, &p.ProjectID, &p.FreelancerID, &p.CoverLetter, &p.ProposedBudget,
			&p.DeliveryTime, &p.Status, &p.CreatedAt, &p.FreelancerName, &p.FreelancerAvatar,
		); err != nil {
			return nil, err
		}
		proposals = append(proposals, p)
	}
	return proposals, rows.Err()
}

func (r *ProposalRepository) GetProposalsByFreelancerID(ctx context.Context, freelancerID string) ([]models.Proposal, error) {
	query := `
        SELECT id, project_id, freelancer_id, cover_letter, proposed_budget, delivery_time, status, created_at
        FROM proposals
        WHERE freelancer_id = ?
        ORDER BY created_at DESC
    `
	rows, err := r.DB.QueryContext(ctx, query, freelancerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var proposals []models.Proposal
	for rows.Next() {
		var p models.Proposal
		if err := rows.Scan(
			&p.ID, &p.ProjectID, &p.FreelancerID, &p.CoverLetter, &p.ProposedBudget,
			&p.DeliveryTime, &p.Status, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		proposals = append(proposals, p)
	}
	return proposals, rows.Err()
}

// AcceptProposal marks one proposal accepted, rejects the remaining pending
// proposals of the project and moves the project to in_progress, all in one
// transaction. The status guard keeps a second accept from re-applying.
func (r *ProposalRepository) AcceptProposal(ctx context.Context, proposalID, projectID string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE proposals SET status = ? WHERE id = ? AND status = ?`,
		models.ProposalStatusAccepted, proposalID, models.ProposalStatusPending)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrProposalState
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE proposals SET status = ? WHERE project_id = ? AND id <> ? AND status = ?`,
		models.ProposalStatusRejected, projectID, proposalID, models.ProposalStatusPending); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE projects SET status = ?, updated_at = ? WHERE id = ?`,
		models.ProjectStatusInProgress, time.Now(), projectID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *ProposalRepository) RejectProposal(ctx context.Context, proposalID string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE proposals SET status = ? WHERE id = ? AND status = ?`,
		models.ProposalStatusRejected, proposalID, models.ProposalStatusPending)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrProposalState
	}
	return nil
}
