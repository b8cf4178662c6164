package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"freelanceBack/internal/models"
)

type EscrowRepository struct {
	DB *sql.DB
}

// Release applies the three writes of an escrow release as one transaction:
// milestone approval, escrow transaction append, balance credit. The
// submitted-status predicate on the milestone makes the whole release
// one-shot: a repeat call changes zero rows and rolls back with
// ErrMilestoneState, leaving no extra transaction or credit behind.
func (r *EscrowRepository) Release(ctx context.Context, milestoneID string, et models.EscrowTransaction) (models.EscrowTransaction, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.EscrowTransaction{}, err
	}
	defer tx.Rollback()

	now := time.Now()
	res, err := tx.ExecContext(ctx, `
        UPDATE project_milestones
        SET status = ?, approved_at = ?, updated_at = ?
        WHERE id = ? AND status = ?`,
		models.MilestoneStatusApproved, now, now, milestoneID, models.MilestoneStatusSubmitted)
	if err != nil {
		return models.EscrowTransaction{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.EscrowTransaction{}, err
	}
	if affected == 0 {
		return models.EscrowTransaction{}, models.ErrMilestoneState
	}

	et.ID = uuid.New().String()
	et.MilestoneID = milestoneID
	et.Status = models.EscrowStatusReleased
	et.CreatedAt = now
	if _, err = tx.ExecContext(ctx, `
        INSERT INTO escrow_transactions (id, project_id, milestone_id, client_id, freelancer_id, amount, status, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		et.ID, et.ProjectID, et.MilestoneID, et.ClientID, et.FreelancerID, et.Amount,
		et.Status, et.CreatedAt); err != nil {
		return models.EscrowTransaction{}, err
	}

	if _, err = tx.ExecContext(ctx, `
        INSERT INTO freelancer_balances (id, freelancer_id, available_balance, pending_balance, total_earned, created_at, updated_at)
        VALUES (?, ?, ?, 0, ?, ?, ?)
        ON DUPLICATE KEY UPDATE
            available_balance = available_balance + VALUES(available_balance),
            total_earned = total_earned + VALUES(total_earned),
            updated_at = VALUES(updated_at)`,
		uuid.New().String(), et.FreelancerID, et.Amount, et.Amount, now, now); err != nil {
		return models.EscrowTransaction{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.EscrowTransaction{}, err
	}
	return et, nil
}

func (r *EscrowRepository) GetByFreelancerID(ctx context.Context, freelancerID string) ([]models.EscrowTransaction, error) {
	query := `
        SELECT id, project_id, milestone_id, client_id, freelancer_id, amount, status, created_at
        FROM escrow_transactions
        WHERE freelancer_id = ?
        ORDER BY created_at DESC
    `
	return r.list(ctx, query, freelancerID)
}

func (r *EscrowRepository) GetByProjectID(ctx context.Context, projectID string) ([]models.EscrowTransaction, error) {
	query := `
        SELECT id, project_id, milestone_id, client_id, freelancer_id, amount, status, created_at
        FROM escrow_transactions
        WHERE project_id = ?
        ORDER BY created_at DESC
    `
	return r.list(ctx, query, projectID)
}

func (r *EscrowRepository) list(ctx context.Context, query string, arg interface{}) ([]models.EscrowTransaction, error) {
	rows, err := r.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.EscrowTransaction
	for rows.Next() {
		var et models.EscrowTransaction
		if err := rows.Scan(
			&et.ID, &et.ProjectID, &et.MilestoneID, &et.ClientID, &et.FreelancerID,
			&et.Amount, &et.Status, &et.CreatedAt,
		); err != nil {
			return nil, err
		}
		transactions = append(transactions, et)
	}
	return transactions, rows.Err()
}
