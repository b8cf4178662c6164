package repositories

import (
	"context"
	"database/sql"

	"freelanceBack/internal/models"
)

type BalanceRepository struct {
	DB *sql.DB
}

func (r *BalanceRepository) GetByFreelancerID(ctx context.Context, freelancerID string) (models.FreelancerBalance, error) {
	var b models.FreelancerBalance
	query := `
        SELECT id, freelancer_id, available_balance, pending_balance, total_earned, created_at, updated_at
        FROM freelancer_balances
        WHERE freelancer_id = ?
    `
	err := r.DB.QueryRowContext(ctx, query, freelancerID).Scan(
		&b.ID, &b.FreelancerID, &b.AvailableBalance, &b.PendingBalance, &b.TotalEarned,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return models.FreelancerBalance{}, models.ErrBalanceNotFound
	}
	if err != nil {
		return models.FreelancerBalance{}, err
	}
	return b, nil
}
