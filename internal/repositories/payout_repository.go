package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"freelanceBack/internal/models"
)

type PayoutRepository struct {
	DB *sql.DB
}

// CreatePayout reserves the amount and records the request in one
// transaction. The conditional decrement carries the no-over-payout
// guarantee: of two concurrent requests whose sum exceeds the available
// balance, only one matches the available_balance >= ? predicate, the other
// gets ErrInsufficientBalance.
func (r *PayoutRepository) CreatePayout(ctx context.Context, p models.PayoutRequest) (models.PayoutRequest, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.PayoutRequest{}, err
	}
	defer tx.Rollback()

	now := time.Now()
	res, err := tx.ExecContext(ctx, `
        UPDATE freelancer_balances
        SET available_balance = available_balance - ?,
            pending_balance = pending_balance + ?,
            updated_at = ?
        WHERE freelancer_id = ? AND available_balance >= ?`,
		p.Amount, p.Amount, now, p.FreelancerID, p.Amount)
	if err != nil {
		return models.PayoutRequest{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.PayoutRequest{}, err
	}
	if affected == 0 {
		return models.PayoutRequest{}, models.ErrInsufficientBalance
	}

	p.ID = uuid.New().String()
	p.Status = models.PayoutStatusPending
	p.CreatedAt = now
	p.UpdatedAt = &p.CreatedAt
	if _, err = tx.ExecContext(ctx, `
        INSERT INTO payout_requests (id, freelancer_id, amount, payment_method, payment_details, status, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.FreelancerID, p.Amount, p.PaymentMethod, []byte(p.PaymentDetails),
		p.Status, p.CreatedAt, p.UpdatedAt); err != nil {
		return models.PayoutRequest{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.PayoutRequest{}, err
	}
	return p, nil
}

// CompletePayout settles a pending request: the reserved amount leaves
// pending_balance for good.
func (r *PayoutRepository) CompletePayout(ctx context.Context, payoutID, adminNotes string) error {
	return r.settle(ctx, payoutID, models.PayoutStatusCompleted, adminNotes, false)
}

// RejectPayout returns the reserved amount to the available balance.
func (r *PayoutRepository) RejectPayout(ctx context.Context, payoutID, adminNotes string) error {
	return r.settle(ctx, payoutID, models.PayoutStatusRejected, adminNotes, true)
}

func (r *PayoutRepository) settle(ctx context.Context, payoutID, status, adminNotes string, refund bool) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var (
		freelancerID string
		amount       float64
	)
	err = tx.QueryRowContext(ctx,
		`SELECT freelancer_id, amount FROM payout_requests WHERE id = ? FOR UPDATE`,
		payoutID).Scan(&freelancerID, &amount)
	if err == sql.ErrNoRows {
		return models.ErrPayoutNotFound
	}
	if err != nil {
		return err
	}

	now := time.Now()
	res, err := tx.ExecContext(ctx, `
        UPDATE payout_requests
        SET status = ?, admin_notes = ?, updated_at = ?
        WHERE id = ? AND status = ?`,
		status, adminNotes, now, payoutID, models.PayoutStatusPending)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrPayoutState
	}

	balanceQuery := `
        UPDATE freelancer_balances
        SET pending_balance = pending_balance - ?, updated_at = ?
        WHERE freelancer_id = ? AND pending_balance >= ?`
	if refund {
		balanceQuery = `
        UPDATE freelancer_balances
        SET pending_balance = pending_balance - ?,
            available_balance = available_balance + ?,
            updated_at = ?
        WHERE freelancer_id = ? AND pending_balance >= ?`
	}
	var args []interface{}
	if refund {
		args = []interface{}{amount, amount, now, freelancerID, amount}
	} else {
		args = []interface{}{amount, now, freelancerID, amount}
	}
	res, err = tx.ExecContext(ctx, balanceQuery, args...)
	if err != nil {
		return err
	}
	affected, err = res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrBalanceNotFound
	}
	return tx.Commit()
}

func (r *PayoutRepository) GetByFreelancerID(ctx context.Context, freelancerID string) ([]models.PayoutRequest, error) {
	query := `
        SELECT id, freelancer_id, amount, payment_method, payment_details, status, admin_notes, created_at, updated_at
        FROM payout_requests
        WHERE freelancer_id = ?
        ORDER BY created_at DESC
    `
	rows, err := r.DB.QueryContext(ctx, query, freelancerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payouts []models.PayoutRequest
	for rows.Next() {
		var (
			p       models.PayoutRequest
			details []byte
			notes   sql.NullString
		)
		if err := rows.Scan(
			&p.ID, &p.FreelancerID, &p.Amount, &p.PaymentMethod, &details,
			&p.Status, &notes, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		p.PaymentDetails = details
		if notes.Valid {
			p.AdminNotes = notes.String
		}
		payouts = append(payouts, p)
	}
	return payouts, rows.Err()
}

func (r *PayoutRepository) GetByID(ctx context.Context, id string) (models.PayoutRequest, error) {
	var (
		p       models.PayoutRequest
		details []byte
		notes   sql.NullString
	)
	query := `
        SELECT id, freelancer_id, amount, payment_method, payment_details, status, admin_notes, created_at, updated_at
        FROM payout_requests
        WHERE id = ?
    `
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.FreelancerID, &p.Amount, &p.PaymentMethod, &details,
		&p.Status, &notes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return models.PayoutRequest{}, models.ErrPayoutNotFound
	}
	if err != nil {
		return models.PayoutRequest{}, err
	}
	p.PaymentDetails = details
	if notes.Valid {
		p.AdminNotes = notes.String
	}
	return p, nil
}
