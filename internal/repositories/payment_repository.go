package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"freelanceBack/internal/models"
)

type PaymentRepository struct {
	DB *sql.DB
}

// UpsertPending creates or refreshes the single payment row of a project and
// stores the checkout session reference. The unique key on project_id keeps
// it one row per project; the status stays unpaid until verification.
func (r *PaymentRepository) UpsertPending(ctx context.Context, p models.ProjectPayment) (models.ProjectPayment, error) {
	query := `
        INSERT INTO project_payments (id, project_id, client_id, amount, payment_status, stripe_session_id, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        ON DUPLICATE KEY UPDATE
            amount = VALUES(amount),
            stripe_session_id = VALUES(stripe_session_id),
            updated_at = VALUES(updated_at)
    `
	p.ID = uuid.New().String()
	p.PaymentStatus = models.PaymentStatusUnpaid
	p.CreatedAt = time.Now()
	p.UpdatedAt = &p.CreatedAt
	_, err := r.DB.ExecContext(ctx, query,
		p.ID, p.ProjectID, p.ClientID, p.Amount, p.PaymentStatus, p.StripeSessionID,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return models.ProjectPayment{}, err
	}
	return p, nil
}

func (r *PaymentRepository) GetByProjectID(ctx context.Context, projectID string) (models.ProjectPayment, error) {
	var p models.ProjectPayment
	query := `
        SELECT id, project_id, client_id, amount, payment_status, stripe_session_id, paid_at, created_at, updated_at
        FROM project_payments
        WHERE project_id = ?
    `
	err := r.DB.QueryRowContext(ctx, query, projectID).Scan(
		&p.ID, &p.ProjectID, &p.ClientID, &p.Amount, &p.PaymentStatus, &p.StripeSessionID,
		&p.PaidAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return models.ProjectPayment{}, models.ErrPaymentNotFound
	}
	if err != nil {
		return models.ProjectPayment{}, err
	}
	return p, nil
}

// MarkPaid promotes the payment and project rows to paid in one transaction.
// The unpaid predicate on the payment row is the linearization point:
// concurrent verifications race on it and exactly one observes a row change.
// Returns false when the row was already paid.
func (r *PaymentRepository) MarkPaid(ctx context.Context, projectID string) (bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	now := time.Now()
	res, err := tx.ExecContext(ctx, `
        UPDATE project_payments
        SET payment_status = ?, paid_at = ?, updated_at = ?
        WHERE project_id = ? AND payment_status = ?`,
		models.PaymentStatusPaid, now, now, projectID, models.PaymentStatusUnpaid)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		// Already paid by a concurrent verification.
		return false, tx.Commit()
	}

	if _, err = tx.ExecContext(ctx, `
        UPDATE projects
        SET payment_status = ?, updated_at = ?
        WHERE id = ?`,
		models.PaymentStatusPaid, now, projectID); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}
