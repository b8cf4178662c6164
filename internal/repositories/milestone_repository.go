package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"freelanceBack/internal/models"
)

type MilestoneRepository struct {
	DB *sql.DB
}

func (r *MilestoneRepository) CreateMilestone(ctx context.Context, m models.Milestone) (models.Milestone, error) {
	query := `
        INSERT INTO project_milestones (id, project_id, freelancer_id, title, description, amount, status, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	m.ID = uuid.New().String()
	m.Status = models.MilestoneStatusPending
	m.CreatedAt = time.Now()
	m.UpdatedAt = &m.CreatedAt
	_, err := r.DB.ExecContext(ctx, query,
		m.ID, m.ProjectID, m.FreelancerID, m.Title, m.Description, m.Amount,
		m.Status, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return models.Milestone{}, err
	}
	return m, nil
}

func (r *MilestoneRepository) GetMilestoneByID(ctx context.Context, id string) (models.Milestone, error) {
	var m models.Milestone
	query := `
        SELECT id, project_id, freelancer_id, title, description, amount, status, attachment_url, client_feedback, submitted_at, approved_at, created_at, updated_at
        FROM project_milestones
        WHERE id = ?
    `
	var attachment, feedback sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.ProjectID, &m.FreelancerID, &m.Title, &m.Description, &m.Amount,
		&m.Status, &attachment, &feedback, &m.SubmittedAt, &m.ApprovedAt,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return models.Milestone{}, models.ErrMilestoneNotFound
	}
	if err != nil {
		return models.Milestone{}, err
	}
	if attachment.Valid {
		m.AttachmentURL = attachment.String
	}
	if feedback.Valid {
		m.ClientFeedback = feedback.String
	}
	return m, nil
}

func (r *MilestoneRepository) GetMilestonesByProjectID(ctx context.Context, projectID string) ([]models.Milestone, error) {
	query := `
        SELECT id, project_id, freelancer_id, title, description, amount, status, attachment_url, client_feedback, submitted_at, approved_at, created_at, updated_at
        FROM project_milestones
        WHERE project_id = ?
        ORDER BY created_at ASC
    `
	rows, err := r.DB.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var milestones []models.Milestone
	for rows.Next() {
		var m models.Milestone
		var attachment, feedback sql.NullString
		if err := rows.Scan(
			&m.ID, &m.ProjectID, &m.FreelancerID, &m.Title, &m.Description, &m.Amount,
			&m.Status, &attachment, &feedback, &m.SubmittedAt, &m.ApprovedAt,
			&m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if attachment.Valid {
			m.AttachmentURL = attachment.String
		}
		if feedback.Valid {
			m.ClientFeedback = feedback.String
		}
		milestones = append(milestones, m)
	}
	return milestones, rows.Err()
}

// SubmitMilestone moves a milestone from pending to submitted. The status
// predicate makes resubmission of an already-submitted milestone a no-op
// reported as ErrMilestoneState.
func (r *MilestoneRepository) SubmitMilestone(ctx context.Context, id, freelancerID, attachmentURL string) error {
	now := time.Now()
	res, err := r.DB.ExecContext(ctx, `
        UPDATE project_milestones
        SET status = ?, attachment_url = ?, submitted_at = ?, updated_at = ?
        WHERE id = ? AND freelancer_id = ? AND status = ?`,
		models.MilestoneStatusSubmitted, attachmentURL, now, now,
		id, freelancerID, models.MilestoneStatusPending)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrMilestoneState
	}
	return nil
}

// RejectMilestone records client feedback and moves submitted work back out
// of the approval path. No balance or escrow rows are touched.
func (r *MilestoneRepository) RejectMilestone(ctx context.Context, id, feedback string) error {
	now := time.Now()
	res, err := r.DB.ExecContext(ctx, `
        UPDATE project_milestones
        SET status = ?, client_feedback = ?, updated_at = ?
        WHERE id = ? AND status = ?`,
		models.MilestoneStatusRejected, feedback, now, id, models.MilestoneStatusSubmitted)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrMilestoneState
	}
	return nil
}
