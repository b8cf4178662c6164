package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"freelanceBack/internal/models"
)

type ProjectRepository struct {
	DB *sql.DB
}

func (r *ProjectRepository) CreateProject(ctx context.Context, project models.Project) (models.Project, error) {
	query := `
        INSERT INTO projects (id, client_id, title, description, category, budget_min, budget_max, deadline, skills_required, project_type, status, payment_required, payment_status, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	project.ID = uuid.New().String()
	project.Status = models.ProjectStatusOpen
	project.PaymentStatus = models.PaymentStatusUnpaid
	project.CreatedAt = time.Now()
	project.UpdatedAt = &project.CreatedAt
	_, err := r.DB.ExecContext(ctx, query,
		project.ID, project.ClientID, project.Title, project.Description, project.Category,
		project.BudgetMin, project.BudgetMax, project.Deadline, joinSkills(project.SkillsRequired),
		project.ProjectType, project.Status, project.PaymentRequired, project.PaymentStatus,
		project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		return models.Project{}, err
	}
	return project, nil
}

func (r *ProjectRepository) GetProjectByID(ctx context.Context, id string) (models.Project, error) {
	var (
		project models.Project
		skills  string
	)
	query := `
        SELECT id, client_id, title, description, category, budget_min, budget_max, deadline, skills_required, project_type, status, payment_required, payment_status, created_at, updated_at
        FROM projects
        WHERE id = ?
    `
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&project.ID, &project.ClientID, &project.Title, &project.Description, &project.Category,
		&project.BudgetMin, &project.BudgetMax, &project.Deadline, &skills,
		&project.ProjectType, &project.Status, &project.PaymentRequired, &project.PaymentStatus,
		&project.CreatedAt, &project.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return models.Project{}, models.ErrProjectNotFound
	}
	if err != nil {
		return models.Project{}, err
	}
	project.SkillsRequired = splitSkills(skills)
	return project, nil
}

func (r *ProjectRepository) GetProjects(ctx context.Context, filter models.ProjectFilter) ([]models.Project, error) {
	query := `
        SELECT id, client_id, title, description, category, budget_min, budget_max, deadline, skills_required, project_type, status, payment_required, payment_status, created_at, updated_at
        FROM projects
        WHERE 1=1
    `
	args := []interface{}{}
	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, filter.Category)
	}
	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.ClientID != "" {
		query += " AND client_id = ?"
		args = append(args, filter.ClientID)
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var (
			project models.Project
			skills  string
		)
		if err := rows.Scan(
			&project.ID, &project.ClientID, &project.Title, &project.Description, &project.Category,
			&project.BudgetMin, &project.BudgetMax, &project.Deadline, &skills,
			&project.ProjectType, &project.Status, &project.PaymentRequired, &project.PaymentStatus,
			&project.CreatedAt, &project.UpdatedAt,
		); err != nil {
			return nil, err
		}
		project.SkillsRequired = splitSkills(skills)
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

func (r *ProjectRepository) UpdateProject(ctx context.Context, project models.Project) (models.Project, error) {
	query := `
        UPDATE projects
        SET title = ?, description = ?, category = ?, budget_min = ?, budget_max = ?, deadline = ?, skills_required = ?, project_type = ?, updated_at = ?
        WHERE id = ? AND client_id = ?
    `
	now := time.Now()
	res, err := r.DB.ExecContext(ctx, query,
		project.Title, project.Description, project.Category, project.BudgetMin, project.BudgetMax,
		project.Deadline, joinSkills(project.SkillsRequired), project.ProjectType, now,
		project.ID, project.ClientID,
	)
	if err != nil {
		return models.Project{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Project{}, err
	}
	if affected == 0 {
		return models.Project{}, models.ErrProjectNotFound
	}
	return r.GetProjectByID(ctx, project.ID)
}

func (r *ProjectRepository) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE projects SET status = ?, updated_at = ? WHERE id = ?`, status, time.Now(), id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) DeleteProject(ctx context.Context, id, clientID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM projects WHERE id = ? AND client_id = ?`, id, clientID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrProjectNotFound
	}
	return nil
}
