package repositories

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"freelanceBack/internal/models"
)

type UserRepository struct {
	DB *sql.DB
}

func joinSkills(skills []string) string {
	return strings.Join(skills, ",")
}

func splitSkills(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func (r *UserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	query := `
        INSERT INTO users (id, email, password, first_name, last_name, role, phone, bio, location, skills, hourly_rate, avatar_url, website_url, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	user.ID = uuid.New().String()
	user.CreatedAt = time.Now()
	user.UpdatedAt = &user.CreatedAt
	_, err := r.DB.ExecContext(ctx, query,
		user.ID, user.Email, user.Password, user.FirstName, user.LastName, user.Role,
		user.Phone, user.Bio, user.Location, joinSkills(user.Skills), user.HourlyRate,
		user.AvatarURL, user.WebsiteURL, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id string) (models.User, error) {
	var (
		user   models.User
		skills string
	)
	query := `
        SELECT id, email, password, first_name, last_name, role, phone, bio, location, skills, hourly_rate, avatar_url, website_url, created_at, updated_at
        FROM users
        WHERE id = ?
    `
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName, &user.Role,
		&user.Phone, &user.Bio, &user.Location, &skills, &user.HourlyRate,
		&user.AvatarURL, &user.WebsiteURL, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return models.User{}, models.ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	user.Skills = splitSkills(skills)
	return user, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var (
		user   models.User
		skills string
	)
	query := `
        SELECT id, email, password, first_name, last_name, role, phone, bio, location, skills, hourly_rate, avatar_url, website_url, created_at, updated_at
        FROM users
        WHERE email = ?
    `
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName, &user.Role,
		&user.Phone, &user.Bio, &user.Location, &skills, &user.HourlyRate,
		&user.AvatarURL, &user.WebsiteURL, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return models.User{}, models.ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	user.Skills = splitSkills(skills)
	return user, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, user models.User) (models.User, error) {
	query := `
        UPDATE users
        SET first_name = ?, last_name = ?, phone = ?, bio = ?, location = ?, skills = ?, hourly_rate = ?, avatar_url = ?, website_url = ?, updated_at = ?
        WHERE id = ?
    `
	now := time.Now()
	user.UpdatedAt = &now
	res, err := r.DB.ExecContext(ctx, query,
		user.FirstName, user.LastName, user.Phone, user.Bio, user.Location,
		joinSkills(user.Skills), user.HourlyRate, user.AvatarURL, user.WebsiteURL, now, user.ID,
	)
	if err != nil {
		return models.User{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.User{}, err
	}
	if affected == 0 {
		return models.User{}, models.ErrUserNotFound
	}
	return r.GetUserByID(ctx, user.ID)
}

func (r *UserRepository) ListFreelancers(ctx context.Context) ([]models.User, error) {
	query := `
        SELECT id, email, first_name, last_name, role, bio, location, skills, hourly_rate, avatar_url, website_url, created_at
        FROM users
        WHERE role = ?
        ORDER BY created_at DESC
    `
	rows, err := r.DB.QueryContext(ctx, query, models.RoleFreelancer)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var (
			user   models.User
			skills string
		)
		if err := rows.Scan(
			&user.ID, &user.Email, &user.FirstName, &user.LastName, &user.Role,
			&user.Bio, &user.Location, &skills, &user.HourlyRate,
			&user.AvatarURL, &user.WebsiteURL, &user.CreatedAt,
		); err != nil {
			return nil, err
		}
		user.Skills = splitSkills(skills)
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *UserRepository) SetSession(ctx context.Context, userID string, session models.Session) error {
	query := `
        UPDATE users
        SET refresh_token = ?, refresh_expires_at = ?
        WHERE id = ?
    `
	res, err := r.DB.ExecContext(ctx, query, session.RefreshToken, session.ExpiresAt, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) GetSessionByToken(ctx context.Context, refreshToken string) (models.Session, error) {
	query := `
        SELECT id, role, refresh_token, refresh_expires_at
        FROM users
        WHERE refresh_token = ?
    `
	var session models.Session
	err := r.DB.QueryRowContext(ctx, query, refreshToken).Scan(
		&session.UserID, &session.Role, &session.RefreshToken, &session.ExpiresAt,
	)
	if err == sql.ErrNoRows {
		return models.Session{}, models.ErrNoRecord
	}
	if err != nil {
		return models.Session{}, err
	}
	return session, nil
}

func (r *UserRepository) LogOut(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE users SET refresh_token = '' WHERE id = ?`, userID)
	return err
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID, hashedPassword string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE users SET password = ? WHERE id = ?`, hashedPassword, userID)
	return err
}
