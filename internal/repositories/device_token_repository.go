package repositories

import (
	"context"
	"database/sql"
	"time"

	"freelanceBack/internal/models"
)

type DeviceTokenRepository struct {
	DB *sql.DB
}

func (r *DeviceTokenRepository) SaveToken(ctx context.Context, userID, token string) error {
	query := `
        INSERT INTO device_tokens (user_id, token, created_at)
        VALUES (?, ?, ?)
        ON DUPLICATE KEY UPDATE token = VALUES(token), created_at = VALUES(created_at)
    `
	_, err := r.DB.ExecContext(ctx, query, userID, token, time.Now())
	return err
}

func (r *DeviceTokenRepository) GetTokensByUserID(ctx context.Context, userID string) ([]models.DeviceToken, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT user_id, token, created_at FROM device_tokens WHERE user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []models.DeviceToken
	for rows.Next() {
		var t models.DeviceToken
		if err := rows.Scan(&t.UserID, &t.Token, &t.CreatedAt); err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

func (r *DeviceTokenRepository) DeleteToken(ctx context.Context, userID, token string) error {
	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM device_tokens WHERE user_id = ? AND token = ?`, userID, token)
	return err
}
