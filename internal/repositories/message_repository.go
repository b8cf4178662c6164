package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"freelanceBack/internal/models"
)

type MessageRepository struct {
	DB *sql.DB
}

func (r *MessageRepository) CreateMessage(ctx context.Context, m models.Message) (models.Message, error) {
	query := `
        INSERT INTO messages (id, project_id, sender_id, receiver_id, content, created_at)
        VALUES (?, ?, ?, ?, ?, ?)
    `
	m.ID = uuid.New().String()
	m.CreatedAt = time.Now()
	_, err := r.DB.ExecContext(ctx, query,
		m.ID, m.ProjectID, m.SenderID, m.ReceiverID, m.Content, m.CreatedAt)
	if err != nil {
		return models.Message{}, err
	}
	return m, nil
}

func (r *MessageRepository) GetMessagesByProjectID(ctx context.Context, projectID, userID string) ([]models.Message, error) {
	query := `
        SELECT id, project_id, sender_id, receiver_id, content, read_at, created_at
        FROM messages
        WHERE project_id = ? AND (sender_id = ? OR receiver_id = ?)
        ORDER BY created_at ASC
    `
	rows, err := r.DB.QueryContext(ctx, query, projectID, userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(
			&m.ID, &m.ProjectID, &m.SenderID, &m.ReceiverID, &m.Content, &m.ReadAt, &m.CreatedAt,
		); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *MessageRepository) MarkRead(ctx context.Context, projectID, readerID string) error {
	_, err := r.DB.ExecContext(ctx, `
        UPDATE messages
        SET read_at = ?
        WHERE project_id = ? AND receiver_id = ? AND read_at IS NULL`,
		time.Now(), projectID, readerID)
	return err
}

func (r *MessageRepository) GetConversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	query := `
        SELECT m.project_id, p.title,
               IF(m.sender_id = ?, m.receiver_id, m.sender_id) AS peer_id,
               CONCAT(u.first_name, ' ', u.last_name) AS peer_name,
               m.content, m.created_at,
               (SELECT COUNT(*) FROM messages
                WHERE project_id = m.project_id AND receiver_id = ? AND read_at IS NULL) AS unread
        FROM messages m
        JOIN projects p ON p.id = m.project_id
        JOIN users u ON u.id = IF(m.sender_id = ?, m.receiver_id, m.sender_id)
        WHERE m.id IN (
            SELECT id FROM messages m2
            WHERE (m2.sender_id = ? OR m2.receiver_id = ?)
              AND m2.created_at = (
                  SELECT MAX(created_at) FROM messages m3
                  WHERE m3.project_id = m2.project_id
                    AND (m3.sender_id = ? OR m3.receiver_id = ?)
              )
        )
        ORDER BY m.created_at DESC
    `
	rows, err := r.DB.QueryContext(ctx, query,
		userID, userID, userID, userID, userID, userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conversations []models.Conversation
	for rows.Next() {
		var c models.Conversation
		if err := rows.Scan(
			&c.ProjectID, &c.ProjectTitle, &c.PeerID, &c.PeerName,
			&c.LastMessage, &c.LastAt, &c.UnreadCount,
		); err != nil {
			return nil, err
		}
		conversations = append(conversations, c)
	}
	return conversations, rows.Err()
}
