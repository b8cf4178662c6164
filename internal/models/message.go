package models

import "time"

// Message is a chat message inside a project conversation.
type Message struct {
	ID         string     `json:"id"`
	ProjectID  string     `json:"project_id"`
	SenderID   string     `json:"sender_id"`
	ReceiverID string     `json:"receiver_id"`
	Content    string     `json:"content"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Conversation is one row of a user's inbox listing.
type Conversation struct {
	ProjectID    string    `json:"project_id"`
	ProjectTitle string    `json:"project_title"`
	PeerID       string    `json:"peer_id"`
	PeerName     string    `json:"peer_name"`
	LastMessage  string    `json:"last_message"`
	LastAt       time.Time `json:"last_at"`
	UnreadCount  int       `json:"unread_count"`
}
