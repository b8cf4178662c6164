package services

import (
	"context"

	"freelanceBack/internal/models"
	"freelanceBack/internal/repositories"
)

type MessageService struct {
	MessageRepo *repositories.MessageRepository
}

func (s *MessageService) SendMessage(ctx context.Context, m models.Message) (models.Message, error) {
	return s.MessageRepo.CreateMessage(ctx, m)
}

func (s *MessageService) GetMessagesForProject(ctx context.Context, projectID, userID string) ([]models.Message, error) {
	return s.MessageRepo.GetMessagesByProjectID(ctx, projectID, userID)
}

func (s *MessageService) MarkRead(ctx context.Context, projectID, readerID string) error {
	return s.MessageRepo.MarkRead(ctx, projectID, readerID)
}

func (s *MessageService) GetConversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	return s.MessageRepo.GetConversations(ctx, userID)
}
