package services

import (
	"context"
	"log"

	"firebase.google.com/go/messaging"

	"freelanceBack/internal/repositories"
)

// NotificationService pushes FCM notifications to a user's registered
// devices. A nil messaging client turns every send into a logged no-op so
// local environments run without Firebase credentials.
type NotificationService struct {
	Client    *messaging.Client
	TokenRepo *repositories.DeviceTokenRepository
}

func (s *NotificationService) RegisterToken(ctx context.Context, userID, token string) error {
	return s.TokenRepo.SaveToken(ctx, userID, token)
}

func (s *NotificationService) Notify(ctx context.Context, userID, title, body, link string) {
	if s == nil || s.TokenRepo == nil {
		return
	}
	if s.Client == nil {
		log.Printf("fcm disabled, skipping notification for user %s: %s", userID, title)
		return
	}

	tokens, err := s.TokenRepo.GetTokensByUserID(ctx, userID)
	if err != nil {
		log.Printf("fcm: load tokens for %s: %v", userID, err)
		return
	}

	for _, t := range tokens {
		msg := &messaging.Message{
			Token: t.Token,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Data: map[string]string{
				"link": link,
			},
			Android: &messaging.AndroidConfig{
				Priority: "high",
			},
			APNS: &messaging.APNSConfig{
				Headers: map[string]string{
					"apns-priority": "10",
				},
				Payload: &messaging.APNSPayload{
					Aps: &messaging.Aps{
						Alert: &messaging.ApsAlert{
							Title: title,
							Body:  body,
						},
						Sound: "default",
					},
				},
			},
		}
		if _, err := s.Client.Send(ctx, msg); err != nil {
			log.Printf("fcm: send to %s: %v", userID, err)
			if messaging.IsRegistrationTokenNotRegistered(err) {
				_ = s.TokenRepo.DeleteToken(ctx, userID, t.Token)
			}
		}
	}
}
