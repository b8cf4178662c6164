package services

import (
	"context"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"freelanceBack/internal/cache"
	"freelanceBack/internal/models"
	"freelanceBack/internal/repositories"
	"freelanceBack/utils"
)

const (
	accessTokenTTL  = 2 * time.Hour
	refreshTokenTTL = 60 * 24 * time.Hour
)

type UserService struct {
	UserRepo     *repositories.UserRepository
	TokenManager *utils.Manager
	Freelancers  *cache.FreelancerCache
	Storage      *utils.S3Storage
}

func (s *UserService) SignUp(ctx context.Context, user models.User) (models.SignUpResponse, error) {
	existing, err := s.UserRepo.GetUserByEmail(ctx, user.Email)
	if err != nil && err != models.ErrUserNotFound {
		return models.SignUpResponse{}, err
	}
	if existing.Email != "" {
		return models.SignUpResponse{}, models.ErrDuplicateEmail
	}

	if user.Role != models.RoleClient && user.Role != models.RoleFreelancer {
		user.Role = models.RoleClient
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.SignUpResponse{}, err
	}
	user.Password = string(hashedPassword)

	user, err = s.UserRepo.CreateUser(ctx, user)
	if err != nil {
		return models.SignUpResponse{}, err
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return models.SignUpResponse{}, err
	}

	user.Password = ""
	return models.SignUpResponse{User: user, Tokens: tokens}, nil
}

func (s *UserService) SignIn(ctx context.Context, email, password string) (models.Tokens, error) {
	user, err := s.UserRepo.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return models.Tokens{}, models.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		log.Printf("Invalid password for user: %s", email)
		return models.Tokens{}, models.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

func (s *UserService) issueTokens(ctx context.Context, user models.User) (models.Tokens, error) {
	accessToken, err := s.TokenManager.NewAccessToken(user.ID, user.Role, accessTokenTTL)
	if err != nil {
		return models.Tokens{}, err
	}

	refreshToken, err := s.TokenManager.NewRefreshToken()
	if err != nil {
		return models.Tokens{}, err
	}

	session := models.Session{
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(refreshTokenTTL),
	}
	if err := s.UserRepo.SetSession(ctx, user.ID, session); err != nil {
		return models.Tokens{}, err
	}

	return models.Tokens{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id string) (models.User, error) {
	user, err := s.UserRepo.GetUserByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	user.Password = ""
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, user models.User) (models.User, error) {
	updated, err := s.UserRepo.UpdateProfile(ctx, user)
	if err != nil {
		return models.User{}, err
	}
	if updated.Role == models.RoleFreelancer {
		s.Freelancers.Invalidate(ctx)
	}
	updated.Password = ""
	return updated, nil
}

// UploadAvatar stores the image and points the profile at its public URL.
func (s *UserService) UploadAvatar(ctx context.Context, userID string, file []byte, fileName string) (models.User, error) {
	avatarURL, err := s.Storage.Upload(file, fileName, "avatars")
	if err != nil {
		return models.User{}, err
	}
	user, err := s.UserRepo.GetUserByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	user.AvatarURL = avatarURL
	return s.UpdateProfile(ctx, user)
}

func (s *UserService) ListFreelancers(ctx context.Context) ([]models.User, error) {
	if users, ok := s.Freelancers.Get(ctx); ok {
		return users, nil
	}
	users, err := s.UserRepo.ListFreelancers(ctx)
	if err != nil {
		return nil, err
	}
	s.Freelancers.Set(ctx, users)
	return users, nil
}

func (s *UserService) UpdatePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.UserRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return models.ErrInvalidPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.UserRepo.UpdatePassword(ctx, userID, string(hashed))
}

func (s *UserService) LogOut(ctx context.Context, userID string) error {
	return s.UserRepo.LogOut(ctx, userID)
}
