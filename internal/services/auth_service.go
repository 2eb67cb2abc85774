package services

import (
	"context"
	"errors"
	"time"

	"task-dashboard.com/task-dashboard/internal/auth"
	dto "task-dashboard.com/task-dashboard/internal/data_models"
	apperrors "task-dashboard.com/task-dashboard/internal/errors"
	"task-dashboard.com/task-dashboard/internal/logger"
	model "task-dashboard.com/task-dashboard/internal/models"
	repository "task-dashboard.com/task-dashboard/internal/repositories"
	"task-dashboard.com/task-dashboard/internal/validators"
)

type AuthResult struct {
	User      model.PublicUser
	Token     string
	ExpiresAt time.Time
}

type AuthService struct {
	users  *repository.UserRepository
	tokens *auth.TokenService
	hasher *auth.PasswordHasher
}

func NewAuthService(
	users *repository.UserRepository,
	tokens *auth.TokenService,
	hasher *auth.PasswordHasher,
) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		hasher: hasher,
	}
}

func (s *AuthService) Register(ctx context.Context, body dto.Payload) (*AuthResult, error) {
	req, err := validators.ValidateRegisterRequest(body)
	if err != nil {
		return nil, err
	}

	exists, err := s.users.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrDuplicateEmail
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.CreateUser(ctx, req.Email, req.Name, hash)
	if err != nil {
		return nil, err
	}

	logger.Info("user registered", "user_id", user.ID)
	return s.issue(user)
}

// Login reports ErrAuthenticationFailed for both an unknown email and a wrong
// password.
func (s *AuthService) Login(ctx context.Context, body dto.Payload) (*AuthResult, error) {
	req, err := validators.ValidateLoginRequest(body)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			s.hasher.VerifyNone(req.Password)
			return nil, apperrors.ErrAuthenticationFailed
		}
		return nil, err
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		logger.Warn("login rejected", "user_id", user.ID)
		return nil, apperrors.ErrAuthenticationFailed
	}

	return s.issue(user)
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*model.PublicUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	public := user.Public()
	return &public, nil
}

func (s *AuthService) issue(user *model.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		User:      user.Public(),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
