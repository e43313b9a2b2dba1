package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	domain "adsbuilder/internal/domain/auth"
	"adsbuilder/internal/domain/user"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Service defines the authentication service interface
type Service interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*user.User, error)
	Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, *user.User, error)
	ValidateToken(ctx context.Context, token string) (*user.User, error)
	Logout(ctx context.Context, token string) error
}

type service struct {
	userRepo    user.Repository
	sessionRepo domain.SessionRepository
	tokenExpiry time.Duration
	logger      *zap.Logger
	now         func() time.Time
}

// NewService creates a new auth service
func NewService(userRepo user.Repository, sessionRepo domain.SessionRepository, tokenExpiry time.Duration, logger *zap.Logger) Service {
	return &service{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		tokenExpiry: tokenExpiry,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (*user.User, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Username = strings.TrimSpace(req.Username)

	if !emailPattern.MatchString(req.Email) {
		return nil, user.ErrInvalidEmail
	}
	if len(req.Username) < 3 {
		return nil, user.ErrInvalidUsername
	}
	if len(req.Password) < 6 {
		return nil, user.ErrInvalidPassword
	}

	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, user.ErrUserAlreadyExists
	}
	if _, err := s.userRepo.GetByUsername(ctx, req.Username); err == nil {
		return nil, user.ErrUserAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	// First user is admin
	role := user.RoleUser
	if count, err := s.userRepo.Count(ctx); err == nil && count == 0 {
		role = user.RoleAdmin
	}

	u := &user.User{
		Email:    req.Email,
		Username: req.Username,
		Password: string(hashed),
		Role:     role,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", u.ID), zap.String("role", string(u.Role)))
	return u, nil
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, *user.User, error) {
	u, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(req.Email)))
	if err != nil {
		return nil, nil, user.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)) != nil {
		return nil, nil, user.ErrInvalidCredentials
	}

	token, err := generateToken()
	if err != nil {
		return nil, nil, err
	}

	session := &domain.Session{
		UserID:    u.ID,
		Token:     token,
		ExpiresAt: s.now().Add(s.tokenExpiry).UTC(),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, nil, err
	}

	return &domain.LoginResponse{
		Token:     token,
		ExpiresAt: session.ExpiresAt.Unix(),
	}, u, nil
}

func (s *service) ValidateToken(ctx context.Context, token string) (*user.User, error) {
	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, user.ErrUnauthorized
	}

	if session.Expired(s.now()) {
		if err := s.sessionRepo.Delete(ctx, token); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
			s.logger.Warn("failed to delete expired session", zap.Error(err))
		}
		return nil, user.ErrUnauthorized
	}

	u, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, user.ErrUnauthorized
	}
	return u, nil
}

func (s *service) Logout(ctx context.Context, token string) error {
	return s.sessionRepo.Delete(ctx, token)
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
