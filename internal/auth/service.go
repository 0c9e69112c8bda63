package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// service implementa Service.
type service struct {
	repo   Repository
	tokens TokenManager
}

// NewService construye el servicio de autenticación.
func NewService(repo Repository, tokens TokenManager) Service {
	return &service{repo: repo, tokens: tokens}
}

func (s *service) Register(ctx context.Context, username, password string) (int, string, error) {
	username = normalizeUsername(username)

	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return 0, "", ErrUserAlreadyExists
	} else if err != ErrUserNotFound {
		return 0, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, "", err
	}

	userID, err := s.repo.NextUserID(ctx)
	if err != nil {
		return 0, "", err
	}

	u := &User{
		UserID:       userID,
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return 0, "", err
	}

	token, err := s.tokens.GenerateToken(u.UserID)
	if err != nil {
		return 0, "", err
	}
	return u.UserID, token, nil
}

func (s *service) Login(ctx context.Context, username, password string) (int, string, error) {
	u, err := s.repo.GetByUsername(ctx, normalizeUsername(username))
	if err != nil {
		if err == ErrUserNotFound {
			return 0, "", ErrInvalidCredentials
		}
		return 0, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return 0, "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(u.UserID)
	if err != nil {
		return 0, "", err
	}
	return u.UserID, token, nil
}

func normalizeUsername(u string) string {
	return strings.TrimSpace(strings.ToLower(u))
}
