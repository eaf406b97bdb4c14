package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/skirmish/app/models"
	"github.com/shashiranjanraj/skirmish/pkg/auth"
)

// AuthService handles signup, login, and self-service password updates.
type AuthService struct {
	users      UserStore
	tokens     *auth.Tokens
	bcryptCost int
}

func NewAuthService(users UserStore, tokens *auth.Tokens, bcryptCost int) *AuthService {
	return &AuthService{users: users, tokens: tokens, bcryptCost: bcryptCost}
}

// Signup registers a new user and returns a signed token for it.
// Roles default to ["user"] when none are given.
func (s *AuthService) Signup(ctx context.Context, email, password string, roles []string) (string, error) {
	if len(roles) == 0 {
		roles = []string{"user"}
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("signup: lookup email: %w", err)
	}
	if existing != nil {
		return "", ErrEmailTaken
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("signup: hash password: %w", err)
	}

	user := &models.User{Email: email, Password: hash, Roles: roles}
	if err := s.users.Insert(ctx, user); err != nil {
		return "", fmt.Errorf("signup: insert user: %w", err)
	}

	return s.tokens.Issue(user.ID.Hex(), user.Email, user.Roles)
}

// Login verifies the credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("login: lookup email: %w", err)
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, password) {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(user.ID.Hex(), user.Email, user.Roles)
}

// UpdatePassword re-hashes and stores a new password for the caller.
func (s *AuthService) UpdatePassword(ctx context.Context, userID, password string) (*models.User, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("update password: hash: %w", err)
	}

	user, err := s.users.UpdatePassword(ctx, id, hash)
	if err != nil {
		return nil, fmt.Errorf("update password: store: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}
