package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/PatricioAlv/adminGastos/internal/auth"
	"github.com/PatricioAlv/adminGastos/internal/core"
	"github.com/PatricioAlv/adminGastos/internal/store"
)

// LoginInput identifies a user to the API. The identity itself comes from
// the client's provider; this service records the profile and issues the
// bearer token the rest of the API requires.
type LoginInput struct {
	UserID string
	Email  string
	Name   string
}

type LoginResult struct {
	Token string
	User  core.User
}

// AccountService upserts user profiles on login and issues tokens.
type AccountService struct {
	store  store.UserStore
	issuer *auth.TokenIssuer
	now    func() time.Time
}

func NewAccountService(s store.UserStore, issuer *auth.TokenIssuer) *AccountService {
	return &AccountService{store: s, issuer: issuer, now: time.Now}
}

func (s *AccountService) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	if strings.TrimSpace(in.Email) == "" {
		return LoginResult{}, fmt.Errorf("email is required")
	}

	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		userID = uuid.NewString()
	}

	now := s.now().UTC()
	user := core.User{
		ID:        userID,
		Email:     in.Email,
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.UpsertUser(ctx, user); err != nil {
		return LoginResult{}, fmt.Errorf("upsert user: %w", err)
	}

	token, err := s.issuer.Issue(auth.Identity{UserID: userID, Email: in.Email, Name: in.Name})
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue token: %w", err)
	}

	return LoginResult{Token: token, User: user}, nil
}

// Profile returns the stored profile for an authenticated user.
func (s *AccountService) Profile(ctx context.Context, userID string) (core.User, error) {
	return s.store.GetUser(ctx, userID)
}
