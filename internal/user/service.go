package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/devjjun/commu/internal/domain"
	"github.com/devjjun/commu/internal/ledger"
	"github.com/devjjun/commu/internal/logger"
	"github.com/devjjun/commu/internal/repository"
)

// Profile is a user together with the balance derived from the ledger
type Profile struct {
	User    domain.User `json:"user"`
	Balance int         `json:"balance"`
}

// WelcomeSender delivers the welcome notification after registration.
// Delivery is best effort and must not fail the registration.
type WelcomeSender interface {
	SendWelcome(ctx context.Context, user domain.User)
}

// Service defines the interface for account operations
type Service interface {
	Register(ctx context.Context, username, email string) (*domain.User, error)
	GetProfile(ctx context.Context, userID string) (*Profile, error)
}

type service struct {
	repo      repository.User
	ledgerSvc ledger.Service
	welcome   WelcomeSender
	now       func() time.Time
}

// NewService creates a new user service. welcome may be nil when welcome
// mail is not wired.
func NewService(repo repository.User, ledgerSvc ledger.Service, welcome WelcomeSender) Service {
	return &service{repo: repo, ledgerSvc: ledgerSvc, welcome: welcome, now: time.Now}
}

// Register creates a new account. Usernames are unique; a taken username
// surfaces as domain.ErrAlreadyExists.
func (s *service) Register(ctx context.Context, username, email string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}

	existing, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: username %q", domain.ErrAlreadyExists, username)
	}

	now := s.now()
	created, err := s.repo.Insert(ctx, &domain.User{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     strings.TrimSpace(email),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		// The unique index wins any registration race
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: username %q", domain.ErrAlreadyExists, username)
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	logger.FromContext(ctx).Info(LogMsgUserRegistered, "userID", created.ID, "username", created.Username)

	if s.welcome != nil {
		s.welcome.SendWelcome(ctx, *created)
	}
	return created, nil
}

func (s *service) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}

	balance, err := s.ledgerSvc.Balance(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}

	return &Profile{User: *user, Balance: balance}, nil
}
