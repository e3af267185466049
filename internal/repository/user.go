package repository

import (
	"context"

	"github.com/devjjun/commu/internal/domain"
)

// User defines the data access interface for accounts
type User interface {
	// GetByID returns nil when no such user exists
	GetByID(ctx context.Context, userID string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
}
