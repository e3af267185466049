package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devjjun/commu/internal/domain"
)

// UserRepository implements the user repository for PostgreSQL
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	var user domain.User
	row := r.db.QueryRow(ctx,
		`SELECT user_id, username, email, created_at, updated_at FROM users WHERE user_id = $1`,
		userUUID)
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetUser, err)
	}
	return &user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	row := r.db.QueryRow(ctx,
		`SELECT user_id, username, email, created_at, updated_at FROM users WHERE username = $1`,
		username)
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetUserByUsername, err)
	}
	return &user, nil
}

func (r *UserRepository) Insert(ctx context.Context, user *domain.User) (*domain.User, error) {
	userUUID, err := parseUserUUID(user.ID)
	if err != nil {
		return nil, err
	}

	inserted := *user
	row := r.db.QueryRow(ctx,
		`INSERT INTO users (user_id, username, email, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at, updated_at`,
		userUUID, user.Username, user.Email, user.CreatedAt, user.UpdatedAt)
	if err := row.Scan(&inserted.CreatedAt, &inserted.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: username %q", domain.ErrAlreadyExists, user.Username)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToInsertUser, err)
	}
	return &inserted, nil
}
