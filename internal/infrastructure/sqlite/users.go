package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-auth-api/internal/domain"
	"github.com/vinovest/sqlx"
)

// UserRepo is the persistent user directory.
type UserRepo struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts a new user. Email uniqueness is enforced here, not by callers.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, name, is_active, created_at) VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.Name, u.IsActive, u.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("email already registered: %w", domain.ErrBadRequest)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// Get fetches a user by id. Soft-deleted users are still returned; only
// listing filters on is_active.
func (r *UserRepo) Get(ctx context.Context, userID string) (*domain.User, error) {
	var u domain.User
	err := r.db.GetContext(ctx, &u, `SELECT id, email, name, is_active, created_at FROM users WHERE id = ?`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// GetByEmail fetches a user by email regardless of active state, so a
// soft-deleted account can be reactivated on confirmation.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.GetContext(ctx, &u, `SELECT id, email, name, is_active, created_at FROM users WHERE email = ?`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

// ListActive returns active users only, newest first.
func (r *UserRepo) ListActive(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	err := r.db.SelectContext(ctx, &users,
		`SELECT id, email, name, is_active, created_at FROM users WHERE is_active = 1 ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// UpdateName sets the display name.
func (r *UserRepo) UpdateName(ctx context.Context, userID string, name *string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE users SET name = ? WHERE id = ?`, name, userID); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// SetActive flips the soft-delete flag. Idempotent.
func (r *UserRepo) SetActive(ctx context.Context, userID string, active bool) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE users SET is_active = ? WHERE id = ?`, active, userID); err != nil {
		return fmt.Errorf("set user active: %w", err)
	}
	return nil
}
