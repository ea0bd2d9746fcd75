package user

import (
	"context"
	"time"

	"github.com/go-auth-api/internal/domain"
	"github.com/go-auth-api/internal/pkg/id"
)

type Service interface {
	Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, req domain.UpdateUserRequest) (*domain.User, error)
	Delete(ctx context.Context, userID string) (*domain.User, error)
}

type userStore interface {
	Create(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	ListActive(ctx context.Context) ([]domain.User, error)
	UpdateName(ctx context.Context, userID string, name *string) error
	SetActive(ctx context.Context, userID string, active bool) error
}

type service struct {
	repo userStore
}

func NewService(repo userStore) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	u := &domain.User{
		ID:        id.NewUUID(),
		Email:     req.Email,
		Name:      req.Name,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// List returns active users only. Soft-deleted users stay out of listings
// but remain fetchable by id.
func (s *service) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.ListActive(ctx)
}

func (s *service) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.Get(ctx, userID)
}

// Update applies a partial update. Fields absent from the request leave the
// stored values untouched.
func (s *service) Update(ctx context.Context, userID string, req domain.UpdateUserRequest) (*domain.User, error) {
	if _, err := s.repo.Get(ctx, userID); err != nil {
		return nil, err
	}
	if req.Name != nil {
		if err := s.repo.UpdateName(ctx, userID, req.Name); err != nil {
			return nil, err
		}
	}
	return s.repo.Get(ctx, userID)
}

// Delete soft-deletes: the record is marked inactive and returned, not removed.
func (s *service) Delete(ctx context.Context, userID string) (*domain.User, error) {
	if _, err := s.repo.Get(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.repo.SetActive(ctx, userID, false); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID)
}
