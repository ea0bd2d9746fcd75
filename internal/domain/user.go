package domain

import "time"

type User struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Name      *string   `json:"name" db:"name"`
	IsActive  bool      `json:"isActive" db:"is_active"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type CreateUserRequest struct {
	Email string  `json:"email" validate:"required,email"`
	Name  *string `json:"name" validate:"omitempty,max=100"`
}

type UpdateUserRequest struct {
	Name *string `json:"name" validate:"omitempty,max=100"`
}
