package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tanwartailor/tailor-api/internal/domain/entity"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	Count(ctx context.Context) (int64, error)
}
