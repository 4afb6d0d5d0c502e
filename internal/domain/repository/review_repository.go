package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tanwartailor/tailor-api/internal/domain/entity"
	"github.com/tanwartailor/tailor-api/pkg/pagination"
)

// ReviewRepository defines the interface for review data operations
type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ReviewFilterParams) ([]entity.Review, int64, error)
	ListApproved(ctx context.Context) ([]entity.Review, error)
	// ApprovedSummary returns the approved-review count and average rating.
	ApprovedSummary(ctx context.Context) (int64, float64, error)
}

// ReviewFilterParams contains filtering parameters for review queries
type ReviewFilterParams struct {
	Pagination *pagination.PaginationParams
	Approved   *bool
}
