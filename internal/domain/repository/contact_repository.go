package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tanwartailor/tailor-api/internal/domain/entity"
	"github.com/tanwartailor/tailor-api/pkg/pagination"
)

// ContactRepository defines the interface for contact-query data operations
type ContactRepository interface {
	Create(ctx context.Context, contact *entity.Contact) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Contact, error)
	Update(ctx context.Context, contact *entity.Contact) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ContactFilterParams) ([]entity.Contact, int64, error)
	Stats(ctx context.Context) (*ContactStats, error)
}

// ContactFilterParams contains filtering parameters for contact queries
type ContactFilterParams struct {
	Pagination *pagination.PaginationParams
	Unread     *bool
}

// ContactStats summarizes the contact inbox
type ContactStats struct {
	TotalContacts  int64 `json:"total_contacts"`
	UnreadContacts int64 `json:"unread_contacts"`
	TodayContacts  int64 `json:"today_contacts"`
}
