package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tanwartailor/tailor-api/internal/domain/entity"
	"github.com/tanwartailor/tailor-api/internal/domain/enum"
	"github.com/tanwartailor/tailor-api/pkg/pagination"
)

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	GetByShareSlug(ctx context.Context, slug string) (*entity.Invoice, error)
	// Update persists the invoice; when replaceItems is true the stored line
	// items are replaced wholesale by invoice.Items.
	Update(ctx context.Context, invoice *entity.Invoice, replaceItems bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
	ListWithCursor(ctx context.Context, params *InvoiceCursorFilterParams) ([]entity.Invoice, error)
	// NextSequence atomically advances and returns the numbering counter for
	// the given prefix and year.
	NextSequence(ctx context.Context, prefix string, year int) (int64, error)
	Stats(ctx context.Context) (*InvoiceStats, error)
}

// InvoiceFilterParams contains filtering parameters for invoice queries
type InvoiceFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.InvoiceStatus
}

// InvoiceCursorFilterParams contains cursor-based filtering for invoice queries
type InvoiceCursorFilterParams struct {
	Cursor *pagination.CursorParams
	Search string
	Status *enum.InvoiceStatus
}

// InvoiceStats aggregates the financial state of the whole collection
type InvoiceStats struct {
	TotalInvoices int64   `json:"total_invoices"`
	TotalRevenue  float64 `json:"total_revenue"`
	PaidCount     int64   `json:"paid_count"`
	UnpaidCount   int64   `json:"unpaid_count"`
	PartialCount  int64   `json:"partial_count"`
	PendingAmount float64 `json:"pending_amount"`
}
