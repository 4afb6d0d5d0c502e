package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/tanwartailor/tailor-api/internal/domain/entity"
	"github.com/tanwartailor/tailor-api/internal/domain/enum"
	domainRepo "github.com/tanwartailor/tailor-api/internal/domain/repository"
	"github.com/tanwartailor/tailor-api/pkg/apperror"
	"github.com/tanwartailor/tailor-api/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	err := r.db.WithContext(ctx).Create(invoice).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.NewConflictError("invoice number or share slug already exists")
	}
	return err
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) GetByShareSlug(ctx context.Context, slug string) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&invoice, "share_slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *entity.Invoice, replaceItems bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if replaceItems {
			if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&entity.InvoiceItem{}).Error; err != nil {
				return err
			}
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(invoice).Error
	})
}

func (r *invoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Items go with the invoice via the ON DELETE CASCADE constraint
	return r.db.WithContext(ctx).Delete(&entity.Invoice{}, "id = ?", id).Error
}

func (r *invoiceRepository) List(ctx context.Context, params *domainRepo.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Invoice{})
	query = applyInvoiceFilters(query, params.Search, params.Status)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("created_at DESC").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Find(&invoices).Error

	return invoices, total, err
}

// ListWithCursor returns invoices using cursor-based pagination
// Fetches limit+1 items to detect if there are more results
func (r *invoiceRepository) ListWithCursor(ctx context.Context, params *domainRepo.InvoiceCursorFilterParams) ([]entity.Invoice, error) {
	var invoices []entity.Invoice

	params.Cursor.Validate()
	query := r.db.WithContext(ctx).Model(&entity.Invoice{})
	query = applyInvoiceFilters(query, params.Search, params.Status)

	cursor, err := params.Cursor.DecodeCursor()
	if err != nil {
		return nil, err
	}

	if cursor != nil {
		if params.Cursor.Direction == pagination.CursorDirectionNext {
			query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
		} else {
			query = query.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.ID)
		}
	}

	err = query.Limit(params.Cursor.Limit + 1).
		Order("created_at DESC, id DESC").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Find(&invoices).Error

	return invoices, err
}

func applyInvoiceFilters(query *gorm.DB, search string, status *enum.InvoiceStatus) *gorm.DB {
	if search != "" {
		query = query.Where("customer_name ILIKE ? OR invoice_number ILIKE ? OR customer_phone ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	return query
}

// NextSequence atomically advances the per-year numbering counter.
// The counter row is lazily seeded from the highest existing invoice number
// of that year so numbering continues across deployments.
func (r *invoiceRepository) NextSequence(ctx context.Context, prefix string, year int) (int64, error) {
	var seq int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		advance := func() *gorm.DB {
			return tx.Raw(
				"UPDATE invoice_sequences SET last_seq = last_seq + 1 WHERE year = ? RETURNING last_seq",
				year,
			).Scan(&seq)
		}

		res := advance()
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		// First invoice of this year: seed the counter from whatever
		// numbers already exist, ignoring any that do not parse.
		var numbers []string
		if err := tx.Model(&entity.Invoice{}).
			Where("invoice_number LIKE ?", fmt.Sprintf("%s-%d-%%", prefix, year)).
			Pluck("invoice_number", &numbers).Error; err != nil {
			return err
		}

		var last int64
		for _, num := range numbers {
			idx := strings.LastIndex(num, "-")
			if idx < 0 || idx == len(num)-1 {
				continue
			}
			n, err := strconv.ParseInt(num[idx+1:], 10, 64)
			if err != nil {
				continue
			}
			if n > last {
				last = n
			}
		}

		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&entity.InvoiceSequence{Year: year, LastSeq: last}).Error; err != nil {
			return err
		}

		// Re-run the advance; a concurrent seeder may have won the insert,
		// either way the row exists now.
		res = advance()
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("invoice sequence row missing for year %d", year)
		}
		return nil
	})

	return seq, err
}

func (r *invoiceRepository) Stats(ctx context.Context) (*domainRepo.InvoiceStats, error) {
	var stats domainRepo.InvoiceStats
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_invoices,
			COALESCE(SUM(paid_amount), 0) AS total_revenue,
			COUNT(*) FILTER (WHERE status = 2) AS paid_count,
			COUNT(*) FILTER (WHERE status = 0) AS unpaid_count,
			COUNT(*) FILTER (WHERE status = 1) AS partial_count,
			COALESCE(SUM(grand_total - paid_amount) FILTER (WHERE status <> 2), 0) AS pending_amount
		FROM invoices`).Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
