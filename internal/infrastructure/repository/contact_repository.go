package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tanwartailor/tailor-api/internal/domain/entity"
	domainRepo "github.com/tanwartailor/tailor-api/internal/domain/repository"
	"gorm.io/gorm"
)

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *gorm.DB) domainRepo.ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, contact *entity.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *contactRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Contact, error) {
	var contact entity.Contact
	err := r.db.WithContext(ctx).First(&contact, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &contact, err
}

func (r *contactRepository) Update(ctx context.Context, contact *entity.Contact) error {
	return r.db.WithContext(ctx).Save(contact).Error
}

func (r *contactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Contact{}, "id = ?", id).Error
}

func (r *contactRepository) List(ctx context.Context, params *domainRepo.ContactFilterParams) ([]entity.Contact, int64, error) {
	var contacts []entity.Contact
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Contact{})
	if params.Unread != nil {
		query = query.Where("is_read = ?", !*params.Unread)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("created_at DESC").
		Find(&contacts).Error

	return contacts, total, err
}

func (r *contactRepository) Stats(ctx context.Context) (*domainRepo.ContactStats, error) {
	var stats domainRepo.ContactStats

	query := r.db.WithContext(ctx).Model(&entity.Contact{})
	if err := query.Count(&stats.TotalContacts).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&entity.Contact{}).
		Where("is_read = ?", false).
		Count(&stats.UnreadContacts).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if err := r.db.WithContext(ctx).Model(&entity.Contact{}).
		Where("created_at >= ?", midnight).
		Count(&stats.TodayContacts).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
