package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tanwartailor/tailor-api/internal/domain/entity"
	domainRepo "github.com/tanwartailor/tailor-api/internal/domain/repository"
	"gorm.io/gorm"
)

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *gorm.DB) domainRepo.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	var review entity.Review
	err := r.db.WithContext(ctx).First(&review, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &review, err
}

func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Review{}, "id = ?", id).Error
}

func (r *reviewRepository) List(ctx context.Context, params *domainRepo.ReviewFilterParams) ([]entity.Review, int64, error) {
	var reviews []entity.Review
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Review{})
	if params.Approved != nil {
		query = query.Where("is_approved = ?", *params.Approved)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("created_at DESC").
		Find(&reviews).Error

	return reviews, total, err
}

func (r *reviewRepository) ListApproved(ctx context.Context) ([]entity.Review, error) {
	var reviews []entity.Review
	err := r.db.WithContext(ctx).
		Where("is_approved = ?", true).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) ApprovedSummary(ctx context.Context) (int64, float64, error) {
	var result struct {
		Count int64
		Avg   float64
	}
	err := r.db.WithContext(ctx).Model(&entity.Review{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS avg").
		Where("is_approved = ?", true).
		Scan(&result).Error
	return result.Count, result.Avg, err
}
