package service

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/tanwartailor/tailor-api/internal/domain/entity"
	"github.com/tanwartailor/tailor-api/internal/domain/repository"
	"github.com/tanwartailor/tailor-api/pkg/apperror"
	"github.com/tanwartailor/tailor-api/pkg/pagination"
	"github.com/tanwartailor/tailor-api/pkg/validation"
)

// ReviewService handles customer review submission and moderation
type ReviewService struct {
	reviewRepo repository.ReviewRepository
}

// NewReviewService creates a new review service
func NewReviewService(reviewRepo repository.ReviewRepository) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo}
}

// CreateReviewInput represents the public review submission
type CreateReviewInput struct {
	Name    string
	Phone   string
	Rating  int
	Message string
}

// CreateReview persists a review. Reviews start unapproved and stay hidden
// from the public list until the admin approves them.
func (s *ReviewService) CreateReview(ctx context.Context, input *CreateReviewInput) (*entity.Review, error) {
	var fieldErrors []apperror.FieldError
	if input.Name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "name is required"})
	}
	if input.Phone != "" && !validation.IsValidIndianMobile(input.Phone) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "phone", Message: "invalid mobile number"})
	}
	if input.Rating < 1 || input.Rating > 5 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "rating", Message: "rating must be between 1 and 5"})
	}
	if input.Message == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "message", Message: "message is required"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	review := &entity.Review{
		Name:    input.Name,
		Phone:   input.Phone,
		Rating:  input.Rating,
		Message: input.Message,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// ApprovedReviews is the public review feed with its summary figures
type ApprovedReviews struct {
	Reviews       []entity.Review `json:"reviews"`
	TotalReviews  int64           `json:"total_reviews"`
	AverageRating float64         `json:"average_rating"`
}

// ListApprovedReviews returns the approved reviews newest first, with the
// average rating rounded to one decimal place.
func (s *ReviewService) ListApprovedReviews(ctx context.Context) (*ApprovedReviews, error) {
	reviews, err := s.reviewRepo.ListApproved(ctx)
	if err != nil {
		return nil, err
	}

	count, avg, err := s.reviewRepo.ApprovedSummary(ctx)
	if err != nil {
		return nil, err
	}

	return &ApprovedReviews{
		Reviews:       reviews,
		TotalReviews:  count,
		AverageRating: math.Round(avg*10) / 10,
	}, nil
}

// ListReviews lists all reviews for moderation
func (s *ReviewService) ListReviews(ctx context.Context, params *repository.ReviewFilterParams) (*pagination.PaginatedResult[entity.Review], error) {
	reviews, total, err := s.reviewRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(reviews, pag), nil
}

// SetApproved approves or hides a review
func (s *ReviewService) SetApproved(ctx context.Context, id uuid.UUID, approved bool) (*entity.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, apperror.NewNotFoundError("Review")
	}

	review.IsApproved = approved
	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// DeleteReview removes a review permanently
func (s *ReviewService) DeleteReview(ctx context.Context, id uuid.UUID) error {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if review == nil {
		return apperror.NewNotFoundError("Review")
	}
	return s.reviewRepo.Delete(ctx, id)
}
