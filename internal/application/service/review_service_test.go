package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tanwartailor/tailor-api/internal/domain/entity"
	"github.com/tanwartailor/tailor-api/internal/domain/repository"
	"github.com/tanwartailor/tailor-api/pkg/apperror"
)

type mockReviewRepo struct {
	createFn          func(ctx context.Context, review *entity.Review) error
	getByIDFn         func(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	updateFn          func(ctx context.Context, review *entity.Review) error
	deleteFn          func(ctx context.Context, id uuid.UUID) error
	listFn            func(ctx context.Context, params *repository.ReviewFilterParams) ([]entity.Review, int64, error)
	listApprovedFn    func(ctx context.Context) ([]entity.Review, error)
	approvedSummaryFn func(ctx context.Context) (int64, float64, error)
}

func (m *mockReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	return m.createFn(ctx, review)
}

func (m *mockReviewRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockReviewRepo) Update(ctx context.Context, review *entity.Review) error {
	return m.updateFn(ctx, review)
}

func (m *mockReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func (m *mockReviewRepo) List(ctx context.Context, params *repository.ReviewFilterParams) ([]entity.Review, int64, error) {
	return m.listFn(ctx, params)
}

func (m *mockReviewRepo) ListApproved(ctx context.Context) ([]entity.Review, error) {
	return m.listApprovedFn(ctx)
}

func (m *mockReviewRepo) ApprovedSummary(ctx context.Context) (int64, float64, error) {
	return m.approvedSummaryFn(ctx)
}

func TestCreateReviewStartsUnapproved(t *testing.T) {
	var created *entity.Review
	repo := &mockReviewRepo{
		createFn: func(ctx context.Context, review *entity.Review) error {
			created = review
			return nil
		},
	}
	svc := NewReviewService(repo)

	review, err := svc.CreateReview(context.Background(), &CreateReviewInput{
		Name:    "Priya",
		Rating:  5,
		Message: "Perfect fit, delivered on time",
	})
	require.NoError(t, err)
	require.False(t, review.IsApproved)
	require.NotNil(t, created)
}

func TestCreateReviewValidation(t *testing.T) {
	svc := NewReviewService(&mockReviewRepo{})

	tests := []struct {
		name      string
		input     *CreateReviewInput
		wantField string
	}{
		{
			name:      "missing name",
			input:     &CreateReviewInput{Rating: 4, Message: "Good"},
			wantField: "name",
		},
		{
			name:      "rating too low",
			input:     &CreateReviewInput{Name: "Priya", Rating: 0, Message: "Good"},
			wantField: "rating",
		},
		{
			name:      "rating too high",
			input:     &CreateReviewInput{Name: "Priya", Rating: 6, Message: "Good"},
			wantField: "rating",
		},
		{
			name:      "missing message",
			input:     &CreateReviewInput{Name: "Priya", Rating: 4},
			wantField: "message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateReview(context.Background(), tt.input)
			require.Error(t, err)

			appErr := apperror.GetAppError(err)
			require.Equal(t, 400, appErr.Code)

			fields := make([]string, 0, len(appErr.Errors))
			for _, fe := range appErr.Errors {
				fields = append(fields, fe.Field)
			}
			require.Contains(t, fields, tt.wantField)
		})
	}
}

func TestListApprovedReviewsRoundsAverage(t *testing.T) {
	repo := &mockReviewRepo{
		listApprovedFn: func(ctx context.Context) ([]entity.Review, error) {
			return []entity.Review{{Rating: 5}, {Rating: 4}, {Rating: 4}}, nil
		},
		approvedSummaryFn: func(ctx context.Context) (int64, float64, error) {
			return 3, 4.333333, nil
		},
	}
	svc := NewReviewService(repo)

	result, err := svc.ListApprovedReviews(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(3), result.TotalReviews)
	require.Equal(t, 4.3, result.AverageRating)
	require.Len(t, result.Reviews, 3)
}

func TestSetApproved(t *testing.T) {
	stored := &entity.Review{ID: uuid.New(), Name: "Priya", Rating: 5, Message: "Great"}
	repo := &mockReviewRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Review, error) { return stored, nil },
		updateFn:  func(ctx context.Context, review *entity.Review) error { return nil },
	}
	svc := NewReviewService(repo)

	review, err := svc.SetApproved(context.Background(), stored.ID, true)
	require.NoError(t, err)
	require.True(t, review.IsApproved)
}

func TestSetApprovedNotFound(t *testing.T) {
	repo := &mockReviewRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Review, error) { return nil, nil },
	}
	svc := NewReviewService(repo)

	_, err := svc.SetApproved(context.Background(), uuid.New(), true)
	require.Error(t, err)
	require.Equal(t, 404, apperror.GetAppError(err).Code)
}
