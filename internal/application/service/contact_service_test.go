package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tanwartailor/tailor-api/internal/domain/entity"
	"github.com/tanwartailor/tailor-api/internal/domain/repository"
	"github.com/tanwartailor/tailor-api/pkg/apperror"
	"github.com/tanwartailor/tailor-api/pkg/email"
)

type mockContactRepo struct {
	createFn  func(ctx context.Context, contact *entity.Contact) error
	getByIDFn func(ctx context.Context, id uuid.UUID) (*entity.Contact, error)
	updateFn  func(ctx context.Context, contact *entity.Contact) error
	deleteFn  func(ctx context.Context, id uuid.UUID) error
	listFn    func(ctx context.Context, params *repository.ContactFilterParams) ([]entity.Contact, int64, error)
	statsFn   func(ctx context.Context) (*repository.ContactStats, error)
}

func (m *mockContactRepo) Create(ctx context.Context, contact *entity.Contact) error {
	return m.createFn(ctx, contact)
}

func (m *mockContactRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Contact, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockContactRepo) Update(ctx context.Context, contact *entity.Contact) error {
	return m.updateFn(ctx, contact)
}

func (m *mockContactRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func (m *mockContactRepo) List(ctx context.Context, params *repository.ContactFilterParams) ([]entity.Contact, int64, error) {
	return m.listFn(ctx, params)
}

func (m *mockContactRepo) Stats(ctx context.Context) (*repository.ContactStats, error) {
	return m.statsFn(ctx)
}

func TestCreateContactNotifiesShop(t *testing.T) {
	repo := &mockContactRepo{
		createFn: func(ctx context.Context, contact *entity.Contact) error { return nil },
	}

	var mu sync.Mutex
	var sentTo string
	done := make(chan struct{})
	mailer := &mockMailer{
		shop: "shop@tanwartailor.in",
		sendFn: func(to, subject, htmlBody string, attachments ...email.Attachment) error {
			mu.Lock()
			sentTo = to
			mu.Unlock()
			close(done)
			return nil
		},
	}
	svc := NewContactService(repo, mailer)

	contact, err := svc.CreateContact(context.Background(), &CreateContactInput{
		Name:    "Anita",
		Email:   "anita@example.com",
		Message: "Do you stitch lehengas?",
	})
	require.NoError(t, err)
	require.False(t, contact.IsRead)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected notification email to be sent")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, "shop@tanwartailor.in", sentTo)
}

func TestCreateContactSurvivesMailFailure(t *testing.T) {
	repo := &mockContactRepo{
		createFn: func(ctx context.Context, contact *entity.Contact) error { return nil },
	}
	mailer := &mockMailer{
		shop: "shop@tanwartailor.in",
		sendFn: func(to, subject, htmlBody string, attachments ...email.Attachment) error {
			return context.DeadlineExceeded
		},
	}
	svc := NewContactService(repo, mailer)

	_, err := svc.CreateContact(context.Background(), &CreateContactInput{
		Name:    "Anita",
		Email:   "anita@example.com",
		Message: "Hello",
	})
	require.NoError(t, err)
}

func TestCreateContactValidation(t *testing.T) {
	svc := NewContactService(&mockContactRepo{}, &mockMailer{})

	tests := []struct {
		name      string
		input     *CreateContactInput
		wantField string
	}{
		{
			name:      "missing name",
			input:     &CreateContactInput{Email: "a@b.com", Message: "hi"},
			wantField: "name",
		},
		{
			name:      "bad email",
			input:     &CreateContactInput{Name: "Anita", Email: "not-an-email", Message: "hi"},
			wantField: "email",
		},
		{
			name:      "bad phone",
			input:     &CreateContactInput{Name: "Anita", Email: "a@b.com", Phone: "12345", Message: "hi"},
			wantField: "phone",
		},
		{
			name:      "missing message",
			input:     &CreateContactInput{Name: "Anita", Email: "a@b.com"},
			wantField: "message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateContact(context.Background(), tt.input)
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

func TestSetRead(t *testing.T) {
	stored := &entity.Contact{ID: uuid.New(), Name: "Anita", IsRead: false}
	repo := &mockContactRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Contact, error) { return stored, nil },
		updateFn:  func(ctx context.Context, contact *entity.Contact) error { return nil },
	}
	svc := NewContactService(repo, &mockMailer{})

	contact, err := svc.SetRead(context.Background(), stored.ID, true)
	require.NoError(t, err)
	require.True(t, contact.IsRead)
}
