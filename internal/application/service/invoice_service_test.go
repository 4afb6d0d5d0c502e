package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tanwartailor/tailor-api/internal/domain/entity"
	"github.com/tanwartailor/tailor-api/internal/domain/enum"
	"github.com/tanwartailor/tailor-api/internal/domain/repository"
	"github.com/tanwartailor/tailor-api/pkg/apperror"
	"github.com/tanwartailor/tailor-api/pkg/email"
	"github.com/tanwartailor/tailor-api/pkg/pdf"
)

type mockInvoiceRepo struct {
	createFn       func(ctx context.Context, invoice *entity.Invoice) error
	getByIDFn      func(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	getBySlugFn    func(ctx context.Context, slug string) (*entity.Invoice, error)
	updateFn       func(ctx context.Context, invoice *entity.Invoice, replaceItems bool) error
	deleteFn       func(ctx context.Context, id uuid.UUID) error
	listFn         func(ctx context.Context, params *repository.InvoiceFilterParams) ([]entity.Invoice, int64, error)
	listCursorFn   func(ctx context.Context, params *repository.InvoiceCursorFilterParams) ([]entity.Invoice, error)
	nextSequenceFn func(ctx context.Context, prefix string, year int) (int64, error)
	statsFn        func(ctx context.Context) (*repository.InvoiceStats, error)
}

func (m *mockInvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	return m.createFn(ctx, invoice)
}

func (m *mockInvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockInvoiceRepo) GetByShareSlug(ctx context.Context, slug string) (*entity.Invoice, error) {
	return m.getBySlugFn(ctx, slug)
}

func (m *mockInvoiceRepo) Update(ctx context.Context, invoice *entity.Invoice, replaceItems bool) error {
	return m.updateFn(ctx, invoice, replaceItems)
}

func (m *mockInvoiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func (m *mockInvoiceRepo) List(ctx context.Context, params *repository.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	return m.listFn(ctx, params)
}

func (m *mockInvoiceRepo) ListWithCursor(ctx context.Context, params *repository.InvoiceCursorFilterParams) ([]entity.Invoice, error) {
	return m.listCursorFn(ctx, params)
}

func (m *mockInvoiceRepo) NextSequence(ctx context.Context, prefix string, year int) (int64, error) {
	return m.nextSequenceFn(ctx, prefix, year)
}

func (m *mockInvoiceRepo) Stats(ctx context.Context) (*repository.InvoiceStats, error) {
	return m.statsFn(ctx)
}

type mockMailer struct {
	sendFn func(to, subject, htmlBody string, attachments ...email.Attachment) error
	shop   string
}

func (m *mockMailer) Send(to, subject, htmlBody string, attachments ...email.Attachment) error {
	if m.sendFn == nil {
		return nil
	}
	return m.sendFn(to, subject, htmlBody, attachments...)
}

func (m *mockMailer) ShopEmail() string { return m.shop }

type mockRenderer struct {
	renderFn func(doc *pdf.Document) ([]byte, error)
}

func (m *mockRenderer) Render(doc *pdf.Document) ([]byte, error) {
	if m.renderFn == nil {
		return []byte("%PDF"), nil
	}
	return m.renderFn(doc)
}

func newTestInvoiceService(repo *mockInvoiceRepo) *InvoiceService {
	return NewInvoiceService(repo, &mockMailer{}, &mockRenderer{}, "TT", "Tanwar Tailor")
}

func validCreateInput() *CreateInvoiceInput {
	return &CreateInvoiceInput{
		CustomerName:  "Rahul Sharma",
		CustomerPhone: "9876543210",
		Items: []InvoiceItemInput{
			{Description: "Shirt stitching", Quantity: 2, Price: 100},
		},
		Tax:     10,
		Status:  enum.InvoiceStatusUnpaid,
		DueDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateInvoiceAssignsNumberAndSlug(t *testing.T) {
	var seq int64
	repo := &mockInvoiceRepo{
		nextSequenceFn: func(ctx context.Context, prefix string, year int) (int64, error) {
			require.Equal(t, "TT", prefix)
			seq++
			return seq, nil
		},
		createFn: func(ctx context.Context, invoice *entity.Invoice) error { return nil },
	}
	svc := newTestInvoiceService(repo)

	year := time.Now().Year()

	first, err := svc.CreateInvoice(context.Background(), validCreateInput())
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("TT-%d-001", year), first.InvoiceNumber)
	require.Len(t, first.ShareSlug, 32)

	second, err := svc.CreateInvoice(context.Background(), validCreateInput())
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("TT-%d-002", year), second.InvoiceNumber)
	require.NotEqual(t, first.ShareSlug, second.ShareSlug)
}

func TestCreateInvoiceDerivesTotals(t *testing.T) {
	repo := &mockInvoiceRepo{
		nextSequenceFn: func(ctx context.Context, prefix string, year int) (int64, error) { return 1, nil },
		createFn:       func(ctx context.Context, invoice *entity.Invoice) error { return nil },
	}
	svc := newTestInvoiceService(repo)

	invoice, err := svc.CreateInvoice(context.Background(), validCreateInput())
	require.NoError(t, err)
	require.Equal(t, 200.0, invoice.Subtotal)
	require.Equal(t, 220.0, invoice.GrandTotal)
	require.Equal(t, 0.0, invoice.PaidAmount)
	require.Equal(t, enum.InvoiceStatusUnpaid, invoice.Status)
}

func TestCreateInvoicePaidStatusSnapsPaidAmount(t *testing.T) {
	repo := &mockInvoiceRepo{
		nextSequenceFn: func(ctx context.Context, prefix string, year int) (int64, error) { return 1, nil },
		createFn:       func(ctx context.Context, invoice *entity.Invoice) error { return nil },
	}
	svc := newTestInvoiceService(repo)

	input := validCreateInput()
	input.Status = enum.InvoiceStatusPaid
	input.PaidAmount = 7 // ignored, Paid always means settled in full

	invoice, err := svc.CreateInvoice(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, invoice.GrandTotal, invoice.PaidAmount)
}

func TestCreateInvoiceValidation(t *testing.T) {
	repo := &mockInvoiceRepo{
		nextSequenceFn: func(ctx context.Context, prefix string, year int) (int64, error) { return 1, nil },
		createFn:       func(ctx context.Context, invoice *entity.Invoice) error { return nil },
	}
	svc := newTestInvoiceService(repo)

	tests := []struct {
		name      string
		mutate    func(input *CreateInvoiceInput)
		wantField string
	}{
		{
			name:      "missing name",
			mutate:    func(in *CreateInvoiceInput) { in.CustomerName = "" },
			wantField: "customer_name",
		},
		{
			name:      "bad phone",
			mutate:    func(in *CreateInvoiceInput) { in.CustomerPhone = "12345" },
			wantField: "customer_phone",
		},
		{
			name:      "no items",
			mutate:    func(in *CreateInvoiceInput) { in.Items = nil },
			wantField: "items",
		},
		{
			name:      "zero quantity",
			mutate:    func(in *CreateInvoiceInput) { in.Items[0].Quantity = 0 },
			wantField: "items[0].quantity",
		},
		{
			name:      "tax out of range",
			mutate:    func(in *CreateInvoiceInput) { in.Tax = 120 },
			wantField: "tax",
		},
		{
			name:      "missing due date",
			mutate:    func(in *CreateInvoiceInput) { in.DueDate = time.Time{} },
			wantField: "due_date",
		},
		{
			name: "partial paid amount above grand total",
			mutate: func(in *CreateInvoiceInput) {
				in.Status = enum.InvoiceStatusPartial
				in.PaidAmount = 5000
			},
			wantField: "paid_amount",
		},
		{
			name: "negative partial paid amount",
			mutate: func(in *CreateInvoiceInput) {
				in.Status = enum.InvoiceStatusPartial
				in.PaidAmount = -1
			},
			wantField: "paid_amount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validCreateInput()
			tt.mutate(input)

			_, err := svc.CreateInvoice(context.Background(), input)
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

func TestCreateInvoiceRetriesOnceOnConflict(t *testing.T) {
	var attempts int
	repo := &mockInvoiceRepo{
		nextSequenceFn: func(ctx context.Context, prefix string, year int) (int64, error) {
			return int64(attempts + 1), nil
		},
		createFn: func(ctx context.Context, invoice *entity.Invoice) error {
			attempts++
			if attempts == 1 {
				return apperror.NewConflictError("duplicate")
			}
			return nil
		},
	}
	svc := newTestInvoiceService(repo)

	invoice, err := svc.CreateInvoice(context.Background(), validCreateInput())
	require.NoError(t, err)
	require.Equal(t, 2, attempts)
	require.Contains(t, invoice.InvoiceNumber, "-002")
}

func TestMarkPaid(t *testing.T) {
	stored := &entity.Invoice{
		ID:         uuid.New(),
		GrandTotal: 500,
		PaidAmount: 120,
		Status:     enum.InvoiceStatusPartial,
	}
	var saved *entity.Invoice
	repo := &mockInvoiceRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) { return stored, nil },
		updateFn: func(ctx context.Context, invoice *entity.Invoice, replaceItems bool) error {
			require.False(t, replaceItems)
			saved = invoice
			return nil
		},
	}
	svc := newTestInvoiceService(repo)

	invoice, err := svc.MarkPaid(context.Background(), stored.ID)
	require.NoError(t, err)
	require.Equal(t, enum.InvoiceStatusPaid, invoice.Status)
	require.Equal(t, 500.0, invoice.PaidAmount)
	require.NotNil(t, saved)
}

func TestMarkPaidNotFound(t *testing.T) {
	repo := &mockInvoiceRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) { return nil, nil },
	}
	svc := newTestInvoiceService(repo)

	_, err := svc.MarkPaid(context.Background(), uuid.New())
	require.Error(t, err)
	require.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestUpdateInvoiceStatusCoupling(t *testing.T) {
	makeStored := func() *entity.Invoice {
		return &entity.Invoice{
			ID:         uuid.New(),
			GrandTotal: 1000,
			PaidAmount: 400,
			Status:     enum.InvoiceStatusPartial,
			Items: []entity.InvoiceItem{
				{Description: "Suit", Quantity: 1, Price: 1000, Total: 1000},
			},
		}
	}

	tests := []struct {
		name       string
		status     enum.InvoiceStatus
		paidAmount *float64
		wantPaid   float64
	}{
		{name: "to paid", status: enum.InvoiceStatusPaid, wantPaid: 1000},
		{name: "to unpaid", status: enum.InvoiceStatusUnpaid, wantPaid: 0},
		{name: "partial keeps supplied amount", status: enum.InvoiceStatusPartial, paidAmount: floatPtr(250), wantPaid: 250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stored := makeStored()
			repo := &mockInvoiceRepo{
				getByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) { return stored, nil },
				updateFn:  func(ctx context.Context, invoice *entity.Invoice, replaceItems bool) error { return nil },
			}
			svc := newTestInvoiceService(repo)

			status := tt.status
			invoice, err := svc.UpdateInvoice(context.Background(), stored.ID, &UpdateInvoiceInput{
				Status:     &status,
				PaidAmount: tt.paidAmount,
			})
			require.NoError(t, err)
			require.Equal(t, tt.status, invoice.Status)
			require.Equal(t, tt.wantPaid, invoice.PaidAmount)
		})
	}
}

func TestUpdateInvoiceRecomputesTotalsOnItemChange(t *testing.T) {
	stored := &entity.Invoice{
		ID:         uuid.New(),
		Subtotal:   1000,
		GrandTotal: 1000,
		Status:     enum.InvoiceStatusUnpaid,
		Items: []entity.InvoiceItem{
			{Description: "Suit", Quantity: 1, Price: 1000, Total: 1000},
		},
	}
	repo := &mockInvoiceRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) { return stored, nil },
		updateFn: func(ctx context.Context, invoice *entity.Invoice, replaceItems bool) error {
			require.True(t, replaceItems)
			return nil
		},
	}
	svc := newTestInvoiceService(repo)

	invoice, err := svc.UpdateInvoice(context.Background(), stored.ID, &UpdateInvoiceInput{
		Items: []InvoiceItemInput{
			{Description: "Sherwani", Quantity: 2, Price: 300},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 600.0, invoice.Subtotal)
	require.Equal(t, 600.0, invoice.GrandTotal)
	require.Len(t, invoice.Items, 1)
	require.Equal(t, "Sherwani", invoice.Items[0].Description)
}

func TestUpdateInvoiceRejectsEmptyItems(t *testing.T) {
	stored := &entity.Invoice{
		ID:         uuid.New(),
		Subtotal:   1000,
		GrandTotal: 1000,
		Status:     enum.InvoiceStatusUnpaid,
		Items: []entity.InvoiceItem{
			{Description: "Suit", Quantity: 1, Price: 1000, Total: 1000},
		},
	}
	repo := &mockInvoiceRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) { return stored, nil },
		updateFn: func(ctx context.Context, invoice *entity.Invoice, replaceItems bool) error {
			t.Fatal("update should not be called")
			return nil
		},
	}
	svc := newTestInvoiceService(repo)

	_, err := svc.UpdateInvoice(context.Background(), stored.ID, &UpdateInvoiceInput{
		Items: []InvoiceItemInput{},
	})
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	require.Equal(t, 400, appErr.Code)
	require.Len(t, appErr.Errors, 1)
	require.Equal(t, "items", appErr.Errors[0].Field)
}

func TestSendInvoiceEmail(t *testing.T) {
	customerEmail := "rahul@example.com"
	stored := &entity.Invoice{
		ID:            uuid.New(),
		InvoiceNumber: "TT-2026-007",
		CustomerName:  "Rahul Sharma",
		CustomerEmail: &customerEmail,
		GrandTotal:    500,
		DueDate:       time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
	}

	var sentTo, sentSubject string
	var sentAttachments []email.Attachment
	mailer := &mockMailer{
		sendFn: func(to, subject, htmlBody string, attachments ...email.Attachment) error {
			sentTo = to
			sentSubject = subject
			sentAttachments = attachments
			return nil
		},
	}
	repo := &mockInvoiceRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) { return stored, nil },
	}
	svc := NewInvoiceService(repo, mailer, &mockRenderer{}, "TT", "Tanwar Tailor")

	err := svc.SendInvoiceEmail(context.Background(), stored.ID)
	require.NoError(t, err)
	require.Equal(t, customerEmail, sentTo)
	require.Contains(t, sentSubject, "TT-2026-007")
	require.Len(t, sentAttachments, 1)
	require.Equal(t, "TT-2026-007.pdf", sentAttachments[0].Filename)
}

func TestSendInvoiceEmailWithoutAddress(t *testing.T) {
	stored := &entity.Invoice{ID: uuid.New(), InvoiceNumber: "TT-2026-008"}
	repo := &mockInvoiceRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) { return stored, nil },
	}
	svc := newTestInvoiceService(repo)

	err := svc.SendInvoiceEmail(context.Background(), stored.ID)
	require.Error(t, err)
	require.Equal(t, 400, apperror.GetAppError(err).Code)
}

func floatPtr(v float64) *float64 { return &v }
