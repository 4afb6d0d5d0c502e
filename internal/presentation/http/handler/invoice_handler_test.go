package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tanwartailor/tailor-api/internal/application/service"
	"github.com/tanwartailor/tailor-api/internal/domain/entity"
	"github.com/tanwartailor/tailor-api/internal/domain/repository"
	"github.com/tanwartailor/tailor-api/pkg/email"
	"github.com/tanwartailor/tailor-api/pkg/pdf"
)

type stubInvoiceRepo struct {
	invoices map[string]*entity.Invoice
}

func (s *stubInvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error { return nil }

func (s *stubInvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	return nil, nil
}

func (s *stubInvoiceRepo) GetByShareSlug(ctx context.Context, slug string) (*entity.Invoice, error) {
	return s.invoices[slug], nil
}

func (s *stubInvoiceRepo) Update(ctx context.Context, invoice *entity.Invoice, replaceItems bool) error {
	return nil
}

func (s *stubInvoiceRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (s *stubInvoiceRepo) List(ctx context.Context, params *repository.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	return nil, 0, nil
}

func (s *stubInvoiceRepo) ListWithCursor(ctx context.Context, params *repository.InvoiceCursorFilterParams) ([]entity.Invoice, error) {
	return nil, nil
}

func (s *stubInvoiceRepo) NextSequence(ctx context.Context, prefix string, year int) (int64, error) {
	return 1, nil
}

func (s *stubInvoiceRepo) Stats(ctx context.Context) (*repository.InvoiceStats, error) {
	return &repository.InvoiceStats{}, nil
}

type stubMailer struct{}

func (stubMailer) Send(to, subject, htmlBody string, attachments ...email.Attachment) error {
	return nil
}

func (stubMailer) ShopEmail() string { return "" }

type stubRenderer struct{}

func (stubRenderer) Render(doc *pdf.Document) ([]byte, error) { return []byte("%PDF"), nil }

func newTestRouter(repo *stubInvoiceRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := service.NewInvoiceService(repo, stubMailer{}, stubRenderer{}, "TT", "Tanwar Tailor")
	h := NewInvoiceHandler(svc)

	router := gin.New()
	router.GET("/api/v1/invoices/public/:slug", h.PublicView)
	router.POST("/api/v1/invoices", h.Create)
	return router
}

func TestPublicView(t *testing.T) {
	repo := &stubInvoiceRepo{
		invoices: map[string]*entity.Invoice{
			"abc123": {
				ID:            uuid.New(),
				InvoiceNumber: "TT-2026-001",
				CustomerName:  "Rahul Sharma",
				GrandTotal:    500,
			},
		},
	}
	router := newTestRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices/public/abc123", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			InvoiceNumber string `json:"invoice_number"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.True(t, body.Success)
	require.Equal(t, "TT-2026-001", body.Data.InvoiceNumber)
}

func TestPublicViewUnknownSlug(t *testing.T) {
	router := newTestRouter(&stubInvoiceRepo{invoices: map[string]*entity.Invoice{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices/public/nope", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateInvoiceValidationResponse(t *testing.T) {
	router := newTestRouter(&stubInvoiceRepo{})

	payload := `{
		"customer_name": "",
		"customer_phone": "12345",
		"items": [],
		"due_date": "2026-09-15"
	}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Success bool `json:"success"`
		Errors  []struct {
			Field string `json:"field"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.False(t, body.Success)

	fields := make([]string, 0, len(body.Errors))
	for _, fe := range body.Errors {
		fields = append(fields, fe.Field)
	}
	require.Contains(t, fields, "customer_name")
	require.Contains(t, fields, "customer_phone")
	require.Contains(t, fields, "items")
}

func TestCreateInvoiceBadDueDate(t *testing.T) {
	router := newTestRouter(&stubInvoiceRepo{})

	payload := `{
		"customer_name": "Rahul Sharma",
		"customer_phone": "9876543210",
		"items": [{"description": "Shirt", "quantity": 1, "price": 100}],
		"due_date": "15/09/2026"
	}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateInvoiceSuccess(t *testing.T) {
	router := newTestRouter(&stubInvoiceRepo{})

	payload := `{
		"customer_name": "Rahul Sharma",
		"customer_phone": "9876543210",
		"items": [{"description": "Shirt stitching", "quantity": 2, "price": 100}],
		"tax": 10,
		"due_date": "2026-09-15"
	}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Data struct {
			InvoiceNumber string  `json:"invoice_number"`
			ShareSlug     string  `json:"share_slug"`
			Subtotal      float64 `json:"subtotal"`
			GrandTotal    float64 `json:"grand_total"`
			Status        string  `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Contains(t, body.Data.InvoiceNumber, "TT-")
	require.Len(t, body.Data.ShareSlug, 32)
	require.Equal(t, 200.0, body.Data.Subtotal)
	require.Equal(t, 220.0, body.Data.GrandTotal)
	require.Equal(t, "Unpaid", body.Data.Status)
}
