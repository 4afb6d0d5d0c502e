package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tanwartailor/tailor-api/internal/domain/entity"
	"github.com/tanwartailor/tailor-api/internal/domain/enum"
	"github.com/tanwartailor/tailor-api/internal/domain/repository"
	"github.com/tanwartailor/tailor-api/pkg/apperror"
	"github.com/tanwartailor/tailor-api/pkg/email"
	"github.com/tanwartailor/tailor-api/pkg/pagination"
	"github.com/tanwartailor/tailor-api/pkg/pdf"
	"github.com/tanwartailor/tailor-api/pkg/utils"
	"github.com/tanwartailor/tailor-api/pkg/validation"
)

// Mailer sends outbound mail
type Mailer interface {
	Send(to, subject, htmlBody string, attachments ...email.Attachment) error
	ShopEmail() string
}

// PDFRenderer renders an invoice document to PDF bytes
type PDFRenderer interface {
	Render(doc *pdf.Document) ([]byte, error)
}

// InvoiceService handles the invoice lifecycle: numbering, derived totals,
// payment status transitions and the public share view
type InvoiceService struct {
	invoiceRepo  repository.InvoiceRepository
	mailer       Mailer
	renderer     PDFRenderer
	numberPrefix string
	shopName     string
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(invoiceRepo repository.InvoiceRepository, mailer Mailer, renderer PDFRenderer, numberPrefix, shopName string) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		mailer:       mailer,
		renderer:     renderer,
		numberPrefix: numberPrefix,
		shopName:     shopName,
	}
}

// InvoiceItemInput represents one line item as supplied by the caller.
// Totals are never taken from the caller, they are always recomputed.
type InvoiceItemInput struct {
	Description string
	Quantity    int
	Price       float64
}

// CreateInvoiceInput represents the create invoice input
type CreateInvoiceInput struct {
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   *string
	CustomerAddress *string
	Items           []InvoiceItemInput
	Tax             float64
	Discount        float64
	Status          enum.InvoiceStatus
	PaidAmount      float64
	DueDate         time.Time
}

// CreateInvoice validates the input, derives the financial state, assigns an
// invoice number and share slug, and persists the new invoice.
func (s *InvoiceService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*entity.Invoice, error) {
	fieldErrors := validateInvoiceFields(input.CustomerName, input.CustomerPhone, input.CustomerEmail, input.Items, input.Tax, input.Discount, input.DueDate, input.Status)

	items := make([]entity.InvoiceItem, len(input.Items))
	for i, item := range input.Items {
		items[i] = entity.InvoiceItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       item.Price,
		}
	}
	subtotal, grandTotal, normalized := ComputeTotals(items, input.Tax, input.Discount)

	paidAmount, fieldErrors := resolvePaidAmount(input.Status, input.PaidAmount, grandTotal, fieldErrors)

	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	invoice := &entity.Invoice{
		CustomerName:    input.CustomerName,
		CustomerPhone:   validation.NormalizeIndianMobile(input.CustomerPhone),
		CustomerEmail:   input.CustomerEmail,
		CustomerAddress: input.CustomerAddress,
		Subtotal:        subtotal,
		Tax:             input.Tax,
		Discount:        input.Discount,
		GrandTotal:      grandTotal,
		PaidAmount:      paidAmount,
		Status:          input.Status,
		DueDate:         input.DueDate,
		Items:           normalized,
	}

	// A duplicate key here means we lost a race on the number or drew a
	// colliding slug, both fixed by drawing fresh identifiers once.
	for attempt := 0; attempt < 2; attempt++ {
		if err := s.assignIdentifiers(ctx, invoice); err != nil {
			return nil, err
		}
		err := s.invoiceRepo.Create(ctx, invoice)
		if err == nil {
			return invoice, nil
		}
		if !apperror.IsConflict(err) || attempt == 1 {
			return nil, err
		}
	}
	return invoice, nil
}

func (s *InvoiceService) assignIdentifiers(ctx context.Context, invoice *entity.Invoice) error {
	year := time.Now().Year()
	seq, err := s.invoiceRepo.NextSequence(ctx, s.numberPrefix, year)
	if err != nil {
		return err
	}
	invoice.InvoiceNumber = fmt.Sprintf("%s-%d-%03d", s.numberPrefix, year, seq)

	slug, err := utils.GenerateShareSlug()
	if err != nil {
		return err
	}
	invoice.ShareSlug = slug
	return nil
}

// GetInvoice retrieves an invoice by ID
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// GetInvoiceByShareSlug retrieves an invoice through its public share slug.
// An unknown slug is indistinguishable from a deleted invoice.
func (s *InvoiceService) GetInvoiceByShareSlug(ctx context.Context, slug string) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByShareSlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// UpdateInvoiceInput represents the update invoice input. Nil fields are
// left unchanged; a non-nil Items slice replaces the line items wholesale.
type UpdateInvoiceInput struct {
	CustomerName    *string
	CustomerPhone   *string
	CustomerEmail   *string
	CustomerAddress *string
	Items           []InvoiceItemInput
	Tax             *float64
	Discount        *float64
	Status          *enum.InvoiceStatus
	PaidAmount      *float64
	DueDate         *time.Time
}

// UpdateInvoice applies a partial update, re-deriving totals when items, tax
// or discount change and reconciling paid amount with any status transition.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id uuid.UUID, input *UpdateInvoiceInput) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	var fieldErrors []apperror.FieldError

	if input.CustomerName != nil {
		if *input.CustomerName == "" {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "customer_name", Message: "customer name is required"})
		} else {
			invoice.CustomerName = *input.CustomerName
		}
	}
	if input.CustomerPhone != nil {
		if !validation.IsValidIndianMobile(*input.CustomerPhone) {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "customer_phone", Message: "invalid mobile number"})
		} else {
			invoice.CustomerPhone = validation.NormalizeIndianMobile(*input.CustomerPhone)
		}
	}
	if input.CustomerEmail != nil {
		if *input.CustomerEmail != "" && !validation.IsValidEmail(*input.CustomerEmail) {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "customer_email", Message: "invalid email address"})
		} else {
			invoice.CustomerEmail = input.CustomerEmail
		}
	}
	if input.CustomerAddress != nil {
		invoice.CustomerAddress = input.CustomerAddress
	}
	if input.DueDate != nil {
		if input.DueDate.IsZero() {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "due_date", Message: "due date is required"})
		} else {
			invoice.DueDate = *input.DueDate
		}
	}
	if input.Tax != nil {
		if *input.Tax < 0 || *input.Tax > 100 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "tax", Message: "tax must be between 0 and 100"})
		} else {
			invoice.Tax = *input.Tax
		}
	}
	if input.Discount != nil {
		if *input.Discount < 0 || *input.Discount > 100 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "discount", Message: "discount must be between 0 and 100"})
		} else {
			invoice.Discount = *input.Discount
		}
	}

	replaceItems := input.Items != nil
	if replaceItems {
		if len(input.Items) == 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "items", Message: "at least one item is required"})
		}
		fieldErrors = append(fieldErrors, validateItems(input.Items)...)
		items := make([]entity.InvoiceItem, len(input.Items))
		for i, item := range input.Items {
			items[i] = entity.InvoiceItem{
				InvoiceID:   invoice.ID,
				Description: item.Description,
				Quantity:    item.Quantity,
				Price:       item.Price,
			}
		}
		invoice.Items = items
	}

	// Totals are re-derived only when the financial inputs changed, never
	// on a bare status or paid-amount update.
	if replaceItems || input.Tax != nil || input.Discount != nil {
		invoice.Subtotal, invoice.GrandTotal, invoice.Items = ComputeTotals(invoice.Items, invoice.Tax, invoice.Discount)
	}

	if input.PaidAmount != nil {
		invoice.PaidAmount = *input.PaidAmount
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "status", Message: "invalid status"})
		} else {
			invoice.Status = *input.Status
			invoice.PaidAmount, fieldErrors = resolvePaidAmount(invoice.Status, invoice.PaidAmount, invoice.GrandTotal, fieldErrors)
		}
	} else if input.PaidAmount != nil {
		if invoice.PaidAmount < 0 || invoice.PaidAmount > invoice.GrandTotal {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "paid_amount", Message: "paid amount must be between 0 and the grand total"})
		}
	}

	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	if err := s.invoiceRepo.Update(ctx, invoice, replaceItems); err != nil {
		return nil, err
	}
	return invoice, nil
}

// MarkPaid settles the invoice in full: status becomes Paid and the paid
// amount snaps to the current grand total regardless of its prior value.
func (s *InvoiceService) MarkPaid(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	invoice.Status = enum.InvoiceStatusPaid
	invoice.PaidAmount = invoice.GrandTotal

	if err := s.invoiceRepo.Update(ctx, invoice, false); err != nil {
		return nil, err
	}
	return invoice, nil
}

// DeleteInvoice removes an invoice and its line items permanently
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if invoice == nil {
		return apperror.NewNotFoundError("Invoice")
	}
	return s.invoiceRepo.Delete(ctx, id)
}

// ListInvoices lists invoices ordered by creation time descending
func (s *InvoiceService) ListInvoices(ctx context.Context, params *repository.InvoiceFilterParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// ListInvoicesWithCursor lists invoices using cursor-based pagination
func (s *InvoiceService) ListInvoicesWithCursor(ctx context.Context, params *repository.InvoiceCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Invoice], error) {
	invoices, err := s.invoiceRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, err
	}

	hasPrev := params.Cursor.Cursor != ""

	cursorPag, items := pagination.NewCursorPagination(invoices, params.Cursor.Limit,
		func(inv entity.Invoice) string { return inv.ID.String() },
		func(inv entity.Invoice) time.Time { return inv.CreatedAt },
	)
	cursorPag.HasPrev = hasPrev

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// GetStats aggregates the financial state over the whole collection
func (s *InvoiceService) GetStats(ctx context.Context) (*repository.InvoiceStats, error) {
	return s.invoiceRepo.Stats(ctx)
}

// SendInvoiceEmail renders the invoice as a PDF and mails it to the
// customer. The invoice itself is not mutated.
func (s *InvoiceService) SendInvoiceEmail(ctx context.Context, id uuid.UUID) error {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if invoice == nil {
		return apperror.NewNotFoundError("Invoice")
	}
	if invoice.CustomerEmail == nil || *invoice.CustomerEmail == "" {
		return apperror.NewBadRequestError("Invoice has no customer email")
	}

	pdfBytes, err := s.renderer.Render(invoiceDocument(invoice))
	if err != nil {
		return fmt.Errorf("failed to render invoice PDF: %w", err)
	}

	subject := fmt.Sprintf("Invoice %s from %s", invoice.InvoiceNumber, s.shopName)
	body := fmt.Sprintf(
		"<p>Dear %s,</p><p>Please find attached invoice <strong>%s</strong> for Rs. %.2f, due on %s.</p><p>Thank you for your business!</p><p>%s</p>",
		invoice.CustomerName,
		invoice.InvoiceNumber,
		invoice.GrandTotal,
		invoice.DueDate.Format("02 Jan 2006"),
		s.shopName,
	)

	attachment := email.Attachment{
		Filename: invoice.InvoiceNumber + ".pdf",
		Data:     pdfBytes,
	}
	if err := s.mailer.Send(*invoice.CustomerEmail, subject, body, attachment); err != nil {
		return fmt.Errorf("failed to send invoice email: %w", err)
	}
	return nil
}

func invoiceDocument(invoice *entity.Invoice) *pdf.Document {
	lines := make([]pdf.Line, len(invoice.Items))
	for i, item := range invoice.Items {
		lines[i] = pdf.Line{
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Total:       item.Total,
		}
	}

	doc := &pdf.Document{
		Number:          invoice.InvoiceNumber,
		CustomerName:    invoice.CustomerName,
		CustomerPhone:   invoice.CustomerPhone,
		Items:           lines,
		Subtotal:        invoice.Subtotal,
		TaxPercent:      invoice.Tax,
		DiscountPercent: invoice.Discount,
		GrandTotal:      invoice.GrandTotal,
		PaidAmount:      invoice.PaidAmount,
		Status:          invoice.Status.String(),
		DueDate:         invoice.DueDate,
		IssuedAt:        invoice.CreatedAt,
	}
	if invoice.CustomerAddress != nil {
		doc.CustomerAddress = *invoice.CustomerAddress
	}
	return doc
}

// resolvePaidAmount reconciles the paid amount with a status transition.
// Paid snaps to the grand total, Unpaid to zero; Partial keeps the supplied
// amount but rejects values outside [0, grandTotal].
func resolvePaidAmount(status enum.InvoiceStatus, paidAmount, grandTotal float64, fieldErrors []apperror.FieldError) (float64, []apperror.FieldError) {
	switch status {
	case enum.InvoiceStatusPaid:
		return grandTotal, fieldErrors
	case enum.InvoiceStatusUnpaid:
		return 0, fieldErrors
	default:
		if paidAmount < 0 || paidAmount > grandTotal {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "paid_amount", Message: "paid amount must be between 0 and the grand total"})
		}
		return paidAmount, fieldErrors
	}
}

func validateInvoiceFields(name, phone string, emailAddr *string, items []InvoiceItemInput, tax, discount float64, dueDate time.Time, status enum.InvoiceStatus) []apperror.FieldError {
	var fieldErrors []apperror.FieldError

	if name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "customer_name", Message: "customer name is required"})
	}
	if phone == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "customer_phone", Message: "customer phone is required"})
	} else if !validation.IsValidIndianMobile(phone) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "customer_phone", Message: "invalid mobile number"})
	}
	if emailAddr != nil && *emailAddr != "" && !validation.IsValidEmail(*emailAddr) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "customer_email", Message: "invalid email address"})
	}
	if len(items) == 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "items", Message: "at least one item is required"})
	} else {
		fieldErrors = append(fieldErrors, validateItems(items)...)
	}
	if tax < 0 || tax > 100 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "tax", Message: "tax must be between 0 and 100"})
	}
	if discount < 0 || discount > 100 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "discount", Message: "discount must be between 0 and 100"})
	}
	if dueDate.IsZero() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "due_date", Message: "due date is required"})
	}
	if !status.IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "status", Message: "invalid status"})
	}

	return fieldErrors
}

func validateItems(items []InvoiceItemInput) []apperror.FieldError {
	var fieldErrors []apperror.FieldError
	for i, item := range items {
		if item.Description == "" {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: fmt.Sprintf("items[%d].description", i), Message: "description is required"})
		}
		if item.Quantity < 1 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: fmt.Sprintf("items[%d].quantity", i), Message: "quantity must be at least 1"})
		}
		if item.Price < 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: fmt.Sprintf("items[%d].price", i), Message: "price cannot be negative"})
		}
	}
	return fieldErrors
}
