package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tanwartailor/tailor-api/internal/application/service"
	"github.com/tanwartailor/tailor-api/internal/domain/enum"
	domainRepo "github.com/tanwartailor/tailor-api/internal/domain/repository"
	"github.com/tanwartailor/tailor-api/internal/presentation/http/dto/request"
	"github.com/tanwartailor/tailor-api/internal/presentation/http/dto/response"
	"github.com/tanwartailor/tailor-api/pkg/apperror"
	"github.com/tanwartailor/tailor-api/pkg/pagination"
)

const dateLayout = "2006-01-02"

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Create handles creating an invoice
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	var fieldErrors []apperror.FieldError

	status := enum.InvoiceStatusUnpaid
	if req.Status != "" {
		parsed, ok := enum.ParseInvoiceStatus(req.Status)
		if !ok {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "status", Message: "invalid status"})
		} else {
			status = parsed
		}
	}

	var dueDate time.Time
	if req.DueDate == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "due_date", Message: "due date is required"})
	} else {
		parsed, err := time.Parse(dateLayout, req.DueDate)
		if err != nil {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "due_date", Message: "due date must be in YYYY-MM-DD format"})
		} else {
			dueDate = parsed
		}
	}

	if len(fieldErrors) > 0 {
		response.ValidationError(c, fieldErrors)
		return
	}

	items := make([]service.InvoiceItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.InvoiceItemInput{
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       item.Price,
		}
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), &service.CreateInvoiceInput{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerEmail:   req.CustomerEmail,
		CustomerAddress: req.CustomerAddress,
		Items:           items,
		Tax:             req.Tax,
		Discount:        req.Discount,
		Status:          status,
		PaidAmount:      req.PaidAmount,
		DueDate:         dueDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", invoice)
}

// Get handles getting a single invoice
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// PublicView handles the unauthenticated share-link view of an invoice
func (h *InvoiceHandler) PublicView(c *gin.Context) {
	slug := c.Param("slug")

	invoice, err := h.invoiceService.GetInvoiceByShareSlug(c.Request.Context(), slug)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// Update handles a partial invoice update
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req request.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	var fieldErrors []apperror.FieldError

	input := &service.UpdateInvoiceInput{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerEmail:   req.CustomerEmail,
		CustomerAddress: req.CustomerAddress,
		Tax:             req.Tax,
		Discount:        req.Discount,
		PaidAmount:      req.PaidAmount,
	}

	if req.Status != nil {
		parsed, ok := enum.ParseInvoiceStatus(*req.Status)
		if !ok {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "status", Message: "invalid status"})
		} else {
			input.Status = &parsed
		}
	}
	if req.DueDate != nil {
		parsed, err := time.Parse(dateLayout, *req.DueDate)
		if err != nil {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "due_date", Message: "due date must be in YYYY-MM-DD format"})
		} else {
			input.DueDate = &parsed
		}
	}
	if req.Items != nil {
		items := make([]service.InvoiceItemInput, len(req.Items))
		for i, item := range req.Items {
			items[i] = service.InvoiceItemInput{
				Description: item.Description,
				Quantity:    item.Quantity,
				Price:       item.Price,
			}
		}
		input.Items = items
	}

	if len(fieldErrors) > 0 {
		response.ValidationError(c, fieldErrors)
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice updated successfully", invoice)
}

// MarkPaid handles the mark-as-paid shortcut
func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.MarkPaid(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice marked as paid", invoice)
}

// Delete handles deleting an invoice
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice deleted successfully", nil)
}

// List handles listing invoices (supports both page-based and cursor-based pagination)
func (h *InvoiceHandler) List(c *gin.Context) {
	search := c.Query("search")

	var status *enum.InvoiceStatus
	if statusStr := c.Query("status"); statusStr != "" {
		parsed, ok := enum.ParseInvoiceStatus(statusStr)
		if !ok {
			response.BadRequest(c, "Invalid status filter")
			return
		}
		status = &parsed
	}

	// Check if cursor-based pagination is requested
	if cursor := c.Query("cursor"); cursor != "" || c.Query("direction") != "" {
		h.listWithCursor(c, search, status)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	params := &domainRepo.InvoiceFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search: search,
		Status: status,
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// listWithCursor handles listing invoices with cursor-based pagination
func (h *InvoiceHandler) listWithCursor(c *gin.Context, search string, status *enum.InvoiceStatus) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	cursor := c.Query("cursor")
	direction := c.DefaultQuery("direction", "next")

	params := &domainRepo.InvoiceCursorFilterParams{
		Cursor: &pagination.CursorParams{
			Cursor:    cursor,
			Direction: pagination.CursorDirection(direction),
			Limit:     limit,
		},
		Search: search,
		Status: status,
	}

	result, err := h.invoiceService.ListInvoicesWithCursor(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, 200, "Invoices retrieved successfully", result)
}

// Stats handles the aggregate invoice statistics
func (h *InvoiceHandler) Stats(c *gin.Context) {
	stats, err := h.invoiceService.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice stats retrieved successfully", stats)
}

// SendEmail handles mailing the invoice PDF to the customer
func (h *InvoiceHandler) SendEmail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.invoiceService.SendInvoiceEmail(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice email sent successfully", nil)
}
