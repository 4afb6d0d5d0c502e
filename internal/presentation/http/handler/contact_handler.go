package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tanwartailor/tailor-api/internal/application/service"
	domainRepo "github.com/tanwartailor/tailor-api/internal/domain/repository"
	"github.com/tanwartailor/tailor-api/internal/presentation/http/dto/request"
	"github.com/tanwartailor/tailor-api/internal/presentation/http/dto/response"
	"github.com/tanwartailor/tailor-api/pkg/pagination"
)

// ContactHandler handles contact-related HTTP requests
type ContactHandler struct {
	contactService *service.ContactService
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Create handles the public contact-form submission
func (h *ContactHandler) Create(c *gin.Context) {
	var req request.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	contact, err := h.contactService.CreateContact(c.Request.Context(), &service.CreateContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Thank you for reaching out, we will get back to you soon", contact)
}

// List handles listing contacts for the admin inbox
func (h *ContactHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	params := &domainRepo.ContactFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
	}
	if unreadStr := c.Query("unread"); unreadStr != "" {
		unread := unreadStr == "true"
		params.Unread = &unread
	}

	result, err := h.contactService.ListContacts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Contacts retrieved successfully", result)
}

// Get handles getting a single contact
func (h *ContactHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid contact ID")
		return
	}

	contact, err := h.contactService.GetContact(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Contact retrieved successfully", contact)
}

// SetRead handles marking a contact as read or unread
func (h *ContactHandler) SetRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid contact ID")
		return
	}

	var req request.SetReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	contact, err := h.contactService.SetRead(c.Request.Context(), id, req.IsRead)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Contact updated successfully", contact)
}

// Delete handles deleting a contact
func (h *ContactHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid contact ID")
		return
	}

	if err := h.contactService.DeleteContact(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Contact deleted successfully", nil)
}
