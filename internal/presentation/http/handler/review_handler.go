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

// ReviewHandler handles review-related HTTP requests
type ReviewHandler struct {
	reviewService *service.ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// Create handles the public review submission
func (h *ReviewHandler) Create(c *gin.Context) {
	var req request.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	review, err := h.reviewService.CreateReview(c.Request.Context(), &service.CreateReviewInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Rating:  req.Rating,
		Message: req.Message,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Thank you for your review, it will appear once approved", review)
}

// ListApproved handles the public approved-review feed
func (h *ReviewHandler) ListApproved(c *gin.Context) {
	result, err := h.reviewService.ListApprovedReviews(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Reviews retrieved successfully", result)
}

// List handles listing all reviews for moderation
func (h *ReviewHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	params := &domainRepo.ReviewFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
	}
	if approvedStr := c.Query("approved"); approvedStr != "" {
		approved := approvedStr == "true"
		params.Approved = &approved
	}

	result, err := h.reviewService.ListReviews(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Reviews retrieved successfully", result)
}

// SetApproved handles approving or hiding a review
func (h *ReviewHandler) SetApproved(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid review ID")
		return
	}

	var req request.SetApprovedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	review, err := h.reviewService.SetApproved(c.Request.Context(), id, req.IsApproved)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Review updated successfully", review)
}

// Delete handles deleting a review
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid review ID")
		return
	}

	if err := h.reviewService.DeleteReview(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Review deleted successfully", nil)
}
