package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/tanwartailor/tailor-api/internal/domain/entity"
	"github.com/tanwartailor/tailor-api/internal/domain/repository"
	"github.com/tanwartailor/tailor-api/pkg/apperror"
	"github.com/tanwartailor/tailor-api/pkg/pagination"
	"github.com/tanwartailor/tailor-api/pkg/validation"
)

// ContactService handles contact-query operations
type ContactService struct {
	contactRepo repository.ContactRepository
	mailer      Mailer
}

// NewContactService creates a new contact service
func NewContactService(contactRepo repository.ContactRepository, mailer Mailer) *ContactService {
	return &ContactService{contactRepo: contactRepo, mailer: mailer}
}

// CreateContactInput represents the public contact-form submission
type CreateContactInput struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// CreateContact persists a contact-form submission and notifies the shop by
// email in the background. A mail failure never fails the submission.
func (s *ContactService) CreateContact(ctx context.Context, input *CreateContactInput) (*entity.Contact, error) {
	var fieldErrors []apperror.FieldError
	if input.Name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "name is required"})
	}
	if input.Email == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "email", Message: "email is required"})
	} else if !validation.IsValidEmail(input.Email) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "email", Message: "invalid email address"})
	}
	if input.Phone != "" && !validation.IsValidIndianMobile(input.Phone) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "phone", Message: "invalid mobile number"})
	}
	if input.Message == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "message", Message: "message is required"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	contact := &entity.Contact{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Message: input.Message,
	}
	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, err
	}

	go s.notifyShop(contact)

	return contact, nil
}

func (s *ContactService) notifyShop(contact *entity.Contact) {
	to := s.mailer.ShopEmail()
	if to == "" {
		return
	}

	subject := fmt.Sprintf("New enquiry from %s", contact.Name)
	body := fmt.Sprintf(
		"<p><strong>Name:</strong> %s</p><p><strong>Email:</strong> %s</p><p><strong>Phone:</strong> %s</p><p><strong>Message:</strong></p><p>%s</p>",
		contact.Name, contact.Email, contact.Phone, contact.Message,
	)
	if err := s.mailer.Send(to, subject, body); err != nil {
		log.Printf("Warning: failed to send contact notification email: %v", err)
	}
}

// GetContact retrieves a contact by ID
func (s *ContactService) GetContact(ctx context.Context, id uuid.UUID) (*entity.Contact, error) {
	contact, err := s.contactRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, apperror.NewNotFoundError("Contact")
	}
	return contact, nil
}

// ListContacts lists contacts ordered by creation time descending
func (s *ContactService) ListContacts(ctx context.Context, params *repository.ContactFilterParams) (*pagination.PaginatedResult[entity.Contact], error) {
	contacts, total, err := s.contactRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(contacts, pag), nil
}

// SetRead marks a contact as read or unread
func (s *ContactService) SetRead(ctx context.Context, id uuid.UUID, isRead bool) (*entity.Contact, error) {
	contact, err := s.contactRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, apperror.NewNotFoundError("Contact")
	}

	contact.IsRead = isRead
	if err := s.contactRepo.Update(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// DeleteContact removes a contact permanently
func (s *ContactService) DeleteContact(ctx context.Context, id uuid.UUID) error {
	contact, err := s.contactRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if contact == nil {
		return apperror.NewNotFoundError("Contact")
	}
	return s.contactRepo.Delete(ctx, id)
}

// GetStats summarizes the contact inbox
func (s *ContactService) GetStats(ctx context.Context) (*repository.ContactStats, error) {
	return s.contactRepo.Stats(ctx)
}
