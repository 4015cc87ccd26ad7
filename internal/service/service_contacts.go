package service

import (
	"context"
	"fmt"

	"github.com/mkamel/corsite-backend/internal/logger"
	"github.com/mkamel/corsite-backend/internal/store"
	"github.com/mkamel/corsite-backend/internal/utils"
	"github.com/mkamel/corsite-backend/models"
)

// contactService manages contact-us leads. Free-text fields are sanitized
// before persistence because the form is public.
type contactService struct {
	contactRepository store.ContactRepository
	logger            *logger.Logger
}

// NewContactService constructs a ContactService.
func NewContactService(contactRepository store.ContactRepository, logger *logger.Logger) ContactService {
	return &contactService{
		contactRepository: contactRepository,
		logger:            logger,
	}
}

// SubmitContact validates, sanitizes, and persists a lead.
func (c *contactService) SubmitContact(ctx context.Context, contact models.Contact) (models.Contact, error) {
	log := logger.FromContext(ctx)

	if contact.FullName == "" || contact.Email == "" || contact.Message == "" {
		log.Error().Str("email", contact.Email).Msg("invalid contact data provided")
		return models.Contact{}, ErrInvalidDataProvided
	}

	contact.ID = utils.NewUUID()
	contact.FullName = sanitizeText(contact.FullName)
	contact.Organization = sanitizeText(contact.Organization)
	contact.AreaOfInterest = sanitizeText(contact.AreaOfInterest)
	contact.Representation = sanitizeText(contact.Representation)
	contact.Message = sanitizeText(contact.Message)

	created, err := c.contactRepository.CreateContact(ctx, contact)
	if err != nil {
		log.Err(err).Str("email", contact.Email).Msg("contact creation failed")
		return models.Contact{}, fmt.Errorf("contact creation failed: %w", err)
	}

	return created, nil
}

// ListContacts returns one page of leads, newest first.
func (c *contactService) ListContacts(ctx context.Context, page models.PageRequest) (models.Paginated[models.Contact], error) {
	log := logger.FromContext(ctx)

	page = page.Normalize()
	contacts, total, err := c.contactRepository.ListContacts(ctx, page)
	if err != nil {
		log.Err(err).Msg("contact listing failed")
		return models.Paginated[models.Contact]{}, fmt.Errorf("contact listing failed: %w", err)
	}

	return models.NewPaginated(contacts, total, page.Page, page.Limit), nil
}
