package services

import (
	"context"
	"fmt"
	"time"

	"safecity/internal/models"
	"safecity/internal/repositories/interfaces"
	"safecity/internal/utils"
	"safecity/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const contactCacheTTL = 10 * time.Minute

type ContactService interface {
	CreateContact(ctx context.Context, contact *models.Contact) (*models.Contact, error)
	ListContacts(ctx context.Context) ([]*models.Contact, error)
	DeleteContact(ctx context.Context, id string) error
}

type contactService struct {
	contactRepo interfaces.ContactRepository
	cache       Cache
	logger      *logger.Logger
}

func NewContactService(contactRepo interfaces.ContactRepository, cache Cache, logger *logger.Logger) ContactService {
	return &contactService{
		contactRepo: contactRepo,
		cache:       cache,
		logger:      logger,
	}
}

func (s *contactService) CreateContact(ctx context.Context, contact *models.Contact) (*models.Contact, error) {
	if fields := validateContact(contact); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	contact.Name = utils.SanitizeString(contact.Name)
	contact.Relationship = utils.SanitizeString(contact.Relationship)

	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}

	s.invalidateCache(ctx)

	s.logger.WithField("contact_id", contact.ID.Hex()).Info("Emergency contact added")

	return contact, nil
}

func (s *contactService) ListContacts(ctx context.Context) ([]*models.Contact, error) {
	var cached []*models.Contact
	if err := s.cache.Get(ctx, utils.CacheContactsKey, &cached); err == nil {
		return cached, nil
	}

	contacts, err := s.contactRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}

	if err := s.cache.Set(ctx, utils.CacheContactsKey, contacts, contactCacheTTL); err != nil {
		s.logger.WithError(err).Warn("Failed to cache contacts")
	}

	return contacts, nil
}

func (s *contactService) DeleteContact(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return NewValidationError("id", "invalid contact id")
	}

	if err := s.contactRepo.Delete(ctx, objectID); err != nil {
		return fmt.Errorf("delete contact %s: %w", id, err)
	}

	s.invalidateCache(ctx)

	s.logger.WithField("contact_id", id).Info("Emergency contact removed")

	return nil
}

// invalidateCache drops the contacts listing after any mutation so the
// next read reflects the change. Cache failure only costs freshness of
// the cached copy, never correctness of the write.
func (s *contactService) invalidateCache(ctx context.Context) {
	if err := s.cache.Delete(ctx, utils.CacheContactsKey); err != nil {
		s.logger.WithError(err).Warn("Failed to invalidate contacts cache")
	}
}

func validateContact(contact *models.Contact) map[string]string {
	fields := make(map[string]string)

	if !utils.IsValidName(contact.Name) {
		fields["name"] = fmt.Sprintf("name must be at least %d characters", utils.ContactNameMinLength)
	}
	if !utils.IsValidPhone(contact.PhoneNumber) {
		fields["phone_number"] = fmt.Sprintf("phone number must contain at least %d digits", utils.ContactPhoneMinDigits)
	}
	if contact.Relationship == "" {
		fields["relationship"] = "relationship is required"
	}

	return fields
}
