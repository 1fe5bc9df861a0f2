package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"safecity/internal/models"
	"safecity/internal/repositories/interfaces"
	"safecity/internal/utils"
	"safecity/pkg/logger"
	"safecity/pkg/sms"
)

type SOSService interface {
	TriggerSOS(ctx context.Context, latitude, longitude *float64) (*models.SOSAlert, error)
	ListAlerts(ctx context.Context, limit int64) ([]*models.SOSAlert, error)
}

type sosService struct {
	contactRepo interfaces.ContactRepository
	alertRepo   interfaces.SOSAlertRepository
	smsProvider sms.SMSProvider
	broadcaster Broadcaster
	logger      *logger.Logger
	fromNumber  string
	timezone    string
}

func NewSOSService(
	contactRepo interfaces.ContactRepository,
	alertRepo interfaces.SOSAlertRepository,
	smsProvider sms.SMSProvider,
	broadcaster Broadcaster,
	logger *logger.Logger,
	fromNumber string,
	timezone string,
) SOSService {
	return &sosService{
		contactRepo: contactRepo,
		alertRepo:   alertRepo,
		smsProvider: smsProvider,
		broadcaster: broadcaster,
		logger:      logger,
		fromNumber:  fromNumber,
		timezone:    timezone,
	}
}

// TriggerSOS fans the alert SMS out to every emergency contact.
// Recipients are isolated: one carrier rejection never stops the other
// sends, and the alert only fails outright when nobody was reached.
func (s *sosService) TriggerSOS(ctx context.Context, latitude, longitude *float64) (*models.SOSAlert, error) {
	if fields := validateSOSLocation(latitude, longitude); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	contacts, err := s.contactRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load contacts for SOS: %w", err)
	}

	mapLink := fmt.Sprintf(utils.SOSMapLinkTemplate, *latitude, *longitude)
	message := fmt.Sprintf(utils.SOSMessageTemplate, mapLink, utils.FormatSOSTimestamp(time.Now(), s.timezone))

	// nobody to notify is a reportable outcome, not a failure
	if len(contacts) == 0 {
		s.logger.Warn("SOS triggered with no emergency contacts configured")
		return &models.SOSAlert{
			Latitude:   *latitude,
			Longitude:  *longitude,
			MapLink:    mapLink,
			Message:    message,
			Recipients: []models.SOSRecipient{},
			CreatedAt:  time.Now(),
		}, nil
	}

	recipients := s.dispatch(ctx, contacts, message)

	sent := 0
	for _, r := range recipients {
		if r.Status == models.RecipientStatusSent {
			sent++
		}
	}

	alert := &models.SOSAlert{
		Latitude:         *latitude,
		Longitude:        *longitude,
		MapLink:          mapLink,
		Message:          message,
		Recipients:       recipients,
		ContactsNotified: sent,
	}

	// the alert is the audit trail, recorded even when every send failed
	if err := s.alertRepo.Create(ctx, alert); err != nil {
		s.logger.WithError(err).Error("Failed to persist SOS alert")
	}

	s.logger.LogSOSEvent(alert.ID, sent, len(recipients)-sent)

	s.broadcaster.BroadcastEvent(utils.EventSOSTriggered, map[string]interface{}{
		"alert_id":          alert.ID.Hex(),
		"latitude":          alert.Latitude,
		"longitude":         alert.Longitude,
		"contacts_notified": sent,
	})

	if sent == 0 {
		return alert, ErrDispatchFailed
	}

	return alert, nil
}

func (s *sosService) ListAlerts(ctx context.Context, limit int64) ([]*models.SOSAlert, error) {
	alerts, err := s.alertRepo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list SOS alerts: %w", err)
	}

	return alerts, nil
}

func (s *sosService) dispatch(ctx context.Context, contacts []*models.Contact, message string) []models.SOSRecipient {
	results := make([]models.SOSRecipient, len(contacts))

	var wg sync.WaitGroup
	for i, contact := range contacts {
		wg.Add(1)
		go func(i int, contact *models.Contact) {
			defer wg.Done()

			recipient := models.SOSRecipient{
				ContactID:   contact.ID,
				Name:        contact.Name,
				PhoneNumber: contact.PhoneNumber,
			}

			response, err := s.smsProvider.SendSMS(ctx, &sms.SMSRequest{
				To:      contact.PhoneNumber,
				From:    s.fromNumber,
				Message: message,
				Type:    "emergency",
			})
			if err != nil {
				recipient.Status = models.RecipientStatusFailed
				recipient.Error = err.Error()
				s.logger.WithError(err).
					WithField("contact_id", contact.ID.Hex()).
					Error("SOS SMS send failed")
			} else {
				recipient.Status = models.RecipientStatusSent
				recipient.MessageID = response.MessageID
			}

			results[i] = recipient
		}(i, contact)
	}
	wg.Wait()

	return results
}

func validateSOSLocation(latitude, longitude *float64) map[string]string {
	fields := make(map[string]string)

	if latitude == nil {
		fields["latitude"] = "latitude is required"
	}
	if longitude == nil {
		fields["longitude"] = "longitude is required"
	}
	if len(fields) > 0 {
		return fields
	}

	if !utils.IsValidCoordinates(*latitude, *longitude) {
		fields["coordinates"] = "coordinates are out of range"
	}

	return fields
}
