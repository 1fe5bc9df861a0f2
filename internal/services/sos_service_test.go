package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"safecity/internal/models"
	"safecity/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newSOSServiceForTest(t *testing.T, contacts *fakeContactRepo, alerts *fakeAlertRepo, provider *fakeSMSProvider) (SOSService, *fakeBroadcaster) {
	t.Helper()

	broadcaster := &fakeBroadcaster{}
	service := NewSOSService(contacts, alerts, provider, broadcaster, newTestLogger(t), "+15550000000", "UTC")
	return service, broadcaster
}

func seedContacts(n int) *fakeContactRepo {
	repo := &fakeContactRepo{}
	for i := 0; i < n; i++ {
		repo.contacts = append(repo.contacts, &models.Contact{
			ID:           primitive.NewObjectID(),
			Name:         fmt.Sprintf("Contact %d", i+1),
			PhoneNumber:  fmt.Sprintf("+1555000%04d", i),
			Relationship: "Friend",
		})
	}
	return repo
}

func TestTriggerSOSRequiresLocation(t *testing.T) {
	service, _ := newSOSServiceForTest(t, seedContacts(1), &fakeAlertRepo{}, &fakeSMSProvider{})

	tests := []struct {
		name     string
		lat, lng *float64
		field    string
	}{
		{name: "missing latitude", lng: floatPtr(77.59), field: "latitude"},
		{name: "missing longitude", lat: floatPtr(12.97), field: "longitude"},
		{name: "out of range", lat: floatPtr(120), lng: floatPtr(77.59), field: "coordinates"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.TriggerSOS(context.Background(), tt.lat, tt.lng)

			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if _, ok := validationErr.Fields[tt.field]; !ok {
				t.Errorf("fields = %v, want entry for %q", validationErr.Fields, tt.field)
			}
		})
	}
}

func TestTriggerSOSNoContactsIsASuccess(t *testing.T) {
	provider := &fakeSMSProvider{}
	alerts := &fakeAlertRepo{}
	service, broadcaster := newSOSServiceForTest(t, &fakeContactRepo{}, alerts, provider)

	alert, err := service.TriggerSOS(context.Background(), floatPtr(12.97), floatPtr(77.59))
	if err != nil {
		t.Fatalf("TriggerSOS with no contacts: %v", err)
	}

	if alert.ContactsNotified != 0 {
		t.Errorf("contacts notified = %d, want 0", alert.ContactsNotified)
	}
	if len(provider.sentRequests()) != 0 {
		t.Errorf("sends = %d, want 0", len(provider.sentRequests()))
	}
	if len(alerts.alerts) != 0 {
		t.Errorf("alerts persisted = %d, want 0", len(alerts.alerts))
	}
	if len(broadcaster.eventTypes()) != 0 {
		t.Errorf("events broadcast = %v, want none", broadcaster.eventTypes())
	}
}

func TestTriggerSOSFansOutToEveryContact(t *testing.T) {
	contacts := seedContacts(3)
	alerts := &fakeAlertRepo{}
	provider := &fakeSMSProvider{}
	service, broadcaster := newSOSServiceForTest(t, contacts, alerts, provider)

	alert, err := service.TriggerSOS(context.Background(), floatPtr(12.9716), floatPtr(77.5946))
	if err != nil {
		t.Fatalf("TriggerSOS: %v", err)
	}

	requests := provider.sentRequests()
	if len(requests) != 3 {
		t.Fatalf("sends = %d, want 3", len(requests))
	}

	// every contact gets the identical message with the shared map link
	wantLink := fmt.Sprintf(utils.SOSMapLinkTemplate, 12.9716, 77.5946)
	seen := make(map[string]bool)
	for _, request := range requests {
		if !strings.Contains(request.Message, wantLink) {
			t.Errorf("message %q missing map link %q", request.Message, wantLink)
		}
		if request.Message != requests[0].Message {
			t.Error("recipients received differing messages")
		}
		if seen[request.To] {
			t.Errorf("number %s messaged twice", request.To)
		}
		seen[request.To] = true
	}

	if alert.ContactsNotified != 3 {
		t.Errorf("contacts notified = %d, want 3", alert.ContactsNotified)
	}
	if len(alert.Recipients) != 3 {
		t.Errorf("recipients recorded = %d, want 3", len(alert.Recipients))
	}
	if alert.MapLink != wantLink {
		t.Errorf("alert map link = %q, want %q", alert.MapLink, wantLink)
	}

	if len(alerts.alerts) != 1 {
		t.Errorf("alerts persisted = %d, want 1", len(alerts.alerts))
	}

	events := broadcaster.eventTypes()
	if len(events) != 1 || events[0] != utils.EventSOSTriggered {
		t.Errorf("broadcast events = %v, want [%s]", events, utils.EventSOSTriggered)
	}
}

func TestTriggerSOSPartialFailureIsNotAnError(t *testing.T) {
	contacts := seedContacts(3)
	provider := &fakeSMSProvider{failNumbers: map[string]bool{
		contacts.contacts[1].PhoneNumber: true,
	}}
	service, _ := newSOSServiceForTest(t, contacts, &fakeAlertRepo{}, provider)

	alert, err := service.TriggerSOS(context.Background(), floatPtr(12.97), floatPtr(77.59))
	if err != nil {
		t.Fatalf("TriggerSOS with one failure: %v", err)
	}

	if alert.ContactsNotified != 2 {
		t.Errorf("contacts notified = %d, want 2", alert.ContactsNotified)
	}

	var sent, failed int
	for _, recipient := range alert.Recipients {
		switch recipient.Status {
		case models.RecipientStatusSent:
			sent++
			if recipient.MessageID == "" {
				t.Error("sent recipient missing message id")
			}
		case models.RecipientStatusFailed:
			failed++
			if recipient.Error == "" {
				t.Error("failed recipient missing error detail")
			}
		}
	}
	if sent != 2 || failed != 1 {
		t.Errorf("sent/failed = %d/%d, want 2/1", sent, failed)
	}
}

func TestTriggerSOSAllFailed(t *testing.T) {
	contacts := seedContacts(2)
	provider := &fakeSMSProvider{failNumbers: map[string]bool{
		contacts.contacts[0].PhoneNumber: true,
		contacts.contacts[1].PhoneNumber: true,
	}}
	alerts := &fakeAlertRepo{}
	service, _ := newSOSServiceForTest(t, contacts, alerts, provider)

	alert, err := service.TriggerSOS(context.Background(), floatPtr(12.97), floatPtr(77.59))
	if !errors.Is(err, ErrDispatchFailed) {
		t.Fatalf("err = %v, want ErrDispatchFailed", err)
	}

	// the audit record survives a total dispatch failure
	if alert == nil || len(alerts.alerts) != 1 {
		t.Error("expected alert to be persisted despite total failure")
	}
}

func TestListAlertsHonorsLimit(t *testing.T) {
	alerts := &fakeAlertRepo{}
	for i := 0; i < 5; i++ {
		if err := alerts.Create(context.Background(), &models.SOSAlert{Latitude: 1, Longitude: 1}); err != nil {
			t.Fatalf("seed alert: %v", err)
		}
	}

	service, _ := newSOSServiceForTest(t, seedContacts(1), alerts, &fakeSMSProvider{})

	listed, err := service.ListAlerts(context.Background(), 3)
	if err != nil {
		t.Fatalf("ListAlerts: %v", err)
	}
	if len(listed) != 3 {
		t.Errorf("alerts = %d, want 3", len(listed))
	}
}
