package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"safecity/internal/models"
	"safecity/internal/repositories/interfaces"
	"safecity/pkg/logger"
	"safecity/pkg/maps"
	"safecity/pkg/sms"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()

	log, err := logger.NewLogger(&logger.Config{
		Level:  logger.ErrorLevel,
		Format: "text",
		Output: "stderr",
	})
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}

	return log
}

// fakeCache is an in-memory stand-in for the Redis wrapper. Values go
// through JSON like the real one so type round-trips are exercised.
type fakeCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	failSet bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (f *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if f.failSet {
		return errors.New("cache write refused")
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = data
	return nil
}

func (f *fakeCache) Get(_ context.Context, key string, dest interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, ok := f.data[key]
	if !ok {
		return errors.New("cache miss")
	}

	return json.Unmarshal(data, dest)
}

func (f *fakeCache) Delete(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func (f *fakeCache) Exists(_ context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.data[key]
	return ok, nil
}

type fakeBroadcaster struct {
	mu     sync.Mutex
	events []string
}

func (f *fakeBroadcaster) BroadcastEvent(eventType string, _ map[string]interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, eventType)
}

func (f *fakeBroadcaster) eventTypes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.events...)
}

type fakeReportRepo struct {
	reports    map[string]*models.Report
	listErr    error
	updated    map[primitive.ObjectID]models.ReportStatus
	listCtxErr bool
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{
		reports: make(map[string]*models.Report),
		updated: make(map[primitive.ObjectID]models.ReportStatus),
	}
}

func (f *fakeReportRepo) Create(_ context.Context, report *models.Report) error {
	report.ID = primitive.NewObjectID()
	report.CreatedAt = time.Now()
	report.UpdatedAt = time.Now()
	f.reports[report.ReportID] = report
	return nil
}

func (f *fakeReportRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Report, error) {
	for _, report := range f.reports {
		if report.ID == id {
			return report, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (f *fakeReportRepo) GetByReportID(_ context.Context, reportID string) (*models.Report, error) {
	report, ok := f.reports[reportID]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return report, nil
}

func (f *fakeReportRepo) List(ctx context.Context, _ *models.ReportFilter) ([]*models.Report, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.listCtxErr {
		// report whether the service imposed a deadline
		if _, ok := ctx.Deadline(); !ok {
			return nil, errors.New("no deadline set")
		}
	}

	var out []*models.Report
	for _, report := range f.reports {
		out = append(out, report)
	}
	return out, nil
}

func (f *fakeReportRepo) ListWithCoordinates(_ context.Context) ([]*models.Report, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}

	var out []*models.Report
	for _, report := range f.reports {
		if report.HasCoordinates() {
			out = append(out, report)
		}
	}
	return out, nil
}

func (f *fakeReportRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.ReportStatus) error {
	for _, report := range f.reports {
		if report.ID == id {
			f.updated[id] = status
			report.Status = status
			return nil
		}
	}
	return interfaces.ErrNotFound
}

func (f *fakeReportRepo) CountByStatus(_ context.Context) (map[models.ReportStatus]int64, error) {
	counts := make(map[models.ReportStatus]int64)
	for _, report := range f.reports {
		counts[report.Status]++
	}
	return counts, nil
}

type fakeContactRepo struct {
	contacts []*models.Contact
	listErr  error
	listed   int
}

func (f *fakeContactRepo) Create(_ context.Context, contact *models.Contact) error {
	contact.ID = primitive.NewObjectID()
	contact.CreatedAt = time.Now()
	contact.UpdatedAt = time.Now()
	f.contacts = append(f.contacts, contact)
	return nil
}

func (f *fakeContactRepo) List(_ context.Context) ([]*models.Contact, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.listed++
	return append([]*models.Contact(nil), f.contacts...), nil
}

func (f *fakeContactRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	for i, contact := range f.contacts {
		if contact.ID == id {
			f.contacts = append(f.contacts[:i], f.contacts[i+1:]...)
			return nil
		}
	}
	return interfaces.ErrNotFound
}

type fakeAlertRepo struct {
	mu     sync.Mutex
	alerts []*models.SOSAlert
}

func (f *fakeAlertRepo) Create(_ context.Context, alert *models.SOSAlert) error {
	alert.ID = primitive.NewObjectID()
	alert.CreatedAt = time.Now()

	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = append(f.alerts, alert)
	return nil
}

func (f *fakeAlertRepo) List(_ context.Context, limit int64) ([]*models.SOSAlert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := append([]*models.SOSAlert(nil), f.alerts...)
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

// fakeSMSProvider fails sends to numbers listed in failNumbers and
// records every request it receives.
type fakeSMSProvider struct {
	mu          sync.Mutex
	requests    []*sms.SMSRequest
	failNumbers map[string]bool
}

func (f *fakeSMSProvider) SendSMS(_ context.Context, request *sms.SMSRequest) (*sms.SMSResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, request)
	f.mu.Unlock()

	if f.failNumbers[request.To] {
		return nil, errors.New("carrier rejected message")
	}

	return &sms.SMSResponse{MessageID: "msg-" + request.To, Status: "queued"}, nil
}

func (f *fakeSMSProvider) sentRequests() []*sms.SMSRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*sms.SMSRequest(nil), f.requests...)
}

type fakeMapsProvider struct {
	routesByMode  map[string][]maps.Route
	directionsErr error
	geocodeResult *maps.GeocodeResponse
}

func (f *fakeMapsProvider) Geocode(_ context.Context, _ string) (*maps.GeocodeResponse, error) {
	if f.geocodeResult == nil {
		return &maps.GeocodeResponse{}, nil
	}
	return f.geocodeResult, nil
}

func (f *fakeMapsProvider) ReverseGeocode(_ context.Context, _, _ float64) (*maps.GeocodeResponse, error) {
	if f.geocodeResult == nil {
		return &maps.GeocodeResponse{}, nil
	}
	return f.geocodeResult, nil
}

func (f *fakeMapsProvider) GetDirections(_ context.Context, request *maps.DirectionsRequest) (*maps.DirectionsResponse, error) {
	if f.directionsErr != nil {
		return nil, f.directionsErr
	}
	return &maps.DirectionsResponse{Routes: f.routesByMode[request.Mode]}, nil
}

func floatPtr(v float64) *float64 {
	return &v
}
