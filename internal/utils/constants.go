package utils

import "time"

// Application Constants
const (
	AppName    = "SafeCity"
	AppVersion = "1.0.0"

	DefaultTimeZone = "UTC"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Contact validation
	ContactNameMinLength  = 2
	ContactPhoneMinDigits = 10

	// Report listing is raced against this ceiling; exceeding it is a
	// timeout, not a generic failure.
	ReportListTimeout = 15 * time.Second

	// External report identifiers
	ReportIDPrefix = "SC-"

	// SOS
	SOSMessageTemplate = "EMERGENCY SOS ALERT! I need immediate help. My current location : %s (sent at %s)"
	SOSMapLinkTemplate = "https://www.google.com/maps?q=%v,%v"

	// Safe route scoring
	RiskInfluenceRadiusKM = 0.3
	RiskDecayKM           = 0.1
	MaxRoutePointsScored  = 200

	// Public endpoint rate limiting (per client IP, per route)
	PublicRateLimit       = 30
	PublicRateLimitWindow = time.Minute
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Messages
const (
	ErrInvalidCredentials = "invalid credentials"
	ErrUserExists         = "user already exists"
	ErrInvalidInput       = "invalid input"
	ErrInternalServer     = "internal server error"
	ErrUnauthorized       = "unauthorized"
	ErrForbidden          = "forbidden"
	ErrNotFound           = "not found"
	ErrValidationFailed   = "validation failed"
	ErrStoreUnavailable   = "cannot connect to database, please try again later"
	ErrStoreTimeout       = "database connection timeout, please try again"
	ErrTooManyRequests    = "too many requests, please slow down"
)

// Cache Keys
const (
	CacheContactsKey     = "contacts:all"
	CacheSessionPrefix   = "session:"
	CacheRateLimitPrefix = "rate_limit:"
)

// Moderation feed event types
const (
	EventReportCreated = "report_created"
	EventReportUpdated = "report_updated"
	EventSOSTriggered  = "sos_triggered"
)

// Geographic Constants
const (
	EarthRadiusKM = 6371.0
)
