package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateReportID produces the externally-facing report identifier,
// e.g. "SC-3F2504E0". Uniqueness rests on the underlying UUID.
func GenerateReportID() string {
	id := uuid.New().String()
	return ReportIDPrefix + strings.ToUpper(id[:8])
}

// GenerateSessionID returns an opaque session identifier.
func GenerateSessionID() string {
	return uuid.New().String()
}
