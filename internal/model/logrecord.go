package model

import (
	"time"

	"github.com/google/uuid"
)

// Recognized severity values. The store does not enforce this set; any
// string severity is accepted and filtered by plain equality.
const (
	SeverityDebug    = "DEBUG"
	SeverityInfo     = "INFO"
	SeverityWarning  = "WARNING"
	SeverityError    = "ERROR"
	SeverityCritical = "CRITICAL"
)

// LogRecord is one persisted log event. ID and ReceivedAt are assigned by
// the ingest path at persistence time and are never accepted from a caller.
// Records are immutable once written.
type LogRecord struct {
	ID         uuid.UUID `db:"id"          json:"id"`
	Tenant     string    `db:"tenant"      json:"tenant"`
	EventTime  time.Time `db:"event_time"  json:"event_time"`
	Severity   string    `db:"severity"    json:"severity"`
	Message    string    `db:"message"     json:"message"`
	ReceivedAt time.Time `db:"received_at" json:"received_at"`
}
