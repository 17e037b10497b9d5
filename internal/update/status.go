package update

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "sandbox/internal/errors"
)

// Status is the lifecycle state of an update check.
type Status int

const (
	StatusIdle Status = iota
	StatusChecking
	StatusUpToDate
	StatusUpdateAvailable
	StatusFailed
)

var statusNames = map[Status]string{
	StatusIdle:            "idle",
	StatusChecking:        "checking",
	StatusUpToDate:        "up_to_date",
	StatusUpdateAvailable: "update_available",
	StatusFailed:          "failed",
}

// String returns the snake_case name of the status.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// IsTerminal reports whether s ends a check.
func (s Status) IsTerminal() bool {
	return s == StatusUpToDate || s == StatusUpdateAvailable || s == StatusFailed
}

// canAdvance enforces Idle → Checking → terminal.
func (s Status) canAdvance(next Status) bool {
	switch s {
	case StatusIdle:
		return next == StatusChecking
	case StatusChecking:
		return next.IsTerminal()
	default:
		return false
	}
}

// Request is a snapshot of one user-initiated update check. Requests are
// values; the initiator publishes a new snapshot on every transition.
type Request struct {
	ID             uuid.UUID      `json:"id"`
	TriggeredAt    time.Time      `json:"triggered_at"`
	CompletedAt    time.Time      `json:"completed_at,omitzero"`
	CurrentVersion string         `json:"current_version"`
	Status         Status         `json:"status"`
	LatestVersion  string         `json:"latest_version,omitempty"`
	Notes          string         `json:"notes,omitempty"`
	NotesURL       string         `json:"notes_url,omitempty"`
	Reason         string         `json:"reason,omitempty"`
	Code           apperrors.Code `json:"code,omitempty"`
}

// advance returns a copy of r moved to next, or an error if the transition
// would regress.
func (r Request) advance(next Status) (Request, error) {
	if !r.Status.canAdvance(next) {
		return r, fmt.Errorf("invalid update status transition %s -> %s", r.Status, next)
	}
	r.Status = next
	return r, nil
}
