package ui

import (
	"math"
	"time"

	"sandbox/internal/update"
)

type toastKind int

const (
	toastChecking toastKind = iota
	toastUpToDate
	toastUpdateAvailable
	toastUpdateFailed
	toastCopied
	toastTheme
	toastError
)

const (
	upToDateToastDuration  = 5 * time.Second
	availableToastDuration = 10 * time.Second
	failedToastDuration    = 10 * time.Second
	shortToastDuration     = 3 * time.Second
)

// toast is the single transient notification in the bottom-right corner. A
// new toast replaces the previous one.
type toast struct {
	kind    toastKind
	started time.Time
	// duration of zero keeps the toast until it is replaced or dismissed.
	duration time.Duration
	title    string
	detail   string
	req      update.Request
}

func (t *toast) expired(now time.Time) bool {
	return t.duration > 0 && now.Sub(t.started) >= t.duration
}

// secondsLeft rounds up so a fresh 5s toast shows [5s].
func (t *toast) secondsLeft(now time.Time) int {
	if t.duration <= 0 {
		return 0
	}
	left := t.duration - now.Sub(t.started)
	if left <= 0 {
		return 0
	}
	return int(math.Ceil(left.Seconds()))
}

func newCheckingToast(now time.Time) *toast {
	return &toast{kind: toastChecking, started: now, title: "Checking for updates…"}
}

// newUpdateToast maps a terminal snapshot onto its toast. Non-terminal
// snapshots have no toast of their own.
func newUpdateToast(req update.Request, now time.Time) *toast {
	switch req.Status {
	case update.StatusUpToDate:
		return &toast{kind: toastUpToDate, started: now, duration: upToDateToastDuration, title: "You're up to date", req: req}
	case update.StatusUpdateAvailable:
		return &toast{kind: toastUpdateAvailable, started: now, duration: availableToastDuration, title: "Update available:", req: req}
	case update.StatusFailed:
		return &toast{kind: toastUpdateFailed, started: now, duration: failedToastDuration, title: "Update check failed", detail: req.Reason, req: req}
	default:
		return nil
	}
}

func newThemeToast(name string, now time.Time) *toast {
	return &toast{kind: toastTheme, started: now, duration: shortToastDuration, title: "Theme:", detail: name}
}

func newCopiedToast(now time.Time) *toast {
	return &toast{kind: toastCopied, started: now, duration: shortToastDuration, title: "Copied release link to clipboard."}
}

func newErrorToast(title string, err error, now time.Time) *toast {
	return &toast{kind: toastError, started: now, duration: upToDateToastDuration, title: title, detail: err.Error()}
}

func (m *App) showToast(t *toast) {
	m.toast = t
}

func (m *App) dismissToast() {
	m.toast = nil
}
