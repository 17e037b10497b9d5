package update

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"sandbox/internal/debug"
	apperrors "sandbox/internal/errors"
)

// DefaultCheckTimeout bounds one check when no timeout is configured.
const DefaultCheckTimeout = 10 * time.Second

// notificationBuffer holds snapshots until the UI drains them. When a
// consumer stops draining, the oldest buffered snapshot is dropped so a
// check can always reach a terminal status.
const notificationBuffer = 8

// Initiator owns the lifecycle of update checks for one application
// instance. At most one check is in flight at a time; CheckForUpdates never
// blocks, and every transition is published on Updates.
type Initiator struct {
	source         Source
	currentVersion string
	timeout        time.Duration
	now            func() time.Time
	logf           func(format string, v ...any)

	gate    *semaphore.Weighted
	updates chan Request

	mu      sync.RWMutex
	current Request
	closed  bool

	// pubMu orders snapshots across consecutive checks: a finished check
	// releases the gate and publishes its terminal snapshot before the next
	// check can publish Checking.
	pubMu sync.Mutex

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// InitiatorOption configures an Initiator.
type InitiatorOption func(*Initiator)

// WithCheckTimeout sets the deadline applied to each check.
func WithCheckTimeout(d time.Duration) InitiatorOption {
	return func(i *Initiator) {
		if d > 0 {
			i.timeout = d
		}
	}
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) InitiatorOption {
	return func(i *Initiator) {
		if now != nil {
			i.now = now
		}
	}
}

// WithLogger routes transition logging somewhere other than the debug log.
func WithLogger(logf func(format string, v ...any)) InitiatorOption {
	return func(i *Initiator) {
		if logf != nil {
			i.logf = logf
		}
	}
}

// NewInitiator creates an initiator that checks source on behalf of the
// application running currentVersion.
func NewInitiator(source Source, currentVersion string, opts ...InitiatorOption) *Initiator {
	ctx, cancel := context.WithCancel(context.Background())
	i := &Initiator{
		source:         source,
		currentVersion: currentVersion,
		timeout:        DefaultCheckTimeout,
		now:            time.Now,
		logf:           debug.Scoped("update"),
		gate:           semaphore.NewWeighted(1),
		updates:        make(chan Request, notificationBuffer),
		current:        Request{CurrentVersion: currentVersion, Status: StatusIdle},
		ctx:            ctx,
		cancel:         cancel,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// CurrentVersion returns the version checks are made against.
func (i *Initiator) CurrentVersion() string {
	return i.currentVersion
}

// Updates delivers a snapshot for every status transition, in order. The
// channel is closed by Close.
func (i *Initiator) Updates() <-chan Request {
	return i.updates
}

// Current returns the latest request snapshot. Before the first check it
// reports StatusIdle.
func (i *Initiator) Current() Request {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.current
}

// InFlight reports whether a check is currently running.
func (i *Initiator) InFlight() bool {
	return i.Current().Status == StatusChecking
}

// CheckForUpdates starts a background check and returns true, or returns
// false without doing anything when a check is already in flight or the
// initiator has been closed.
func (i *Initiator) CheckForUpdates() bool {
	if i.ctx.Err() != nil {
		return false
	}
	if !i.gate.TryAcquire(1) {
		i.logf("check already in flight; ignoring request")
		return false
	}

	req, err := Request{
		ID:             uuid.New(),
		TriggeredAt:    i.now(),
		CurrentVersion: i.currentVersion,
		Status:         StatusIdle,
	}.advance(StatusChecking)
	if err != nil {
		i.gate.Release(1)
		i.logf("%v", err)
		return false
	}

	i.mu.Lock()
	if i.closed {
		i.mu.Unlock()
		i.gate.Release(1)
		return false
	}
	i.current = req
	i.wg.Add(1)
	i.mu.Unlock()

	i.logf("check %s started (current %s)", req.ID, req.CurrentVersion)
	go i.run(req)
	return true
}

// Close abandons any in-flight check without publishing its outcome, waits
// for background work to stop, and closes Updates.
func (i *Initiator) Close() {
	i.closeOnce.Do(func() {
		i.mu.Lock()
		i.closed = true
		i.mu.Unlock()

		i.cancel()
		i.wg.Wait()
		close(i.updates)
	})
}

type sourceOutcome struct {
	result Result
	err    error
}

func (i *Initiator) run(req Request) {
	defer i.wg.Done()

	ctx, cancel := context.WithTimeout(i.ctx, i.timeout)
	defer cancel()

	if !i.publish(req) {
		i.gate.Release(1)
		return
	}

	final := i.resolve(ctx, req)
	if i.ctx.Err() != nil {
		i.logf("check %s abandoned", req.ID)
		i.gate.Release(1)
		return
	}

	i.logf("check %s finished: %s %s", final.ID, final.Status, final.Reason)
	i.complete(final)
}

// complete records the terminal snapshot, reopens the gate and publishes,
// in that order, so a receiver of the terminal snapshot can start the next
// check immediately.
func (i *Initiator) complete(final Request) {
	i.pubMu.Lock()
	defer i.pubMu.Unlock()

	i.setCurrent(final)
	i.gate.Release(1)
	i.send(final)
}

// resolve queries the source and returns the terminal snapshot.
func (i *Initiator) resolve(ctx context.Context, req Request) Request {
	current, err := ParseVersion(i.currentVersion)
	if err != nil {
		return i.fail(req, apperrors.New(apperrors.CodeInvalidVersion,
			fmt.Sprintf("Version %q is not a release build; update checks need a release version", i.currentVersion), err))
	}

	// The source runs on its own goroutine so a source that ignores ctx
	// cannot hold the request in Checking past the deadline.
	done := make(chan sourceOutcome, 1)
	go func() {
		res, err := i.source.Latest(ctx, i.currentVersion)
		done <- sourceOutcome{result: res, err: err}
	}()

	var outcome sourceOutcome
	select {
	case outcome = <-done:
	case <-ctx.Done():
		outcome.err = ctx.Err()
	}

	if outcome.err != nil {
		if errors.Is(outcome.err, context.DeadlineExceeded) && !apperrors.IsCode(outcome.err, apperrors.CodeTimeout) {
			outcome.err = apperrors.New(apperrors.CodeTimeout, "update check timed out", outcome.err)
		}
		return i.fail(req, outcome.err)
	}
	return i.decide(req, current, outcome.result)
}

// decide maps a successful source response onto a terminal status. The
// reported version wins over the source's Available flag.
func (i *Initiator) decide(req Request, current Version, res Result) Request {
	if res.LatestVersion == "" {
		if res.Available {
			return i.fail(req, apperrors.New(apperrors.CodeMalformedResponse, "update reported without a version", nil))
		}
		return i.finish(req, StatusUpToDate, func(r *Request) {})
	}

	latest, err := ParseVersion(res.LatestVersion)
	if err != nil {
		return i.fail(req, apperrors.New(apperrors.CodeMalformedResponse,
			fmt.Sprintf("latest version %q is not a version", res.LatestVersion), err))
	}

	if !latest.GreaterThan(current) {
		return i.finish(req, StatusUpToDate, func(r *Request) {
			r.LatestVersion = latest.String()
		})
	}
	return i.finish(req, StatusUpdateAvailable, func(r *Request) {
		r.LatestVersion = latest.String()
		r.Notes = res.Notes
		r.NotesURL = res.NotesURL
	})
}

func (i *Initiator) fail(req Request, err error) Request {
	return i.finish(req, StatusFailed, func(r *Request) {
		r.Code = apperrors.CodeOf(err)
		r.Reason = apperrors.Reason(err)
	})
}

func (i *Initiator) finish(req Request, status Status, fill func(*Request)) Request {
	next, err := req.advance(status)
	if err != nil {
		i.logf("%v", err)
		return req
	}
	fill(&next)
	next.CompletedAt = i.now()
	return next
}

func (i *Initiator) setCurrent(req Request) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.current = req
}

func (i *Initiator) publish(req Request) bool {
	i.pubMu.Lock()
	defer i.pubMu.Unlock()
	return i.send(req)
}

// send buffers req without blocking. A full buffer loses its oldest
// snapshot; order among the kept snapshots is preserved. Callers hold pubMu.
func (i *Initiator) send(req Request) bool {
	if i.ctx.Err() != nil {
		return false
	}
	for {
		select {
		case i.updates <- req:
			return true
		default:
		}
		select {
		case dropped := <-i.updates:
			i.logf("updates not drained; dropped %s snapshot for %s", dropped.Status, dropped.ID)
		default:
		}
	}
}
