package update

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	apperrors "sandbox/internal/errors"
)

var fixedNow = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func newTestInitiator(t *testing.T, src Source, current string, opts ...InitiatorOption) *Initiator {
	t.Helper()
	opts = append([]InitiatorOption{
		WithClock(func() time.Time { return fixedNow }),
		WithLogger(func(string, ...any) {}),
	}, opts...)
	i := NewInitiator(src, current, opts...)
	t.Cleanup(i.Close)
	return i
}

func nextSnapshot(t *testing.T, ch <-chan Request) Request {
	t.Helper()
	select {
	case req, ok := <-ch:
		if !ok {
			t.Fatal("updates channel closed unexpectedly")
		}
		return req
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a status snapshot")
	}
	return Request{}
}

func awaitTerminal(t *testing.T, i *Initiator) Request {
	t.Helper()
	for {
		req := nextSnapshot(t, i.Updates())
		if req.Status.IsTerminal() {
			return req
		}
		if req.Status != StatusChecking {
			t.Fatalf("unexpected intermediate status %s", req.Status)
		}
	}
}

func expectNoSnapshot(t *testing.T, ch <-chan Request) {
	t.Helper()
	select {
	case req, ok := <-ch:
		if ok {
			t.Fatalf("unexpected snapshot %s", req.Status)
		}
	case <-time.After(20 * time.Millisecond):
	}
}

// blockingSource parks every query until release is closed.
type blockingSource struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
	result  Result
	once    sync.Once
}

func newBlockingSource(result Result) *blockingSource {
	return &blockingSource{
		started: make(chan struct{}, 16),
		release: make(chan struct{}),
		result:  result,
	}
}

func (s *blockingSource) Latest(ctx context.Context, _ string) (Result, error) {
	s.calls.Add(1)
	s.started <- struct{}{}
	select {
	case <-s.release:
		return s.result, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

func (s *blockingSource) unblock() {
	s.once.Do(func() { close(s.release) })
}

func (s *blockingSource) waitStarted(t *testing.T) {
	t.Helper()
	select {
	case <-s.started:
	case <-time.After(2 * time.Second):
		t.Fatal("source was never queried")
	}
}

func staticSource(res Result, err error) Source {
	return SourceFunc(func(context.Context, string) (Result, error) {
		return res, err
	})
}

func TestInitiatorStartsIdle(t *testing.T) {
	i := newTestInitiator(t, staticSource(Result{}, nil), "1.0.0")

	got := i.Current()
	if got.Status != StatusIdle {
		t.Errorf("Status = %s, want idle", got.Status)
	}
	if got.CurrentVersion != "1.0.0" {
		t.Errorf("CurrentVersion = %q, want 1.0.0", got.CurrentVersion)
	}
	if i.InFlight() {
		t.Error("InFlight() = true before any check")
	}
}

func TestCheckForUpdatesEntersCheckingOnce(t *testing.T) {
	src := newBlockingSource(Result{Available: false})
	i := newTestInitiator(t, src, "1.0.0")

	if !i.CheckForUpdates() {
		t.Fatal("CheckForUpdates() = false while idle")
	}
	if got := i.Current().Status; got != StatusChecking {
		t.Fatalf("Current().Status = %s right after invoke, want checking", got)
	}

	first := nextSnapshot(t, i.Updates())
	if first.Status != StatusChecking {
		t.Fatalf("first snapshot = %s, want checking", first.Status)
	}
	if !first.TriggeredAt.Equal(fixedNow) {
		t.Errorf("TriggeredAt = %v, want %v", first.TriggeredAt, fixedNow)
	}

	src.waitStarted(t)
	src.unblock()

	final := nextSnapshot(t, i.Updates())
	if final.Status != StatusUpToDate {
		t.Fatalf("terminal snapshot = %s, want up_to_date", final.Status)
	}
	if final.ID != first.ID {
		t.Errorf("terminal ID = %s, want %s", final.ID, first.ID)
	}
	expectNoSnapshot(t, i.Updates())
}

func TestCheckForUpdatesIgnoresBurst(t *testing.T) {
	src := newBlockingSource(Result{Available: true, LatestVersion: "1.1.0"})
	i := newTestInitiator(t, src, "1.0.0")

	const callers = 64
	var (
		wg       sync.WaitGroup
		accepted atomic.Int32
	)
	start := make(chan struct{})
	for n := 0; n < callers; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if i.CheckForUpdates() {
				accepted.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	if got := accepted.Load(); got != 1 {
		t.Fatalf("accepted invocations = %d, want 1", got)
	}

	src.waitStarted(t)
	// Further presses while the query is parked are still no-ops.
	for n := 0; n < 10; n++ {
		if i.CheckForUpdates() {
			t.Fatal("CheckForUpdates() = true while checking")
		}
	}
	src.unblock()

	final := awaitTerminal(t, i)
	if final.Status != StatusUpdateAvailable {
		t.Fatalf("Status = %s, want update_available", final.Status)
	}
	if got := src.calls.Load(); got != 1 {
		t.Errorf("source queried %d times, want 1", got)
	}
}

func TestCheckForUpdatesQueriesOncePerNonOverlappingInvocation(t *testing.T) {
	var calls atomic.Int32
	src := SourceFunc(func(context.Context, string) (Result, error) {
		calls.Add(1)
		return Result{Available: false}, nil
	})
	i := newTestInitiator(t, src, "1.0.0")

	var ids []string
	for n := 0; n < 3; n++ {
		if !i.CheckForUpdates() {
			t.Fatalf("invocation %d rejected after previous check finished", n)
		}
		final := awaitTerminal(t, i)
		ids = append(ids, final.ID.String())
	}

	if got := calls.Load(); got != 3 {
		t.Errorf("source queried %d times, want 3", got)
	}
	if ids[0] == ids[1] || ids[1] == ids[2] {
		t.Errorf("request IDs reused across checks: %v", ids)
	}
}

func TestCheckForUpdatesOutcomes(t *testing.T) {
	tests := []struct {
		name       string
		current    string
		result     Result
		err        error
		wantStatus Status
		wantLatest string
		wantCode   apperrors.Code
	}{
		{
			name:       "newer version available",
			current:    "1.0.0",
			result:     Result{Available: true, LatestVersion: "1.1.0", Notes: "notes", NotesURL: "https://example.com/1.1.0"},
			wantStatus: StatusUpdateAvailable,
			wantLatest: "1.1.0",
		},
		{
			name:       "nothing available",
			current:    "1.0.0",
			result:     Result{Available: false},
			wantStatus: StatusUpToDate,
		},
		{
			name:       "equal version",
			current:    "1.0.0",
			result:     Result{Available: false, LatestVersion: "1.0.0"},
			wantStatus: StatusUpToDate,
			wantLatest: "1.0.0",
		},
		{
			name:       "lower version",
			current:    "1.2.0",
			result:     Result{Available: true, LatestVersion: "v1.1.0"},
			wantStatus: StatusUpToDate,
			wantLatest: "1.1.0",
		},
		{
			name:       "reported version wins over flag",
			current:    "1.0.0",
			result:     Result{Available: false, LatestVersion: "v1.1.0"},
			wantStatus: StatusUpdateAvailable,
			wantLatest: "1.1.0",
		},
		{
			name:       "release beats prerelease",
			current:    "2.0.0-beta.2",
			result:     Result{Available: true, LatestVersion: "2.0.0"},
			wantStatus: StatusUpdateAvailable,
			wantLatest: "2.0.0",
		},
		{
			name:       "available without version",
			current:    "1.0.0",
			result:     Result{Available: true},
			wantStatus: StatusFailed,
			wantCode:   apperrors.CodeMalformedResponse,
		},
		{
			name:       "unparseable latest version",
			current:    "1.0.0",
			result:     Result{Available: true, LatestVersion: "latest"},
			wantStatus: StatusFailed,
			wantCode:   apperrors.CodeMalformedResponse,
		},
		{
			name:       "network unavailable",
			current:    "1.0.0",
			err:        apperrors.New(apperrors.CodeNetworkUnavailable, "connection refused", nil),
			wantStatus: StatusFailed,
			wantCode:   apperrors.CodeNetworkUnavailable,
		},
		{
			name:       "malformed response",
			current:    "1.0.0",
			err:        apperrors.New(apperrors.CodeMalformedResponse, "release payload is not valid JSON", nil),
			wantStatus: StatusFailed,
			wantCode:   apperrors.CodeMalformedResponse,
		},
		{
			name:       "unstructured error",
			current:    "1.0.0",
			err:        errors.New("boom"),
			wantStatus: StatusFailed,
			wantCode:   apperrors.CodeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := newTestInitiator(t, staticSource(tt.result, tt.err), tt.current)
			if !i.CheckForUpdates() {
				t.Fatal("CheckForUpdates() = false")
			}

			final := awaitTerminal(t, i)
			if final.Status != tt.wantStatus {
				t.Fatalf("Status = %s, want %s (reason %q)", final.Status, tt.wantStatus, final.Reason)
			}
			if final.LatestVersion != tt.wantLatest {
				t.Errorf("LatestVersion = %q, want %q", final.LatestVersion, tt.wantLatest)
			}
			if final.CurrentVersion != tt.current {
				t.Errorf("CurrentVersion = %q, want %q", final.CurrentVersion, tt.current)
			}
			if !final.CompletedAt.Equal(fixedNow) {
				t.Errorf("CompletedAt = %v, want %v", final.CompletedAt, fixedNow)
			}

			if tt.wantStatus == StatusFailed {
				if final.Reason == "" {
					t.Error("Failed request has empty reason")
				}
				if final.Code != tt.wantCode {
					t.Errorf("Code = %q, want %q", final.Code, tt.wantCode)
				}
			} else if final.Reason != "" {
				t.Errorf("Reason = %q on a successful check", final.Reason)
			}

			if tt.wantStatus == StatusUpdateAvailable {
				if final.Notes != tt.result.Notes || final.NotesURL != tt.result.NotesURL {
					t.Errorf("notes = (%q, %q), want (%q, %q)", final.Notes, final.NotesURL, tt.result.Notes, tt.result.NotesURL)
				}
			}

			if got := i.Current(); got.Status != final.Status || got.ID != final.ID {
				t.Errorf("Current() = %s/%s, want %s/%s", got.Status, got.ID, final.Status, final.ID)
			}
		})
	}
}

func TestCheckForUpdatesTimeout(t *testing.T) {
	t.Run("source honors context", func(t *testing.T) {
		src := SourceFunc(func(ctx context.Context, _ string) (Result, error) {
			<-ctx.Done()
			return Result{}, ctx.Err()
		})
		i := newTestInitiator(t, src, "1.0.0", WithCheckTimeout(20*time.Millisecond))
		i.CheckForUpdates()

		final := awaitTerminal(t, i)
		if final.Status != StatusFailed {
			t.Fatalf("Status = %s, want failed", final.Status)
		}
		if final.Code != apperrors.CodeTimeout {
			t.Errorf("Code = %q, want timeout", final.Code)
		}
		if final.Reason != "Update check timed out" {
			t.Errorf("Reason = %q", final.Reason)
		}
	})

	t.Run("source ignores context", func(t *testing.T) {
		stuck := make(chan struct{})
		t.Cleanup(func() { close(stuck) })
		src := SourceFunc(func(context.Context, string) (Result, error) {
			<-stuck
			return Result{Available: true, LatestVersion: "9.9.9"}, nil
		})
		i := newTestInitiator(t, src, "1.0.0", WithCheckTimeout(20*time.Millisecond))
		i.CheckForUpdates()

		final := awaitTerminal(t, i)
		if final.Status != StatusFailed || final.Code != apperrors.CodeTimeout {
			t.Fatalf("got %s/%s, want failed/timeout", final.Status, final.Code)
		}
		if i.InFlight() {
			t.Error("InFlight() = true after timeout")
		}
		if !i.CheckForUpdates() {
			t.Error("CheckForUpdates() rejected after a timed-out check")
		}
	})
}

func TestChecksCompleteWhenUpdatesNotDrained(t *testing.T) {
	src := SourceFunc(func(ctx context.Context, _ string) (Result, error) {
		<-ctx.Done()
		return Result{}, ctx.Err()
	})
	i := newTestInitiator(t, src, "1.0.0", WithCheckTimeout(20*time.Millisecond))

	const checks = 3 * notificationBuffer
	var lastID string
	for n := 1; n <= checks; n++ {
		if !i.CheckForUpdates() {
			t.Fatalf("check %d: CheckForUpdates() = false", n)
		}
		lastID = i.Current().ID.String()

		deadline := time.Now().Add(2 * time.Second)
		for i.InFlight() {
			if time.Now().After(deadline) {
				t.Fatalf("check %d stuck in %s", n, i.Current().Status)
			}
			time.Sleep(5 * time.Millisecond)
		}
		if got := i.Current(); got.Status != StatusFailed || got.Code != apperrors.CodeTimeout {
			t.Fatalf("check %d: got %s/%s, want failed/timeout", n, got.Status, got.Code)
		}
	}

	var buffered []Request
	for len(i.Updates()) > 0 {
		buffered = append(buffered, <-i.Updates())
	}
	if len(buffered) != notificationBuffer {
		t.Fatalf("buffered %d snapshots, want %d", len(buffered), notificationBuffer)
	}
	last := buffered[len(buffered)-1]
	if last.ID.String() != lastID || !last.Status.IsTerminal() {
		t.Errorf("newest snapshot = %s/%s, want terminal snapshot of %s", last.ID, last.Status, lastID)
	}
}

func TestCheckForUpdatesRejectsNonReleaseVersion(t *testing.T) {
	var calls atomic.Int32
	src := SourceFunc(func(context.Context, string) (Result, error) {
		calls.Add(1)
		return Result{}, nil
	})
	i := newTestInitiator(t, src, "dev")
	i.CheckForUpdates()

	final := awaitTerminal(t, i)
	if final.Status != StatusFailed {
		t.Fatalf("Status = %s, want failed", final.Status)
	}
	if final.Code != apperrors.CodeInvalidVersion {
		t.Errorf("Code = %q, want invalid_version", final.Code)
	}
	if final.Reason == "" {
		t.Error("empty reason")
	}
	if calls.Load() != 0 {
		t.Error("source queried for a non-release version")
	}
}

func TestCloseAbandonsInFlightCheck(t *testing.T) {
	cancelled := make(chan struct{})
	started := make(chan struct{})
	src := SourceFunc(func(ctx context.Context, _ string) (Result, error) {
		close(started)
		<-ctx.Done()
		close(cancelled)
		return Result{}, ctx.Err()
	})
	i := NewInitiator(src, "1.0.0", WithLogger(func(string, ...any) {}))

	i.CheckForUpdates()
	<-started
	i.Close()

	for req := range i.Updates() {
		if req.Status.IsTerminal() {
			t.Fatalf("terminal snapshot %s published after Close", req.Status)
		}
	}

	select {
	case <-cancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("source context was not cancelled")
	}

	if i.CheckForUpdates() {
		t.Error("CheckForUpdates() = true after Close")
	}
	i.Close()
}

func TestRequestAdvanceNeverRegresses(t *testing.T) {
	tests := []struct {
		from, to Status
		ok       bool
	}{
		{StatusIdle, StatusChecking, true},
		{StatusIdle, StatusUpToDate, false},
		{StatusChecking, StatusUpToDate, true},
		{StatusChecking, StatusUpdateAvailable, true},
		{StatusChecking, StatusFailed, true},
		{StatusChecking, StatusChecking, false},
		{StatusChecking, StatusIdle, false},
		{StatusUpToDate, StatusChecking, false},
		{StatusFailed, StatusUpdateAvailable, false},
		{StatusUpdateAvailable, StatusIdle, false},
	}

	for _, tt := range tests {
		got, err := Request{Status: tt.from}.advance(tt.to)
		if (err == nil) != tt.ok {
			t.Errorf("%s -> %s: err = %v, want ok=%v", tt.from, tt.to, err, tt.ok)
			continue
		}
		want := tt.from
		if tt.ok {
			want = tt.to
		}
		if got.Status != want {
			t.Errorf("%s -> %s: status = %s, want %s", tt.from, tt.to, got.Status, want)
		}
	}
}
