package update

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	apperrors "sandbox/internal/errors"
)

// DefaultSourceTimeout bounds an individual HTTP request made by a source.
// The initiator applies its own, usually shorter, deadline on top.
const DefaultSourceTimeout = 30 * time.Second

// Source kinds accepted by NewSource.
const (
	SourceGitHub  = "github"
	SourceAppcast = "appcast"
)

// Result is what an update source reports for the running version.
type Result struct {
	Available     bool
	LatestVersion string
	Notes         string
	NotesURL      string
	PublishedAt   time.Time
}

// Source is the external collaborator queried for the newest release.
// Implementations must honor ctx cancellation.
type Source interface {
	Latest(ctx context.Context, currentVersion string) (Result, error)
}

// SourceFunc is an adapter to allow ordinary functions to act as sources.
type SourceFunc func(ctx context.Context, currentVersion string) (Result, error)

// Latest implements Source for SourceFunc.
func (f SourceFunc) Latest(ctx context.Context, currentVersion string) (Result, error) {
	return f(ctx, currentVersion)
}

// SourceConfig selects and configures a Source.
type SourceConfig struct {
	Kind       string
	Owner      string
	Repo       string
	APIURL     string
	FeedURL    string
	HTTPClient *http.Client
}

// NewSource builds the source described by cfg.
func NewSource(cfg SourceConfig) (Source, error) {
	kind := strings.ToLower(strings.TrimSpace(cfg.Kind))
	if kind == "" {
		kind = SourceGitHub
	}

	switch kind {
	case SourceGitHub:
		owner := strings.TrimSpace(cfg.Owner)
		repo := strings.TrimSpace(cfg.Repo)
		if owner == "" || repo == "" {
			return nil, apperrors.New(apperrors.CodeConfigurationError, "github source requires owner and repo", nil)
		}
		opts := []GitHubOption{}
		if cfg.APIURL != "" {
			opts = append(opts, WithBaseURL(cfg.APIURL))
		}
		if cfg.HTTPClient != nil {
			opts = append(opts, WithHTTPClient(cfg.HTTPClient))
		}
		return NewGitHubSource(owner, repo, opts...), nil
	case SourceAppcast:
		feed := strings.TrimSpace(cfg.FeedURL)
		if feed == "" {
			return nil, apperrors.New(apperrors.CodeConfigurationError, "appcast source requires a feed url", nil)
		}
		return NewAppcastSource(feed, cfg.HTTPClient), nil
	default:
		return nil, apperrors.New(apperrors.CodeConfigurationError, fmt.Sprintf("unknown update source %q", cfg.Kind), nil)
	}
}

// classifyTransportError maps an http.Client error onto the failure taxonomy.
func classifyTransportError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.New(apperrors.CodeTimeout, "request timed out", err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apperrors.New(apperrors.CodeTimeout, "request timed out", err)
	}
	return apperrors.New(apperrors.CodeNetworkUnavailable, shortNetworkReason(err), err)
}

// classifyStatus maps a non-200 HTTP status onto the failure taxonomy.
func classifyStatus(code int) error {
	switch code {
	case http.StatusForbidden, http.StatusTooManyRequests:
		return apperrors.New(apperrors.CodeNetworkUnavailable, "rate limited", nil)
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return apperrors.New(apperrors.CodeTimeout, fmt.Sprintf("status %d", code), nil)
	default:
		return apperrors.New(apperrors.CodeNetworkUnavailable, fmt.Sprintf("status %d", code), nil)
	}
}

func shortNetworkReason(err error) string {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return "cannot resolve " + dnsErr.Name
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return "connection refused"
	}
	return "request failed"
}

func availableFor(current string, latest Version) bool {
	cur, err := ParseVersion(current)
	if err != nil {
		return false
	}
	return latest.GreaterThan(cur)
}
