package update

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"sandbox/internal/debug"
	apperrors "sandbox/internal/errors"
)

// DefaultGitHubAPIURL is the public GitHub REST endpoint.
const DefaultGitHubAPIURL = "https://api.github.com"

// ReleaseAsset represents a downloadable file attached to a release.
type ReleaseAsset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
	ContentType        string `json:"content_type"`
	Size               int64  `json:"size"`
}

// ReleaseInfo contains information about a GitHub release.
type ReleaseInfo struct {
	TagName     string         `json:"tag_name"`
	Name        string         `json:"name"`
	Body        string         `json:"body"`
	HTMLURL     string         `json:"html_url"`
	PublishedAt time.Time      `json:"published_at"`
	Prerelease  bool           `json:"prerelease"`
	Draft       bool           `json:"draft"`
	Assets      []ReleaseAsset `json:"assets"`
}

// GitHubSource reports the latest published release of a GitHub repository.
type GitHubSource struct {
	owner      string
	repo       string
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// GitHubOption configures a GitHubSource.
type GitHubOption func(*GitHubSource)

// WithHTTPClient sets a custom HTTP client for the source.
func WithHTTPClient(client *http.Client) GitHubOption {
	return func(s *GitHubSource) {
		s.httpClient = client
	}
}

// WithBaseURL points the source at a different API host (GitHub Enterprise, tests).
func WithBaseURL(url string) GitHubOption {
	return func(s *GitHubSource) {
		s.baseURL = strings.TrimRight(url, "/")
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) GitHubOption {
	return func(s *GitHubSource) {
		s.userAgent = ua
	}
}

// NewGitHubSource creates a release source for owner/repo.
func NewGitHubSource(owner, repo string, opts ...GitHubOption) *GitHubSource {
	s := &GitHubSource{
		owner:     owner,
		repo:      repo,
		baseURL:   DefaultGitHubAPIURL,
		userAgent: "sandbox-update-checker",
		httpClient: &http.Client{
			Timeout: DefaultSourceTimeout,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Latest fetches the latest release and compares its tag to currentVersion.
// A repository without releases (404) is reported as nothing available.
func (s *GitHubSource) Latest(ctx context.Context, currentVersion string) (Result, error) {
	release, err := s.fetchLatestRelease(ctx)
	if err != nil {
		return Result{}, err
	}
	if release == nil || release.Draft {
		return Result{Available: false}, nil
	}

	latest, err := ParseVersion(release.TagName)
	if err != nil {
		return Result{}, apperrors.New(apperrors.CodeMalformedResponse, fmt.Sprintf("release tag %q is not a version", release.TagName), err)
	}

	return Result{
		Available:     availableFor(currentVersion, latest),
		LatestVersion: latest.String(),
		Notes:         release.Body,
		NotesURL:      release.HTMLURL,
		PublishedAt:   release.PublishedAt,
	}, nil
}

func (s *GitHubSource) fetchLatestRelease(ctx context.Context) (*ReleaseInfo, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", s.baseURL, s.owner, s.repo)
	logf := debug.Scoped("github")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeConfigurationError, "invalid release url", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", s.userAgent)

	logf("GET %s", url)
	resp, err := s.httpClient.Do(req)
	if err != nil {
		logf("request failed: %v", err)
		return nil, classifyTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	logf("status %d", resp.StatusCode)
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatus(resp.StatusCode)
	}

	var release ReleaseInfo
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		if ctx.Err() != nil {
			return nil, classifyTransportError(ctx.Err())
		}
		return nil, apperrors.New(apperrors.CodeMalformedResponse, "release payload is not valid JSON", err)
	}
	if strings.TrimSpace(release.TagName) == "" {
		return nil, apperrors.New(apperrors.CodeMalformedResponse, "release has no tag", nil)
	}

	return &release, nil
}
