package update

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
	"time"

	"sandbox/internal/debug"
	apperrors "sandbox/internal/errors"
)

type appcastFeed struct {
	XMLName xml.Name      `xml:"rss"`
	Items   []appcastItem `xml:"channel>item"`
}

// appcastItem fields in the sparkle: namespace use the full namespace URI
// http://www.andymatuschak.org/xml-namespaces/sparkle.
type appcastItem struct {
	Title            string           `xml:"title"`
	Link             string           `xml:"link"`
	Description      string           `xml:"description"`
	PubDate          string           `xml:"pubDate"`
	Version          string           `xml:"http://www.andymatuschak.org/xml-namespaces/sparkle version"`
	ShortVersion     string           `xml:"http://www.andymatuschak.org/xml-namespaces/sparkle shortVersionString"`
	ReleaseNotesLink string           `xml:"http://www.andymatuschak.org/xml-namespaces/sparkle releaseNotesLink"`
	Channel          string           `xml:"http://www.andymatuschak.org/xml-namespaces/sparkle channel"`
	Enclosure        appcastEnclosure `xml:"enclosure"`
}

type appcastEnclosure struct {
	URL          string `xml:"url,attr"`
	Version      string `xml:"http://www.andymatuschak.org/xml-namespaces/sparkle version,attr"`
	ShortVersion string `xml:"http://www.andymatuschak.org/xml-namespaces/sparkle shortVersionString,attr"`
}

// version returns the first version string on the item that parses.
func (it appcastItem) version() (Version, bool) {
	for _, candidate := range []string{it.ShortVersion, it.Enclosure.ShortVersion, it.Version, it.Enclosure.Version} {
		if strings.TrimSpace(candidate) == "" {
			continue
		}
		if v, err := ParseVersion(candidate); err == nil {
			return v, true
		}
	}
	return Version{}, false
}

func (it appcastItem) notesURL() string {
	if link := strings.TrimSpace(it.ReleaseNotesLink); link != "" {
		return link
	}
	return strings.TrimSpace(it.Link)
}

func (it appcastItem) published() time.Time {
	raw := strings.TrimSpace(it.PubDate)
	for _, layout := range []string{time.RFC1123Z, time.RFC1123, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

// AppcastSource reads a Sparkle-style RSS appcast. Only items on the
// default channel are considered.
type AppcastSource struct {
	feedURL    string
	httpClient *http.Client
}

// NewAppcastSource creates a source for the given feed URL. A nil client
// uses a client with DefaultSourceTimeout.
func NewAppcastSource(feedURL string, client *http.Client) *AppcastSource {
	if client == nil {
		client = &http.Client{Timeout: DefaultSourceTimeout}
	}
	return &AppcastSource{feedURL: feedURL, httpClient: client}
}

// Latest downloads the feed and reports its highest version.
func (s *AppcastSource) Latest(ctx context.Context, currentVersion string) (Result, error) {
	feed, err := s.fetch(ctx)
	if err != nil {
		return Result{}, err
	}

	var (
		best    appcastItem
		bestVer Version
		found   bool
		skipped int
	)
	for _, item := range feed.Items {
		if strings.TrimSpace(item.Channel) != "" {
			continue
		}
		v, ok := item.version()
		if !ok {
			skipped++
			continue
		}
		if !found || v.GreaterThan(bestVer) {
			best, bestVer, found = item, v, true
		}
	}

	if !found {
		if skipped > 0 {
			return Result{}, apperrors.New(apperrors.CodeMalformedResponse, "appcast items carry no usable version", nil)
		}
		return Result{Available: false}, nil
	}

	return Result{
		Available:     availableFor(currentVersion, bestVer),
		LatestVersion: bestVer.String(),
		Notes:         strings.TrimSpace(best.Description),
		NotesURL:      best.notesURL(),
		PublishedAt:   best.published(),
	}, nil
}

func (s *AppcastSource) fetch(ctx context.Context) (*appcastFeed, error) {
	logf := debug.Scoped("appcast")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.feedURL, nil)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeConfigurationError, "invalid feed url", err)
	}
	req.Header.Set("Accept", "application/rss+xml, application/xml;q=0.9, */*;q=0.1")
	req.Header.Set("User-Agent", "sandbox-update-checker")

	logf("GET %s", s.feedURL)
	resp, err := s.httpClient.Do(req)
	if err != nil {
		logf("request failed: %v", err)
		return nil, classifyTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatus(resp.StatusCode)
	}

	var feed appcastFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		if ctx.Err() != nil {
			return nil, classifyTransportError(ctx.Err())
		}
		return nil, apperrors.New(apperrors.CodeMalformedResponse, fmt.Sprintf("appcast is not valid XML: %v", err), err)
	}
	logf("feed has %d items", len(feed.Items))
	return &feed, nil
}
