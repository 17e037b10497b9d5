package update

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "sandbox/internal/errors"
)

const appcastHeader = `<?xml version="1.0" encoding="utf-8"?>
<rss version="2.0" xmlns:sparkle="http://www.andymatuschak.org/xml-namespaces/sparkle">
<channel>
<title>Sandbox</title>
`

const appcastFooter = `</channel>
</rss>
`

func appcastServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestAppcastSourceLatest(t *testing.T) {
	feed := appcastHeader + `
<item>
  <title>Version 1.0.0</title>
  <sparkle:shortVersionString>1.0.0</sparkle:shortVersionString>
  <description>Initial release</description>
</item>
<item>
  <title>Version 1.1</title>
  <pubDate>Mon, 02 Mar 2026 10:00:00 +0000</pubDate>
  <sparkle:releaseNotesLink>https://example.com/notes/1.1.html</sparkle:releaseNotesLink>
  <description><![CDATA[<h2>New</h2><p>Hands-free mode</p>]]></description>
  <enclosure url="https://example.com/Sandbox-1.1.zip" sparkle:shortVersionString="1.1" sparkle:version="110" />
</item>
<item>
  <title>Version 2.0 beta</title>
  <sparkle:channel>beta</sparkle:channel>
  <sparkle:shortVersionString>2.0.0-beta.1</sparkle:shortVersionString>
</item>
` + appcastFooter

	server := appcastServer(t, http.StatusOK, feed)
	s := NewAppcastSource(server.URL, nil)

	res, err := s.Latest(context.Background(), "1.0.0")
	if err != nil {
		t.Fatalf("Latest() error: %v", err)
	}
	if !res.Available {
		t.Error("Available should be true")
	}
	if res.LatestVersion != "1.1.0" {
		t.Errorf("LatestVersion = %q, want 1.1.0 (beta channel must be skipped)", res.LatestVersion)
	}
	if res.NotesURL != "https://example.com/notes/1.1.html" {
		t.Errorf("NotesURL = %q", res.NotesURL)
	}
	if res.Notes != "<h2>New</h2><p>Hands-free mode</p>" {
		t.Errorf("Notes = %q", res.Notes)
	}
	want := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	if !res.PublishedAt.Equal(want) {
		t.Errorf("PublishedAt = %v, want %v", res.PublishedAt, want)
	}
}

func TestAppcastSourceFallsBackToLink(t *testing.T) {
	feed := appcastHeader + `
<item>
  <link>https://example.com/releases/1.0.0</link>
  <sparkle:version>1.0.0</sparkle:version>
</item>
` + appcastFooter

	server := appcastServer(t, http.StatusOK, feed)
	res, err := NewAppcastSource(server.URL, nil).Latest(context.Background(), "1.0.0")
	if err != nil {
		t.Fatalf("Latest() error: %v", err)
	}
	if res.Available {
		t.Error("Available should be false for the running version")
	}
	if res.NotesURL != "https://example.com/releases/1.0.0" {
		t.Errorf("NotesURL = %q", res.NotesURL)
	}
}

func TestAppcastSourceEmptyFeed(t *testing.T) {
	server := appcastServer(t, http.StatusOK, appcastHeader+appcastFooter)

	res, err := NewAppcastSource(server.URL, nil).Latest(context.Background(), "1.0.0")
	if err != nil {
		t.Fatalf("Latest() error: %v", err)
	}
	if res.Available || res.LatestVersion != "" {
		t.Errorf("got %+v, want nothing available", res)
	}
}

func TestAppcastSourceErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode apperrors.Code
	}{
		{"not xml", http.StatusOK, "{not xml", apperrors.CodeMalformedResponse},
		{"unversioned items", http.StatusOK, appcastHeader + "<item><title>mystery</title><sparkle:version>build-77</sparkle:version></item>" + appcastFooter, apperrors.CodeMalformedResponse},
		{"server error", http.StatusBadGateway, "", apperrors.CodeNetworkUnavailable},
		{"rate limited", http.StatusTooManyRequests, "", apperrors.CodeNetworkUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := appcastServer(t, tt.status, tt.body)
			_, err := NewAppcastSource(server.URL, nil).Latest(context.Background(), "1.0.0")
			if err == nil {
				t.Fatal("expected error")
			}
			if got := apperrors.CodeOf(err); got != tt.wantCode {
				t.Errorf("code = %q, want %q (err %v)", got, tt.wantCode, err)
			}
		})
	}
}
