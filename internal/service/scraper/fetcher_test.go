package scraper

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSameSite(t *testing.T) {
	source := "https://www.source.example.com"

	assert.True(t, SameSite("https://source.example.com/listing/1", source))
	assert.True(t, SameSite("http://WWW.Source.Example.com/x", source))
	assert.False(t, SameSite("https://evil.example.com/listing/1", source))
	assert.False(t, SameSite("https://source.example.com.evil.io/", source))
	assert.False(t, SameSite("ftp://source.example.com/file", source))
	assert.False(t, SameSite("https://source.example.com/x", ""))
}

// newLocalFetcher lets tests reach httptest servers on loopback.
func newLocalFetcher(requestsPerSecond float64) *Fetcher {
	f := NewFetcher(requestsPerSecond)
	f.allowIP = func(net.IP) bool { return true }
	return f
}

func TestFetcher_FetchParsesPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, defaultUserAgent, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`<html><head><meta property="og:title" content="Loft"><meta property="og:image" content="/a.jpg"></head></html>`))
	}))
	defer server.Close()

	page, err := newLocalFetcher(100).Fetch(context.Background(), server.URL+"/listing")
	require.NoError(t, err)

	assert.Equal(t, "Loft", page.Title)
	assert.Equal(t, []string{server.URL + "/a.jpg"}, page.Images)
}

func TestFetcher_RejectsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newLocalFetcher(100).Download(context.Background(), server.URL+"/a.jpg")

	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestFetcher_HonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFetcher(1).Fetch(ctx, "https://source.example.com/")

	assert.Error(t, err)
}

func TestFetcher_RefusesInternalAddresses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("internal address was reached")
	}))
	defer server.Close()

	_, err := NewFetcher(100).Download(context.Background(), server.URL+"/a.jpg")

	assert.ErrorIs(t, err, ErrForbiddenAddress)
}

func TestFetcher_RefusesRedirectToInternalAddress(t *testing.T) {
	internal := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("redirect target was reached")
	}))
	defer internal.Close()
	public := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, internal.URL+"/secret", http.StatusFound)
	}))
	defer public.Close()

	// Only the first connection, to the page host, counts as public.
	f := NewFetcher(100)
	dials := 0
	f.allowIP = func(net.IP) bool {
		dials++
		return dials == 1
	}

	_, err := f.Download(context.Background(), public.URL+"/a.jpg")

	assert.ErrorIs(t, err, ErrForbiddenAddress)
	assert.Equal(t, 2, dials)
}

func TestFetcher_RefusesNonHTTPSchemes(t *testing.T) {
	for _, target := range []string{"file:///etc/passwd", "gopher://source.example.com/", "::not a url"} {
		_, err := NewFetcher(100).Download(context.Background(), target)

		assert.ErrorIs(t, err, ErrUnsupportedURL, target)
	}
}

func TestPublicIP(t *testing.T) {
	tests := []struct {
		ip   string
		want bool
	}{
		{"93.184.216.34", true},
		{"2606:2800:220:1::1", true},
		{"127.0.0.1", false},
		{"::1", false},
		{"10.0.0.5", false},
		{"172.16.3.4", false},
		{"192.168.1.1", false},
		{"169.254.169.254", false},
		{"fe80::1", false},
		{"fd00::1", false},
		{"0.0.0.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			assert.Equal(t, tt.want, publicIP(net.ParseIP(tt.ip)))
		})
	}
}
