package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultTimeout   = 20 * time.Second
	dialTimeout      = 10 * time.Second
	maxPageBytes     = 5 << 20
	maxImageBytes    = 20 << 20
	defaultUserAgent = "realty-api-importer/1.0"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrUnsupportedURL   = errors.New("only http and https urls can be fetched")
	ErrForbiddenAddress = errors.New("address is not publicly routable")
)

// Fetcher downloads pages and images of source sites, throttled to a fixed
// request rate shared by all hosts. Connections to loopback, private and
// link-local addresses are refused after DNS resolution, redirects included.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
	allowIP func(net.IP) bool
}

func NewFetcher(requestsPerSecond float64) *Fetcher {
	f := &Fetcher{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		allowIP: publicIP,
	}

	dialer := &net.Dialer{Timeout: dialTimeout, Control: f.checkDial}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	transport.DialContext = dialer.DialContext
	f.client = &http.Client{Timeout: defaultTimeout, Transport: transport}
	return f
}

func (f *Fetcher) checkDial(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	ip := net.ParseIP(host)
	if ip == nil || !f.allowIP(ip) {
		return fmt.Errorf("%w: %s", ErrForbiddenAddress, host)
	}
	return nil
}

func publicIP(ip net.IP) bool {
	return !(ip.IsUnspecified() ||
		ip.IsLoopback() ||
		ip.IsPrivate() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsInterfaceLocalMulticast() ||
		ip.IsMulticast())
}

// Fetch downloads and parses a listing page.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*Page, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	body, err := f.get(ctx, pageURL, maxPageBytes)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return Parse(body, base)
}

// Download returns the raw bytes of an image.
func (f *Fetcher) Download(ctx context.Context, imageURL string) ([]byte, error) {
	body, err := f.get(ctx, imageURL, maxImageBytes)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return io.ReadAll(body)
}

type limitedBody struct {
	io.Reader
	io.Closer
}

func (f *Fetcher) get(ctx context.Context, target string, limit int64) (io.ReadCloser, error) {
	u, err := url.Parse(target)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedURL, target)
	}
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	res, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", target, err)
	}
	if res.StatusCode != http.StatusOK {
		res.Body.Close()
		return nil, fmt.Errorf("%w: %s returned %d", ErrUnexpectedStatus, target, res.StatusCode)
	}
	return limitedBody{Reader: io.LimitReader(res.Body, limit), Closer: res.Body}, nil
}

// SameSite reports whether rawURL is an http(s) URL on the host of source.
// Hosts compare case-insensitively and ignore a leading "www.".
func SameSite(rawURL, source string) bool {
	target, err := url.Parse(rawURL)
	if err != nil || (target.Scheme != "http" && target.Scheme != "https") {
		return false
	}
	src, err := url.Parse(source)
	if err != nil || src.Hostname() == "" {
		return false
	}
	return bareHost(target.Hostname()) == bareHost(src.Hostname())
}

func bareHost(host string) string {
	return strings.TrimPrefix(strings.ToLower(host), "www.")
}
