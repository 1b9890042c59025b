// Package fetch retrieves the yearly AALA report PDFs: it scrapes each
// year's landing page for the PDF link and downloads the file into a local
// cache. Retrieval failures are per-year and non-fatal; a year that cannot
// be fetched simply contributes no rows.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"
)

const (
	baseURL = "https://www.nhtsa.gov"

	// The site rejects default Go user agents.
	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	defaultTimeout = 60 * time.Second
)

// rePDFHref pulls href attributes pointing at PDF files out of the landing
// page HTML.
var rePDFHref = regexp.MustCompile(`href="([^"]+\.pdf)"`)

// Client fetches and caches report PDFs.
type Client struct {
	httpClient *http.Client
	dataDir    string
}

// NewClient creates a fetch client caching downloads under dataDir.
func NewClient(dataDir string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		dataDir:    dataDir,
	}
}

// LandingURL returns the landing page for a model year's alphabetical AALA
// listing.
func LandingURL(year int) string {
	return fmt.Sprintf("%s/document/%d-aala-listed-alphabetically", baseURL, year)
}

// CachePath returns the local cache location of a year's report PDF.
func (c *Client) CachePath(year int) string {
	return fmt.Sprintf("%s/MY%d_AALA.pdf", c.dataDir, year)
}

// FetchYear ensures the year's report PDF is present in the cache and
// returns its path. An already-cached file is never re-downloaded.
func (c *Client) FetchYear(ctx context.Context, year int) (string, error) {
	path := c.CachePath(year)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	pdfURL, err := c.ReportURL(ctx, LandingURL(year))
	if err != nil {
		return "", fmt.Errorf("locating report for %d: %w", year, err)
	}

	if err := c.Download(ctx, pdfURL, path); err != nil {
		return "", fmt.Errorf("downloading report for %d: %w", year, err)
	}
	return path, nil
}

// ReportURL scrapes a landing page for the report PDF link. Links containing
// "AALA" or "Alphabetical" are preferred; failing that, the first PDF link
// on the page is used.
func (c *Client) ReportURL(ctx context.Context, landingURL string) (string, error) {
	body, err := c.get(ctx, landingURL, "")
	if err != nil {
		return "", err
	}

	matches := rePDFHref.FindAllStringSubmatch(body, -1)
	if len(matches) == 0 {
		return "", fmt.Errorf("no PDF link found on %s", landingURL)
	}

	for _, m := range matches {
		href := m[1]
		if strings.Contains(href, "AALA") || strings.Contains(href, "Alphabetical") {
			return absoluteURL(href)
		}
	}
	return absoluteURL(matches[0][1])
}

// Download fetches url into path. An existing file is left untouched.
func (c *Client) Download(ctx context.Context, fileURL, path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	body, err := c.get(ctx, fileURL, baseURL+"/")
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// get performs a GET with the browser-like headers the site expects.
func (c *Client) get(ctx context.Context, rawURL, referer string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("building request for %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", userAgent)
	if referer != "" {
		req.Header.Set("Referer", referer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: unexpected status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", rawURL, err)
	}
	return string(body), nil
}

// absoluteURL resolves a scraped href against the site base.
func absoluteURL(href string) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("invalid PDF link %q: %w", href, err)
	}
	return base.ResolveReference(ref).String(), nil
}
