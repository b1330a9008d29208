// Package edgar talks to the SEC EDGAR public endpoints: the company
// ticker directory, per-company submissions JSON, and filing documents
// under the archives. All requests are throttled and carry a declared
// User-Agent, per SEC fair-access rules.
package edgar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/pkg/config"
)

// Client handles HTTP requests to SEC EDGAR with rate limiting
type Client struct {
	httpClient   *http.Client
	limiter      *rate.Limiter
	userAgent    string
	baseURL      string
	archivesURL  string
	tickersURL   string
}

// NewClient creates a new EDGAR client. The request delay from the config
// becomes the limiter's refill interval, so consecutive requests are at
// least that far apart.
func NewClient(cfg *config.Config) *Client {
	delay := cfg.RequestDelay
	if delay <= 0 {
		delay = 200 * time.Millisecond
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:    10,
				IdleConnTimeout: 30 * time.Second,
			},
		},
		limiter:     rate.NewLimiter(rate.Every(delay), 1),
		userAgent:   cfg.EdgarUserAgent,
		baseURL:     strings.TrimRight(cfg.EdgarBaseURL, "/"),
		archivesURL: strings.TrimRight(cfg.EdgarArchivesURL, "/"),
		tickersURL:  cfg.EdgarTickersURL,
	}
}

// CompanyTickers downloads the full ticker-to-CIK directory and builds
// lookup indexes over it.
func (c *Client) CompanyTickers(ctx context.Context) (*CIKMapping, error) {
	body, err := c.get(ctx, c.tickersURL)
	if err != nil {
		return nil, fmt.Errorf("fetch company tickers: %w", err)
	}

	var raw map[string]CompanyEntry
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse company tickers: %w", err)
	}

	entries := make([]CompanyEntry, 0, len(raw))
	for _, e := range raw {
		entries = append(entries, e)
	}
	return NewCIKMapping(entries), nil
}

// Submissions fetches the filing history for a zero-padded 10-digit CIK.
func (c *Client) Submissions(ctx context.Context, cik string) (*Submissions, error) {
	url := fmt.Sprintf("%s/submissions/CIK%s.json", c.baseURL, cik)
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch submissions for CIK %s: %w", cik, err)
	}

	var subs Submissions
	if err := json.Unmarshal(body, &subs); err != nil {
		return nil, fmt.Errorf("parse submissions for CIK %s: %w", cik, err)
	}
	return &subs, nil
}

// Document downloads the primary document of a filing and returns its raw
// body, usually HTML.
func (c *Client) Document(ctx context.Context, cik, accession, primaryDoc string) (string, error) {
	url := c.DocumentURL(cik, accession, primaryDoc)
	body, err := c.get(ctx, url)
	if err != nil {
		return "", fmt.Errorf("fetch document %s: %w", accession, err)
	}
	return string(body), nil
}

// DocumentURL builds the archive URL for a filing's primary document. The
// path segment uses the CIK without leading zeros and the accession number
// with dashes stripped.
func (c *Client) DocumentURL(cik, accession, primaryDoc string) string {
	return fmt.Sprintf("%s/%s/%s/%s",
		c.archivesURL,
		strings.TrimLeft(cik, "0"),
		strings.ReplaceAll(accession, "-", ""),
		primaryDoc,
	)
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d for %s", resp.StatusCode, url)
	}

	return io.ReadAll(resp.Body)
}

// Close cleans up the client resources
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
