package oxford

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/wordhabit/wordhabit-backend/internal/config"
	"github.com/wordhabit/wordhabit-backend/internal/domain"
)

// Client fetches dictionary pages from the source site and walks the
// numbered sibling pages of a word (<base>/<word>_1, <base>/<word>_2, ...).
type Client struct {
	baseURL    string
	maxPages   int
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *slog.Logger
}

// NewClient creates a Client from the scraper configuration.
func NewClient(cfg config.ScraperConfig, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		maxPages:   cfg.MaxPages,
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{Timeout: cfg.FetchTimeout},
		limiter:    rate.NewLimiter(rate.Every(cfg.PageDelay), 1),
		log:        logger.With("adapter", "oxford"),
	}
}

// FetchWord fetches every existing numbered page for the given term and
// returns one Entry per page. A word that the site does not know yields an
// empty slice and no error; transport and server failures wrap
// domain.ErrFetchFailed.
func (c *Client) FetchWord(ctx context.Context, term string) ([]domain.Entry, error) {
	slug := url.PathEscape(strings.ReplaceAll(term, " ", "-"))

	var entries []domain.Entry
	for page := 1; page <= c.maxPages; page++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("oxford: wait for rate limit: %w", err)
		}

		entry, err := c.fetchPage(ctx, fmt.Sprintf("%s/%s_%d", c.baseURL, slug, page), term)
		if err != nil {
			return nil, err
		}
		if entry == nil {
			break
		}
		entries = append(entries, *entry)
	}

	c.log.DebugContext(ctx, "oxford fetch complete",
		slog.String("term", term),
		slog.Int("entries", len(entries)),
	)
	return entries, nil
}

// fetchPage fetches and parses a single page.
// Returns nil, nil when the page does not exist (HTTP 404 or no headword),
// which ends the page walk cleanly.
func (c *Client) fetchPage(ctx context.Context, pageURL, term string) (*domain.Entry, error) {
	c.log.DebugContext(ctx, "oxford request", slog.String("url", pageURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("oxford: create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.doWithRetry(ctx, req, term)
	if err != nil {
		c.log.ErrorContext(ctx, "oxford request failed",
			slog.String("term", term), slog.String("error", err.Error()))
		return nil, fmt.Errorf("oxford: request failed: %w: %w", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oxford: unexpected status %d: %w", resp.StatusCode, domain.ErrFetchFailed)
	}

	entry, err := Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("oxford: parse page: %w: %w", domain.ErrFetchFailed, err)
	}
	return entry, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request, term string) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	// Don't retry if context is already cancelled.
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	c.log.WarnContext(ctx, "oxford retry", slog.String("term", term), slog.String("reason", reason))

	// Close body from the failed attempt before retrying.
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	time.Sleep(500 * time.Millisecond)

	resp, err = c.httpClient.Do(req)
	return resp, err
}
