package fetch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
)

const (
	UserAgent = "conf-tracker/1.0 (github.com/pfrederiksen/conf-tracker)"
	Timeout   = 30 * time.Second

	// maxRetryElapsed bounds the total time spent retrying one page
	maxRetryElapsed = 90 * time.Second
)

// Fetcher fetches a listing page and slices it into entry fragments.
type Fetcher struct {
	client *http.Client
}

// New creates a new Fetcher instance
func New() *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: Timeout,
		},
	}
}

// Fragments fetches pageURL and returns the inner HTML of every element
// carrying className, in document order. Transient failures (network
// errors, 5xx, 429) are retried with exponential backoff; any remaining
// failure is fatal to the whole run.
func (f *Fetcher) Fragments(ctx context.Context, pageURL, className string) ([]string, error) {
	var doc *goquery.Document

	operation := func() error {
		var err error
		doc, err = f.fetchDocument(ctx, pageURL)
		return err
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = maxRetryElapsed

	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		return nil, fmt.Errorf("fetching %s: %w", pageURL, err)
	}

	fragments := make([]string, 0)
	doc.Find("." + className).Each(func(_ int, sel *goquery.Selection) {
		html, err := sel.Html()
		if err != nil {
			return
		}
		fragments = append(fragments, html)
	})

	return fragments, nil
}

// fetchDocument performs one GET attempt and parses the response body.
func (f *Fetcher) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		if retryable(resp.StatusCode) {
			return nil, err
		}
		return nil, backoff.Permanent(err)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("parsing HTML: %w", err))
	}

	return doc, nil
}

// retryable reports whether a non-200 status is worth another attempt.
func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}
