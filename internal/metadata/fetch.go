package metadata

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"

	"cinetree/internal/logging"
)

const fetchUserAgent = "cinetree/1.0 (+https://github.com/cinetree/cinetree)"

// Fetcher performs bounded-retry HTTP GETs for all providers. A request
// that fails every attempt is a connectivity failure and carries
// ErrConnectivity so callers abort the batch instead of skipping the unit
// of work.
type Fetcher struct {
	client   *http.Client
	attempts uint
	logger   *slog.Logger
}

// NewFetcher builds a fetcher with a fixed per-attempt timeout and a
// consecutive-failure budget.
func NewFetcher(timeout time.Duration, attempts int, logger *slog.Logger) *Fetcher {
	if attempts < 1 {
		attempts = 1
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Fetcher{
		client:   &http.Client{Timeout: timeout},
		attempts: uint(attempts),
		logger:   logging.NewComponentLogger(logger, "fetch"),
	}
}

// Get fetches the URL body, retrying transport errors and 5xx responses.
// Other non-200 statuses fail immediately without retry.
func (f *Fetcher) Get(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("build request: %w", err))
			}
			req.Header.Set("User-Agent", fetchUserAgent)
			req.Header.Set("Accept-Language", "en-US,en;q=0.9")

			resp, err := f.client.Do(req)
			if err != nil {
				return fmt.Errorf("execute request: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode >= 500 {
				return fmt.Errorf("server returned %d", resp.StatusCode)
			}
			if resp.StatusCode != http.StatusOK {
				return retry.Unrecoverable(fmt.Errorf("unexpected status %d", resp.StatusCode))
			}

			body, err = io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("read response: %w", err)
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(f.attempts),
		retry.Delay(time.Second),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, err error) {
			f.logger.Warn("fetch attempt failed, retrying",
				logging.Args(
					logging.Int("attempt", int(attempt)+1),
					logging.String("url", url),
					logging.Error(err),
				)...)
		}),
	)
	if err != nil {
		return nil, Wrap(ErrConnectivity, "fetch", "get", fmt.Sprintf("could not fetch %s; check your internet connection", url), err)
	}
	return body, nil
}
