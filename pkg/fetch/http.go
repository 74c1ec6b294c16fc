package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/archiveview/graphview/pkg/logging"
)

const (
	httpFetchTimeout = 30 * time.Second
	httpMaxAttempts  = 3
	httpRetryBackoff = 500 * time.Millisecond

	// maxPayloadBytes caps the dataset document size; the engine is
	// scoped to a few thousand nodes and edges
	maxPayloadBytes = 64 << 20
)

// HTTPSource fetches the dataset document from the REST backend.
// Transient failures are retried a couple of times with backoff; this
// is the single backend call the engine makes.
type HTTPSource struct {
	URL    string
	client *http.Client
	log    logging.Logger
}

// NewHTTPSource creates a source fetching from the given URL
func NewHTTPSource(url string, logger logging.Logger) *HTTPSource {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &HTTPSource{
		URL:    url,
		client: &http.Client{Timeout: httpFetchTimeout},
		log:    logger.With(logging.Component("fetch")),
	}
}

func (s *HTTPSource) Name() string {
	return s.URL
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= httpMaxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, &FetchError{Source: s.Name(), Err: ctx.Err()}
			case <-time.After(httpRetryBackoff * time.Duration(attempt-1)):
			}
			s.log.Warn("retrying dataset fetch",
				logging.Source(s.URL),
				logging.Int("attempt", attempt),
				logging.Error(lastErr))
		}
		data, err := s.fetchOnce(ctx)
		if err == nil {
			return data, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return nil, &FetchError{Source: s.Name(), Err: lastErr}
}

func (s *HTTPSource) fetchOnce(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("backend returned %s", resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
}
