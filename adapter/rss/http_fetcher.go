package rss

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"rssmerge/domain"
)

const (
	defaultTimeout = 20 * time.Second
	maxBodyBytes   = 16 << 20
	userAgent      = "rssmerge/1.0 (+https://github.com/rssmerge)"
)

// HTTPFetcher is the net/http implementation of domain.Transport.
type HTTPFetcher struct {
	client  *http.Client
	maxBody int64
}

// NewHTTPFetcher returns a fetcher whose requests are bounded by timeout.
// A non-positive timeout selects the default.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPFetcher{client: &http.Client{Timeout: timeout}, maxBody: maxBodyBytes}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (domain.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Response{}, err
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := f.client.Do(req)
	if err != nil {
		return domain.Response{}, err
	}
	defer resp.Body.Close()

	out := domain.Response{StatusCode: resp.StatusCode, Status: resp.Status}
	if !out.OK() {
		return out, nil
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return domain.Response{}, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > f.maxBody {
		return domain.Response{}, fmt.Errorf("body exceeds %d bytes", f.maxBody)
	}
	out.Body = body
	return out, nil
}
