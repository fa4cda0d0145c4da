package app

import (
	"context"
	"fmt"

	"rssmerge/domain"
	"rssmerge/internal/metrics"
)

// PageFetcher fetches and parses one URL. Every failure is returned as a
// domain.Failure.
type PageFetcher struct {
	transport domain.Transport
	parser    domain.Parser
}

func NewPageFetcher(transport domain.Transport, parser domain.Parser) *PageFetcher {
	return &PageFetcher{transport: transport, parser: parser}
}

func (f *PageFetcher) FetchFeed(ctx context.Context, url string) domain.Feed {
	// Shutdown takes effect between fetches, not during one.
	resp, err := f.transport.Fetch(context.WithoutCancel(ctx), url)
	if err != nil {
		metrics.PageFetches.WithLabelValues("transport").Inc()
		return domain.Failure{Reason: fmt.Sprintf("fetch %s: %v", url, err)}
	}
	if !resp.OK() {
		metrics.PageFetches.WithLabelValues("status").Inc()
		return domain.Failure{Reason: fmt.Sprintf("GET %s: %s", url, statusLine(resp))}
	}
	feed := f.parser.Parse(resp.Body)
	if _, failed := feed.(domain.Failure); failed {
		metrics.PageFetches.WithLabelValues("parse").Inc()
	} else {
		metrics.PageFetches.WithLabelValues("ok").Inc()
	}
	return feed
}

func statusLine(resp domain.Response) string {
	if resp.Status != "" {
		return resp.Status
	}
	return fmt.Sprintf("%d", resp.StatusCode)
}
