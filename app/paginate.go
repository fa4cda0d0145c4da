package app

import (
	"context"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"rssmerge/domain"
	"rssmerge/internal/logger"
	"rssmerge/internal/metrics"
)

const (
	DefaultPageWidth = 10
	DefaultMaxPages  = 100
)

// PaginatedFetcher walks numbered pages of a source in batches of width
// pages. It stops after the first batch that contains a failed page, or at
// maxPages.
type PaginatedFetcher struct {
	pages     domain.FeedFetcher
	paginator domain.Paginator
	width     int
	maxPages  int
}

func NewPaginatedFetcher(pages domain.FeedFetcher, paginator domain.Paginator, width, maxPages int) *PaginatedFetcher {
	if width <= 0 {
		width = DefaultPageWidth
	}
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	return &PaginatedFetcher{pages: pages, paginator: paginator, width: width, maxPages: maxPages}
}

func (p *PaginatedFetcher) FetchFeed(ctx context.Context, source string) domain.Feed {
	src := domain.Source(source)
	var acc domain.Feed
	for cursor := 1; cursor <= p.maxPages; cursor += p.width {
		batch := p.fetchBatch(ctx, src, cursor, min(p.width, p.maxPages-cursor+1))
		merged := domain.ComposeAll(batch...)
		if acc == nil {
			acc = merged
		} else {
			acc = domain.Compose(acc, merged)
		}

		if lo.SomeBy(batch, isFailure) {
			logger.L.Debugw("pagination stopped", "source", source, "last_page", cursor+len(batch)-1)
			break
		}
		if ctx.Err() != nil {
			break
		}
	}
	return acc
}

// fetchBatch fetches n pages starting at first concurrently and returns
// them in page order.
func (p *PaginatedFetcher) fetchBatch(ctx context.Context, src domain.Source, first, n int) []domain.Feed {
	metrics.PaginationBatches.Inc()
	out := make([]domain.Feed, n)
	var g errgroup.Group
	for i := range n {
		g.Go(func() error {
			out[i] = p.pages.FetchFeed(ctx, p.paginator.PageURL(src, first+i))
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func isFailure(f domain.Feed) bool {
	_, failed := f.(domain.Failure)
	return failed
}
