package domain

import (
	"context"
	"time"
)

// Transport performs one HTTP GET. Transport-level failures are returned as
// errors; any HTTP status is a successful Response.
type Transport interface {
	Fetch(ctx context.Context, url string) (Response, error)
}

// Parser turns a raw document into a Feed.
type Parser interface {
	Parse(body []byte) Feed
}

// FeedFetcher produces one Feed for a URL or source. It never returns nil.
type FeedFetcher interface {
	FetchFeed(ctx context.Context, url string) Feed
}

// Paginator classifies sources that spread their content over numbered
// pages and rewrites a source URL to the URL of a given page.
type Paginator interface {
	Match(source Source) bool
	PageURL(source Source, page int) string
}

// FeedStore holds the latest Feed of every source.
type FeedStore interface {
	Publish(source Source, feed Feed)
	Get(source Source) (Feed, bool)
	Snapshot() map[Source]Feed
}

// SourceRepository is the persistence port for the registered source list.
type SourceRepository interface {
	Ensure(ctx context.Context) error
	AddSource(ctx context.Context, url string) error
	DeleteSource(ctx context.Context, url string) error
	ListSources(ctx context.Context, limit int) ([]RegisteredSource, error)
}

// Scheduler exposes runtime controls of the background refresh loops.
type Scheduler interface {
	Start(ctx context.Context) error
	Stop() error

	SetInterval(d time.Duration)
	CurrentInterval() time.Duration
	Sources() []Source
}
