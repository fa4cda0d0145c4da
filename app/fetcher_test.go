package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rssmerge/adapter/rss"
	"rssmerge/domain"
)

func TestPageFetcherSuccess(t *testing.T) {
	tr := &stubTransport{handler: func(string) (domain.Response, error) {
		return okResponse(rssDoc("blog", testItem{title: "one"}, testItem{title: "two"}))
	}}
	f := NewPageFetcher(tr, rss.NewParser())

	got := f.FetchFeed(context.Background(), "https://blog.example/rss")
	assert.Equal(t, []string{"one", "two"}, titlesOf(got))
	assert.Equal(t, []string{"https://blog.example/rss"}, tr.Calls())
}

func TestPageFetcherFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler func(string) (domain.Response, error)
		want    string
	}{
		{
			name: "transport",
			handler: func(string) (domain.Response, error) {
				return domain.Response{}, errors.New("connection refused")
			},
			want: "connection refused",
		},
		{
			name: "status",
			handler: func(string) (domain.Response, error) {
				return domain.Response{StatusCode: 500, Status: "500 Internal Server Error", Body: []byte("secret body")}, nil
			},
			want: "500 Internal Server Error",
		},
		{
			name: "parse",
			handler: func(string) (domain.Response, error) {
				return okResponse("<rss><channel>")
			},
			want: "parse feed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewPageFetcher(&stubTransport{handler: tt.handler}, rss.NewParser())
			got := f.FetchFeed(context.Background(), "https://x.example/rss")
			failure, ok := got.(domain.Failure)
			require.True(t, ok, "expected failure, got %#v", got)
			assert.Contains(t, failure.Reason, tt.want)
			assert.NotContains(t, failure.Reason, "secret body")
		})
	}
}

func TestPageFetcherIgnoresCancellation(t *testing.T) {
	var seen error
	tr := &stubTransport{handler: func(string) (domain.Response, error) {
		return okResponse(rssDoc("blog"))
	}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	wrapped := transportFunc(func(c context.Context, url string) (domain.Response, error) {
		seen = c.Err()
		return tr.Fetch(c, url)
	})

	got := NewPageFetcher(wrapped, rss.NewParser()).FetchFeed(ctx, "https://x.example/rss")
	assert.NoError(t, seen)
	_, isSuccess := got.(domain.Success)
	assert.True(t, isSuccess)
}

type transportFunc func(ctx context.Context, url string) (domain.Response, error)

func (f transportFunc) Fetch(ctx context.Context, url string) (domain.Response, error) {
	return f(ctx, url)
}
