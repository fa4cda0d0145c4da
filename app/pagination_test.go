package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rssmerge/domain"
)

func TestQueryPaginatorMatch(t *testing.T) {
	p := NewQueryPaginator([]string{" WordPress.com ", ""}, "")

	tests := []struct {
		source domain.Source
		want   bool
	}{
		{"https://wordpress.com/feed/", true},
		{"https://blog.wordpress.com/feed/", true},
		{"https://BLOG.WORDPRESS.COM/feed/", true},
		{"https://notwordpress.com/feed/", false},
		{"https://ro-che.info/articles/rss.xml", false},
		{"://bad", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.source), func(t *testing.T) {
			assert.Equal(t, tt.want, p.Match(tt.source))
		})
	}
}

func TestQueryPaginatorPageURL(t *testing.T) {
	p := NewQueryPaginator([]string{"wordpress.com"}, "")
	assert.Equal(t, DefaultPageParam, p.Param)

	assert.Equal(t, "https://b.wordpress.com/feed/?paged=3", p.PageURL("https://b.wordpress.com/feed/", 3))
	assert.Equal(t, "https://b.wordpress.com/feed/?paged=2&tag=go", p.PageURL("https://b.wordpress.com/feed/?tag=go&paged=9", 2))
}
