package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"rssmerge/domain"
)

// stubTransport answers from a handler and records every requested URL.
type stubTransport struct {
	mu      sync.Mutex
	calls   []string
	handler func(url string) (domain.Response, error)
}

func (s *stubTransport) Fetch(_ context.Context, url string) (domain.Response, error) {
	s.mu.Lock()
	s.calls = append(s.calls, url)
	s.mu.Unlock()
	return s.handler(url)
}

func (s *stubTransport) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func okResponse(body string) (domain.Response, error) {
	return domain.Response{StatusCode: 200, Status: "200 OK", Body: []byte(body)}, nil
}

type testItem struct {
	title string
	date  time.Time
}

func rssDoc(channel string, items ...testItem) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<rss><channel><title>%s</title><link>https://%s.example</link>", channel, channel)
	for _, it := range items {
		fmt.Fprintf(&sb, "<item><title>%s</title><link>https://%s.example/%s</link>", it.title, channel, it.title)
		if !it.date.IsZero() {
			fmt.Fprintf(&sb, "<pubDate>%s</pubDate>", it.date.Format(time.RFC1123Z))
		}
		sb.WriteString("</item>")
	}
	sb.WriteString("</channel></rss>")
	return sb.String()
}

func titlesOf(f domain.Feed) []string {
	s, ok := f.(domain.Success)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(s.Channel.Items))
	for _, it := range s.Channel.Items {
		if it.Title != nil {
			out = append(out, *it.Title)
		}
	}
	return out
}
