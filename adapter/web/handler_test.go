package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rssmerge/adapter/memory"
	"rssmerge/app"
	"rssmerge/domain"
)

func strp(s string) *string { return &s }

func get(t *testing.T, h http.Handler, path string) (int, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	return rec.Code, string(body)
}

func TestPlaceholderUntilFirstSuccess(t *testing.T) {
	store := memory.NewStore()
	store.Publish("https://a.example/rss", domain.Failure{Reason: app.PendingReason})
	store.Publish("https://b.example/rss", domain.Failure{Reason: "fetch https://b.example/rss: connection refused"})

	code, body := get(t, NewMux(store), "/")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "still fetching...")
	assert.Contains(t, body, "connection refused")
	assert.NotContains(t, body, app.PendingReason)
}

func TestRendersNewestFirst(t *testing.T) {
	older := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 2, 19, 9, 0, 0, 0, time.UTC)
	store := memory.NewStore()
	store.Publish("https://a.example/rss", domain.Success{Channel: domain.NewChannel(strp("a"), nil, nil, []domain.Item{
		{Title: strp("old <post>"), Link: strp("https://a.example/1"), PubDate: &older},
		{Title: strp("untitled link only"), PubDate: &newer},
		{Title: strp("new post"), Link: strp("https://a.example/2"), PubDate: &newer},
	})})

	_, body := get(t, NewMux(store), "/")
	assert.NotContains(t, body, "still fetching...")
	assert.NotContains(t, body, "untitled link only")
	assert.Contains(t, body, `<li><a href="https://a.example/2">19/02/26 new post</a></li>`)
	assert.Contains(t, body, "old &lt;post&gt;")
	assert.Less(t, strings.Index(body, "new post"), strings.Index(body, "old &lt;post&gt;"))
}

func TestRoutes(t *testing.T) {
	mux := NewMux(memory.NewStore())

	code, _ := get(t, mux, "/nope")
	assert.Equal(t, http.StatusNotFound, code)

	code, body := get(t, mux, "/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "go_goroutines")
}
