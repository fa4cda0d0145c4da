package control

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rssmerge/adapter/memory"
	"rssmerge/app"
	"rssmerge/domain"
)

type fakeScheduler struct {
	mu       sync.Mutex
	interval time.Duration
	sources  []domain.Source
}

func (f *fakeScheduler) Start(context.Context) error { return nil }
func (f *fakeScheduler) Stop() error                 { return nil }
func (f *fakeScheduler) Sources() []domain.Source    { return f.sources }

func (f *fakeScheduler) SetInterval(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.interval = d
}

func (f *fakeScheduler) CurrentInterval() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.interval
}

func newTestServer(t *testing.T) (*fakeScheduler, *memory.Store, *Client) {
	t.Helper()
	sched := &fakeScheduler{interval: 30 * time.Minute, sources: []domain.Source{
		"https://a.example/rss", "https://b.example/rss", "https://c.example/rss",
	}}
	store := memory.NewStore()
	srv := httptest.NewServer(NewServer(sched, store))
	t.Cleanup(srv.Close)
	return sched, store, NewClient(strings.TrimPrefix(srv.URL, "http://"))
}

func TestSetIntervalRoundTrip(t *testing.T) {
	sched, _, client := newTestServer(t)

	old, err := client.SetInterval(2 * time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, old)
	assert.Equal(t, 2*time.Minute, sched.CurrentInterval())
}

func TestSetIntervalRejectsBadDurations(t *testing.T) {
	sched, _, client := newTestServer(t)

	for _, body := range []string{`{"duration":"soon"}`, `{"duration":"-1m"}`, `not json`} {
		resp, err := http.Post("http://"+client.addr+"/set-interval", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
	}
	assert.Equal(t, 30*time.Minute, sched.CurrentInterval())
}

func TestStatus(t *testing.T) {
	_, store, client := newTestServer(t)
	store.Publish("https://b.example/rss", domain.Failure{Reason: "GET https://b.example/rss: 404 Not Found"})
	store.Publish("https://a.example/rss", domain.Success{Channel: domain.NewChannel(nil, nil, nil, []domain.Item{{}, {}})})

	store.Publish("https://old.example/rss", domain.Failure{Reason: "no longer configured"})

	st, err := client.Status()
	require.NoError(t, err)
	assert.Equal(t, "30m0s", st.Interval)
	require.Len(t, st.Sources, 3)
	assert.Equal(t, SourceStatus{Source: "https://a.example/rss", OK: true, Items: 2}, st.Sources[0])
	assert.False(t, st.Sources[1].OK)
	assert.Contains(t, st.Sources[1].Reason, "404")
	assert.Equal(t, SourceStatus{Source: "https://c.example/rss", Reason: app.PendingReason}, st.Sources[2])
}

func TestUnknownRoute(t *testing.T) {
	_, _, client := newTestServer(t)
	resp, err := http.Get("http://" + client.addr + "/set-workers")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTryListen(t *testing.T) {
	ln, err := TryListen("127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	_, err = TryListen(ln.Addr().String())
	assert.ErrorIs(t, err, ErrAlreadyRunning)
}
