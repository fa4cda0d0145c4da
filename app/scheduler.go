package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"rssmerge/domain"
	"rssmerge/internal/logger"
	"rssmerge/internal/metrics"
)

const DefaultInterval = 30 * time.Minute

// PendingReason is the failure published for a source before its first
// refresh completes.
const PendingReason = "not fetched yet"

// SourceScheduler runs one refresh loop per source. Each loop is the only
// writer of its source's store entry.
type SourceScheduler struct {
	store     domain.FeedStore
	single    domain.FeedFetcher
	paged     domain.FeedFetcher
	paginator domain.Paginator
	sources   []domain.Source

	mu             sync.Mutex
	interval       time.Duration
	ctx            context.Context
	cancel         context.CancelFunc
	tickerStopChan chan struct{}
	started        bool
	wg             sync.WaitGroup
}

var _ domain.Scheduler = (*SourceScheduler)(nil)

// NewScheduler wires the fetchers. paged and paginator may be nil, in which
// case every source is fetched as a single page.
func NewScheduler(store domain.FeedStore, single, paged domain.FeedFetcher, paginator domain.Paginator, sources []domain.Source, interval time.Duration) *SourceScheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &SourceScheduler{
		store:     store,
		single:    single,
		paged:     paged,
		paginator: paginator,
		sources:   append([]domain.Source(nil), sources...),
		interval:  interval,
	}
}

func (s *SourceScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return errors.New("scheduler already started")
	}
	if len(s.sources) == 0 {
		return errors.New("no sources configured")
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.tickerStopChan = make(chan struct{})
	for _, src := range s.sources {
		if _, ok := s.store.Get(src); !ok {
			s.store.Publish(src, domain.Failure{Reason: PendingReason})
		}
	}
	for _, src := range s.sources {
		s.wg.Add(1)
		go s.loop(src)
	}
	s.started = true
	return nil
}

// Stop cancels every loop and waits for them to return. A fetch in flight
// is allowed to finish first.
func (s *SourceScheduler) Stop() error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	cancel := s.cancel
	s.started = false
	s.mu.Unlock()

	cancel()
	s.wg.Wait()
	return nil
}

// Wait blocks until every loop has returned.
func (s *SourceScheduler) Wait() {
	s.wg.Wait()
}

// SetInterval changes the sleep between refreshes. Pending sleeps restart
// with the new interval.
func (s *SourceScheduler) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interval = d
	if !s.started {
		return
	}
	close(s.tickerStopChan)
	s.tickerStopChan = make(chan struct{})
}

func (s *SourceScheduler) CurrentInterval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

func (s *SourceScheduler) Sources() []domain.Source {
	return append([]domain.Source(nil), s.sources...)
}

func (s *SourceScheduler) loop(src domain.Source) {
	defer s.wg.Done()
	for {
		if s.ctx.Err() != nil {
			return
		}
		s.refresh(src)
		if !s.sleep() {
			return
		}
	}
}

func (s *SourceScheduler) refresh(src domain.Source) {
	tick := uuid.NewString()
	fetcher := s.single
	paginated := s.paged != nil && s.paginator != nil && s.paginator.Match(src)
	if paginated {
		fetcher = s.paged
	}

	start := time.Now()
	feed := fetcher.FetchFeed(s.ctx, string(src))
	elapsed := time.Since(start)
	s.store.Publish(src, feed)
	metrics.RefreshDuration.Observe(elapsed.Seconds())

	switch f := feed.(type) {
	case domain.Success:
		metrics.SourceUp.WithLabelValues(string(src)).Set(1)
		metrics.SourceItems.WithLabelValues(string(src)).Set(float64(len(f.Channel.Items)))
		logger.L.Infow("source refreshed", "tick", tick, "source", src, "paginated", paginated,
			"items", len(f.Channel.Items), "took", elapsed)
	case domain.Failure:
		metrics.SourceUp.WithLabelValues(string(src)).Set(0)
		logger.L.Warnw("source failing", "tick", tick, "source", src, "paginated", paginated,
			"reason", f.Reason, "took", elapsed)
	}
}

// sleep waits for the current interval. It returns false once the
// scheduler is cancelled.
func (s *SourceScheduler) sleep() bool {
	for {
		s.mu.Lock()
		interval := s.interval
		stopCh := s.tickerStopChan
		s.mu.Unlock()

		timer := time.NewTimer(interval)
		select {
		case <-s.ctx.Done():
			timer.Stop()
			return false
		case <-stopCh:
			timer.Stop()
			continue
		case <-timer.C:
			return true
		}
	}
}
