package control

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"rssmerge/app"
	"rssmerge/domain"
	"rssmerge/internal/logger"
)

var ErrAlreadyRunning = errors.New("already running")

// TryListen tries to bind the control address. If it's already in use, we assume an instance is running.
func TryListen(addr string) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, ErrAlreadyRunning
	}
	return ln, nil
}

// SourceStatus is the wire form of app.SourceStatus.
type SourceStatus struct {
	Source string `json:"source"`
	OK     bool   `json:"ok"`
	Items  int    `json:"items"`
	Reason string `json:"reason,omitempty"`
}

type Status struct {
	Interval string         `json:"interval"`
	Sources  []SourceStatus `json:"sources"`
}

type Server struct {
	scheduler domain.Scheduler
	store     domain.FeedStore
}

func NewServer(scheduler domain.Scheduler, store domain.FeedStore) *Server {
	return &Server{scheduler: scheduler, store: store}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/set-interval":
		s.handleSetInterval(w, r)
		return
	case r.Method == http.MethodGet && r.URL.Path == "/status":
		s.handleStatus(w, r)
		return
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleSetInterval(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Duration string `json:"duration"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	d, err := time.ParseDuration(req.Duration)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid duration: %v", err), http.StatusBadRequest)
		return
	}
	if d <= 0 {
		http.Error(w, "duration must be positive", http.StatusBadRequest)
		return
	}

	old := s.scheduler.CurrentInterval()
	s.scheduler.SetInterval(d)
	logger.L.Infow("interval changed", "old", old, "new", d)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"ok": true, "old": old.String(), "new": d.String()})
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	snap := s.store.Snapshot()
	configured := make(map[domain.Source]domain.Feed, len(snap))
	for _, src := range s.scheduler.Sources() {
		feed, ok := snap[src]
		if !ok {
			feed = domain.Failure{Reason: app.PendingReason}
		}
		configured[src] = feed
	}

	out := Status{Interval: s.scheduler.CurrentInterval().String()}
	for _, st := range app.Statuses(configured) {
		out.Sources = append(out.Sources, SourceStatus{
			Source: string(st.Source),
			OK:     st.OK,
			Items:  st.Items,
			Reason: st.Reason,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}
