package web

import (
	"html/template"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rssmerge/app"
	"rssmerge/domain"
	"rssmerge/internal/logger"
)

const dateLayout = "02/01/06"

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>rssmerge</title></head>
<body>
{{- if not .Ready}}
<p>still fetching...</p>
{{- else}}
<ul>
{{- range .Entries}}
<li><a href="{{.Link}}">{{.Date}} {{.Title}}</a></li>
{{- end}}
</ul>
{{- end}}
{{- with .Failing}}
<h2>failing sources</h2>
<ul>
{{- range .}}
<li>{{.Source}}: {{.Reason}}</li>
{{- end}}
</ul>
{{- end}}
</body>
</html>
`))

type entryView struct {
	Date  string
	Title string
	Link  string
}

type pageView struct {
	Ready   bool
	Entries []entryView
	Failing []app.SourceStatus
}

// Handler renders the merged feed of a store snapshot.
type Handler struct {
	store domain.FeedStore
}

func NewHandler(store domain.FeedStore) *Handler {
	return &Handler{store: store}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	snap := h.store.Snapshot()
	view := pageView{Ready: app.AnySuccess(snap)}
	for _, e := range app.Digest(snap) {
		v := entryView{Title: *e.Item.Title, Link: *e.Item.Link}
		if e.Item.PubDate != nil {
			v.Date = e.Item.PubDate.Format(dateLayout)
		}
		view.Entries = append(view.Entries, v)
	}
	for _, st := range app.Statuses(snap) {
		if !st.OK && st.Reason != app.PendingReason {
			view.Failing = append(view.Failing, st)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Execute(w, view); err != nil {
		logger.L.Warnw("render page", "error", err)
	}
}

// NewMux routes the front page and the Prometheus endpoint.
func NewMux(store domain.FeedStore) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/", NewHandler(store))
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}
