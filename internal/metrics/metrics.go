package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PageFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rssmerge_page_fetches_total",
		Help: "Single page fetches by outcome (ok, transport, status, parse)",
	}, []string{"outcome"})

	PaginationBatches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rssmerge_pagination_batches_total",
		Help: "Number of page batches issued by the paginated fetcher",
	})

	RefreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rssmerge_refresh_duration_seconds",
		Help:    "Duration of one source refresh, all pages included",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 12), // 50ms .. ~100s
	})

	SourceUp = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "rssmerge_source_up",
		Help: "1 if the latest refresh of the source succeeded, 0 otherwise",
	}, []string{"source"})

	SourceItems = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "rssmerge_source_items",
		Help: "Number of items in the latest successful feed of the source",
	}, []string{"source"})
)
