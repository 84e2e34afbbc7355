// Package metrics collects per-run counters for the batch downloader and
// exports them in the node_exporter textfile format. The downloader is a
// short-lived process, so metrics are written to a file at the end of a run
// instead of being served.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ytget/ig-downloader/internal/model"
)

// Namespace prefixes every metric name
const Namespace = "igdl"

// Label values
const (
	FilterKept    = "kept"
	FilterDropped = "dropped"
)

// Metrics holds the collectors of one run. All methods are safe to call on a
// nil *Metrics, which records nothing.
type Metrics struct {
	registry *prometheus.Registry

	linksRead       prometheus.Counter
	linksFiltered   *prometheus.CounterVec
	downloadsTotal  *prometheus.CounterVec
	downloadSeconds prometheus.Histogram
	pausesTotal     prometheus.Counter
}

// New creates the collectors and registers them with a private registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		linksRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "links_read_total",
			Help:      "Link fragments read from the input file.",
		}),
		linksFiltered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "links_filtered_total",
			Help:      "Link fragments kept or dropped by the post filter.",
		}, []string{"result"}),
		downloadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "downloads_total",
			Help:      "Downloader invocations by outcome.",
		}, []string{"status"}),
		downloadSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "download_duration_seconds",
			Help:      "Wall time of each downloader invocation.",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
		pausesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "pauses_total",
			Help:      "Pauses taken between downloads.",
		}),
	}

	m.registry.MustRegister(
		m.linksRead,
		m.linksFiltered,
		m.downloadsTotal,
		m.downloadSeconds,
		m.pausesTotal,
	)

	return m
}

// Registry returns the registry holding the run's collectors
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// LinksRead records the number of fragments read from the input file
func (m *Metrics) LinksRead(n int) {
	if m == nil {
		return
	}
	m.linksRead.Add(float64(n))
}

// LinksFiltered records the result of the post filter
func (m *Metrics) LinksFiltered(kept, dropped int) {
	if m == nil {
		return
	}
	m.linksFiltered.WithLabelValues(FilterKept).Add(float64(kept))
	m.linksFiltered.WithLabelValues(FilterDropped).Add(float64(dropped))
}

// ObserveDownload records one finished downloader invocation
func (m *Metrics) ObserveDownload(result *model.Result) {
	if m == nil || result == nil {
		return
	}
	m.downloadsTotal.WithLabelValues(statusLabel(result.Status)).Inc()
	if d := result.Duration(); d > 0 {
		m.downloadSeconds.Observe(d.Seconds())
	}
}

// ObservePause records one pause between downloads
func (m *Metrics) ObservePause(time.Duration) {
	if m == nil {
		return
	}
	m.pausesTotal.Inc()
}

// WriteTextfile writes all metrics to path in the text exposition format
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}

func statusLabel(status model.Status) string {
	switch status {
	case model.StatusSucceeded:
		return "succeeded"
	case model.StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}
