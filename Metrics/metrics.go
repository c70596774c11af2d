package Metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	SkipMarker     = "marker"
	SkipScoreError = "score_error"
	SkipNoAuthor   = "no_author"

	StageFetch   = "fetch"
	StagePublish = "publish"
)

type Metrics struct {
	Runs            prometheus.Counter
	MessagesFetched prometheus.Counter
	MessagesScored  prometheus.Counter
	MessagesSkipped *prometheus.CounterVec
	Failures        *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registers the report counters on reg. Pass prometheus.NewRegistry()
// in tests so runs do not share state.
func New(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Runs: factory.NewCounter(prometheus.CounterOpts{
			Name: "mood_report_runs_total",
			Help: "Number of daily report pipeline runs",
		}),
		MessagesFetched: factory.NewCounter(prometheus.CounterOpts{
			Name: "mood_report_messages_fetched_total",
			Help: "Messages returned by the channel history fetch",
		}),
		MessagesScored: factory.NewCounter(prometheus.CounterOpts{
			Name: "mood_report_messages_scored_total",
			Help: "Messages that received a sentiment score",
		}),
		MessagesSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mood_report_messages_skipped_total",
			Help: "Messages excluded from analysis",
		}, []string{"reason"}),
		Failures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mood_report_failures_total",
			Help: "Slack API failures by pipeline stage",
		}, []string{"stage"}),
		gatherer: reg,
	}
}

// Handler serves /metrics plus a plain health text on /.
func (m *Metrics) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Service running"))
	})
	return mux
}
