package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain repository.Metrics using Prometheus.
type Recorder struct {
	upstreamFetches *prometheus.CounterVec
	cacheLookups    *prometheus.CounterVec
	stageBuilds     *prometheus.HistogramVec
	whaleEvents     *prometheus.CounterVec
	notifications   *prometheus.CounterVec
	topScore        *prometheus.GaugeVec
	regimeIndex     prometheus.Gauge
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		upstreamFetches: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "traderadar_upstream_fetches_total",
				Help: "Total upstream market-data fetches by endpoint class",
			},
			[]string{"endpoint", "result"},
		),
		cacheLookups: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "traderadar_cache_lookups_total",
				Help: "Cache lookups per pipeline stage",
			},
			[]string{"stage", "result"},
		),
		stageBuilds: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "traderadar_stage_build_seconds",
				Help:    "Duration of stage recomputations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
		whaleEvents: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "traderadar_whale_events_total",
				Help: "Whale events detected by aggressor side",
			},
			[]string{"side"},
		),
		notifications: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "traderadar_notifications_total",
				Help: "Outbound notifications by kind",
			},
			[]string{"kind"},
		),
		topScore: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "traderadar_top_score",
				Help: "Composite score of the current best-ranked symbol",
			},
			[]string{"symbol"},
		),
		regimeIndex: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "traderadar_regime_index",
				Help: "Market regime index from the last top-picks build",
			},
		),
	}
}

// RecordFetch records an upstream fetch attempt.
func (r *Recorder) RecordFetch(endpoint, result string) {
	r.upstreamFetches.WithLabelValues(endpoint, result).Inc()
}

// RecordCacheLookup records a cache hit or miss for a stage.
func (r *Recorder) RecordCacheLookup(stage, result string) {
	r.cacheLookups.WithLabelValues(stage, result).Inc()
}

// RecordStageBuild records how long a stage recomputation took.
func (r *Recorder) RecordStageBuild(stage string, seconds float64) {
	r.stageBuilds.WithLabelValues(stage).Observe(seconds)
}

// RecordWhaleEvent records a detected whale event.
func (r *Recorder) RecordWhaleEvent(side string) {
	r.whaleEvents.WithLabelValues(side).Inc()
}

// RecordNotification records an outbound notification.
func (r *Recorder) RecordNotification(kind string) {
	r.notifications.WithLabelValues(kind).Inc()
}

// RecordTopScore records the best composite score of the cycle.
func (r *Recorder) RecordTopScore(symbol string, score float64) {
	r.topScore.WithLabelValues(symbol).Set(score)
}

// RecordRegimeIndex records the market regime index.
func (r *Recorder) RecordRegimeIndex(v float64) {
	r.regimeIndex.Set(v)
}
