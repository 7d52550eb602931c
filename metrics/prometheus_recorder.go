package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	duration    *prom.HistogramVec
	conversions *prom.CounterVec
	blocks      *prom.CounterVec
	fallbacks   *prom.CounterVec
}

// NewPrometheusRecorder constructs the conversion metrics and registers them
// with reg. A nil registry gets a fresh one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}

	pr := &PrometheusRecorder{
		duration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "bmc",
			Name:      "conversion_duration_seconds",
			Help:      "Duration of single document conversions",
			Buckets:   prom.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"direction"}),
		conversions: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "bmc",
			Name:      "conversions_total",
			Help:      "Conversions by direction and outcome",
		}, []string{"direction", "outcome"}),
		blocks: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "bmc",
			Name:      "blocks_total",
			Help:      "Blocks consumed or produced by block type",
		}, []string{"direction", "block_type"}),
		fallbacks: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "bmc",
			Name:      "fallback_blocks_total",
			Help:      "Blocks rendered through the HTML passthrough",
		}, []string{"block_type"}),
	}
	reg.MustRegister(pr.duration, pr.conversions, pr.blocks, pr.fallbacks)

	return pr
}

func (p *PrometheusRecorder) ObserveConversion(direction Direction, d time.Duration, outcome Outcome) {
	if p == nil {
		return
	}
	p.duration.WithLabelValues(string(direction)).Observe(d.Seconds())
	p.conversions.WithLabelValues(string(direction), string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncBlock(direction Direction, blockType string) {
	if p == nil {
		return
	}
	p.blocks.WithLabelValues(string(direction), blockType).Inc()
}

func (p *PrometheusRecorder) IncFallback(blockType string) {
	if p == nil {
		return
	}
	p.fallbacks.WithLabelValues(blockType).Inc()
}
