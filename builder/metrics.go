package builder

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var tracer trace.Tracer

func init() {
	tracer = otel.Tracer("github.com/quay/scapdb/builder")
}

// Outcomes for the datastreams counter.
const (
	outcomeOK      = "ok"
	outcomeSkipped = "skipped"
	outcomeError   = "error"
)

var (
	datastreamCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scapdb",
			Subsystem: "builder",
			Name:      "datastreams_total",
			Help:      "Total number of datastreams processed, by outcome.",
		},
		[]string{"outcome"},
	)
	profileCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "scapdb",
			Subsystem: "builder",
			Name:      "profiles_total",
			Help:      "Total number of profiles extracted.",
		},
	)
	ruleCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "scapdb",
			Subsystem: "builder",
			Name:      "rules_total",
			Help:      "Total number of rule records written, counted once per selecting profile.",
		},
	)
	parseDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "scapdb",
			Subsystem: "builder",
			Name:      "parse_duration_seconds",
			Help:      "Duration of decoding a single datastream.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		},
	)
)
