package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	quotes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "homestay",
			Name:      "quotes_total",
			Help:      "Count of booking quotes by room and season.",
		},
		[]string{"room", "season"},
	)

	nightlyLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "homestay",
			Name:      "nightly_lookups_total",
			Help:      "Count of single-night price lookups by room.",
		},
		[]string{"room"},
	)

	rejectedInputs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "homestay",
			Name:      "rejected_inputs_total",
			Help:      "Count of requests rejected by validation, by operation.",
		},
		[]string{"operation"},
	)

	inquiries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "homestay",
			Name:      "inquiries_total",
			Help:      "Count of booking inquiry summaries built.",
		},
	)

	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "homestay",
			Name:      "quote_cache_lookups_total",
			Help:      "Count of quote cache lookups by result.",
		},
		[]string{"result"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(quotes, nightlyLookups, rejectedInputs, inquiries, cacheLookups)
	})
}

func IncQuote(room string, peak bool) {
	season := "standard"
	if peak {
		season = "peak"
	}

	quotes.WithLabelValues(room, season).Inc()
}

func IncNightlyLookup(room string) {
	nightlyLookups.WithLabelValues(room).Inc()
}

func IncRejectedInput(operation string) {
	rejectedInputs.WithLabelValues(operation).Inc()
}

func IncInquiry() {
	inquiries.Inc()
}

func IncCacheHit() {
	cacheLookups.WithLabelValues("hit").Inc()
}

func IncCacheMiss() {
	cacheLookups.WithLabelValues("miss").Inc()
}
