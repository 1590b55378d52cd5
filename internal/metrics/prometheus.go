package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "civiclens_request_duration_seconds",
			Help:    "Request processing duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"endpoint"},
	)

	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "civiclens_request_total",
			Help: "Total number of API requests processed",
		},
		[]string{"endpoint", "status"},
	)

	PoliciesStored = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "civiclens_policies_stored_total",
			Help: "Total policy records stored",
		},
	)

	PoliciesSkipped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "civiclens_policies_skipped_total",
			Help: "Total duplicate policy records skipped",
		},
	)

	ScrapeTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "civiclens_scrape_total",
			Help: "Total scrape attempts per source",
		},
		[]string{"source", "status"},
	)

	ScrapedItems = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "civiclens_scraped_items_count",
			Help:    "Number of items collected per scrape cycle",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
		},
	)

	LLMTokensUsed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "civiclens_llm_tokens_used",
			Help: "Total language-model tokens used",
		},
		[]string{"model", "type"},
	)

	LLMParseFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "civiclens_llm_parse_failures_total",
			Help: "Model responses that failed structured parsing",
		},
	)

	GapAnalysisReliability = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "civiclens_gap_analysis_reliability",
			Help: "Overall reliability of the latest gap analysis",
		},
	)

	TopicFallbackTier = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "civiclens_topic_fallback_tier_total",
			Help: "Which data tier served the missing-topics endpoint",
		},
		[]string{"tier"},
	)

	RTIRequestsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "civiclens_rti_requests_generated_total",
			Help: "Total RTI requests drafted",
		},
		[]string{"method"},
	)

	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "civiclens_cache_hits_total",
			Help: "Total cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "civiclens_cache_misses_total",
			Help: "Total cache misses",
		},
		[]string{"cache_type"},
	)
)

func Init() {
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(RequestTotal)
	prometheus.MustRegister(PoliciesStored)
	prometheus.MustRegister(PoliciesSkipped)
	prometheus.MustRegister(ScrapeTotal)
	prometheus.MustRegister(ScrapedItems)
	prometheus.MustRegister(LLMTokensUsed)
	prometheus.MustRegister(LLMParseFailures)
	prometheus.MustRegister(GapAnalysisReliability)
	prometheus.MustRegister(TopicFallbackTier)
	prometheus.MustRegister(RTIRequestsGenerated)
	prometheus.MustRegister(CacheHits)
	prometheus.MustRegister(CacheMisses)
}

func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
