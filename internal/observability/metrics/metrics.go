package metrics

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success                  Outcome       = "success"
	Error                    Outcome       = "error"
	MetricRequestTimeout     time.Duration = 5 * time.Second
	MetricRequestIdleTimeout time.Duration = 10 * time.Second
)

func (O Outcome) String() string {
	return string(O)
}

var (
	once                           sync.Once
	metricsRouter                  *chi.Mux
	namadaClientLatency            *prometheus.HistogramVec
	clientRequestDurationHistogram *prometheus.HistogramVec
	pollerDurationHistogram        *prometheus.HistogramVec
	validatorQueryFailuresCounter  prometheus.Counter
	reclaimCounter                 *prometheus.CounterVec
	optimalFrequencyGauge          prometheus.Gauge
	projectedAPYGauge              prometheus.Gauge
	bondedBalanceGauge             prometheus.Gauge
	realizedRewardGauge            prometheus.Gauge
	nextReclaimGauge               prometheus.Gauge
)

func init() {
	registerMetrics()
}

// Init starts the metrics server on metricsPort. Collectors are registered
// at package init so recording is safe without a server.
func Init(host string, metricsPort int) {
	once.Do(func() {
		initMetricsRouter(host, metricsPort)
	})
}

// initMetricsRouter initializes the metrics router.
func initMetricsRouter(host string, metricsPort int) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	// Create a custom server with timeout settings
	metricsAddr := fmt.Sprintf("%s:%d", host, metricsPort)
	server := &http.Server{
		Addr:         metricsAddr,
		Handler:      metricsRouter,
		ReadTimeout:  MetricRequestTimeout,
		WriteTimeout: MetricRequestTimeout,
		IdleTimeout:  MetricRequestIdleTimeout,
	}

	// Start the server in a separate goroutine
	go func() {
		log.Info().Msgf("Starting metrics server on %s", metricsAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msgf("Error starting metrics server on %s", metricsAddr)
		}
	}()
}

// registerMetrics initializes and register the Prometheus metrics.
func registerMetrics() {
	defaultHistogramBucketsSeconds := []float64{0.1, 0.5, 1, 2.5, 5, 10, 30}

	namadaClientLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "namada_client_latency_seconds",
			Help:    "Histogram of namada client durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "status"},
	)

	// client requests are the ones sending to other service
	clientRequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "client_request_duration_seconds",
			Help:    "Histogram of outgoing client request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"baseurl", "method", "path", "status"},
	)

	pollerDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "poller_duration_seconds",
			Help:    "Histogram of poller durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"type", "status"},
	)

	validatorQueryFailuresCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "validator_query_failures_total",
			Help: "Number of per-validator queries that degraded to a zero contribution",
		},
	)

	reclaimCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reclaim_total",
			Help: "Number of claim and re-bond cycles split by outcome",
		},
		[]string{"status"},
	)

	optimalFrequencyGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "optimal_compounding_frequency",
			Help: "Last optimal number of compounding rounds per year",
		},
	)

	projectedAPYGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "projected_apy_ratio",
			Help: "Projected one-year yield at the optimal frequency",
		},
	)

	bondedBalanceGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "bonded_balance_tokens",
			Help: "Last total bonded balance of the delegator in whole tokens",
		},
	)

	realizedRewardGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "realized_reward_tokens",
			Help: "Reward claimed and re-bonded by the last reclaim in whole tokens",
		},
	)

	nextReclaimGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "next_reclaim_seconds",
			Help: "Seconds until the next reclaim is due",
		},
	)

	prometheus.MustRegister(
		namadaClientLatency,
		clientRequestDurationHistogram,
		pollerDurationHistogram,
		validatorQueryFailuresCounter,
		reclaimCounter,
		optimalFrequencyGauge,
		projectedAPYGauge,
		bondedBalanceGauge,
		realizedRewardGauge,
		nextReclaimGauge,
	)
}

func outcomeOf(failure bool) Outcome {
	if failure {
		return Error
	}
	return Success
}

func RecordNamadaClientLatency(d time.Duration, method string, failure bool) {
	namadaClientLatency.WithLabelValues(method, outcomeOf(failure).String()).Observe(d.Seconds())
}

func IncValidatorQueryFailures() {
	validatorQueryFailuresCounter.Inc()
}

func RecordReclaim(failure bool) {
	reclaimCounter.WithLabelValues(outcomeOf(failure).String()).Inc()
}

func RecordOptimization(frequency uint64, apy float64) {
	optimalFrequencyGauge.Set(float64(frequency))
	projectedAPYGauge.Set(apy)
}

func RecordBondedBalance(tokens float64) {
	bondedBalanceGauge.Set(tokens)
}

func RecordRealizedReward(tokens float64) {
	realizedRewardGauge.Set(tokens)
}

func RecordNextReclaim(d time.Duration) {
	nextReclaimGauge.Set(d.Seconds())
}

// StartClientRequestDurationTimer starts a timer to measure outgoing client request duration.
func StartClientRequestDurationTimer(baseUrl, method, path string) func(statusCode int) {
	startTime := time.Now()
	return func(statusCode int) {
		duration := time.Since(startTime).Seconds()
		clientRequestDurationHistogram.WithLabelValues(
			baseUrl,
			method,
			path,
			fmt.Sprintf("%d", statusCode),
		).Observe(duration)
	}
}
