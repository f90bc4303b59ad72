// Package metrics provides Prometheus metrics for the summit list backend.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Ascent write metrics
var (
	// ascentsLoggedTotal counts LogAscent calls that reached storage.
	// Labels:
	//   - source: MANUAL or IMPORT
	//   - result: "created" or "duplicate"
	ascentsLoggedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summitlist_ascents_logged_total",
			Help: "Total number of ascents written, by source and result",
		},
		[]string{"source", "result"},
	)

	ascentsDeletedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "summitlist_ascents_deleted_total",
			Help: "Total number of ascents deleted",
		},
	)
)

// Grid import metrics
var (
	// importRunsTotal counts grid imports.
	// Labels:
	//   - status: "success", "structural" (shape rejected) or "failed"
	importRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summitlist_grid_imports_total",
			Help: "Total number of grid imports, by status",
		},
		[]string{"status"},
	)

	// importCellsTotal counts month cells seen by the grid parser.
	// Labels:
	//   - outcome: "parsed", "empty", "unrecognized" or "dropped"
	importCellsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summitlist_grid_import_cells_total",
			Help: "Total number of grid month cells, by parse outcome",
		},
		[]string{"outcome"},
	)
)

// Progress cache metrics
var (
	// progressCacheTotal counts summary cache lookups.
	// Labels:
	//   - result: "hit", "miss" or "error"
	progressCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summitlist_progress_cache_lookups_total",
			Help: "Total number of progress summary cache lookups, by result",
		},
		[]string{"result"},
	)
)

// HTTP metrics
var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summitlist_http_requests_total",
			Help: "Total number of HTTP requests, by method, route pattern and status code",
		},
		[]string{"method", "route", "status"},
	)

	// Buckets: 5ms .. 5s
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "summitlist_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)
)

func init() {
	prometheus.MustRegister(
		ascentsLoggedTotal,
		ascentsDeletedTotal,
		importRunsTotal,
		importCellsTotal,
		progressCacheTotal,
		httpRequestsTotal,
		httpRequestDuration,
	)
}

// RecordAscentLogged records an ascent write. created is false when the day
// was already recorded.
func RecordAscentLogged(source string, created bool) {
	result := "created"
	if !created {
		result = "duplicate"
	}
	ascentsLoggedTotal.WithLabelValues(source, result).Inc()
}

// RecordAscentDeleted records a deleted ascent.
func RecordAscentDeleted() {
	ascentsDeletedTotal.Inc()
}

// RecordImport records a finished grid import.
func RecordImport(status string) {
	importRunsTotal.WithLabelValues(status).Inc()
}

// RecordImportCells adds the parser's per-outcome cell counts.
func RecordImportCells(parsed, empty, unrecognized, dropped int) {
	importCellsTotal.WithLabelValues("parsed").Add(float64(parsed))
	importCellsTotal.WithLabelValues("empty").Add(float64(empty))
	importCellsTotal.WithLabelValues("unrecognized").Add(float64(unrecognized))
	importCellsTotal.WithLabelValues("dropped").Add(float64(dropped))
}

// RecordCacheLookup records a progress cache lookup: "hit", "miss" or "error".
func RecordCacheLookup(result string) {
	progressCacheTotal.WithLabelValues(result).Inc()
}

// RecordHTTPRequest records a served request. route is the mux pattern, not
// the raw path, to keep label cardinality bounded.
func RecordHTTPRequest(method, route string, status int, elapsed time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
