package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// Visual search
// =============================================================================

var (
	// SearchRequestsTotal считает поиски по итоговому исходу
	SearchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "visual_search_requests_total",
			Help: "Total number of visual searches by outcome",
		},
		[]string{"outcome"},
	)

	// SearchDurationSeconds измеряет полное время поиска
	SearchDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "visual_search_duration_seconds",
			Help:    "End-to-end latency of visual searches",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	// CatalogItemsTotal считает товары каталога по результату обработки
	CatalogItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "visual_search_catalog_items_total",
			Help: "Catalog items processed during scans by result",
		},
		[]string{"result"},
	)

	// SearchResultsCount распределение числа найденных товаров
	SearchResultsCount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "visual_search_results_count",
			Help:    "Number of products returned per visual search",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
		},
	)

	// ActiveSessions текущее число асинхронных сессий
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "visual_search_active_sessions",
			Help: "Number of search sessions held in memory",
		},
	)
)

// =============================================================================
// Feature extraction
// =============================================================================

var (
	// ExtractionDurationSeconds измеряет вызов модели
	ExtractionDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feature_extraction_duration_seconds",
			Help:    "Latency of feature extraction calls",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 5},
		},
		[]string{"status"},
	)

	// ModelState состояние модели: 0 unchecked, 1 loading, 2 ready, 3 unavailable
	ModelState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "feature_extractor_model_state",
			Help: "Model handle state (0 unchecked, 1 loading, 2 ready, 3 unavailable)",
		},
	)

	// ImageFetchTotal считает загрузки изображений каталога
	ImageFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_image_fetch_total",
			Help: "Catalog image fetches by source and status",
		},
		[]string{"source", "status"},
	)
)

// =============================================================================
// Catalog cache
// =============================================================================

var (
	// CatalogCacheTotal считает попадания и промахи кэша каталога
	CatalogCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_requests_total",
			Help: "Catalog cache lookups by result",
		},
		[]string{"result"},
	)
)

// =============================================================================
// HTTP
// =============================================================================

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status code",
		},
		[]string{"method", "route", "code"},
	)

	HTTPRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)
