package http

import (
	_ "github.com/DRSN-tech/visual-search/docs" // Импорт описания API для swagger
	"github.com/DRSN-tech/visual-search/internal/usecase"
	"github.com/DRSN-tech/visual-search/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router    *chi.Mux
	maxUpload int64
	logger    logger.Logger
}

func NewRouter(router *chi.Mux, maxUpload int64, logger logger.Logger) *Router {
	return &Router{router: router, maxUpload: maxUpload, logger: logger}
}

func (r *Router) Init(searchUC usecase.VisualSearchUC, sessionUC usecase.SearchSessionUC) {
	r.router.Use(middleware.RequestID, middleware.Recoverer, metricsMiddleware)

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.router.Handle("/metrics", promhttp.Handler())

	r.router.Route("/api/v1", func(v1 chi.Router) {
		handler := NewSearchHandler(searchUC, sessionUC, r.maxUpload, r.logger)
		registerSearchRoutes(v1, handler)
	})
}

func registerSearchRoutes(router chi.Router, h *SearchHandler) {
	router.Get("/search/text", h.textSearch)

	router.Route("/search/visual", func(sr chi.Router) {
		sr.Post("/", h.visualSearch)
		sr.Get("/availability", h.availability)
		sr.Post("/compare", h.compare)

		sr.Route("/sessions", func(ss chi.Router) {
			ss.Post("/", h.startSession)
			ss.Get("/{id}", h.getSession)
			ss.Delete("/{id}", h.cancelSession)
		})
	})
}
