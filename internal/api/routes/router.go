package routes

import (
	"net/http"

	"github.com/zatekoja/careplannavigator/internal/api/handlers"
	"github.com/zatekoja/careplannavigator/internal/api/middleware"
	"github.com/zatekoja/careplannavigator/internal/domain/repositories"
	"github.com/zatekoja/careplannavigator/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	analysisHandler    *handlers.AnalysisHandler
	explanationHandler *handlers.ExplanationHandler
	summaryHandler     *handlers.SummaryHandler
	healthHandler      *handlers.HealthHandler

	stepRepo        repositories.CareStepRepository
	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router. cacheMiddleware may be nil.
func NewRouter(
	analysisHandler *handlers.AnalysisHandler,
	explanationHandler *handlers.ExplanationHandler,
	summaryHandler *handlers.SummaryHandler,
	healthHandler *handlers.HealthHandler,
	stepRepo repositories.CareStepRepository,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                http.NewServeMux(),
		analysisHandler:    analysisHandler,
		explanationHandler: explanationHandler,
		summaryHandler:     summaryHandler,
		healthHandler:      healthHandler,
		stepRepo:           stepRepo,
		cacheMiddleware:    cacheMiddleware,
		metrics:            metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", r.healthHandler.Health)

	// Analysis endpoints
	r.mux.HandleFunc("GET /api/complexity/{carePlanId}", r.analysisHandler.GetComplexity)
	r.mux.HandleFunc("GET /api/journey/{carePlanId}", r.analysisHandler.GetJourney)
	r.mux.HandleFunc("GET /api/dependencies/{carePlanId}", r.analysisHandler.GetDependencies)
	r.mux.HandleFunc("GET /api/risk/{stepId}", r.analysisHandler.GetRisk)
	r.mux.HandleFunc("POST /api/summarize", r.summaryHandler.Summarize)

	// Patient-facing text endpoints
	r.mux.HandleFunc("POST /api/explain", r.explanationHandler.Explain)
	r.mux.HandleFunc("POST /api/simplify", r.explanationHandler.Simplify)
	r.mux.HandleFunc("POST /api/validate", r.explanationHandler.Validate)

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	if r.stepRepo != nil {
		handler = middleware.LoadersMiddleware(r.stepRepo)(handler)
	}

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics, r.mux)(handler)

	// Compression, ETag and Cache-Control headers
	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}
