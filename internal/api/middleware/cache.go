package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/zatekoja/careplannavigator/internal/domain/providers"
	"github.com/zatekoja/careplannavigator/internal/infrastructure/observability"
)

const responseCacheNamespace = "http"

// CacheConfig holds cache configuration for specific routes
type CacheConfig struct {
	TTLSeconds int
	Enabled    bool
}

// CacheMiddleware provides HTTP response caching
type CacheMiddleware struct {
	cache        providers.CacheProvider
	routeConfigs map[string]CacheConfig
	metrics      *observability.Metrics
}

// NewCacheMiddleware caches the read-only analysis routes for ttlSeconds
func NewCacheMiddleware(cache providers.CacheProvider, ttlSeconds int, metrics *observability.Metrics) *CacheMiddleware {
	if ttlSeconds <= 0 {
		ttlSeconds = 3600
	}
	return &CacheMiddleware{
		cache: cache,
		routeConfigs: map[string]CacheConfig{
			"/api/complexity/": {TTLSeconds: ttlSeconds, Enabled: true},
			"/api/journey/":    {TTLSeconds: ttlSeconds, Enabled: true},
			"/api/risk/":       {TTLSeconds: ttlSeconds, Enabled: true},
		},
		metrics: metrics,
	}
}

// Middleware returns the cache middleware handler
func (m *CacheMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Only cache GET requests
		if r.Method != http.MethodGet || m.cache == nil {
			next.ServeHTTP(w, r)
			return
		}

		config := m.getRouteConfig(r.URL.Path)
		if !config.Enabled {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		logger := observability.LoggerFromContext(ctx)
		cacheKey := ResponseCacheKey(r.URL.Path)

		cached, err := m.cache.Get(ctx, cacheKey)
		if err != nil {
			logger.Warn().Err(err).Str("path", r.URL.Path).Msg("response cache read failed")
		}
		if cached != nil {
			observability.RecordCacheHit(ctx, m.metrics, responseCacheNamespace)
			w.Header().Set("X-Cache", "HIT")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(cached)
			return
		}

		observability.RecordCacheMiss(ctx, m.metrics, responseCacheNamespace)
		w.Header().Set("X-Cache", "MISS")

		recorder := &responseRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
			body:           &bytes.Buffer{},
		}

		next.ServeHTTP(recorder, r)

		// Only cache successful responses
		if recorder.statusCode == http.StatusOK && recorder.body.Len() > 0 {
			if err := m.cache.Set(ctx, cacheKey, recorder.body.Bytes(), config.TTLSeconds); err != nil {
				logger.Warn().Err(err).Str("path", r.URL.Path).Msg("failed to cache response")
			} else {
				logger.Debug().Str("path", r.URL.Path).Int("ttl_seconds", config.TTLSeconds).Msg("cached response")
			}
		}
	})
}

// getRouteConfig gets the cache configuration for a route
func (m *CacheMiddleware) getRouteConfig(path string) CacheConfig {
	if config, exists := m.routeConfigs[path]; exists {
		return config
	}

	// Prefix match for dynamic routes (e.g., /api/risk/{stepId})
	for pattern, config := range m.routeConfigs {
		if strings.HasPrefix(path, pattern) && len(path) > len(pattern) {
			return config
		}
	}

	return CacheConfig{Enabled: false}
}

// ResponseCacheKey is the key a GET of path is cached under. The cached
// routes take no query parameters, so the query string is not part of the
// key and every cached copy of a path shares one invalidation key.
func ResponseCacheKey(path string) string {
	return hashCacheKey(http.MethodGet + ":" + path)
}

// CarePlanResponseKeys lists the cached analysis responses of a plan and its steps
func CarePlanResponseKeys(carePlanID string, stepIDs []string) []string {
	keys := []string{
		ResponseCacheKey("/api/complexity/" + carePlanID),
		ResponseCacheKey("/api/journey/" + carePlanID),
	}
	for _, stepID := range stepIDs {
		keys = append(keys, ResponseCacheKey("/api/risk/"+stepID))
	}
	return keys
}

func hashCacheKey(key string) string {
	hash := sha256.Sum256([]byte(key))
	return "http:cache:" + hex.EncodeToString(hash[:])
}

// responseRecorder captures the response for caching
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
	written    bool
}

// WriteHeader captures the status code
func (r *responseRecorder) WriteHeader(statusCode int) {
	if !r.written {
		r.statusCode = statusCode
		r.ResponseWriter.WriteHeader(statusCode)
		r.written = true
	}
}

// Write captures the response body and writes to the client
func (r *responseRecorder) Write(data []byte) (int, error) {
	if !r.written {
		r.WriteHeader(http.StatusOK)
	}
	r.body.Write(data)
	return r.ResponseWriter.Write(data)
}
