package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/careplannavigator/internal/api/middleware"
	"github.com/zatekoja/careplannavigator/internal/infrastructure/observability"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type telemetry struct {
	spans   *tracetest.SpanRecorder
	reader  *sdkmetric.ManualReader
	metrics *observability.Metrics
}

func installTelemetry(t *testing.T) telemetry {
	t.Helper()
	prevTracer, prevMeter := otel.GetTracerProvider(), otel.GetMeterProvider()
	t.Cleanup(func() {
		otel.SetTracerProvider(prevTracer)
		otel.SetMeterProvider(prevMeter)
	})

	spans := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans)))

	reader := sdkmetric.NewManualReader()
	otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))

	metrics, err := observability.InitMetrics()
	require.NoError(t, err)
	return telemetry{spans: spans, reader: reader, metrics: metrics}
}

func (tel telemetry) requestRoutes(t *testing.T) []string {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, tel.reader.Collect(context.Background(), &rm))

	var routes []string
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "http.server.request.count" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				if v, ok := dp.Attributes.Value(attribute.Key("http.route")); ok {
					routes = append(routes, v.AsString())
				}
			}
		}
	}
	return routes
}

func riskMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/risk/{stepId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

func TestObservabilityMiddleware_LabelsByRoutePattern(t *testing.T) {
	tel := installTelemetry(t)
	mux := riskMux()
	handler := middleware.ObservabilityMiddleware(tel.metrics, mux)(mux)

	for _, id := range []string{"step_knee_001", "step_knee_002"} {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/risk/"+id, nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	ended := tel.spans.Ended()
	require.Len(t, ended, 2)
	for _, span := range ended {
		assert.Equal(t, "GET /api/risk/{stepId}", span.Name())
	}
	assert.Equal(t, []string{"GET /api/risk/{stepId}"}, tel.requestRoutes(t))
}

func TestObservabilityMiddleware_ServedBeforeRouting(t *testing.T) {
	tel := installTelemetry(t)
	mux := riskMux()
	// stands in for an outer layer (response cache) answering without the mux
	short := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := middleware.ObservabilityMiddleware(tel.metrics, mux)(short)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/risk/step_knee_003", nil))

	require.Len(t, tel.spans.Ended(), 1)
	assert.Equal(t, "GET /api/risk/{stepId}", tel.spans.Ended()[0].Name())
}

func TestObservabilityMiddleware_UnknownPathsShareOneLabel(t *testing.T) {
	tel := installTelemetry(t)
	mux := riskMux()
	handler := middleware.ObservabilityMiddleware(tel.metrics, mux)(mux)

	for _, path := range []string{"/nope/1", "/nope/2"} {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	}

	assert.Equal(t, []string{middleware.UnmatchedRoute}, tel.requestRoutes(t))
}
