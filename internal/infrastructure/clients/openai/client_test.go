package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/careplannavigator/pkg/config"
	apperrors "github.com/zatekoja/careplannavigator/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(&config.OpenAIConfig{
		APIKey:       "test-key",
		Model:        "gpt-test",
		BaseURL:      server.URL + "/",
		RateLimitRPM: -1,
	})
	require.NoError(t, err)
	return client
}

func writeOutput(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"output": []map[string]interface{}{
			{"content": []map[string]string{{"type": "output_text", "text": text}}},
		},
	})
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(&config.OpenAIConfig{})
	assert.Error(t, err)

	_, err = NewClient(nil)
	assert.Error(t, err)
}

func TestNewClient_Defaults(t *testing.T) {
	client, err := NewClient(&config.OpenAIConfig{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", client.model)
	assert.Equal(t, defaultBaseURL, client.baseURL)
	assert.NotNil(t, client.limiter)
}

func TestClient_Explain(t *testing.T) {
	var got map[string]interface{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/responses", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeOutput(w, "  Pain relief lets you move comfortably. Always follow your healthcare provider's specific instructions.  ")
	})

	text, err := client.Explain(context.Background(), "Take pain medication", "Post-surgical pain control", "basic")
	require.NoError(t, err)
	assert.Equal(t, "Pain relief lets you move comfortably. Always follow your healthcare provider's specific instructions.", text)

	assert.Equal(t, "gpt-test", got["model"])
	assert.InDelta(t, 0.3, got["temperature"], 1e-9)
	input := got["input"].([]interface{})
	require.Len(t, input, 2)
	system := input[0].(map[string]interface{})
	user := input[1].(map[string]interface{})
	assert.Contains(t, system["content"], "Never diagnose conditions")
	assert.Contains(t, user["content"], "CARE STEP: Take pain medication")
	assert.Contains(t, user["content"], "basic literacy level")
}

func TestClient_SimplifyUsesReadingGrade(t *testing.T) {
	var got map[string]interface{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeOutput(w, "Take one pill with food.")
	})

	text, err := client.Simplify(context.Background(), "Administer PO with meals", "advanced")
	require.NoError(t, err)
	assert.Equal(t, "Take one pill with food.", text)

	user := got["input"].([]interface{})[1].(map[string]interface{})
	assert.Contains(t, user["content"], "11th-12th grade")
	assert.Contains(t, user["content"], "Administer PO with meals")
}

func TestReadingGrade(t *testing.T) {
	assert.Equal(t, "6th-8th grade", readingGrade("basic"))
	assert.Equal(t, "9th-10th grade", readingGrade("intermediate"))
	assert.Equal(t, "11th-12th grade", readingGrade("advanced"))
	assert.Equal(t, "8th grade", readingGrade("expert"))
}

func TestClient_ErrorsAreExternal(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"unauthorized", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}},
		{"empty output", func(w http.ResponseWriter, r *http.Request) {
			writeOutput(w, "   ")
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("{not json"))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)
			_, err := client.Simplify(context.Background(), "text", "basic")
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
		})
	}
}

func TestClient_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	})

	for i := 0; i < 8; i++ {
		_, err := client.Explain(context.Background(), "step", "context", "basic")
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
	}
	assert.Equal(t, int32(5), atomic.LoadInt32(&calls))
}

func TestTokenBucket_WaitHonoursContext(t *testing.T) {
	bucket := newTokenBucketWithRate(1, 1)
	require.NoError(t, bucket.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, bucket.Wait(ctx), context.Canceled)
}

func TestNewTokenBucket_NegativeDisables(t *testing.T) {
	assert.Nil(t, newTokenBucket(-1, 5))
}
