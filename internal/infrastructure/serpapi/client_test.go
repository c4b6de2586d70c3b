package serpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoplens/backend/internal/domain"
)

func testConfig(baseURL string) ClientConfig {
	return ClientConfig{
		APIKey:   "test-api-key",
		BaseURL:  baseURL,
		Engine:   "google_shopping",
		Country:  "in",
		Language: "en",
	}
}

func TestNewClient(t *testing.T) {
	client := NewClient(testConfig("https://api.example.com"), nil)

	assert.NotNil(t, client)
	assert.Equal(t, "test-api-key", client.apiKey)
	assert.Equal(t, "https://api.example.com", client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.NotNil(t, client.rateLimiter)
	assert.NotNil(t, client.logger)
}

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, 500 * time.Millisecond},
		{2, 1000 * time.Millisecond},
		{3, 2000 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			assert.Equal(t, tt.expected, exponentialBackoff(tt.attempt))
		})
	}
}

func TestFetchRaw_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search.json", r.URL.Path)
		assert.Equal(t, "google_shopping", r.URL.Query().Get("engine"))
		assert.Equal(t, "brand x phone", r.URL.Query().Get("q"))
		assert.Equal(t, "test-api-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "15", r.URL.Query().Get("num"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"shopping_results": []map[string]interface{}{
				{"title": "Brand X Phone 128GB", "extracted_price": 49999.0, "rating": 4.5},
			},
			"organic_results": []map[string]interface{}{
				{"name": "Brand X Phone 64GB", "product_link": "https://shop.example/p/9"},
			},
		})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), nil)
	items, err := client.FetchRaw(context.Background(), "brand x phone", 15)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Brand X Phone 128GB", items[0].Title)
	require.NotNil(t, items[0].ExtractedPrice)
	assert.Equal(t, 49999.0, *items[0].ExtractedPrice)
	assert.Equal(t, "Brand X Phone 64GB", items[1].Name)
}

func TestFetchRaw_RetriesTransientFailure(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"shopping_results": []map[string]interface{}{{"title": "Phone"}},
		})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), nil)
	items, err := client.FetchRaw(context.Background(), "phone", 6)

	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 2, attempts)
}

func TestFetchRaw_ExhaustsRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), nil)
	_, err := client.FetchRaw(context.Background(), "phone", 6)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstreamFailure)
}

func TestFetchRaw_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": "Invalid API key",
		})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), nil)
	_, err := client.FetchRaw(context.Background(), "phone", 6)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstreamFailure)
	assert.Contains(t, err.Error(), "Invalid API key")
}

func TestFetchRaw_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), nil)
	_, err := client.FetchRaw(context.Background(), "phone", 6)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstreamFailure)
}

func TestFetchRaw_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), nil)
	items, err := client.FetchRaw(context.Background(), "phone", 6)

	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFetchRaw_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(testConfig(server.URL), nil)
	_, err := client.FetchRaw(ctx, "phone", 6)

	require.Error(t, err)
}
