package detector

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealsnap/backend/internal/domain"
)

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8000/", 5*time.Second, 60)

	assert.NotNil(t, client)
	assert.Equal(t, "http://localhost:8000", client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.NotNil(t, client.rateLimiter)
	assert.Equal(t, DefaultFallback(), client.fallback)
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient("http://localhost:8000", 0, 0)

	assert.Equal(t, 10*time.Second, client.httpClient.Timeout)
	assert.NotNil(t, client.rateLimiter)
}

func TestDetect_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/detect", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req detectRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "aW1hZ2U=", req.Image)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(detectResponse{
			Success: true,
			Detections: []wireDetection{
				{FoodName: "Idli", Confidence: 0.92, AreaRatio: 0.12},
				{FoodName: "Idli", Confidence: 0.88, AreaRatio: 0.20},
				{FoodName: "Sambar", Confidence: 0.87, AreaRatio: 0.35},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, 600)

	detections := client.Detect(context.Background(), "aW1hZ2U=")

	require.Len(t, detections, 3)
	assert.Equal(t, domain.Detection{FoodLabel: "Idli", Confidence: 0.92, AreaRatio: 0.12}, detections[0])
	assert.Equal(t, domain.Detection{FoodLabel: "Idli", Confidence: 0.88, AreaRatio: 0.20}, detections[1])
	assert.Equal(t, domain.Detection{FoodLabel: "Sambar", Confidence: 0.87, AreaRatio: 0.35}, detections[2])
}

func TestDetect_FallbackOnServerError(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, 600)

	detections := client.Detect(context.Background(), "aW1hZ2U=")

	assert.Equal(t, DefaultFallback(), detections)
	assert.Equal(t, maxAttempts, calls, "5xx responses should be retried")
}

func TestDetect_NoRetryOnBadRequest(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, 600)

	detections := client.Detect(context.Background(), "aW1hZ2U=")

	assert.Equal(t, DefaultFallback(), detections)
	assert.Equal(t, 1, calls, "4xx responses should not be retried")
}

func TestDetect_FallbackOnMalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, 600)

	detections := client.Detect(context.Background(), "aW1hZ2U=")

	assert.Equal(t, DefaultFallback(), detections)
}

func TestDetect_FallbackOnServiceReportedFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(detectResponse{
			Success: false,
			Error:   "model not loaded",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, 600)

	detections := client.Detect(context.Background(), "aW1hZ2U=")

	assert.Equal(t, DefaultFallback(), detections)
}

func TestDetect_FallbackOnEmptyDetections(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(detectResponse{
			Success:    true,
			Detections: []wireDetection{},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, 600)

	detections := client.Detect(context.Background(), "aW1hZ2U=")

	assert.Equal(t, DefaultFallback(), detections)
}

func TestDetect_FallbackOnUnreachableService(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, 2*time.Second, 600)

	detections := client.Detect(context.Background(), "aW1hZ2U=")

	assert.Equal(t, DefaultFallback(), detections)
}

func TestDetect_CustomFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, 600)
	custom := []domain.Detection{
		{FoodLabel: "Dosa", Confidence: 0.8, AreaRatio: 0.3},
	}
	client.SetFallback(custom)

	detections := client.Detect(context.Background(), "aW1hZ2U=")

	assert.Equal(t, custom, detections)
}

func TestDetect_FallbackIsACopy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, 600)

	first := client.Detect(context.Background(), "aW1hZ2U=")
	first[0].FoodLabel = "mutated"

	second := client.Detect(context.Background(), "aW1hZ2U=")
	assert.Equal(t, "Idli", second[0].FoodLabel)
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		resp    detectResponse
		wantLen int
		wantErr error
	}{
		{
			name: "valid response",
			resp: detectResponse{
				Success: true,
				Detections: []wireDetection{
					{FoodName: "Idli", Confidence: 0.9, AreaRatio: 0.1},
				},
			},
			wantLen: 1,
		},
		{
			name:    "failure without message",
			resp:    detectResponse{Success: false},
			wantErr: domain.ErrMalformedDetection,
		},
		{
			name:    "failure with message",
			resp:    detectResponse{Success: false, Error: "boom"},
			wantErr: domain.ErrDetectorUnavailable,
		},
		{
			name:    "empty detections",
			resp:    detectResponse{Success: true},
			wantErr: domain.ErrMalformedDetection,
		},
		{
			name: "blank food name",
			resp: detectResponse{
				Success:    true,
				Detections: []wireDetection{{FoodName: "   ", Confidence: 0.9, AreaRatio: 0.1}},
			},
			wantErr: domain.ErrMalformedDetection,
		},
		{
			name: "confidence above one",
			resp: detectResponse{
				Success:    true,
				Detections: []wireDetection{{FoodName: "Idli", Confidence: 1.2, AreaRatio: 0.1}},
			},
			wantErr: domain.ErrMalformedDetection,
		},
		{
			name: "negative area ratio",
			resp: detectResponse{
				Success:    true,
				Detections: []wireDetection{{FoodName: "Idli", Confidence: 0.9, AreaRatio: -0.1}},
			},
			wantErr: domain.ErrMalformedDetection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detections, err := validateResponse(&tt.resp)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, detections, tt.wantLen)
		})
	}
}

func TestRetryableStatus(t *testing.T) {
	assert.True(t, retryableStatus(http.StatusInternalServerError))
	assert.True(t, retryableStatus(http.StatusBadGateway))
	assert.True(t, retryableStatus(http.StatusTooManyRequests))
	assert.False(t, retryableStatus(http.StatusBadRequest))
	assert.False(t, retryableStatus(http.StatusNotFound))
}
