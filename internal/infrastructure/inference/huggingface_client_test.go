package inference_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naomili-code/scamalyst/internal/domain/port"
	"github.com/naomili-code/scamalyst/internal/infrastructure/inference"
)

func TestHuggingFaceClient_Infer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/facebook/bart-large-mnli", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"inputs":"claim your prize"}`, string(body))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"labels":["spam","ham"],"scores":[0.93,0.07]}`))
	}))
	defer server.Close()

	client := inference.NewHuggingFaceClient("test-api-key", server.URL+"/", time.Second)

	resp, err := client.Infer(context.Background(), "facebook/bart-large-mnli", json.RawMessage(`"claim your prize"`))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"labels":["spam","ham"],"scores":[0.93,0.07]}`, string(resp.Body))
}

func TestHuggingFaceClient_UpstreamErrorPassesThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"Model is currently loading","estimated_time":20}`))
	}))
	defer server.Close()

	client := inference.NewHuggingFaceClient("test-api-key", server.URL, time.Second)

	resp, err := client.Infer(context.Background(), "m", json.RawMessage(`"x"`))

	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, string(resp.Body), "currently loading")
}

func TestHuggingFaceClient_NonJSONBodyIsWrapped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("bad gateway\n"))
	}))
	defer server.Close()

	client := inference.NewHuggingFaceClient("k", server.URL, time.Second)

	resp, err := client.Infer(context.Background(), "m", json.RawMessage(`"x"`))

	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"bad gateway"}`, string(resp.Body))
}

func TestHuggingFaceClient_OversizedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`"` + strings.Repeat("a", inference.MaxResponseBytes) + `"`))
	}))
	defer server.Close()

	client := inference.NewHuggingFaceClient("k", server.URL, 5*time.Second)

	_, err := client.Infer(context.Background(), "m", json.RawMessage(`"x"`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")
}

func TestHuggingFaceClient_MissingKey(t *testing.T) {
	client := inference.NewHuggingFaceClient("", "http://127.0.0.1:1", time.Second)

	_, err := client.Infer(context.Background(), "m", json.RawMessage(`"x"`))

	assert.ErrorIs(t, err, inference.ErrMissingAPIKey)
	assert.ErrorIs(t, err, port.ErrMissingAPIKey)
}

func TestHuggingFaceClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client := inference.NewHuggingFaceClient("k", server.URL, time.Second)

	_, err := client.Infer(context.Background(), "m", json.RawMessage(`"x"`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "inference API request failed")
}

func TestHuggingFaceClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer server.Close()

	client := inference.NewHuggingFaceClient("k", server.URL, 50*time.Millisecond)

	_, err := client.Infer(context.Background(), "m", json.RawMessage(`"x"`))

	require.Error(t, err)
}

func TestStubClient(t *testing.T) {
	stub := inference.NewStubClient()

	resp, err := stub.Infer(context.Background(), "facebook/bart-large-mnli", json.RawMessage(`"hello"`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.Unmarshal(resp.Body, &body))
	assert.Equal(t, "hello", body["sequence"])

	_, err = stub.Infer(context.Background(), "", nil)
	assert.Error(t, err)
}
