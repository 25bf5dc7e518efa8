package advice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHuggingFaceGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req huggingFaceRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "hello there", req.Inputs)

		_ = json.NewEncoder(w).Encode([]huggingFaceResult{{GeneratedText: "general kenobi"}})
	}))
	defer srv.Close()

	c := NewHuggingFaceClient("test-key").WithURL(srv.URL)

	got, err := c.Generate(context.Background(), "hello there")
	require.NoError(t, err)
	assert.Equal(t, "general kenobi", got)
}

func TestHuggingFaceGenerateErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			"non-2xx status",
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
		},
		{
			"malformed body",
			func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"not":"an array"}`))
			},
		},
		{
			"empty array",
			func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`[]`))
			},
		},
		{
			"blank generated text",
			func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`[{"generated_text":"  "}]`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := NewHuggingFaceClient("test-key").WithURL(srv.URL)
			_, err := c.Generate(context.Background(), "query")
			assert.Error(t, err)
		})
	}
}

func TestHuggingFaceGenerateUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewHuggingFaceClient("test-key").WithURL(srv.URL)
	_, err := c.Generate(context.Background(), "query")
	assert.Error(t, err)
}
