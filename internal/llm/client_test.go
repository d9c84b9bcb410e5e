package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAdvisorClientRequiresEndpoint(t *testing.T) {
	_, err := NewAdvisorClient(Config{})
	assert.Error(t, err)

	c, err := NewAdvisorClient(Config{Endpoint: "https://inference.example.com/models/test/"})
	require.NoError(t, err)
	assert.Equal(t, "https://inference.example.com/models/test", c.endpoint)
}

func TestAdviseSendsBearerAndDecodesGeneration(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Inputs, "Find patient Ravi Kumar")
		assert.Equal(t, 80, req.Parameters.MaxNewTokens)

		json.NewEncoder(w).Encode([]generateResponse{
			{GeneratedText: req.Inputs + "\nPatient located; no further action needed."},
		})
	}))
	defer srv.Close()

	c, err := NewAdvisorClient(Config{Endpoint: srv.URL, AuthToken: "test-token"})
	require.NoError(t, err)

	note, err := c.Advise(context.Background(), "Find patient Ravi Kumar", "Found patient: Ravi Kumar (ID: PAT001)")
	require.NoError(t, err)
	assert.Equal(t, "Patient located; no further action needed.", note)
}

func TestAdviseErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c, err := NewAdvisorClient(Config{Endpoint: srv.URL})
	require.NoError(t, err)

	_, err = c.Advise(context.Background(), "request", "summary")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestAdviseEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	c, err := NewAdvisorClient(Config{Endpoint: srv.URL})
	require.NoError(t, err)

	_, err = c.Advise(context.Background(), "request", "summary")
	assert.Error(t, err)
}

func TestAdviseTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c, err := NewAdvisorClient(Config{Endpoint: srv.URL, Timeout: 20 * time.Millisecond})
	require.NoError(t, err)

	_, err = c.Advise(context.Background(), "request", "summary")
	assert.Error(t, err)
}
