package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arogyalabs/clinicflow/internal/agent"
	"github.com/arogyalabs/clinicflow/internal/capability"
	"github.com/arogyalabs/clinicflow/internal/clinicdata"
	"github.com/arogyalabs/clinicflow/internal/compliance"
	"github.com/arogyalabs/clinicflow/internal/http/handlers"
	httpmiddleware "github.com/arogyalabs/clinicflow/internal/http/middleware"
)

func newTestServer(t *testing.T, opts ...func(*Config)) *httptest.Server {
	t.Helper()

	store := clinicdata.NewStore()
	require.NoError(t, store.AddPatient(clinicdata.Patient{
		ID:                  "PAT001",
		Name:                "Ravi Kumar",
		DateOfBirth:         "1985-03-15",
		MedicalRecordNumber: "MRN-001",
	}))
	store.AddSlot(clinicdata.Slot{
		ID:        "SLOT-0001",
		Specialty: "Cardiology",
		Date:      time.Now().AddDate(0, 0, 2).Format("2006-01-02"),
		Time:      "09:00",
		Doctor:    "Dr. Anil Reddy",
	})

	recorder := compliance.NewRecorder()
	caps := capability.NewService(store, nil, nil)
	engine := agent.New(agent.Options{Capabilities: caps, Audit: recorder})

	cfg := &Config{
		AgentHandler:      handlers.NewAgentHandler(engine, nil, compliance.DisclaimerMedium, nil),
		CapabilityHandler: handlers.NewCapabilityHandler(caps, nil),
		AuditHandler:      handlers.NewAuditHandler(recorder),
		StatsHandler:      handlers.NewStatsHandler(store),
		AdminAuthSecret:   "test-secret",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	srv := httptest.NewServer(New(cfg))
	t.Cleanup(srv.Close)
	return srv
}

func adminToken(t *testing.T, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "ops",
		Audience:  jwt.ClaimStrings{httpmiddleware.AdminAudience},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestRouterHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouterAgentRequest(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/v1/agent/requests", "application/json",
		strings.NewReader(`{"request":"Find patient Ravi Kumar"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out handlers.ProcessResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.Success)
	require.Len(t, out.Results, 1)
}

func TestRouterCapabilityEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/v1/capabilities/search-patient", "application/json",
		strings.NewReader(`{"name":"Ravi"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out capability.PatientSearchResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.Success)
}

func TestRouterAdminRequiresToken(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/v1/audit", "/v1/stats"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestRouterAdminWithToken(t *testing.T) {
	srv := newTestServer(t)

	// Generate some audit entries first.
	resp, err := http.Post(srv.URL+"/v1/agent/requests", "application/json",
		strings.NewReader(`{"request":"Find patient Ravi Kumar"}`))
	require.NoError(t, err)
	resp.Body.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/v1/audit", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+adminToken(t, "test-secret"))

	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var audit handlers.AuditResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&audit))
	assert.NotZero(t, audit.Count)

	req, err = http.NewRequest(http.MethodGet, srv.URL+"/v1/stats", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+adminToken(t, "test-secret"))

	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats clinicdata.Stats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, 1, stats.Patients)
}

func TestRouterAgentRateLimit(t *testing.T) {
	srv := newTestServer(t, func(cfg *Config) {
		cfg.AgentRateLimit = httpmiddleware.Limit{PerMinute: 60, Burst: 1}
	})

	resp, err := http.Post(srv.URL+"/v1/agent/requests", "application/json",
		strings.NewReader(`{"request":"Find patient Ravi Kumar"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/v1/agent/requests", "application/json",
		strings.NewReader(`{"request":"Find patient Ravi Kumar"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	// Capability endpoints run under their own limit and stay open.
	resp, err = http.Post(srv.URL+"/v1/capabilities/search-patient", "application/json",
		strings.NewReader(`{"name":"Ravi"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouterUnknownRoute(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
