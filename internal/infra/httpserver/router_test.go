package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appanalysis "github.com/complianceworks/geogate/internal/application/analysis"
	domain "github.com/complianceworks/geogate/internal/domain/analysis"
	"github.com/complianceworks/geogate/internal/middleware"
)

func newTestServer(t *testing.T, classifier domain.Classifier) *httptest.Server {
	t.Helper()
	svc := appanalysis.NewService(classifier, zap.NewNop())
	srv := httptest.NewServer(NewRouter(svc, zap.NewNop(), map[string]middleware.HealthChecker{}))
	t.Cleanup(srv.Close)
	return srv
}

func jsonDecode(resp *http.Response, v any) error {
	return json.NewDecoder(resp.Body).Decode(v)
}

func TestHandleAnalyze(t *testing.T) {
	srv := newTestServer(t, domain.ClassifierFunc(func(ctx context.Context, description string) (string, error) {
		return `{"is_geo_compliance_needed": true, "reasoning": "mandated", "relevant_regulation": "DSA"}`, nil
	}))

	resp, err := http.Post(srv.URL+"/v1/analyze", "application/json",
		strings.NewReader(`{"feature_name": "CSAM reporting", "feature_description": "Report illegal content per DSA"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got struct {
		FeatureName           string `json:"feature_name"`
		IsGeoComplianceNeeded *bool  `json:"is_geo_compliance_needed"`
		Reasoning             string `json:"reasoning"`
		RelevantRegulation    string `json:"relevant_regulation"`
	}
	require.NoError(t, jsonDecode(resp, &got))
	assert.Equal(t, "CSAM reporting", got.FeatureName)
	require.NotNil(t, got.IsGeoComplianceNeeded)
	assert.True(t, *got.IsGeoComplianceNeeded)
	assert.Equal(t, "DSA", got.RelevantRegulation)
}

func TestHandleAnalyze_BlankDescription(t *testing.T) {
	srv := newTestServer(t, domain.ClassifierFunc(func(ctx context.Context, description string) (string, error) {
		t.Error("backend must not be called")
		return "", nil
	}))

	resp, err := http.Post(srv.URL+"/v1/analyze", "application/json",
		strings.NewReader(`{"feature_description": "   "}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got struct {
		IsGeoComplianceNeeded *bool  `json:"is_geo_compliance_needed"`
		Reasoning             string `json:"reasoning"`
	}
	require.NoError(t, jsonDecode(resp, &got))
	assert.Nil(t, got.IsGeoComplianceNeeded)
	assert.Equal(t, "Skipped: Empty feature description.", got.Reasoning)
}

func TestHandleAnalyze_BadBody(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := http.Post(srv.URL+"/v1/analyze", "application/json", strings.NewReader("not json"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t, nil)

	for _, path := range []string{"/health", "/ready", "/live"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}
