package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpadapter "github.com/couchcryptid/coastal-early-warning/internal/adapter/http"
	"github.com/couchcryptid/coastal-early-warning/internal/adapter/openweather"
	"github.com/couchcryptid/coastal-early-warning/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAssessor struct {
	assessment  domain.RiskAssessment
	err         error
	gotFeatures []float64
	gotLocation string
}

func (m *mockAssessor) Assess(_ context.Context, features []float64) (domain.RiskAssessment, error) {
	m.gotFeatures = features
	return m.assessment, m.err
}

func (m *mockAssessor) AssessLive(_ context.Context, location string) (domain.RiskAssessment, error) {
	m.gotLocation = location
	return m.assessment, m.err
}

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

func newTestServer(assessor *mockAssessor, readyErr error) *httpadapter.Server {
	return httpadapter.NewServer(":0", assessor, &mockReadiness{err: readyErr}, slog.Default())
}

func doRequest(srv *httpadapter.Server, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealthzReturns200(t *testing.T) {
	rec := doRequest(newTestServer(&mockAssessor{}, nil), http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReflectsModelState(t *testing.T) {
	rec := doRequest(newTestServer(&mockAssessor{}, nil), http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(newTestServer(&mockAssessor{}, domain.ErrModelsUnavailable), http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, domain.ErrModelsUnavailable.Error(), body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	rec := doRequest(newTestServer(&mockAssessor{}, nil), http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestAssess_Success(t *testing.T) {
	assessor := &mockAssessor{assessment: domain.RiskAssessment{
		ForecastValue: 7.4,
		RiskLevel:     domain.RiskMedium,
	}}
	rec := doRequest(newTestServer(assessor, nil), http.MethodPost, "/v1/assess", `{"features":[1,2,3]}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []float64{1, 2, 3}, assessor.gotFeatures)

	var body domain.RiskAssessment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, domain.RiskMedium, body.RiskLevel)
	assert.Equal(t, 7.4, body.ForecastValue)
}

func TestAssess_MalformedBody(t *testing.T) {
	rec := doRequest(newTestServer(&mockAssessor{}, nil), http.MethodPost, "/v1/assess", `{"features":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssessLive_PassesLocation(t *testing.T) {
	assessor := &mockAssessor{assessment: domain.RiskAssessment{RiskLevel: domain.RiskLow}}
	rec := doRequest(newTestServer(assessor, nil), http.MethodGet, "/v1/assess/live/charleston", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "charleston", assessor.gotLocation)
}

func TestAssessErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{"insufficient data", &domain.InsufficientDataError{Got: 3, Need: 40}, http.StatusUnprocessableEntity, "insufficient_data"},
		{"unknown location", fmt.Errorf("%w: %q", openweather.ErrUnknownLocation, "atlantis"), http.StatusNotFound, "unknown_location"},
		{"models unavailable", domain.ErrModelsUnavailable, http.StatusServiceUnavailable, "models_unavailable"},
		{"upstream failure", &domain.UpstreamDataError{Err: errors.New("timeout")}, http.StatusServiceUnavailable, "upstream_unavailable"},
		{"prediction failure", &domain.PredictionError{Model: domain.ModelForecaster, Err: errors.New("boom")}, http.StatusBadGateway, "prediction_failed"},
		{"shape mismatch", &domain.ShapeMismatchError{Got: 40, Want: 50}, http.StatusInternalServerError, "shape_mismatch"},
		{"unknown error", errors.New("surprise"), http.StatusInternalServerError, "internal"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTestServer(&mockAssessor{err: tc.err}, nil)
			rec := doRequest(srv, http.MethodPost, "/v1/assess", `{"features":[1]}`)

			assert.Equal(t, tc.wantStatus, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.wantKind, body["kind"])
		})
	}
}

func TestLocationsEndpoint(t *testing.T) {
	rec := doRequest(newTestServer(&mockAssessor{}, nil), http.MethodGet, "/v1/locations", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["locations"], "charleston")
}

func TestCORSPreflight(t *testing.T) {
	rec := doRequest(newTestServer(&mockAssessor{}, nil), http.MethodOptions, "/v1/assess", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
}
