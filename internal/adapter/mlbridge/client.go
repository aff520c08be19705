// Package mlbridge talks to the model-serving sidecar that hosts the trained
// LSTM forecaster and IsolationForest anomaly detector. The sidecar keeps the
// Python model runtime out of this process; this client holds the shape
// contract both artifacts were trained on.
package mlbridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/couchcryptid/coastal-early-warning/internal/config"
	"github.com/couchcryptid/coastal-early-warning/internal/domain"
)

// Client implements domain.Forecaster and domain.AnomalyScorer against the
// bridge's HTTP API. Safe for concurrent use: the underlying http.Client is,
// and the client itself is read-only after construction.
type Client struct {
	baseURL    string
	httpClient *http.Client
	windowSize int
	logger     *slog.Logger
}

// NewClient creates a bridge client. windowSize is the number of time steps
// the forecaster was trained on; windows of any other length are rejected
// before a request is made.
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    cfg.ModelBridgeURL,
		httpClient: &http.Client{Timeout: cfg.ModelBridgeTimeout},
		windowSize: cfg.WindowSize,
		logger:     logger,
	}
}

// CheckModels verifies both model artifacts are loaded and serving. Called
// once at startup; a failure leaves the pipeline refusing assessments.
func (c *Client) CheckModels(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("create health request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("model bridge health: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("model bridge health: status %d: %s", resp.StatusCode, body)
	}
	return nil
}

// Predict presents the window to the forecaster as one sample of windowSize
// time steps with one channel and returns the single scalar forecast.
func (c *Client) Predict(ctx context.Context, window domain.FeatureWindow) (float64, error) {
	if len(window) != c.windowSize {
		return 0, &domain.ShapeMismatchError{Got: len(window), Want: c.windowSize}
	}

	// (1, N, 1): one sample, N steps, one channel.
	sample := make([][]float64, len(window))
	for i, v := range window {
		sample[i] = []float64{v}
	}

	prediction, err := c.predict(ctx, "/v1/forecast", [][][]float64{sample})
	if err != nil {
		return 0, err
	}
	return prediction, nil
}

// Score feeds a single feature value to the anomaly detector and converts
// the IsolationForest wire convention (-1 anomalous, 1 normal) to a verdict.
func (c *Client) Score(ctx context.Context, value float64) (domain.Verdict, error) {
	prediction, err := c.predict(ctx, "/v1/anomaly", [][]float64{{value}})
	if err != nil {
		return domain.VerdictNormal, err
	}

	switch prediction {
	case -1:
		return domain.VerdictAnomalous, nil
	case 1:
		return domain.VerdictNormal, nil
	default:
		return domain.VerdictNormal, fmt.Errorf("unexpected anomaly prediction %v", prediction)
	}
}

type predictRequest struct {
	Instances any `json:"instances"`
}

type predictResponse struct {
	Predictions []float64 `json:"predictions"`
}

func (c *Client) predict(ctx context.Context, path string, instances any) (float64, error) {
	body, err := json.Marshal(predictRequest{Instances: instances})
	if err != nil {
		return 0, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s request: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("%s: status %d: %s", path, resp.StatusCode, respBody)
	}

	var parsed predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Predictions) != 1 {
		return 0, fmt.Errorf("expected one prediction, got %d", len(parsed.Predictions))
	}
	return parsed.Predictions[0], nil
}
