package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/time/rate"

	"github.com/couchcryptid/coastal-early-warning/internal/config"
	"github.com/couchcryptid/coastal-early-warning/internal/domain"
	"github.com/couchcryptid/coastal-early-warning/internal/observability"
)

// Client fetches weather observations from the OpenWeatherMap API. It
// implements pipeline.WeatherSource. Provider and network failures surface as
// UpstreamDataError; the client never retries — transient failures are the
// caller's concern.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates an OpenWeatherMap client. The limiter enforces the
// configured politeness budget toward the provider across all requests.
func NewClient(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		apiKey:     cfg.OpenWeatherAPIKey,
		baseURL:    cfg.OpenWeatherBaseURL,
		httpClient: &http.Client{Timeout: cfg.OpenWeatherTimeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.OpenWeatherRateLimit), 1),
		logger:     logger,
		metrics:    metrics,
	}
}

// ForecastObservations returns the ordered 5-day/3-hour forecast for a
// registered coastal location, oldest first.
func (c *Client) ForecastObservations(ctx context.Context, location string) ([]domain.WeatherObservation, error) {
	loc, err := ResolveLocation(location)
	if err != nil {
		return nil, err
	}

	var resp forecastResponse
	if err := c.get(ctx, "/forecast", loc, &resp); err != nil {
		return nil, err
	}

	observations := make([]domain.WeatherObservation, len(resp.List))
	for i, item := range resp.List {
		observations[i] = item.toRaw().Normalize()
	}
	return observations, nil
}

// CurrentObservation returns the latest reading for a registered location.
func (c *Client) CurrentObservation(ctx context.Context, location string) (domain.WeatherObservation, error) {
	loc, err := ResolveLocation(location)
	if err != nil {
		return domain.WeatherObservation{}, err
	}

	var resp forecastItem
	if err := c.get(ctx, "/weather", loc, &resp); err != nil {
		return domain.WeatherObservation{}, err
	}
	return resp.toRaw().Normalize(), nil
}

func (c *Client) get(ctx context.Context, path string, loc CoastalLocation, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &domain.UpstreamDataError{Err: err}
	}

	params := url.Values{
		"lat":   {strconv.FormatFloat(loc.Lat, 'f', 4, 64)},
		"lon":   {strconv.FormatFloat(loc.Lon, 'f', 4, 64)},
		"appid": {c.apiKey},
		"units": {"metric"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return &domain.UpstreamDataError{Err: fmt.Errorf("create request: %w", err)}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("error").Inc()
		return &domain.UpstreamDataError{Err: fmt.Errorf("%s request: %w", path, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.UpstreamRequests.WithLabelValues("error").Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &domain.UpstreamDataError{Err: fmt.Errorf("provider status %d: %s", resp.StatusCode, body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("error").Inc()
		return &domain.UpstreamDataError{Err: fmt.Errorf("decode response: %w", err)}
	}

	c.metrics.UpstreamRequests.WithLabelValues("success").Inc()
	return nil
}

// OpenWeatherMap API response types. Pointer fields keep absent values
// distinguishable from zeroes so the domain defaults apply only to what the
// provider actually omitted.

type forecastResponse struct {
	List []forecastItem `json:"list"`
}

type forecastItem struct {
	Main struct {
		Temp     *float64 `json:"temp"`
		Pressure *float64 `json:"pressure"`
		Humidity *float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed *float64 `json:"speed"`
		Deg   *float64 `json:"deg"`
	} `json:"wind"`
}

func (f forecastItem) toRaw() domain.RawObservation {
	return domain.RawObservation{
		PressureHPa:  f.Main.Pressure,
		WindSpeedMPS: f.Wind.Speed,
		WindDirDeg:   f.Wind.Deg,
		HumidityPct:  f.Main.Humidity,
		TemperatureC: f.Main.Temp,
	}
}
