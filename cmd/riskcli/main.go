// Command riskcli assesses a recorded observation series offline using the
// baseline predictors. Useful for replaying historical weather data against
// the classification thresholds without a running service.
//
// Usage:
//
//	riskcli -input observations.json [-window 40] [-high 8.0] [-medium 6.5]
//
// The input file is a JSON array of raw observations; absent fields take the
// documented defaults. Sequences longer than the window keep the most recent
// entries, shorter sequences fail.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/couchcryptid/coastal-early-warning/internal/adapter/baseline"
	"github.com/couchcryptid/coastal-early-warning/internal/domain"
	"github.com/couchcryptid/coastal-early-warning/internal/observability"
	"github.com/couchcryptid/coastal-early-warning/internal/pipeline"
)

func main() {
	var (
		inputPath = flag.String("input", "", "path to a JSON array of observations, or - for stdin")
		window    = flag.Int("window", 40, "feature window size")
		high      = flag.Float64("high", domain.DefaultThresholds.High, "HIGH risk threshold")
		medium    = flag.Float64("medium", domain.DefaultThresholds.Medium, "MEDIUM risk threshold")
	)
	flag.Parse()

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "riskcli: -input is required")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*inputPath, *window, domain.Thresholds{High: *high, Medium: *medium}); err != nil {
		fmt.Fprintf(os.Stderr, "riskcli: %v\n", err)
		os.Exit(1)
	}
}

func run(inputPath string, windowSize int, thresholds domain.Thresholds) error {
	raw, err := readObservations(inputPath)
	if err != nil {
		return err
	}

	observations := make([]domain.WeatherObservation, len(raw))
	for i, r := range raw {
		observations[i] = r.Normalize()
	}

	features := domain.ExtractFeatures(observations)
	window, err := domain.AssembleWindow(features, windowSize)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	p := pipeline.New(
		baseline.NewMeanForecaster(windowSize),
		baseline.DefaultZScoreScorer(),
		nil,
		nil,
		logger,
		observability.NewMetrics(),
		windowSize,
		thresholds,
	)
	p.SetModelsReady(true)

	assessment, err := p.Assess(context.Background(), window)
	if err != nil {
		return err
	}

	stats := window.Stats()
	assessment.WindowStats = &stats

	out, err := json.MarshalIndent(assessment, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func readObservations(path string) ([]domain.RawObservation, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var raw []domain.RawObservation
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding observations: %w", err)
	}
	return raw, nil
}
