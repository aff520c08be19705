package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/coastal-early-warning/internal/config"
	"github.com/couchcryptid/coastal-early-warning/internal/domain"
)

// Publisher produces HIGH-risk alert messages to the alert topic.
// It implements pipeline.AlertPublisher.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured alert topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaAlertTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// PublishAlert serializes and publishes one high-risk assessment. The caller
// treats failures as best-effort; this method just reports them.
func (p *Publisher) PublishAlert(ctx context.Context, location string, assessment domain.RiskAssessment) error {
	msg, err := buildAlertMessage(location, assessment)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// alertPayload is the wire form of an alert. Location is empty for the
// direct numeric entry mode.
type alertPayload struct {
	Location      string           `json:"location,omitempty"`
	ForecastValue float64          `json:"forecast_value"`
	IsAnomaly     bool             `json:"is_anomaly"`
	RiskLevel     domain.RiskLevel `json:"risk_level"`
	AlertMessage  string           `json:"alert_message"`
	ProducedAt    time.Time        `json:"produced_at"`
}

// buildAlertMessage marshals an assessment into a Kafka message. Messages for
// the same location share a key so per-location ordering is preserved.
func buildAlertMessage(location string, assessment domain.RiskAssessment) (kafkago.Message, error) {
	payload := alertPayload{
		Location:      location,
		ForecastValue: assessment.ForecastValue,
		IsAnomaly:     assessment.IsAnomaly,
		RiskLevel:     assessment.RiskLevel,
		AlertMessage:  assessment.AlertMessage,
		ProducedAt:    assessment.ProducedAt,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize alert: %w", err)
	}

	key := location
	if key == "" {
		key = "direct"
	}

	return kafkago.Message{
		Key:   []byte(key),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "risk_level", Value: []byte(assessment.RiskLevel)},
			{Key: "produced_at", Value: []byte(assessment.ProducedAt.Format(time.RFC3339))},
		},
	}, nil
}
