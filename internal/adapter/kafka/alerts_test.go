package kafka

import (
	"testing"
	"time"

	"github.com/couchcryptid/coastal-early-warning/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAlertMessage(t *testing.T) {
	producedAt := time.Date(2025, 10, 3, 12, 0, 0, 0, time.UTC)
	assessment := domain.RiskAssessment{
		ForecastValue: 9.1,
		IsAnomaly:     true,
		RiskLevel:     domain.RiskHigh,
		AlertMessage:  domain.AlertAnomaly,
		ProducedAt:    producedAt,
	}

	msg, err := buildAlertMessage("charleston", assessment)
	require.NoError(t, err)

	assert.Equal(t, []byte("charleston"), msg.Key)
	assert.Contains(t, string(msg.Value), `"risk_level":"HIGH"`)
	assert.Contains(t, string(msg.Value), `"location":"charleston"`)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "risk_level", msg.Headers[0].Key)
	assert.Equal(t, []byte("HIGH"), msg.Headers[0].Value)
	assert.Equal(t, "produced_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(producedAt.Format(time.RFC3339)), msg.Headers[1].Value)
}

func TestBuildAlertMessage_DirectModeKey(t *testing.T) {
	msg, err := buildAlertMessage("", domain.RiskAssessment{RiskLevel: domain.RiskHigh})
	require.NoError(t, err)

	assert.Equal(t, []byte("direct"), msg.Key)
	assert.NotContains(t, string(msg.Value), `"location"`)
}
