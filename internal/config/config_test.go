package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SHEET_URL", "https://example.com/export?format=csv")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/export?format=csv", cfg.SheetURL)
	assert.Equal(t, 15*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 10*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "ice-report-prefs.json", cfg.PrefsPath)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "ice-observations", cfg.KafkaTopic)
	assert.False(t, cfg.KafkaEnabled)
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("SHEET_URL", "https://example.com/export")
	t.Setenv("FETCH_TIMEOUT", "30s")
	t.Setenv("REFRESH_INTERVAL", "1m")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092 ,")
	t.Setenv("KAFKA_TOPIC", "ice-obs-staging")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
	assert.Equal(t, time.Minute, cfg.RefreshInterval)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "ice-obs-staging", cfg.KafkaTopic)
	assert.True(t, cfg.KafkaEnabled, "brokers present enables export by default")
}

func TestLoad_KafkaExplicitlyDisabled(t *testing.T) {
	t.Setenv("SHEET_URL", "https://example.com/export")
	t.Setenv("KAFKA_BROKERS", "broker1:9092")
	t.Setenv("KAFKA_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.KafkaEnabled)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing sheet url", map[string]string{}},
		{"bad duration", map[string]string{
			"SHEET_URL":     "https://example.com/export",
			"FETCH_TIMEOUT": "sideways",
		}},
		{"negative duration", map[string]string{
			"SHEET_URL":        "https://example.com/export",
			"REFRESH_INTERVAL": "-5m",
		}},
		{"kafka enabled without brokers", map[string]string{
			"SHEET_URL":     "https://example.com/export",
			"KAFKA_ENABLED": "true",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SHEET_URL", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
