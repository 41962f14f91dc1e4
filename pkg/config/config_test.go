package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/qcommerce-agent/pkg/config"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg := config.FromViper(viper.New())
	require.NoError(t, cfg.Validate())

	assert.Equal(t, config.DataSourceCSV, cfg.Data.Source)
	assert.Equal(t, "http://localhost:5678/webhook/quick-commerce", cfg.Automation.Endpoint)
	assert.Equal(t, 5*time.Second, cfg.Automation.Timeout())
	assert.Equal(t, 1, cfg.Automation.MaxRetries)
	assert.Equal(t, config.QueueMemory, cfg.Automation.Queue)
	assert.Equal(t, 7, cfg.Decision.LookbackDays)
	assert.Equal(t, 3, cfg.Decision.RestockWindowDays)
	assert.InDelta(t, 0.2, cfg.Decision.ThresholdRatio, 1e-9)
	assert.Equal(t, config.AIProviderTemplate, cfg.AI.Provider)
	assert.Equal(t, "0.0.0.0:8000", cfg.HTTP.Addr())
}

func TestFromViper_ValoresExplicitos(t *testing.T) {
	v := viper.New()
	v.Set("DATA_SOURCE", "POSTGRES")
	v.Set("AUTOMATION_TIMEOUT_SECONDS", "2")
	v.Set("AUTOMATION_MAX_RETRIES", "5")
	v.Set("DECISION_THRESHOLD_RATIO", "0.35")
	v.Set("AI_PROVIDER", "gemini")
	v.Set("HTTP_PORT", 9090)

	cfg := config.FromViper(v)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, config.DataSourcePostgres, cfg.Data.Source)
	assert.Equal(t, 2*time.Second, cfg.Automation.Timeout())
	assert.Equal(t, 1, cfg.Automation.MaxRetries, "como máximo un reintento")
	assert.InDelta(t, 0.35, cfg.Decision.ThresholdRatio, 1e-9)
	assert.Equal(t, config.AIProviderGemini, cfg.AI.Provider)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestValidate_RechazaValoresDesconocidos(t *testing.T) {
	cases := map[string]func(c *config.Config){
		"data source":  func(c *config.Config) { c.Data.Source = "mongo" },
		"proveedor IA": func(c *config.Config) { c.AI.Provider = "openai" },
		"cola":         func(c *config.Config) { c.Automation.Queue = "kafka" },
		"timeout":      func(c *config.Config) { c.Automation.TimeoutSeconds = 0 },
		"umbral":       func(c *config.Config) { c.Decision.ThresholdRatio = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := config.FromViper(viper.New())
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "qc", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/qc?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
