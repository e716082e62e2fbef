package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/engine")
	t.Setenv("AUTH_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("GENERATION_RANDOM_SEED", "42")
	t.Setenv("ISSUED_ASSESSMENT_TTL", "30m")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want default 8080", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "k2:9092" {
		t.Errorf("Brokers = %v", cfg.Kafka.Brokers)
	}
	if cfg.Generation.RandomSeed != 42 || cfg.Generation.IssuedAssessmentTTL != 30*time.Minute {
		t.Errorf("Generation = %+v", cfg.Generation)
	}
	if !cfg.Database.AutoMigrate || cfg.Database.MaxOpenConns != 25 {
		t.Errorf("Database = %+v", cfg.Database)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing database url", env: map[string]string{"AUTH_ENABLED": "false"}},
		{name: "auth without casdoor", env: map[string]string{"DATABASE_URL": "postgres://x"}},
		{name: "bad duration", env: map[string]string{"DATABASE_URL": "postgres://x", "AUTH_ENABLED": "false", "ISSUED_ASSESSMENT_TTL": "soon"}},
		{name: "bad level", env: map[string]string{"DATABASE_URL": "postgres://x", "AUTH_ENABLED": "false", "LOG_LEVEL": "loud"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"DATABASE_URL", "AUTH_ENABLED", "CASDOOR_ENDPOINT", "ISSUED_ASSESSMENT_TTL", "LOG_LEVEL"} {
				t.Setenv(key, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := LoadConfig(); err == nil {
				t.Errorf("expected error")
			}
		})
	}
}
