package config_test

import (
	"strings"
	"testing"

	"github.com/iratxeld/tripfinder/internal/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TRIPFINDER_UPSTREAM_URL", "https://api.example.com/trips")
	t.Setenv("TRIPFINDER_UPSTREAM_API_KEY", "secret")

	cfg, err := config.Load("tripfinder-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Upstream.Timeout != 10 {
		t.Errorf("expected default upstream timeout 10, got %d", cfg.Upstream.Timeout)
	}
	if cfg.Mongo.Database != "tripfinder" {
		t.Errorf("expected default database name, got %q", cfg.Mongo.Database)
	}
	if cfg.Mongo.URI != "" || cfg.NATS.URL != "" || cfg.Valkey.Addr != "" {
		t.Error("optional subsystems must default to disabled")
	}
	if cfg.Telemetry.Enabled {
		t.Error("telemetry must default to disabled")
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("expected info/json log defaults, got %q/%q", cfg.Log.Level, cfg.Log.Format)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TRIPFINDER_UPSTREAM_URL", "https://api.example.com/trips")
	t.Setenv("TRIPFINDER_UPSTREAM_API_KEY", "secret")
	t.Setenv("TRIPFINDER_SERVER_PORT", "9090")
	t.Setenv("TRIPFINDER_MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("TRIPFINDER_LOG_LEVEL", "debug")

	cfg, err := config.Load("tripfinder-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090 from env, got %d", cfg.Server.Port)
	}
	if cfg.Mongo.URI != "mongodb://localhost:27017" {
		t.Errorf("expected mongo uri from env, got %q", cfg.Mongo.URI)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level from env, got %q", cfg.Log.Level)
	}
}

func TestLoad_MissingUpstream(t *testing.T) {
	t.Setenv("TRIPFINDER_UPSTREAM_URL", "")
	t.Setenv("TRIPFINDER_UPSTREAM_API_KEY", "")

	_, err := config.Load("tripfinder-test")
	if err == nil {
		t.Fatal("expected validation error without upstream settings")
	}
	if !strings.Contains(err.Error(), "upstream.url is required") {
		t.Errorf("expected upstream.url complaint, got %v", err)
	}
	if !strings.Contains(err.Error(), "upstream.api_key is required") {
		t.Errorf("expected upstream.api_key complaint, got %v", err)
	}
}

func TestValidate_PortRange(t *testing.T) {
	t.Setenv("TRIPFINDER_UPSTREAM_URL", "https://api.example.com/trips")
	t.Setenv("TRIPFINDER_UPSTREAM_API_KEY", "secret")
	t.Setenv("TRIPFINDER_SERVER_PORT", "70000")

	_, err := config.Load("tripfinder-test")
	if err == nil || !strings.Contains(err.Error(), "server.port") {
		t.Fatalf("expected port range error, got %v", err)
	}
}
