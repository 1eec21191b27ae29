package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "application.yml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if cfg.StartScore != 250 || cfg.ReturnScore != 300 {
		t.Fatalf("unexpected score defaults: %+v", cfg.RuleConf)
	}
	if !cfg.UseRedFives || !cfg.Hanchan {
		t.Fatalf("red fives and hanchan should default to true")
	}
	if cfg.MongoConf.Enabled() || cfg.RedisConf.Enabled() || cfg.NatsConfig.Enabled() {
		t.Fatalf("external sinks must be disabled without addresses")
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
id: sim-7
log:
  level: debug
rule:
  startScore: 300
  useRedFives: false
database:
  redis:
    addr: 127.0.0.1:6379
nats:
  url: nats://127.0.0.1:4222
`)
	t.Setenv("RIICHI_RULE_RETURNSCORE", "350")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ID != "sim-7" || cfg.Level != "debug" {
		t.Fatalf("unexpected base config: id=%s level=%s", cfg.ID, cfg.Level)
	}
	if cfg.StartScore != 300 || cfg.UseRedFives {
		t.Fatalf("rule section not applied: %+v", cfg.RuleConf)
	}
	if cfg.ReturnScore != 350 {
		t.Fatalf("env override expected 350, got %d", cfg.ReturnScore)
	}
	if !cfg.RedisConf.Enabled() || !cfg.NatsConfig.Enabled() {
		t.Fatalf("redis and nats should be enabled")
	}
	if cfg.Subject != "riichi.table" {
		t.Fatalf("nats subject default expected, got %q", cfg.Subject)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
