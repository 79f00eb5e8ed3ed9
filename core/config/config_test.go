package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadRequiresToken(t *testing.T) {
	path := writeConfigFile(t, "telegram:\n  run_mode: longpoll\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for missing token")
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfigFile(t, "telegram:\n  token: test-token\n  admin_ids: [42, 77]\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Errorf("run_mode = %q, expected longpoll default", cfg.Telegram.RunMode)
	}
	if cfg.Storage.SnapshotPath != "data/store.json" {
		t.Errorf("snapshot_path = %q", cfg.Storage.SnapshotPath)
	}
	if cfg.Storage.ExportDir != "data/exports" {
		t.Errorf("export_dir = %q", cfg.Storage.ExportDir)
	}
	if cfg.Broadcast.Concurrency != 4 || cfg.Broadcast.SendTimeoutMS != 5000 {
		t.Errorf("broadcast defaults = %+v", cfg.Broadcast)
	}
}

func TestIsAdmin(t *testing.T) {
	tg := TelegramConfig{AdminIDs: []int64{42, 77}}
	if !tg.IsAdmin(42) || !tg.IsAdmin(77) {
		t.Error("allowlisted IDs must be admins")
	}
	if tg.IsAdmin(43) {
		t.Error("unknown ID must not be admin")
	}
	var empty TelegramConfig
	if empty.IsAdmin(42) {
		t.Error("empty allowlist must deny everyone")
	}
}

func TestNormalizeWebhookValidation(t *testing.T) {
	cfg := &Config{Telegram: TelegramConfig{Token: "t", RunMode: "webhook"}}
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for webhook mode without url")
	}
	cfg.Webhook = WebhookConfig{URL: "https://example.org", Listen: "0.0.0.0", Port: 8443}
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
}
