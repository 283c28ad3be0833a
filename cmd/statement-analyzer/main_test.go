package main

import (
	"os"
	"path/filepath"
	"testing"
)

func resetFlags(t *testing.T) {
	t.Helper()
	origConfig, origLocale, origTop, origRules, origAddr := *configFile, *localeFlag, *topMerchants, *rulesFile, *listenAddr
	t.Cleanup(func() {
		*configFile, *localeFlag, *topMerchants, *rulesFile, *listenAddr = origConfig, origLocale, origTop, origRules, origAddr
	})
}

func TestLoadConfigDefaults(t *testing.T) {
	resetFlags(t)

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Locale != "day-first" {
		t.Errorf("Locale = %q, want day-first", cfg.Locale)
	}
}

func TestLoadConfigFlagOverridesFile(t *testing.T) {
	resetFlags(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("locale: day-first\ntopMerchants: 3\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	*configFile = path
	*localeFlag = "month-first"

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Locale != "month-first" {
		t.Errorf("Locale = %q, flag should override file", cfg.Locale)
	}
	if cfg.TopMerchants != 3 {
		t.Errorf("TopMerchants = %d, file value should survive", cfg.TopMerchants)
	}
}

func TestLoadConfigRejectsBadLocale(t *testing.T) {
	resetFlags(t)

	*localeFlag = "sideways"
	if _, err := loadConfig(); err == nil {
		t.Error("loadConfig() should reject an unknown locale")
	}
}

func TestBuildPipeline(t *testing.T) {
	resetFlags(t)

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if _, err := buildPipeline(cfg); err != nil {
		t.Errorf("buildPipeline() error = %v", err)
	}
}

func TestBuildPipelineMissingRulesFile(t *testing.T) {
	resetFlags(t)

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	cfg.RulesFile = filepath.Join(t.TempDir(), "absent.yaml")
	if _, err := buildPipeline(cfg); err == nil {
		t.Error("buildPipeline() should fail for a missing rules file")
	}
}
