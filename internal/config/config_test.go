package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadConfig_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadConfig(viper.New())
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.SiteURL != DefaultSiteURL {
		t.Errorf("SiteURL = %q, want %q", cfg.SiteURL, DefaultSiteURL)
	}
	if cfg.TargetLang != DefaultTargetLang {
		t.Errorf("TargetLang = %q, want %q", cfg.TargetLang, DefaultTargetLang)
	}
	if cfg.UserAgent != DefaultUserAgent {
		t.Errorf("UserAgent = %q, want default", cfg.UserAgent)
	}
	if !cfg.Browser.Headless {
		t.Error("expected headless browser by default")
	}
	if got := cfg.StepTimeouts(); got != DefaultTimeouts() {
		t.Errorf("StepTimeouts() = %+v, want %+v", got, DefaultTimeouts())
	}
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	yaml := []byte("site_url: http://localhost:9999/\ntarget_lang: fr\ntimeouts:\n  translate: 90s\nbrowser:\n  headless: false\n")
	if err := os.WriteFile(filepath.Join(dir, "tlsubs.yaml"), yaml, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TLSUBS_TIMEOUTS_DOWNLOAD", "10s")

	cfg, err := LoadConfig(viper.New())
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.SiteURL != "http://localhost:9999/" {
		t.Errorf("SiteURL = %q", cfg.SiteURL)
	}
	if cfg.TargetLang != "fr" {
		t.Errorf("TargetLang = %q, want fr", cfg.TargetLang)
	}
	if cfg.Browser.Headless {
		t.Error("expected headless=false from config file")
	}

	timeouts := cfg.StepTimeouts()
	if timeouts.Translate != 90*time.Second {
		t.Errorf("Translate timeout = %v, want 90s", timeouts.Translate)
	}
	if timeouts.Download != 10*time.Second {
		t.Errorf("Download timeout = %v, want 10s", timeouts.Download)
	}
}

func TestStepTimeouts_InvalidFallsBack(t *testing.T) {
	t.Parallel()
	cfg := &Config{}
	cfg.Timeouts.Navigate = "soon"
	cfg.Timeouts.Element = "-5s"
	cfg.Timeouts.Popup = "0s"

	got := cfg.StepTimeouts()
	if got.Navigate != DefaultNavigateTimeout {
		t.Errorf("Navigate = %v, want %v", got.Navigate, DefaultNavigateTimeout)
	}
	if got.Element != DefaultElementTimeout {
		t.Errorf("Element = %v, want %v", got.Element, DefaultElementTimeout)
	}
	if got.Popup != DefaultPopupTimeout {
		t.Errorf("Popup = %v, want %v", got.Popup, DefaultPopupTimeout)
	}
}

func TestConfigureLogging_InvalidLevel(t *testing.T) {
	cfg := &Config{LogLevel: "chatty"}
	ConfigureLogging(cfg)

	l := GetLogger()
	if l.GetLevel().String() != "info" {
		t.Errorf("level = %s, want info", l.GetLevel())
	}
}
