package engineconfig

import (
	"os"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ChannelCount != 4 {
		t.Errorf("ChannelCount = %d, want 4", cfg.ChannelCount)
	}
	if cfg.MaxFixedPointPasses != 64 {
		t.Errorf("MaxFixedPointPasses = %d, want 64", cfg.MaxFixedPointPasses)
	}
	if cfg.StrictInvariants {
		t.Error("StrictInvariants default should be false")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FORGE_CHANNEL_COUNT", "8")
	t.Setenv("FORGE_STRICT_INVARIANTS", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ChannelCount != 8 {
		t.Errorf("ChannelCount = %d, want 8", cfg.ChannelCount)
	}
	if !cfg.StrictInvariants {
		t.Error("expected StrictInvariants to be true")
	}
}

func TestLoad_InvalidChannelCount(t *testing.T) {
	t.Setenv("FORGE_CHANNEL_COUNT", "0")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero channel count")
	}
}

func TestDefault_NeverErrors(t *testing.T) {
	os.Clearenv()
	cfg := Default()
	if cfg == nil {
		t.Fatal("Default() returned nil")
	}
}
