package config

import "testing"

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()
	if cfg.GeneratorType != Snowflake {
		t.Fatalf("default generator type = %q, want SNOWFLAKE", cfg.GeneratorType)
	}
	if cfg.TCPPort != 7000 {
		t.Fatalf("default tcp port = %d, want 7000", cfg.TCPPort)
	}
	if cfg.DBPort != 6033 {
		t.Fatalf("default db port = %d, want 6033 (ProxySQL)", cfg.DBPort)
	}
}

func TestFromEnvUnknownGeneratorFallsBackToDefault(t *testing.T) {
	t.Setenv("GENERATOR_TYPE", "NOT_A_REAL_GENERATOR")
	cfg := FromEnv()
	if cfg.GeneratorType != Snowflake {
		t.Fatalf("unknown generator type should fall back to SNOWFLAKE, got %q", cfg.GeneratorType)
	}
}

func TestWithGeneratorTypeOverride(t *testing.T) {
	cfg := FromEnv(WithGeneratorType(ULID))
	if cfg.GeneratorType != ULID {
		t.Fatalf("override not applied, got %q", cfg.GeneratorType)
	}
}
