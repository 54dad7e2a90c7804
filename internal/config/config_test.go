package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.TickRate != 60 {
		t.Errorf("Expected default tick rate 60, got %d", cfg.TickRate)
	}
	if cfg.BroadcastEvery != 1 {
		t.Errorf("Expected default broadcast interval 1, got %d", cfg.BroadcastEvery)
	}
	if cfg.SessionExpiryMinutes != 10 {
		t.Errorf("Expected default session expiry 10 minutes, got %d", cfg.SessionExpiryMinutes)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TICK_RATE", "30")
	t.Setenv("LEADERBOARD_SIZE", "5")
	t.Setenv("TICK_RATE_BOGUS", "notanint")

	cfg := Load()

	if cfg.TickRate != 30 {
		t.Errorf("Expected tick rate 30 from env, got %d", cfg.TickRate)
	}
	if cfg.LeaderboardSize != 5 {
		t.Errorf("Expected leaderboard size 5 from env, got %d", cfg.LeaderboardSize)
	}
}

func TestGetEnvIntIgnoresGarbage(t *testing.T) {
	t.Setenv("BROADCAST_EVERY", "three")

	cfg := Load()
	if cfg.BroadcastEvery != 1 {
		t.Errorf("Non-numeric env value should fall back to default, got %d", cfg.BroadcastEvery)
	}
}
