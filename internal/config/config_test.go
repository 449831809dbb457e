package config

import (
	"testing"
)

func TestEnvFallbacks(t *testing.T) {
	t.Setenv("TICTACPLAY_THREADS", "4")
	t.Setenv("TICTACPLAY_DEBUG", "true")
	t.Setenv("TICTACPLAY_SEED", "bogus")

	if got := EnvInt("THREADS", 1); got != 4 {
		t.Errorf("EnvInt = %d, want 4", got)
	}
	if !EnvBool("DEBUG", false) {
		t.Error("EnvBool = false, want true")
	}
	if got := EnvUint("SEED", 7); got != 7 {
		t.Errorf("EnvUint with malformed value = %d, want default 7", got)
	}
	if got := Env("ADDR", ":8080"); got != ":8080" {
		t.Errorf("Env unset = %q, want default", got)
	}
}

func TestEngineOptions(t *testing.T) {
	eng := EngineOptions{Threads: 3, Seed: 42}.NewEngine()
	if eng.Threads() != 3 {
		t.Errorf("Threads = %d, want 3", eng.Threads())
	}

	eng = EngineOptions{Threads: 0}.NewEngine()
	if eng.Threads() != 1 {
		t.Errorf("Threads = %d, want 1 for non-positive input", eng.Threads())
	}
}
