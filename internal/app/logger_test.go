package app

import (
	"context"
	"log/slog"
	"testing"
)

func TestNewLoggerLevelFollowsEnvironment(t *testing.T) {
	ctx := context.Background()

	dev := NewLogger(&Config{AppEnv: "development"})
	if !dev.Enabled(ctx, slog.LevelDebug) {
		t.Fatal("expected debug logging outside production")
	}

	prod := NewLogger(&Config{AppEnv: "production", LogFormat: "json"})
	if prod.Enabled(ctx, slog.LevelDebug) {
		t.Fatal("expected debug suppressed in production")
	}
	if !prod.Enabled(ctx, slog.LevelInfo) {
		t.Fatal("expected info logging in production")
	}
}
