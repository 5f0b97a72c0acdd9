package inject

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSleepCtxZeroReturnsImmediately(t *testing.T) {
	t.Parallel()

	if err := sleepCtx(context.Background(), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSleepCtxHonorsCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := sleepCtx(ctx, time.Minute); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
}

func TestDefaultConfigRestoresClipboard(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if !cfg.RestoreClipboard {
		t.Fatalf("expected clipboard restore by default")
	}
	if cfg.SettleDelay <= 0 || cfg.PasteDelay <= 0 {
		t.Fatalf("expected positive delays: %+v", cfg)
	}
}
