package config

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("divisions: 2\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	changes := make(chan *Config, 4)
	w, err := NewWatcher(path, slog.New(slog.NewTextHandler(io.Discard, nil)), func(cfg *Config) {
		changes <- cfg
	})
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	w.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()
	defer func() {
		cancel()
		<-done
	}()

	// Invalid content is skipped.
	if err := os.WriteFile(path, []byte("divisions: 99\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("divisions: 4\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case cfg := <-changes:
		if cfg.Divisions != 4 {
			t.Fatalf("expected divisions 4, got %d", cfg.Divisions)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for reload")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	changes := make(chan *Config, 1)
	w, err := NewWatcher(path, slog.New(slog.NewTextHandler(io.Discard, nil)), func(cfg *Config) {
		changes <- cfg
	})
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	w.debounce = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()
	defer func() {
		cancel()
		<-done
	}()

	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("divisions: 3\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case cfg := <-changes:
		t.Fatalf("unexpected reload: %+v", cfg)
	case <-time.After(200 * time.Millisecond):
	}
}
