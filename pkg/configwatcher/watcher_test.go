package configwatcher

import (
	"context"
	"os"
	"path/filepath"
	"skillbloom_backend/internal/config"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ai:\n  model: first\n"), 0644))

	w := New(path)
	w.debounce = 50 * time.Millisecond

	got := make(chan string, 1)
	w.OnReload(func(cfg *config.Config) {
		select {
		case got <- cfg.AI.Model:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// 等待 watcher 注册完成
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("ai:\n  model: second\n"), 0644))

	select {
	case model := <-got:
		assert.Equal(t, "second", model)
	case <-time.After(5 * time.Second):
		t.Fatal("reload callback not called")
	}

	cancel()
	assert.NoError(t, <-done)
}
