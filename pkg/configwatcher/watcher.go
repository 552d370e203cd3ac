package configwatcher

import (
	"context"
	"path/filepath"
	"skillbloom_backend/internal/config"
	"skillbloom_backend/pkg/logger"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

type ReloadFunc func(cfg *config.Config)

// Watcher 监听配置文件变更，防抖后重新加载并依次调用回调
type Watcher struct {
	path     string
	debounce time.Duration

	mu        sync.Mutex
	callbacks []ReloadFunc
}

func New(configPath string) *Watcher {
	return &Watcher{path: configPath, debounce: time.Second}
}

func (w *Watcher) OnReload(fn ReloadFunc) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, fn)
}

func (w *Watcher) reload() {
	newCfg, err := config.LoadConfig(filepath.Dir(w.path))
	if err != nil {
		logger.Log.Error("Failed to reload config", zap.Error(err))
		return
	}

	w.mu.Lock()
	callbacks := append([]ReloadFunc(nil), w.callbacks...)
	w.mu.Unlock()

	logger.Log.Info("Config reloaded", zap.String("path", w.path))
	for _, fn := range callbacks {
		fn(newCfg)
	}
}

// Run 阻塞直到 ctx 取消。监听所在目录，兼容编辑器先写临时文件再 rename 的保存方式
func (w *Watcher) Run(ctx context.Context) error {
	absPath, err := filepath.Abs(w.path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return err
	}

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != absPath {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			// 防抖处理
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, w.reload)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Log.Error("Config watcher error", zap.Error(err))
		}
	}
}
