package state

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 200 * time.Millisecond

// TemplateWatcher reports changes to the YAML files of a user template
// directory. Bursts of events are collapsed into a single callback.
type TemplateWatcher struct {
	watcher  *fsnotify.Watcher
	dir      string
	debounce time.Duration
	log      *zap.Logger
	once     sync.Once
	onChange func(names []string)
}

func NewTemplateWatcher(dir string, log *zap.Logger) (*TemplateWatcher, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("template directory cannot be empty")
	}
	if log == nil {
		log = zap.NewNop()
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, err
	}

	return &TemplateWatcher{
		watcher:  w,
		dir:      filepath.Clean(dir),
		debounce: defaultDebounce,
		log:      log.Named("watcher"),
	}, nil
}

// OnChange registers a callback that receives the template names touched
// since the last call.
func (w *TemplateWatcher) OnChange(fn func(names []string)) {
	if w == nil {
		return
	}
	w.onChange = fn
}

// Run delivers change callbacks until ctx is cancelled or the watcher is
// closed.
func (w *TemplateWatcher) Run(ctx context.Context) error {
	if w == nil {
		return nil
	}

	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending = make(map[string]struct{})
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-fire:
			fire = nil
			names := make([]string, 0, len(pending))
			for name := range pending {
				names = append(names, name)
			}
			clear(pending)
			if w.onChange != nil {
				w.onChange(names)
			}
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			name, ok := w.templateName(event)
			if !ok {
				continue
			}
			pending[name] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			if err != nil {
				w.log.Warn("template watcher error", zap.Error(err))
			}
		}
	}
}

func (w *TemplateWatcher) Close() error {
	if w == nil {
		return nil
	}

	var closeErr error
	w.once.Do(func() {
		closeErr = w.watcher.Close()
	})
	return closeErr
}

func (w *TemplateWatcher) templateName(event fsnotify.Event) (string, bool) {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return "", false
	}

	if filepath.Dir(filepath.Clean(event.Name)) != w.dir {
		return "", false
	}

	base := filepath.Base(event.Name)
	ext := strings.ToLower(filepath.Ext(base))
	if ext != ".yaml" && ext != ".yml" {
		return "", false
	}
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base))), true
}
