package watcher

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	lru "github.com/hashicorp/golang-lru/v2"
)

// defaultDebounce is how long the watcher waits after the last write event
// before re-mining. Editors and atomic writers emit several events per save.
const defaultDebounce = 500 * time.Millisecond

// hashCacheSize bounds the seen-content cache. A handful of entries suffices
// for a single watched file; the cache only exists so that alternating
// content (a <-> b) is still re-mined after the flip back.
const hashCacheSize = 32

// ChangeFunc is called with the dataset path after a debounced change whose
// content differs from anything recently seen.
type ChangeFunc func(path string) error

// Watcher monitors one dataset file and fires a callback when its content
// changes.
type Watcher struct {
	path     string // absolute path to the dataset file
	onChange ChangeFunc
	debounce time.Duration

	fsw  *fsnotify.Watcher
	seen *lru.Cache[string, struct{}]

	mu      sync.Mutex
	timer   *time.Timer
	running bool

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// New creates a Watcher for the given dataset file. The file must exist so
// that its current content can be recorded as already mined.
func New(path string, onChange ChangeFunc) (*Watcher, error) {
	if onChange == nil {
		return nil, fmt.Errorf("onChange callback cannot be nil")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve dataset path: %w", err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("failed to stat dataset file: %w", err)
	}

	seen, err := lru.New[string, struct{}](hashCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create hash cache: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	// Watch the parent directory: a rename-and-replace save removes the
	// watched inode, so a watch on the file itself would go dead after the
	// first atomic write.
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:     abs,
		onChange: onChange,
		debounce: defaultDebounce,
		fsw:      fsw,
		seen:     seen,
		stopCh:   make(chan struct{}),
	}, nil
}

// SetDebounce overrides the debounce period. Must be called before Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.debounce = d
}

// Start records the file's current content as seen and begins watching.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}
	w.running = true

	// The caller mines the dataset before watching; remember that content
	// so the first spurious event does not mine it again.
	if hash, err := hashFile(w.path); err == nil {
		w.seen.Add(hash, struct{}{})
	}

	w.wg.Add(1)
	go w.watchLoop()
	return nil
}

// watchLoop consumes fsnotify events until Stop is called.
func (w *Watcher) watchLoop() {
	defer w.wg.Done()

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.matchesDataset(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.scheduleChange()
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "watcher: fsnotify error: %v\n", err)

		case <-w.stopCh:
			return
		}
	}
}

// matchesDataset reports whether an event path refers to the watched file.
// Events arrive for the whole directory, including temp files from atomic
// saves.
func (w *Watcher) matchesDataset(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	return abs == w.path
}

// scheduleChange (re)arms the debounce timer.
func (w *Watcher) scheduleChange() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.fire)
}

// fire hashes the file and invokes the callback when the content is new.
func (w *Watcher) fire() {
	hash, err := hashFile(w.path)
	if err != nil {
		// The file may be mid-replacement; the next event retries.
		fmt.Fprintf(os.Stderr, "watcher: failed to hash %s: %v\n", w.path, err)
		return
	}

	if _, dup := w.seen.Get(hash); dup {
		return
	}
	w.seen.Add(hash, struct{}{})

	if err := w.onChange(w.path); err != nil {
		fmt.Fprintf(os.Stderr, "watcher: change handler error: %v\n", err)
	}
}

// Stop halts the watcher. Any pending debounce timer is cancelled.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = false
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	close(w.stopCh)
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

// hashFile returns the hex SHA-256 of a file's content.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
