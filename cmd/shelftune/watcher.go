package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"

	"shelftune/internal"
)

// Watcher monitors a directory tree for new music files and feeds them to the
// processor once they have settled.
type Watcher struct {
	fsWatcher    *fsnotify.Watcher
	watchDir     string
	ext          string
	processor    *internal.Processor
	state        *internal.WatchState
	debounceTime time.Duration
	pendingFiles map[string]*FileEvent
	pendingMutex sync.RWMutex
	stopCh       chan struct{}
	doneCh       chan struct{}
}

// FileEvent represents a pending file to process
type FileEvent struct {
	Path     string
	LastSeen time.Time
	Timer    *time.Timer
}

// WatcherOptions configures the Watcher
type WatcherOptions struct {
	WatchDir     string
	Extension    string
	DebounceTime time.Duration
}

// NewWatcher creates a new file watcher
func NewWatcher(processor *internal.Processor, state *internal.WatchState, opts WatcherOptions) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	if opts.DebounceTime == 0 {
		opts.DebounceTime = 2 * time.Second
	}
	if opts.Extension == "" {
		opts.Extension = ".mp3"
	}

	w := &Watcher{
		fsWatcher:    fsWatcher,
		watchDir:     opts.WatchDir,
		ext:          opts.Extension,
		processor:    processor,
		state:        state,
		debounceTime: opts.DebounceTime,
		pendingFiles: make(map[string]*FileEvent),
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}

	return w, nil
}

// Start registers the watch directory and all its subdirectories, then
// launches the event loop.
func (w *Watcher) Start() error {
	info, err := os.Stat(w.watchDir)
	if err != nil {
		return fmt.Errorf("watch directory does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch path %s is not a directory", w.watchDir)
	}

	if err := filepath.WalkDir(w.watchDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := w.fsWatcher.Add(path); err != nil {
				return fmt.Errorf("failed to watch %s: %w", path, err)
			}
		}
		return nil
	}); err != nil {
		return err
	}

	go w.run()
	return nil
}

// run is the watcher event loop. It exits once Stop is called.
func (w *Watcher) run() {
	defer close(w.doneCh)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Errorf("watcher error: %v", err)

		case <-w.stopCh:
			log.Debug("watcher stopping")
			return
		}
	}
}

// handleEvent processes a single file system event
func (w *Watcher) handleEvent(event fsnotify.Event) {
	// A removed or renamed-away file may come back later and should be
	// treated as new when it does
	if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		w.state.Forget(event.Name)
		return
	}

	if event.Op&fsnotify.Create != fsnotify.Create && event.Op&fsnotify.Write != fsnotify.Write {
		return
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		log.Debugf("failed to stat %s: %v", event.Name, err)
		return
	}

	// New directories join the watch set and get scanned for files that
	// landed before the watch was in place
	if info.IsDir() {
		w.scanDir(event.Name)
		return
	}

	if !strings.EqualFold(filepath.Ext(event.Name), w.ext) {
		return
	}

	log.Debugf("file event: %s %s", event.Op, event.Name)

	w.debounceFile(event.Name)
}

// scanDir adds dir and its subdirectories to the watch set and debounces any
// matching files already inside.
func (w *Watcher) scanDir(dir string) {
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := w.fsWatcher.Add(path); err != nil {
				log.Warnf("failed to watch %s: %v", path, err)
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), w.ext) && !w.state.IsKnown(path) {
			w.debounceFile(path)
		}
		return nil
	})
	if err != nil {
		log.Warnf("failed to scan %s: %v", dir, err)
	}
}

// debounceFile implements debouncing for file events
func (w *Watcher) debounceFile(filePath string) {
	w.pendingMutex.Lock()
	defer w.pendingMutex.Unlock()

	if pending, exists := w.pendingFiles[filePath]; exists {
		// Reset the clock: the file is still being written
		pending.Timer.Stop()
		pending.LastSeen = time.Now()
		pending.Timer = time.AfterFunc(w.debounceTime, func() {
			w.processFile(filePath)
		})
		return
	}

	timer := time.AfterFunc(w.debounceTime, func() {
		w.processFile(filePath)
	})

	w.pendingFiles[filePath] = &FileEvent{
		Path:     filePath,
		LastSeen: time.Now(),
		Timer:    timer,
	}
}

// processFile processes a debounced file
func (w *Watcher) processFile(filePath string) {
	w.pendingMutex.Lock()
	delete(w.pendingFiles, filePath)
	w.pendingMutex.Unlock()

	if w.state.IsKnown(filePath) {
		log.Debugf("file %s already handled this session, skipping", filePath)
		return
	}

	if err := w.verifyFileReady(filePath); err != nil {
		log.Warnf("file not ready, skipping: %v", err)
		return
	}

	res := w.processor.ProcessFile(filePath)
	w.state.MarkSeen(filePath, res.Status)

	switch res.Status {
	case internal.StatusProcessed:
		log.Infof("successfully processed %s", filePath)
	case internal.StatusSkipped:
		log.Debugf("skipped %s", filePath)
	case internal.StatusErrored:
		log.Errorf("failed to process %s: %v", filePath, res.Err)
	}
}

// verifyFileReady checks if a file is ready to process
func (w *Watcher) verifyFileReady(filePath string) error {
	info, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("file does not exist: %w", err)
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("not a regular file")
	}

	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("cannot open file: %w", err)
	}
	defer f.Close()

	return nil
}

// Stop stops the watcher gracefully
func (w *Watcher) Stop() error {
	log.Info("stopping watcher")

	// Cancel all pending timers
	w.pendingMutex.Lock()
	for _, pending := range w.pendingFiles {
		pending.Timer.Stop()
	}
	w.pendingFiles = make(map[string]*FileEvent)
	w.pendingMutex.Unlock()

	close(w.stopCh)

	if err := w.fsWatcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}

	// Wait for the event loop to finish
	<-w.doneCh

	log.Info("watcher stopped")
	return nil
}

// ScanExisting scans the watch directory for files present before startup
func (w *Watcher) ScanExisting() error {
	log.Infof("scanning existing files in %s", w.watchDir)
	w.scanDir(w.watchDir)
	return nil
}
