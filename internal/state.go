package internal

import (
	"sync"
	"time"
)

// WatchState tracks in-memory stats and known files for watch mode.
// It does not persist to disk — stats reset on restart.
type WatchState struct {
	mu    sync.RWMutex
	known map[string]struct{} // set of file paths seen this session
	Stats ProcessingStats
}

// ProcessingStats tracks processing counters
type ProcessingStats struct {
	TotalProcessed int
	TotalSkipped   int
	TotalErrored   int
	StartTime      time.Time
}

// NewWatchState creates a new in-memory state
func NewWatchState() *WatchState {
	return &WatchState{
		known: make(map[string]struct{}),
		Stats: ProcessingStats{
			StartTime: time.Now(),
		},
	}
}

// IsKnown returns true if the file path has been handled in this session
func (s *WatchState) IsKnown(filePath string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.known[filePath]
	return ok
}

// MarkSeen records a file's outcome and updates stats
func (s *WatchState) MarkSeen(filePath string, status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.known[filePath] = struct{}{}
	switch status {
	case StatusProcessed:
		s.Stats.TotalProcessed++
	case StatusSkipped:
		s.Stats.TotalSkipped++
	case StatusErrored:
		s.Stats.TotalErrored++
	}
}

// Forget drops a path from the known set, so a re-created file is picked up
// again.
func (s *WatchState) Forget(filePath string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.known, filePath)
}

// GetStats returns a copy of the current stats
func (s *WatchState) GetStats() ProcessingStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Stats
}
