// Package stats tracks per-player session statistics. The core computes
// games played and best time; anything longer-lived than process memory is a
// collaborator's concern.
package stats

import "sync"

// Recorder receives a statistic update after every session end.
type Recorder interface {
	// Record registers one finished session. bestCandidate is the elapsed
	// time in seconds; it only counts toward the best time when victory is
	// true.
	Record(victory bool, elapsedSeconds int)
}

// Memory is an in-process Recorder. Safe for concurrent use.
type Memory struct {
	mu          sync.Mutex
	gamesPlayed int
	bestTime    int
	hasBest     bool
}

// NewMemory creates an empty Memory recorder.
func NewMemory() *Memory {
	return &Memory{}
}

// Record increments gamesPlayed and, on victory, lowers the best time to
// min(previous best, elapsedSeconds).
//
// Postcondition: GamesPlayed increases by 1; BestTime never increases.
func (m *Memory) Record(victory bool, elapsedSeconds int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.gamesPlayed++
	if !victory {
		return
	}
	if !m.hasBest || elapsedSeconds < m.bestTime {
		m.bestTime = elapsedSeconds
		m.hasBest = true
	}
}

// GamesPlayed returns the number of finished sessions.
func (m *Memory) GamesPlayed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gamesPlayed
}

// BestTime returns the fastest victory in seconds.
//
// Postcondition: Returns (seconds, true) if a victory has been recorded, or
// (0, false) otherwise.
func (m *Memory) BestTime() (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bestTime, m.hasBest
}
