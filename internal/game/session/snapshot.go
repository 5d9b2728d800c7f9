package session

import (
	"github.com/cory-johannsen/nightfall/internal/game/character"
	"github.com/cory-johannsen/nightfall/internal/game/world"
)

// Snapshot is a read-only copy of the session state handed to the
// presentation collaborator and the turn orchestrator. Mutating a snapshot
// has no effect on the session.
type Snapshot struct {
	TimeLeft     int
	Difficulty   Difficulty
	Location     *world.Location
	Roster       []character.Character
	StoryLog     []StoryEntry
	Active       bool
	CurrentStory string
	Epoch        uint64
}

// LivingCount returns the number of living roster members.
func (s Snapshot) LivingCount() int {
	n := 0
	for _, c := range s.Roster {
		if c.Alive {
			n++
		}
	}
	return n
}

// Snapshot returns a deep copy of the current session state.
//
// Postcondition: The returned roster and story log are independent copies;
// the location pointer refers to the immutable catalog entry.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	roster := make([]character.Character, len(s.roster))
	copy(roster, s.roster)
	log := make([]StoryEntry, len(s.storyLog))
	copy(log, s.storyLog)

	return Snapshot{
		TimeLeft:     s.timeLeft,
		Difficulty:   s.difficulty,
		Location:     s.location,
		Roster:       roster,
		StoryLog:     log,
		Active:       s.active,
		CurrentStory: s.currentStory,
		Epoch:        s.epoch,
	}
}
