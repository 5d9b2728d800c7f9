// Package session holds the mutable game session aggregate: countdown timer,
// roster, story log, and the state transitions between idle and active play.
// All methods are safe for concurrent use; each operation is a single
// transaction against the whole aggregate.
package session

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/nightfall/internal/game/character"
	"github.com/cory-johannsen/nightfall/internal/game/consequence"
	"github.com/cory-johannsen/nightfall/internal/game/rng"
	"github.com/cory-johannsen/nightfall/internal/game/world"
)

// Difficulty is the session difficulty level.
type Difficulty string

const (
	DifficultyEasy      Difficulty = "easy"
	DifficultyNormal    Difficulty = "normal"
	DifficultyNightmare Difficulty = "nightmare"
)

// Valid reports whether d is a recognized difficulty level.
func (d Difficulty) Valid() bool {
	return d == DifficultyEasy || d == DifficultyNormal || d == DifficultyNightmare
}

const (
	// InitialTimeLeft is the session countdown in seconds (30 minutes).
	InitialTimeLeft = 1800
	// StartingRosterSize is the number of characters generated by Start.
	StartingRosterSize = 3
	// MaxRosterSize is the roster cap enforced by AddCharacter.
	MaxRosterSize = 6
)

// WelcomeStory is the fixed narrative appended as the first story entry of
// every session.
const WelcomeStory = `🌆 Welcome to the Horror Apocalypse!

The world has ended in blood and chaos. Mythical creatures and ancient evils now roam the wasteland. You lead a small group of supernatural survivors, each with unique abilities.

Your team must navigate through cursed locations, make critical decisions, and survive the nightmare that reality has become. Every choice matters - death is permanent, and time is running out.

Choose your first location to explore, or describe what you want to do...`

// State is the aggregate root of one game session.
//
// Invariant: roster size is in [0, MaxRosterSize]; timeLeft is never
// negative; while active is false, no operation other than Start and Reset
// mutates the roster or story log.
type State struct {
	mu     sync.Mutex
	logger *zap.Logger
	src    rng.Source

	species   []*character.Template
	locations *world.Catalog

	timeLeft     int
	difficulty   Difficulty
	location     *world.Location
	roster       []character.Character
	storyLog     []StoryEntry
	active       bool
	currentStory string
	epoch        uint64
}

// New creates an idle session with an empty roster.
//
// Precondition: species must be non-empty; locations, src, and logger must
// not be nil.
func New(species []*character.Template, locations *world.Catalog, src rng.Source, logger *zap.Logger) *State {
	if len(species) == 0 {
		panic("session.New: species catalog must not be empty")
	}
	if locations == nil || src == nil || logger == nil {
		panic("session.New: locations, src, and logger must not be nil")
	}
	return &State{
		logger:     logger,
		src:        src,
		species:    species,
		locations:  locations,
		timeLeft:   InitialTimeLeft,
		difficulty: DifficultyNormal,
	}
}

// sample stamps a new character from a random species template and name pool.
func (s *State) sample(names []string) character.Character {
	tmpl := s.species[s.src.Intn(len(s.species))]
	name := names[s.src.Intn(len(names))]
	return character.New(tmpl, name)
}

// Start begins a new session, overwriting any prior one.
//
// Postcondition: roster holds StartingRosterSize fresh characters at full HP;
// timeLeft == InitialTimeLeft; the story log holds exactly the welcome entry;
// active is true; the epoch is incremented.
func (s *State) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.roster = make([]character.Character, 0, StartingRosterSize)
	for i := 0; i < StartingRosterSize; i++ {
		s.roster = append(s.roster, s.sample(character.StartingNames))
	}

	s.timeLeft = InitialTimeLeft
	s.location = nil
	s.currentStory = WelcomeStory
	s.storyLog = []StoryEntry{{
		Kind:      EntryStory,
		Content:   WelcomeStory,
		Timestamp: time.Now(),
	}}
	s.active = true
	s.epoch++

	s.logger.Info("session started",
		zap.Uint64("epoch", s.epoch),
		zap.Int("roster", len(s.roster)),
		zap.String("difficulty", string(s.difficulty)),
	)
}

// Reset returns the session to idle, clearing roster, story log, and
// location. The difficulty setting survives.
//
// Postcondition: active is false; timeLeft == InitialTimeLeft; the epoch is
// incremented so in-flight narrative responses are discarded.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.roster = nil
	s.storyLog = nil
	s.location = nil
	s.currentStory = ""
	s.timeLeft = InitialTimeLeft
	s.active = false
	s.epoch++

	s.logger.Info("session reset", zap.Uint64("epoch", s.epoch))
}

// AddCharacter samples one new roster member from the recruit name pool.
//
// Postcondition: Returns (character, true) on success. Returns (zero, false)
// when the session is inactive or the roster is at MaxRosterSize; the roster
// is unchanged in that case.
func (s *State) AddCharacter() (character.Character, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active || len(s.roster) >= MaxRosterSize {
		return character.Character{}, false
	}

	c := s.sample(character.RecruitNames)
	s.roster = append(s.roster, c)
	s.logger.Info("character recruited",
		zap.String("name", c.Name),
		zap.String("species", c.Species),
		zap.Int("roster", len(s.roster)),
	)
	return c, true
}

// RecordAction appends a player action entry to the story log.
//
// Postcondition: Returns true and appends an EntryAction when the session is
// active; returns false without mutation otherwise. The roster is never
// touched.
func (s *State) RecordAction(text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return false
	}
	s.storyLog = append(s.storyLog, StoryEntry{
		Kind:      EntryAction,
		Content:   text,
		Timestamp: time.Now(),
	})
	return true
}

// RecordStory appends a narrative entry and updates the current story text.
// When locationName matches a catalog entry, the current location is updated
// as well; an unknown name leaves it unchanged.
//
// Postcondition: Returns true and appends an EntryStory when the session is
// active; returns false without mutation otherwise.
func (s *State) RecordStory(text, locationName string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return false
	}
	if locationName != "" {
		if loc, ok := s.locations.ByName(locationName); ok {
			s.location = loc
		}
	}
	s.currentStory = text
	s.storyLog = append(s.storyLog, StoryEntry{
		Kind:      EntryStory,
		Content:   text,
		Location:  locationName,
		Timestamp: time.Now(),
	})
	return true
}

// ApplyConsequence dispatches one consequence to the matching roster entry.
// A consequence whose target is not in the roster is silently dropped; the
// roster is append-only, so this is purely defensive.
//
// Postcondition: Returns the updated character and true when applied;
// returns (zero, false) when the session is inactive or the target is
// missing.
func (s *State) ApplyConsequence(c consequence.Consequence) (character.Character, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return character.Character{}, false
	}
	for i, member := range s.roster {
		if member.ID != c.CharacterID {
			continue
		}
		switch c.Kind {
		case consequence.KindDeath:
			s.roster[i] = character.Kill(member)
		case consequence.KindDamage:
			s.roster[i] = character.ApplyDamage(member, c.Damage)
		}
		s.logger.Info("consequence applied",
			zap.String("kind", string(c.Kind)),
			zap.String("character", member.Name),
			zap.Int("damage", c.Damage),
			zap.Int("hp", s.roster[i].HP),
		)
		return s.roster[i], true
	}

	s.logger.Debug("consequence target missing, dropped",
		zap.String("kind", string(c.Kind)),
		zap.String("character_id", c.CharacterID),
	)
	return character.Character{}, false
}

// Tick decrements the countdown by one second while the session is active.
//
// Postcondition: timeLeft never goes below 0. Returns true exactly once, on
// the tick that moves timeLeft from 1 to 0; further ticks are no-ops.
func (s *State) Tick() (expired bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active || s.timeLeft <= 0 {
		return false
	}
	s.timeLeft--
	return s.timeLeft == 0
}

// End marks the session inactive. Idempotent.
func (s *State) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
}

// SetDifficulty updates the difficulty level. Allowed in any state; the
// setting survives Reset.
//
// Postcondition: Returns true iff d is a valid difficulty.
func (s *State) SetDifficulty(d Difficulty) bool {
	if !d.Valid() {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.difficulty = d
	return true
}

// Epoch returns the current session generation counter.
func (s *State) Epoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}
