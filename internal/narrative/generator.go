// Package narrative produces story text for player actions, either by
// querying a generative backend or by selecting a templated fallback when no
// backend is reachable. It performs no roster mutation and no story-log
// writes.
package narrative

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/nightfall/internal/game/character"
	"github.com/cory-johannsen/nightfall/internal/game/rng"
	"github.com/cory-johannsen/nightfall/internal/game/world"
)

// Context carries the session fields embedded in narrative prompts. Dead
// roster members are included for flavor.
type Context struct {
	// Location is the current location; nil before the first location choice.
	Location *world.Location
	// Roster is the full roster, living and dead.
	Roster []character.Character
	// Difficulty is the session difficulty level ("easy", "normal", "nightmare").
	Difficulty string
	// PreviousStory is the latest narrative text, for continuity.
	PreviousStory string
}

// Generator is a generative backend producing narrative text for a prompt.
type Generator interface {
	// Generate returns a narrative continuation for the given action prompt.
	Generate(ctx context.Context, prompt string, gc Context) (string, error)
	// Ping checks backend liveness. It must never block game progress; a
	// failed probe still permits fallback-backed play.
	Ping(ctx context.Context) error
}

// Service wraps an optional backend Generator with the fallback policy:
// backend errors and a nil backend both degrade to templated fallback text,
// never to a hard failure.
type Service struct {
	backend  Generator
	fallback *Fallback
	logger   *zap.Logger
}

// NewService constructs a Service. backend may be nil, in which case every
// call produces fallback text.
//
// Precondition: src and logger must not be nil.
func NewService(backend Generator, src rng.Source, logger *zap.Logger) *Service {
	if src == nil || logger == nil {
		panic("narrative.NewService: src and logger must not be nil")
	}
	return &Service{
		backend:  backend,
		fallback: NewFallback(src),
		logger:   logger,
	}
}

// Generate produces narrative text for a player action.
//
// Postcondition: Always returns non-empty text; backend failures are
// recovered locally via the fallback generator.
func (s *Service) Generate(ctx context.Context, action string, gc Context) string {
	if s.backend == nil {
		return s.fallback.Story(gc)
	}

	prompt := fmt.Sprintf("Process this user action in a horror apocalypse game: %q", action)
	text, err := s.backend.Generate(ctx, prompt, gc)
	if err != nil {
		s.logger.Warn("narrative backend failed, using fallback", zap.Error(err))
		return s.fallback.Story(gc)
	}
	return text
}

// TestConnection reports whether the backend is reachable. Used only to tell
// the player whether generative or fallback text should be expected.
func (s *Service) TestConnection(ctx context.Context) bool {
	if s.backend == nil {
		return false
	}
	return s.backend.Ping(ctx) == nil
}
