// Package consequence derives structured roster effects from generated
// narrative text, combining keyword detection with difficulty-weighted
// randomness.
package consequence

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/nightfall/internal/game/character"
	"github.com/cory-johannsen/nightfall/internal/game/rng"
)

// Kind classifies a consequence.
type Kind string

const (
	// KindDeath marks a definitive death of the target character.
	KindDeath Kind = "death"
	// KindDamage marks a damage roll against the target character.
	KindDamage Kind = "damage"
)

// Consequence is one transient effect of a turn. It is produced here,
// consumed immediately by the turn orchestrator, and never persisted.
type Consequence struct {
	// Kind is the effect class.
	Kind Kind
	// CharacterID is the target roster entry.
	CharacterID string
	// Damage is the magnitude for KindDamage, in [MinDamage, MaxDamage].
	// Zero for KindDeath.
	Damage int
	// Description is the human-readable feedback line.
	Description string
}

// Damage magnitude bounds for KindDamage consequences.
const (
	MinDamage = 10
	MaxDamage = 49
)

// deathKeywords and damageKeywords are matched as substrings of the
// lower-cased narrative text.
var (
	deathKeywords  = []string{"dies", "killed", "death"}
	damageKeywords = []string{"injured", "hurt", "wounded"}
)

// deathChance returns the unconditional per-turn death probability for the
// given difficulty. Unrecognized difficulties fall back to normal.
func deathChance(difficulty string) float64 {
	switch difficulty {
	case "nightmare":
		return 0.30
	case "easy":
		return 0.05
	default:
		return 0.15
	}
}

// damageChance returns the unconditional per-turn damage probability for the
// given difficulty. Unrecognized difficulties fall back to normal.
func damageChance(difficulty string) float64 {
	switch difficulty {
	case "easy":
		return 0.20
	case "nightmare":
		return 0.70
	default:
		return 0.40
	}
}

// containsAny reports whether s contains any of the given substrings.
func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// Engine derives consequences from narrative text using an injected random
// source.
//
// Invariant: src must not be nil.
type Engine struct {
	src rng.Source
}

// NewEngine constructs an Engine.
//
// Precondition: src must not be nil.
func NewEngine(src rng.Source) *Engine {
	if src == nil {
		panic("consequence.NewEngine: src must not be nil")
	}
	return &Engine{src: src}
}

// Derive inspects the narrative text and returns zero or one consequence
// targeting a living roster member.
//
// The death branch fires when the text mentions a death keyword or an
// independent draw beats the difficulty's death chance; it is checked first
// and is mutually exclusive with the damage branch. The chance draw only
// happens when no keyword matched, so a keyword match never consumes a draw.
//
// Postcondition: Returns at most one consequence; the target was alive in
// roster at call time; returns nil when no living character exists.
func (e *Engine) Derive(narrative string, roster []character.Character, difficulty string) []Consequence {
	lower := strings.ToLower(narrative)

	var living []character.Character
	for _, c := range roster {
		if c.Alive {
			living = append(living, c)
		}
	}

	if containsAny(lower, deathKeywords) || e.src.Float64() < deathChance(difficulty) {
		if len(living) == 0 {
			return nil
		}
		victim := living[e.src.Intn(len(living))]
		return []Consequence{{
			Kind:        KindDeath,
			CharacterID: victim.ID,
			Description: fmt.Sprintf("💀 %s has perished in the horror!", victim.Name),
		}}
	}

	if containsAny(lower, damageKeywords) || e.src.Float64() < damageChance(difficulty) {
		if len(living) == 0 {
			return nil
		}
		victim := living[e.src.Intn(len(living))]
		dmg := e.src.Intn(MaxDamage-MinDamage+1) + MinDamage
		return []Consequence{{
			Kind:        KindDamage,
			CharacterID: victim.ID,
			Damage:      dmg,
			Description: fmt.Sprintf("🩸 %s takes %d damage from the horror!", victim.Name, dmg),
		}}
	}

	return nil
}
