package narrative

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/nightfall/internal/game/character"
	"github.com/cory-johannsen/nightfall/internal/game/rng"
)

// ClosingCue is the literal phrase every narrative ends with.
const ClosingCue = "What do you do next?"

// Difficulty-escalating replacements for the closing cue.
const (
	nightmareCue = "The apocalypse demands sacrifice. Your choices have consequences beyond imagination. " + ClosingCue
	normalCue    = "Danger lurks in every shadow. Choose your next move carefully. " + ClosingCue
)

// Fallback selects templated horror paragraphs when no generative backend is
// available. Templates are parameterized by the current location name and a
// living character's name, with generic nouns when none is alive.
type Fallback struct {
	src rng.Source
}

// NewFallback constructs a Fallback.
//
// Precondition: src must not be nil.
func NewFallback(src rng.Source) *Fallback {
	if src == nil {
		panic("narrative.NewFallback: src must not be nil")
	}
	return &Fallback{src: src}
}

// Story picks one fallback template uniformly at random and decorates the
// closing cue according to difficulty.
//
// Postcondition: The result ends with ClosingCue; nightmare and normal
// difficulties splice an escalating warning clause before it.
func (f *Fallback) Story(gc Context) string {
	location := "this cursed place"
	if gc.Location != nil {
		location = gc.Location.Name
	}

	var living []character.Character
	for _, c := range gc.Roster {
		if c.Alive {
			living = append(living, c)
		}
	}

	first := "someone"
	if len(living) > 0 {
		first = living[0].Name
	}
	random := "A team member"
	if len(living) > 0 {
		random = living[f.src.Intn(len(living))].Name
	}
	second := "Your companion"
	if len(living) > 1 {
		second = living[1].Name
	}

	stories := []string{
		fmt.Sprintf("Your action echoes through %s with terrifying consequences. The darkness seems to pulse with malevolent energy as %s feels an icy grip of dread. Ancient evils stir, awakened by your presence. The very air becomes thick with supernatural menace. Something terrible approaches from the shadows. %s", location, first, ClosingCue),

		fmt.Sprintf("The horror deepens at %s. Your choice triggers a cascade of nightmarish events. Whispers of the damned fill the air as reality warps around you. %s stumbles backward in terror. The apocalypse shows its true face - merciless and hungry for souls. %s", location, random, ClosingCue),

		fmt.Sprintf("Terror grips your heart as your decision unleashes unspeakable horror at %s. The very ground beneath you trembles with otherworldly power. Blood-curdling screams pierce the silence. %s whispers prayers to forgotten gods. Death stalks every shadow, every breath could be your last. %s", location, second, ClosingCue),

		fmt.Sprintf("Your action resonates through the fabric of nightmare itself. At %s, the boundaries between life and death blur. Spectral figures emerge from the void, their hollow eyes fixed upon your team. The stench of decay fills your nostrils. Time seems to slow as cosmic horror unfolds before you. Madness beckons. %s", location, ClosingCue),
	}

	story := stories[f.src.Intn(len(stories))]

	switch gc.Difficulty {
	case "nightmare":
		return strings.Replace(story, ClosingCue, nightmareCue, 1)
	case "normal":
		return strings.Replace(story, ClosingCue, normalCue, 1)
	default:
		return story
	}
}
