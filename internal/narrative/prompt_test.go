package narrative_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cory-johannsen/nightfall/internal/game/character"
	"github.com/cory-johannsen/nightfall/internal/game/world"
	"github.com/cory-johannsen/nightfall/internal/narrative"
)

// TestBuildPrompt_EmbedsContext verifies every context field appears verbatim
// in the rendered prompt.
func TestBuildPrompt_EmbedsContext(t *testing.T) {
	gc := narrative.Context{
		Location: &world.Location{ID: "hospital", Name: "🏚️ Abandoned Hospital", Danger: 8},
		Roster: []character.Character{
			{Name: "Aria", Species: "Vampire", Emoji: "🧛", HP: 120, MaxHP: 120, Alive: true},
			{Name: "Kael", Species: "Ghost", Emoji: "👻", HP: 12, MaxHP: 70, Alive: true},
		},
		Difficulty:    "nightmare",
		PreviousStory: "The doors slammed shut behind you.",
	}

	prompt := narrative.BuildPrompt("search the ward", gc)

	assert.Contains(t, prompt, "🏚️ Abandoned Hospital")
	assert.Contains(t, prompt, "🧛 Aria (Vampire, HP: 120)")
	assert.Contains(t, prompt, "👻 Kael (Ghost, HP: 12)")
	assert.Contains(t, prompt, "Difficulty: nightmare")
	assert.Contains(t, prompt, "The doors slammed shut behind you.")
	assert.Contains(t, prompt, "search the ward")
	assert.Contains(t, prompt, narrative.ClosingCue)
}

// TestBuildPrompt_Defaults verifies the placeholder values for an empty
// context.
func TestBuildPrompt_Defaults(t *testing.T) {
	prompt := narrative.BuildPrompt("look around", narrative.Context{})

	assert.Contains(t, prompt, "Location: Unknown")
	assert.Contains(t, prompt, "Characters: None")
	assert.Contains(t, prompt, "Difficulty: normal")
	assert.Contains(t, prompt, "Previous story: Beginning of the game")
}
