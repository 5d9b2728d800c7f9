package narrative

import (
	"fmt"
	"strings"
)

// BuildPrompt renders the system-style instruction sent to generative
// backends, embedding the session context fields verbatim.
//
// Postcondition: The result contains the location name, every roster
// member's name/species/HP, the difficulty, the previous story, and the
// literal action prompt.
func BuildPrompt(prompt string, gc Context) string {
	location := "Unknown"
	if gc.Location != nil {
		location = gc.Location.Name
	}

	characters := "None"
	if len(gc.Roster) > 0 {
		parts := make([]string, 0, len(gc.Roster))
		for _, c := range gc.Roster {
			parts = append(parts, fmt.Sprintf("%s %s (%s, HP: %d)", c.Emoji, c.Name, c.Species, c.HP))
		}
		characters = strings.Join(parts, ", ")
	}

	difficulty := gc.Difficulty
	if difficulty == "" {
		difficulty = "normal"
	}

	previous := gc.PreviousStory
	if previous == "" {
		previous = "Beginning of the game"
	}

	return fmt.Sprintf(`You are a horror story AI for an apocalypse survival game.
Create terrifying, immersive narratives based on user choices.
Keep responses under 200 words but make them atmospheric and scary.
Include consequences for character actions.

Game Context:
- Location: %s
- Characters: %s
- Difficulty: %s
- Previous story: %s

User's choice/action: %s

Respond with a horror story continuation that includes:
1. What happens based on their choice
2. New dangers or discoveries
3. Consequences for characters (damage, death, or survival)
4. Set up the next decision point

End with: %q`, location, characters, difficulty, previous, prompt, ClosingCue)
}
