package turn

import "github.com/cory-johannsen/nightfall/internal/game/session"

// Outcome names the reason a session ended.
type Outcome string

const (
	// OutcomeDeath: no living characters remain.
	OutcomeDeath Outcome = "death"
	// OutcomeVictory: the story log reached the survival threshold.
	OutcomeVictory Outcome = "victory"
	// OutcomeTimeout: the countdown reached zero.
	OutcomeTimeout Outcome = "timeout"
)

// VictoryLogLength is the story-log length at which the team is considered
// to have survived the apocalypse.
const VictoryLogLength = 20

// EvaluateEnd is the pure end-condition predicate applied after every turn.
// Death takes precedence over victory; timeout is raised independently by
// the countdown tick and never from here.
//
// Postcondition: Returns (outcome, true) iff the snapshot satisfies an end
// condition. A snapshot with an empty roster (idle session) never ends.
func EvaluateEnd(snap session.Snapshot) (Outcome, bool) {
	if len(snap.Roster) > 0 && snap.LivingCount() == 0 {
		return OutcomeDeath, true
	}
	if len(snap.StoryLog) >= VictoryLogLength {
		return OutcomeVictory, true
	}
	return "", false
}
