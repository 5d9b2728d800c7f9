// Package turn orchestrates one player input end to end: narrative
// generation, consequence derivation, state mutation, and end-condition
// evaluation.
package turn

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/cory-johannsen/nightfall/internal/game/consequence"
	"github.com/cory-johannsen/nightfall/internal/game/session"
	"github.com/cory-johannsen/nightfall/internal/game/world"
	"github.com/cory-johannsen/nightfall/internal/narrative"
	"github.com/cory-johannsen/nightfall/internal/stats"
)

// Status classifies how a submitted turn was handled. Guard-condition no-ops
// are explicit statuses rather than silent failures.
type Status string

const (
	// StatusAccepted: the turn was processed and its result applied.
	StatusAccepted Status = "accepted"
	// StatusRejected: the session was inactive, a turn was already in
	// flight, or the free-text input was empty. No state changed.
	StatusRejected Status = "rejected"
	// StatusStale: the session was reset while the narrative request was
	// outstanding; the response was discarded.
	StatusStale Status = "stale"
)

// Result is the outcome of one Submit call.
type Result struct {
	Status Status
	// Story is the narrative text appended to the log (StatusAccepted only).
	Story string
	// Consequences are the effects applied to the roster, in order.
	Consequences []consequence.Consequence
	// Ended is true when this turn satisfied an end condition.
	Ended bool
	// Outcome is set when Ended is true.
	Outcome Outcome
}

// Orchestrator drives the idle/active session state machine. One turn may be
// in flight at a time; the narrative generation call is the sole suspending
// operation.
type Orchestrator struct {
	session  *session.State
	narrator *narrative.Service
	engine   *consequence.Engine
	recorder stats.Recorder
	logger   *zap.Logger
	inFlight atomic.Bool
}

// NewOrchestrator constructs an Orchestrator.
//
// Precondition: all arguments must be non-nil.
func NewOrchestrator(sess *session.State, narrator *narrative.Service, engine *consequence.Engine, recorder stats.Recorder, logger *zap.Logger) *Orchestrator {
	if sess == nil || narrator == nil || engine == nil || recorder == nil || logger == nil {
		panic("turn.NewOrchestrator: all arguments must be non-nil")
	}
	return &Orchestrator{
		session:  sess,
		narrator: narrator,
		engine:   engine,
		recorder: recorder,
		logger:   logger,
	}
}

// Submit processes one player input. A non-nil location marks a location
// choice; otherwise input is treated as a free-text action.
//
// Location choices produce only a story entry; free-text turns record an
// action entry first, which is retained even if the session is reset while
// the narrative request is outstanding (the log is cleared by the reset
// anyway). Consequences are derived against the pre-turn roster and applied
// in the order produced.
//
// Postcondition: Returns StatusRejected without state change when the
// session is inactive, a turn is in flight, or the free-text input is empty.
// Returns StatusStale when the session epoch changed during generation.
func (o *Orchestrator) Submit(ctx context.Context, input string, loc *world.Location) Result {
	action := strings.TrimSpace(input)
	if loc == nil && action == "" {
		return Result{Status: StatusRejected}
	}

	if !o.inFlight.CompareAndSwap(false, true) {
		return Result{Status: StatusRejected}
	}
	defer o.inFlight.Store(false)

	snap := o.session.Snapshot()
	if !snap.Active {
		return Result{Status: StatusRejected}
	}

	var locationName string
	if loc != nil {
		action = fmt.Sprintf("I want to explore %s. %s", loc.Name, loc.Description)
		locationName = loc.Name
	} else {
		o.session.RecordAction(action)
	}

	gc := narrative.Context{
		Location:      snap.Location,
		Roster:        snap.Roster,
		Difficulty:    string(snap.Difficulty),
		PreviousStory: snap.CurrentStory,
	}
	if loc != nil {
		gc.Location = loc
	}

	story := o.narrator.Generate(ctx, action, gc)

	// The narrative call is the sole suspending operation; a reset while it
	// was outstanding bumped the epoch, and the response belongs to a dead
	// session.
	if o.session.Epoch() != snap.Epoch {
		o.logger.Info("stale narrative response dropped",
			zap.Uint64("submitted_epoch", snap.Epoch),
		)
		return Result{Status: StatusStale}
	}

	cons := o.engine.Derive(story, snap.Roster, string(snap.Difficulty))
	for _, c := range cons {
		o.session.ApplyConsequence(c)
	}
	o.session.RecordStory(story, locationName)

	res := Result{Status: StatusAccepted, Story: story, Consequences: cons}

	post := o.session.Snapshot()
	if outcome, ended := EvaluateEnd(post); ended {
		o.finish(outcome, post)
		res.Ended = true
		res.Outcome = outcome
	}
	return res
}

// Tick advances the countdown by one second and raises the timeout end
// condition on expiry. Never mutates the roster or story log.
//
// Postcondition: Returns (OutcomeTimeout, true) exactly once per session, on
// the tick that exhausts the countdown.
func (o *Orchestrator) Tick() (Outcome, bool) {
	if !o.session.Tick() {
		return "", false
	}
	o.finish(OutcomeTimeout, o.session.Snapshot())
	return OutcomeTimeout, true
}

// finish ends the session and hands the statistics off to the recorder.
func (o *Orchestrator) finish(outcome Outcome, snap session.Snapshot) {
	o.session.End()
	elapsed := session.InitialTimeLeft - snap.TimeLeft
	o.recorder.Record(outcome == OutcomeVictory, elapsed)
	o.logger.Info("session ended",
		zap.String("outcome", string(outcome)),
		zap.Int("elapsed_seconds", elapsed),
		zap.Int("survivors", snap.LivingCount()),
	)
}

// Session returns the underlying session state for snapshot reads and intent
// calls (start, reset, add character, difficulty).
func (o *Orchestrator) Session() *session.State {
	return o.session
}
