// Package character defines the survivor domain model, its pure mutation
// operations, and the species template catalog used to stamp new survivors.
package character

import "github.com/google/uuid"

// Character represents one roster member. A dead character keeps its slot in
// the roster; it is never removed.
//
// Invariant: 0 <= HP <= MaxHP; Alive == (HP > 0); MaxHP never changes after
// creation.
type Character struct {
	// ID uniquely identifies this character for the session lifetime.
	ID string
	// Name is the display name sampled from a name pool at creation.
	Name string
	// Species is the template display name (e.g. "Vampire").
	Species string
	// Emoji is the template icon reference.
	Emoji string
	// HP is the current hit points.
	HP int
	// MaxHP is the maximum hit points, fixed at creation.
	MaxHP int
	// Attack is the attack power, fixed at creation.
	Attack int
	// Alive is derived state: true iff HP > 0.
	Alive bool
}

// New stamps a Character from a species template.
//
// Precondition: tmpl must not be nil; name must be non-empty.
// Postcondition: HP == MaxHP == tmpl.HP; Attack == tmpl.Attack; Alive is true;
// ID is a fresh UUID.
func New(tmpl *Template, name string) Character {
	return Character{
		ID:      uuid.NewString(),
		Name:    name,
		Species: tmpl.Name,
		Emoji:   tmpl.Emoji,
		HP:      tmpl.HP,
		MaxHP:   tmpl.HP,
		Attack:  tmpl.Attack,
		Alive:   true,
	}
}

// ApplyDamage returns a copy of c with amount subtracted from HP. Negative
// amounts are treated as 0. The caller replaces the roster entry by ID.
//
// Postcondition: result.HP == max(0, c.HP - max(0, amount));
// result.Alive == (result.HP > 0); all other fields unchanged.
func ApplyDamage(c Character, amount int) Character {
	if amount < 0 {
		amount = 0
	}
	hp := c.HP - amount
	if hp < 0 {
		hp = 0
	}
	c.HP = hp
	c.Alive = hp > 0
	return c
}

// Kill returns a copy of c with HP forced to 0 and Alive false. Used when a
// definitive death is decided rather than a damage roll that happens to zero
// out HP.
func Kill(c Character) Character {
	c.HP = 0
	c.Alive = false
	return c
}
