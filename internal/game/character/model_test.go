package character_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/nightfall/internal/game/character"
)

// TestNew_StampsTemplate verifies a fresh character copies the template
// stats, starts at full HP, and carries a unique ID.
func TestNew_StampsTemplate(t *testing.T) {
	tmpl := &character.Template{ID: "vampire", Name: "Vampire", Emoji: "🧛", HP: 120, Attack: 25}

	c := character.New(tmpl, "Aria")

	assert.Equal(t, "Aria", c.Name)
	assert.Equal(t, "Vampire", c.Species)
	assert.Equal(t, "🧛", c.Emoji)
	assert.Equal(t, 120, c.HP)
	assert.Equal(t, 120, c.MaxHP)
	assert.Equal(t, 25, c.Attack)
	assert.True(t, c.Alive)
	require.NotEmpty(t, c.ID)

	other := character.New(tmpl, "Luna")
	assert.NotEqual(t, c.ID, other.ID, "IDs must be unique per character")
}

// TestApplyDamage_ReducesHP verifies a plain damage application.
func TestApplyDamage_ReducesHP(t *testing.T) {
	c := character.New(&character.Template{ID: "ghost", Name: "Ghost", HP: 70, Attack: 45}, "Nyx")

	damaged := character.ApplyDamage(c, 30)

	assert.Equal(t, 40, damaged.HP)
	assert.True(t, damaged.Alive)
	assert.Equal(t, 70, damaged.MaxHP, "MaxHP never changes post-creation")
	assert.Equal(t, 70, c.HP, "ApplyDamage is pure; the input is untouched")
}

// TestApplyDamage_Overkill verifies damage >= HP always yields hp=0 and a
// dead character.
func TestApplyDamage_Overkill(t *testing.T) {
	c := character.New(&character.Template{ID: "zombie", Name: "Zombie", HP: 90, Attack: 20}, "Vex")

	dead := character.ApplyDamage(c, 90)
	assert.Equal(t, 0, dead.HP)
	assert.False(t, dead.Alive)

	obliterated := character.ApplyDamage(c, 9999)
	assert.Equal(t, 0, obliterated.HP)
	assert.False(t, obliterated.Alive)
}

// TestApplyDamage_NegativeTreatedAsZero verifies negative amounts degrade to
// no-ops rather than heals.
func TestApplyDamage_NegativeTreatedAsZero(t *testing.T) {
	c := character.New(&character.Template{ID: "witch", Name: "Witch", HP: 80, Attack: 35}, "Zara")

	same := character.ApplyDamage(c, -15)
	assert.Equal(t, 80, same.HP)
	assert.True(t, same.Alive)
}

// TestKill_Unconditional verifies Kill zeroes HP regardless of current state.
func TestKill_Unconditional(t *testing.T) {
	c := character.New(&character.Template{ID: "dragon", Name: "Dragon", HP: 200, Attack: 50}, "Kael")

	dead := character.Kill(c)
	assert.Equal(t, 0, dead.HP)
	assert.False(t, dead.Alive)

	stillDead := character.Kill(dead)
	assert.Equal(t, 0, stillDead.HP)
	assert.False(t, stillDead.Alive)
}

// TestApplyDamage_Invariants_Property verifies, for arbitrary damage
// sequences, that 0 <= HP <= MaxHP and Alive == (HP > 0) hold after every
// mutation.
func TestApplyDamage_Invariants_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		hp := rapid.IntRange(1, 500).Draw(rt, "hp")
		c := character.New(&character.Template{ID: "t", Name: "T", HP: hp, Attack: 1}, "X")

		amounts := rapid.SliceOf(rapid.IntRange(-100, 600)).Draw(rt, "amounts")
		for _, amount := range amounts {
			c = character.ApplyDamage(c, amount)

			assert.GreaterOrEqual(rt, c.HP, 0, "HP must never go negative")
			assert.LessOrEqual(rt, c.HP, c.MaxHP, "HP must never exceed MaxHP")
			assert.Equal(rt, c.HP > 0, c.Alive, "Alive must equal (HP > 0)")
			assert.Equal(rt, hp, c.MaxHP, "MaxHP must be stable")
		}
	})
}
