package consequence_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/nightfall/internal/game/character"
	"github.com/cory-johannsen/nightfall/internal/game/consequence"
	"github.com/cory-johannsen/nightfall/internal/game/rng"
)

func roster(alive ...bool) []character.Character {
	out := make([]character.Character, 0, len(alive))
	for i, a := range alive {
		c := character.Character{
			ID:    string(rune('a' + i)),
			Name:  "Member" + string(rune('A'+i)),
			HP:    50,
			MaxHP: 50,
			Alive: a,
		}
		if !a {
			c.HP = 0
		}
		out = append(out, c)
	}
	return out
}

// TestDerive_DeathKeyword_AlwaysDeath verifies a death keyword on nightmare
// yields exactly one death consequence regardless of the random stream.
func TestDerive_DeathKeyword_AlwaysDeath(t *testing.T) {
	for _, text := range []string{
		"The beast KILLED someone in the dark.",
		"One of you dies screaming.",
		"Death walks among you.",
	} {
		src := &rng.Sequence{Ints: []int{0}, Floats: []float64{0.99, 0.99}}
		engine := consequence.NewEngine(src)

		got := engine.Derive(text, roster(true, true), "nightmare")

		require.Len(t, got, 1, "text %q must produce exactly one consequence", text)
		assert.Equal(t, consequence.KindDeath, got[0].Kind)
		assert.Equal(t, 0, got[0].Damage, "death consequences carry no damage")
		assert.Contains(t, got[0].Description, "has perished")
	}
}

// TestDerive_KeywordDoesNotConsumeDraw verifies the chance draw is skipped
// when a keyword already matched: the scripted float queue stays untouched.
func TestDerive_KeywordDoesNotConsumeDraw(t *testing.T) {
	src := &rng.Sequence{Ints: []int{0}, Floats: []float64{0.42}}
	engine := consequence.NewEngine(src)

	got := engine.Derive("she was killed instantly", roster(true), "normal")

	require.Len(t, got, 1)
	assert.Equal(t, 0.42, src.Float64(), "float queue must still hold the unspent draw")
}

// TestDerive_DamageKeyword verifies a damage keyword yields a damage
// consequence with magnitude in [MinDamage, MaxDamage].
func TestDerive_DamageKeyword(t *testing.T) {
	// First float 0.99 misses the death chance; Ints pick victim then the
	// damage roll.
	src := &rng.Sequence{Ints: []int{0, 39}, Floats: []float64{0.99}}
	engine := consequence.NewEngine(src)

	got := engine.Derive("Luna is badly wounded by the claws", roster(true), "normal")

	require.Len(t, got, 1)
	assert.Equal(t, consequence.KindDamage, got[0].Kind)
	assert.Equal(t, consequence.MaxDamage, got[0].Damage)
	assert.Contains(t, got[0].Description, "takes 49 damage")
}

// TestDerive_DeathKeywordWinsOverDamageKeyword verifies the death branch is
// checked first when both keyword families appear.
func TestDerive_DeathKeywordWinsOverDamageKeyword(t *testing.T) {
	src := &rng.Sequence{Ints: []int{0}}
	engine := consequence.NewEngine(src)

	got := engine.Derive("hurt and then killed", roster(true, true), "easy")

	require.Len(t, got, 1)
	assert.Equal(t, consequence.KindDeath, got[0].Kind)
}

// TestDerive_QuietText_HighDraws_NoConsequence verifies that without keywords
// and with draws above both chance thresholds, nothing happens.
func TestDerive_QuietText_HighDraws_NoConsequence(t *testing.T) {
	src := &rng.Sequence{Floats: []float64{0.99, 0.99}}
	engine := consequence.NewEngine(src)

	got := engine.Derive("You find a quiet room and rest", roster(true, true), "nightmare")

	assert.Empty(t, got)
}

// TestDerive_ChanceDeath verifies a draw below the difficulty's death chance
// triggers the death branch with no keyword present.
func TestDerive_ChanceDeath(t *testing.T) {
	// 0.29 < 0.30 on nightmare, but >= 0.15 on normal.
	srcNightmare := &rng.Sequence{Ints: []int{1}, Floats: []float64{0.29}}
	got := consequence.NewEngine(srcNightmare).Derive("nothing happens", roster(true, true), "nightmare")
	require.Len(t, got, 1)
	assert.Equal(t, consequence.KindDeath, got[0].Kind)
	assert.Equal(t, "b", got[0].CharacterID)

	srcNormal := &rng.Sequence{Ints: []int{0, 0}, Floats: []float64{0.29, 0.99}}
	got = consequence.NewEngine(srcNormal).Derive("nothing happens", roster(true, true), "normal")
	assert.Empty(t, got, "0.29 must miss the normal death chance and 0.99 the damage chance")
}

// TestDerive_NoLivingCharacters verifies an empty or fully dead roster yields
// nil even when a keyword demands a death.
func TestDerive_NoLivingCharacters(t *testing.T) {
	engine := consequence.NewEngine(&rng.Sequence{Floats: []float64{0.0, 0.0}})

	assert.Nil(t, engine.Derive("everyone is killed", nil, "nightmare"))
	assert.Nil(t, engine.Derive("everyone is killed", roster(false, false), "nightmare"))
}

// TestDerive_TargetsOnlyLiving verifies the victim is always drawn from the
// living subset.
func TestDerive_TargetsOnlyLiving(t *testing.T) {
	// Only index 1 is alive, so any victim draw must resolve to "b".
	src := &rng.Sequence{Ints: []int{0}}
	engine := consequence.NewEngine(src)

	got := engine.Derive("the shadow killed again", roster(false, true, false), "normal")

	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].CharacterID)
}

// TestDerive_Property_AtMostOneLivingTarget verifies, across arbitrary texts,
// difficulties, and random streams, that Derive returns at most one
// consequence, its target is living, and damage stays within bounds.
func TestDerive_Property_AtMostOneLivingTarget(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		aliveFlags := rapid.SliceOfN(rapid.Bool(), 0, 6).Draw(rt, "alive")
		members := roster(aliveFlags...)

		src := &rng.Sequence{
			Ints:   rapid.SliceOfN(rapid.IntRange(0, 1000), 4, 4).Draw(rt, "ints"),
			Floats: rapid.SliceOfN(rapid.Float64Range(0, 0.999), 2, 2).Draw(rt, "floats"),
		}
		text := rapid.SampledFrom([]string{
			"a quiet night",
			"someone was killed",
			"Aria is hurt",
			"death and ruin",
			"they are wounded but alive",
		}).Draw(rt, "text")
		difficulty := rapid.SampledFrom([]string{"easy", "normal", "nightmare", "bogus"}).Draw(rt, "difficulty")

		got := consequence.NewEngine(src).Derive(text, members, difficulty)

		if len(got) == 0 {
			return
		}
		require.Len(rt, got, 1, "never more than one consequence per turn")

		c := got[0]
		var target *character.Character
		for i := range members {
			if members[i].ID == c.CharacterID {
				target = &members[i]
			}
		}
		require.NotNil(rt, target, "target must come from the roster")
		assert.True(rt, target.Alive, "target must have been alive")

		switch c.Kind {
		case consequence.KindDamage:
			assert.GreaterOrEqual(rt, c.Damage, consequence.MinDamage)
			assert.LessOrEqual(rt, c.Damage, consequence.MaxDamage)
		case consequence.KindDeath:
			assert.Zero(rt, c.Damage)
		}
	})
}
