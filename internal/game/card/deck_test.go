package card

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 1))
}

func ids(cards []Card) []int {
	result := make([]int, len(cards))
	for i, c := range cards {
		result[i] = c.ID
	}
	return result
}

func TestNewTemplate(t *testing.T) {
	t.Parallel()

	for _, jokers := range []int{1, 2} {
		cards := NewTemplate(jokers)
		require.Len(t, cards, StandardSize+jokers)

		counts := make(map[Kind]int)
		for i, c := range cards {
			assert.Equal(t, i, c.ID)
			assert.NoError(t, c.Validate())
			counts[c.Kind]++
		}
		assert.Equal(t, 36, counts[Number])
		assert.Equal(t, 4, counts[Jack])
		assert.Equal(t, 4, counts[Queen])
		assert.Equal(t, 4, counts[King])
		assert.Equal(t, 4, counts[Ace])
		assert.Equal(t, jokers, counts[Joker])
	}

	assert.Panics(t, func() { NewTemplate(0) })
	assert.Panics(t, func() { NewTemplate(3) })
}

func TestDeck_DrawAll(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		jokers int
		size   int
	}{
		{"one joker", 1, 53},
		{"two jokers", 2, 54},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := NewDeck(newTestRand(1), tt.jokers)
			require.Equal(t, tt.size, d.Remaining())

			seen := make(map[int]bool)
			for range tt.size {
				c, ok := d.Draw()
				require.True(t, ok)
				assert.False(t, seen[c.ID], "card %s drawn twice", c)
				seen[c.ID] = true
			}
			assert.Len(t, seen, tt.size)

			_, ok := d.Draw()
			assert.False(t, ok)
			assert.True(t, d.IsEmpty())
			assert.Equal(t, 0, d.Remaining())
		})
	}
}

func TestDeck_ShuffleIsPermutation(t *testing.T) {
	t.Parallel()

	d := NewDeck(newTestRand(7), 2)
	before := ids(d.Cards())

	d.Shuffle()
	after := ids(d.Cards())

	assert.Len(t, after, len(before))
	assert.ElementsMatch(t, before, after)
	assert.NotEqual(t, before, after)
}

func TestDeck_ShuffleIsDeterministicForSeed(t *testing.T) {
	t.Parallel()

	a := NewDeck(newTestRand(99), 2)
	b := NewDeck(newTestRand(99), 2)
	assert.Equal(t, a.Cards(), b.Cards())

	c := NewDeck(newTestRand(100), 2)
	assert.NotEqual(t, a.Cards(), c.Cards())
}

// 每个位置上各张牌出现的频率应接近均匀
func TestDeck_ShuffleIsUniform(t *testing.T) {
	t.Parallel()

	const (
		size   = 5
		trials = 50000
	)
	rng := newTestRand(2024)
	counts := [size][size]int{}

	for range trials {
		d := NewDeckFromCards(rng, 1, NewTemplate(1)[:size])
		d.Shuffle()
		for pos, c := range d.Cards() {
			counts[pos][c.ID]++
		}
	}

	expected := float64(trials) / size
	for pos := range size {
		for id := range size {
			got := float64(counts[pos][id])
			assert.InEpsilon(t, expected, got, 0.05, "card %d at position %d", id, pos)
		}
	}
}

func TestDeck_Reset(t *testing.T) {
	t.Parallel()

	d := NewDeck(newTestRand(3), 2)
	for range 10 {
		d.Draw()
	}
	require.Equal(t, 44, d.Remaining())

	d.Reset()
	assert.Equal(t, 54, d.Remaining())
	assert.ElementsMatch(t, ids(NewTemplate(2)), ids(d.Cards()))
}

func TestDeck_AddAndCards(t *testing.T) {
	t.Parallel()

	d := NewDeckFromCards(newTestRand(1), 1, nil)
	assert.True(t, d.IsEmpty())

	joker := NewJoker(53)
	d.Add(NewNumber(0, Hearts, 2), joker)
	assert.Equal(t, 2, d.Remaining())

	cards := d.Cards()
	cards[0] = joker
	first, ok := d.Draw()
	require.True(t, ok)
	assert.Equal(t, "2 of Hearts", first.Name(), "Cards must return a copy")
}
