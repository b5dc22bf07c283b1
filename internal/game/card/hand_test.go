package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/trash-castle/internal/apperrors"
)

func TestHand_AddRemove(t *testing.T) {
	t.Parallel()

	h := NewHand("Alice", false, StartingHealth, 0)
	seven := NewNumber(5, Hearts, 7)
	jack := NewFace(9, Jack, Hearts)

	require.NoError(t, h.AddCard(seven))
	require.NoError(t, h.AddCard(jack))
	assert.Equal(t, 2, h.CardCount())
	assert.True(t, h.HasCard(9))
	assert.Equal(t, "7 of Hearts, Jack of Hearts", h.String())

	removed, err := h.RemoveCard(5)
	require.NoError(t, err)
	assert.Equal(t, seven, removed)
	assert.False(t, h.HasCard(5))

	_, err = h.RemoveCard(5)
	assert.ErrorIs(t, err, apperrors.ErrCardNotInHand)

	_, err = h.RemoveCardAt(3)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCardIndex)
	_, err = h.CardAt(-1)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCardIndex)

	c, err := h.CardAt(0)
	require.NoError(t, err)
	assert.Equal(t, jack, c)
}

func TestHand_EmptyString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Empty hand", NewHand("Bob", true, 10, 0).String())
}

func TestHand_MaxHandSize(t *testing.T) {
	t.Parallel()

	h := NewHand("Alice", false, StartingHealth, 2)
	cards := []Card{NewNumber(0, Hearts, 2), NewNumber(1, Hearts, 3), NewNumber(2, Hearts, 4)}

	added := h.AddCards(cards)
	assert.Equal(t, 2, added)
	assert.True(t, h.IsFull())
	assert.ErrorIs(t, h.AddCard(cards[2]), apperrors.ErrHandFull)
	assert.Equal(t, 2, h.CardCount())
}

func TestHand_KindQueries(t *testing.T) {
	t.Parallel()

	h := NewHand("Alice", false, StartingHealth, 0)
	h.AddCards([]Card{NewNumber(0, Hearts, 2), NewFace(1, Queen, Hearts), NewJoker(2), NewNumber(3, Clubs, 9)})

	assert.True(t, h.HasCardOfKind(Queen))
	assert.False(t, h.HasCardOfKind(King))
	assert.Equal(t, []int{0, 3}, ids(h.NumberCards()))
	assert.Equal(t, []int{1, 2}, ids(h.SpecialCards()))

	cleared := h.ClearHand()
	assert.Len(t, cleared, 4)
	assert.Equal(t, 0, h.CardCount())
}

func TestHand_TakeDamage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		health   int
		amount   int
		expected int
	}{
		{"normal hit", 50, 4, 46},
		{"exact kill", 4, 4, 0},
		{"overkill floors at zero", 3, 10, 0},
		{"zero damage", 20, 0, 20},
		{"negative damage ignored", 20, -5, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := NewHand("Alice", false, tt.health, 0)
			got := h.TakeDamage(tt.amount)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.expected, h.Castle())
			// 血量减少量恰好为 min(amount, health)
			assert.Equal(t, min(max(tt.amount, 0), tt.health), tt.health-got)
			assert.Equal(t, tt.expected == 0, h.IsEliminated())
		})
	}
}

func TestHand_Heal(t *testing.T) {
	t.Parallel()

	h := NewHand("Alice", false, StartingHealth, 0)
	assert.Equal(t, 55, h.Heal(5))
	assert.Equal(t, 55, h.Heal(-3))
}

func TestHand_AddToCollection(t *testing.T) {
	t.Parallel()

	h := NewHand("Alice", false, StartingHealth, 0)

	assert.Equal(t, PlacedInCollection, h.AddToCollection(NewNumber(0, Hearts, 7)))
	assert.True(t, h.HasNumberInCollection(7))
	assert.False(t, h.HasNumberInCollection(8))

	// 重复点数退回手牌
	assert.Equal(t, RoutedToHand, h.AddToCollection(NewNumber(1, Clubs, 7)))
	assert.Equal(t, []int{1}, ids(h.Cards()))
	assert.Len(t, h.Collection(), 1)

	// 特殊牌不处理
	assert.Equal(t, NotCollectible, h.AddToCollection(NewFace(2, King, Clubs)))
	assert.Equal(t, 1, h.CardCount())
}

func TestHand_AddToCollection_DuplicateWithFullHand(t *testing.T) {
	t.Parallel()

	h := NewHand("Alice", false, StartingHealth, 1)
	require.NoError(t, h.AddCard(NewJoker(52)))
	require.Equal(t, PlacedInCollection, h.AddToCollection(NewNumber(0, Hearts, 3)))

	assert.Equal(t, Rejected, h.AddToCollection(NewNumber(1, Clubs, 3)))
	assert.Equal(t, 1, h.CardCount())
	assert.Len(t, h.Collection(), 1)
}

func TestHand_CollectionFillsAllSlots(t *testing.T) {
	t.Parallel()

	h := NewHand("Alice", false, StartingHealth, 0)
	id := 0
	for v := MaxValue; v >= MinValue; v-- {
		require.Equal(t, PlacedInCollection, h.AddToCollection(NewNumber(id, Spades, v)))
		id++
	}
	assert.True(t, h.CollectionFull())
	assert.Len(t, h.Collection(), CollectionSize)

	// 插入顺序保持不变
	assert.Equal(t, 10, h.Collection()[0].Value)

	values := make(map[int]bool)
	for _, c := range h.Collection() {
		assert.False(t, values[c.Value])
		values[c.Value] = true
	}
}

func TestHand_BoostCard(t *testing.T) {
	t.Parallel()

	h := NewHand("Alice", false, StartingHealth, 0)
	require.NoError(t, h.AddCard(NewNumber(0, Hearts, 3)))

	assert.True(t, h.BoostCard(0, 5))
	assert.False(t, h.BoostCard(99, 5))

	c, _ := h.CardAt(0)
	assert.Equal(t, 7, c.Damage)
	assert.Equal(t, 2, c.BaseDamage())
}

func TestRestoreHand(t *testing.T) {
	t.Parallel()

	hand := []Card{NewJoker(52)}
	collection := []Card{NewNumber(0, Hearts, 2)}
	h := RestoreHand("Bob", true, 12, 4, hand, collection)

	assert.Equal(t, "Bob", h.Name)
	assert.True(t, h.IsAI)
	assert.Equal(t, 12, h.Castle())
	assert.Equal(t, 4, h.MaxHandSize())
	assert.Equal(t, hand, h.Cards())
	assert.Equal(t, collection, h.Collection())

	// 输入切片被复制
	hand[0] = NewFace(40, King, Spades)
	c, _ := h.CardAt(0)
	assert.Equal(t, Joker, c.Kind)
}
