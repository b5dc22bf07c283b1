package view

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/trash-castle/internal/config"
	"github.com/palemoky/trash-castle/internal/game"
	"github.com/palemoky/trash-castle/internal/game/card"
	"github.com/palemoky/trash-castle/internal/movelog"
	"github.com/palemoky/trash-castle/internal/storage"
)

func TestCardLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		card     card.Card
		expected string
	}{
		{card.NewNumber(0, card.Hearts, 7), "7♥"},
		{card.NewNumber(0, card.Spades, 10), "10♠"},
		{card.NewFace(0, card.King, card.Clubs), "K♣"},
		{card.NewFace(0, card.Ace, card.Diamonds), "A♦"},
		{card.NewJoker(0), "JK"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, CardLabel(tt.card))
	}
}

func TestRenderCard_ShowsBoost(t *testing.T) {
	t.Parallel()

	c := card.NewNumber(0, card.Hearts, 3)
	assert.NotContains(t, RenderCard(c), "+")
	c.Damage += 5
	assert.Contains(t, RenderCard(c), "3♥+5")
}

func TestRenderHand(t *testing.T) {
	t.Parallel()

	assert.Contains(t, RenderHand(nil, true), "no cards")

	hand := []card.Card{card.NewNumber(0, card.Hearts, 2), card.NewJoker(52)}
	out := RenderHand(hand, true)
	assert.Contains(t, out, "1:")
	assert.Contains(t, out, "2♥")
	assert.Contains(t, out, "2:")
	assert.Contains(t, out, "JK")
}

func TestRenderCollection(t *testing.T) {
	t.Parallel()

	out := RenderCollection([]card.Card{card.NewNumber(0, card.Clubs, 5)})
	assert.Contains(t, out, "5♣")
	assert.Equal(t, card.CollectionSize-1, strings.Count(out, "·"))
}

func TestCastleBar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		health int
		filled int
	}{
		{50, castleBarWidth},
		{25, castleBarWidth / 2},
		{1, 1},
		{0, 0},
		{60, castleBarWidth},
	}
	for _, tt := range tests {
		bar := CastleBar(tt.health, card.StartingHealth)
		assert.Equal(t, castleBarWidth, utf8.RuneCountInString(bar), "health %d", tt.health)
		assert.Equal(t, tt.filled, strings.Count(bar, "█"), "health %d", tt.health)
	}
}

func TestTruncateName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Alice", TruncateName("Alice", 10))
	assert.Equal(t, "Maximi…", TruncateName("Maximilian", 7))
}

func newMatch(t *testing.T) *game.GameState {
	t.Helper()
	gs, err := game.New(config.GameConfig{
		Players: []config.PlayerConfig{
			{Name: "Alice"},
			{Name: "Bob", AI: true},
		},
		StartingHandSize: 5,
		Jokers:           1,
		Seed:             3,
	})
	require.NoError(t, err)
	return gs
}

func TestRenderBoard(t *testing.T) {
	t.Parallel()

	gs := newMatch(t)
	out := RenderBoard(gs, 0)

	assert.Contains(t, out, "Turn 1")
	assert.Contains(t, out, "Draw phase")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "Bob (AI)")
	assert.Contains(t, out, CurrentIcon)
	// 对手的手牌只显示张数
	assert.Contains(t, out, "5 cards")
}

func TestRenderPlayer_Eliminated(t *testing.T) {
	t.Parallel()

	out := RenderPlayer(game.PlayerView{Name: "Bob", Eliminated: true}, false, false)
	assert.Contains(t, out, RubbleIcon)
	assert.NotContains(t, out, CurrentIcon)
}

func TestRenderEffect(t *testing.T) {
	t.Parallel()

	gs := newMatch(t)
	queen := card.NewFace(0, card.Queen, card.Hearts)
	out := RenderEffect(gs, game.Effect{Card: queen, Action: movelog.ActionHeal, Healed: 5, Target: -1})
	assert.Contains(t, out, "Alice plays Q♥")
	assert.Contains(t, out, "castle +5")

	seven := card.NewNumber(1, card.Spades, 7)
	out = RenderEffect(gs, game.Effect{Card: seven, Action: movelog.ActionAttack, Damage: 4, Target: 1, TargetEliminated: true})
	assert.Contains(t, out, "4 damage to Bob")
	assert.Contains(t, out, "castle destroyed")

	king := card.NewFace(2, card.King, card.Spades)
	out = RenderEffect(gs, game.Effect{Card: king, Action: movelog.ActionBonusDraw, Target: -1})
	assert.Contains(t, out, "deck is empty")
}

func TestRenderGameOver(t *testing.T) {
	t.Parallel()

	// 两名 AI 自动打完
	cfg := config.GameConfig{
		Players:          []config.PlayerConfig{{Name: "Alice", AI: true}, {Name: "Bob", AI: true}},
		StartingHandSize: 5,
		Jokers:           1,
		Seed:             3,
	}
	done, err := game.New(cfg)
	require.NoError(t, err)
	require.NoError(t, done.RunAI(0))
	require.True(t, done.IsOver())

	out := RenderGameOver(done)
	if winner, ok := done.Winner(); ok {
		p, _ := done.Player(winner)
		assert.Contains(t, out, p.Name+" wins")
	} else {
		assert.Contains(t, out, "no winner")
	}
}

func TestRenderStandings(t *testing.T) {
	t.Parallel()

	assert.Contains(t, RenderStandings(nil), "no finished matches")

	out := RenderStandings([]storage.WinnerEntry{
		{Rank: 1, Name: "Alice", Wins: 3},
		{Rank: 2, Name: "Bob", Wins: 1},
	})
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, " 3")
	assert.Contains(t, out, "Bob")
}

func TestRenderMoves(t *testing.T) {
	t.Parallel()

	moves := []movelog.Move{
		{Player: "Alice", Action: movelog.ActionDraw},
		{Player: "Bob", Action: movelog.ActionAttack, Card: "9 of Clubs", Damage: 4, Target: "Alice"},
	}
	out := RenderMoves(moves, 1)
	assert.NotContains(t, out, "draw")
	assert.Contains(t, out, "Bob attack 9 of Clubs -> Alice (4)")
}

func TestRenderError(t *testing.T) {
	t.Parallel()
	assert.Contains(t, RenderError(errors.New("boom")), "boom")
}
