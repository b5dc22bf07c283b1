package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/palemoky/trash-castle/internal/config"
	"github.com/palemoky/trash-castle/internal/game/card"
)

func testConfig(players int) config.GameConfig {
	cfg := config.GameConfig{
		StartingHealth: card.StartingHealth,
		Jokers:         1,
		Seed:           42,
	}
	for i := range players {
		cfg.Players = append(cfg.Players, config.PlayerConfig{Name: fmt.Sprintf("P%d", i)})
	}
	return cfg
}

// newTestGame 创建没有起始手牌的对局
func newTestGame(t *testing.T, players int, opts ...Option) *GameState {
	t.Helper()
	gs, err := New(testConfig(players), opts...)
	require.NoError(t, err)
	require.NoError(t, gs.Verify())
	return gs
}

// take 从牌堆中取出第一张符合条件的牌
func take(t *testing.T, gs *GameState, match func(card.Card) bool) card.Card {
	t.Helper()
	cards := gs.deck.Cards()
	for i, c := range cards {
		if match(c) {
			rest := append(cards[:i:i], cards[i+1:]...)
			gs.deck = card.NewDeckFromCards(gs.rng, gs.deck.Jokers(), rest)
			return c
		}
	}
	t.Fatalf("no matching card left in deck")
	return card.Card{}
}

// give 把牌堆中第一张符合条件的牌交给玩家
func give(t *testing.T, gs *GameState, player int, match func(card.Card) bool) card.Card {
	t.Helper()
	c := take(t, gs, match)
	require.NoError(t, gs.players[player].AddCard(c))
	return c
}

func ofKind(kind card.Kind) func(card.Card) bool {
	return func(c card.Card) bool { return c.Kind == kind }
}

func named(name string) func(card.Card) bool {
	return func(c card.Card) bool { return c.Name() == name }
}

// emptyDeck 把牌堆里剩下的牌全部移入弃牌堆
func emptyDeck(gs *GameState) {
	gs.discard = append(gs.discard, gs.deck.Cards()...)
	gs.deck = card.NewDeckFromCards(gs.rng, gs.deck.Jokers(), nil)
}

func toBattle(gs *GameState) {
	gs.phase = PhaseBattle
}

func cardIDs(cards []card.Card) []int {
	ids := make([]int, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids
}
