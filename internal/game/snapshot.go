package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/palemoky/trash-castle/internal/apperrors"
	"github.com/palemoky/trash-castle/internal/config"
	"github.com/palemoky/trash-castle/internal/game/card"
	"github.com/palemoky/trash-castle/internal/movelog"
	"github.com/palemoky/trash-castle/internal/protocol"
)

// Snapshot 对局的纯数据视图，足以完整恢复对局
type Snapshot struct {
	ID          string             `json:"id"`
	Seed        uint64             `json:"seed"`
	RNG         []byte             `json:"rng"` // PCG 内部状态
	Jokers      int                `json:"jokers"`
	MaxHandSize int                `json:"max_hand_size"`
	Phase       Phase              `json:"phase"`
	Current     int                `json:"current"`
	Turn        int                `json:"turn"`
	Over        bool               `json:"over"`
	Winner      int                `json:"winner"`
	Deck        []card.Card        `json:"deck"` // 索引 0 为下一张
	Discard     []card.Card        `json:"discard"`
	Players     []PlayerSnapshot   `json:"players"`
	History     []protocol.Command `json:"history,omitempty"`
}

// PlayerSnapshot 玩家存档数据
type PlayerSnapshot struct {
	Name       string      `json:"name"`
	AI         bool        `json:"ai"`
	Castle     int         `json:"castle"`
	Hand       []card.Card `json:"hand"`
	Collection []card.Card `json:"collection"`
}

// Snapshot 导出当前状态
func (gs *GameState) Snapshot() Snapshot {
	rngState, err := gs.pcg.MarshalBinary()
	if err != nil {
		panic(fmt.Sprintf("marshal rng state: %v", err))
	}

	s := Snapshot{
		ID:          gs.id,
		Seed:        gs.seed,
		RNG:         rngState,
		Jokers:      gs.deck.Jokers(),
		MaxHandSize: gs.maxHandSize(),
		Phase:       gs.phase,
		Current:     gs.current,
		Turn:        gs.turn,
		Over:        gs.over,
		Winner:      gs.winner,
		Deck:        gs.deck.Cards(),
		Discard:     gs.DiscardPile(),
		History:     gs.History(),
	}
	for _, p := range gs.players {
		s.Players = append(s.Players, PlayerSnapshot{
			Name:       p.Name,
			AI:         p.IsAI,
			Castle:     p.Castle(),
			Hand:       p.Cards(),
			Collection: p.Collection(),
		})
	}
	return s
}

func (gs *GameState) maxHandSize() int {
	if len(gs.players) == 0 {
		return 0
	}
	return gs.players[0].MaxHandSize()
}

// Restore 从存档恢复对局，恢复前校验卡牌守恒
func Restore(s Snapshot, opts ...Option) (*GameState, error) {
	if err := checkSnapshotShape(s); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidSnapshot, err)
	}

	pcg := rand.NewPCG(s.Seed, pcgStream)
	if len(s.RNG) > 0 {
		if err := pcg.UnmarshalBinary(s.RNG); err != nil {
			return nil, fmt.Errorf("%w: rng state: %v", apperrors.ErrInvalidSnapshot, err)
		}
	}

	gs := &GameState{
		id:       s.ID,
		seed:     s.Seed,
		pcg:      pcg,
		rng:      rand.New(pcg),
		discard:  append([]card.Card(nil), s.Discard...),
		phase:    s.Phase,
		current:  s.Current,
		turn:     s.Turn,
		over:     s.Over,
		winner:   s.Winner,
		recorder: movelog.Nop{},
		history:  append([]protocol.Command(nil), s.History...),
	}
	for _, opt := range opts {
		opt(gs)
	}
	gs.deck = card.NewDeckFromCards(gs.rng, s.Jokers, s.Deck)
	for _, p := range s.Players {
		gs.players = append(gs.players, card.RestoreHand(p.Name, p.AI, p.Castle, s.MaxHandSize, p.Hand, p.Collection))
	}

	if err := gs.Verify(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidSnapshot, err)
	}
	return gs, nil
}

func checkSnapshotShape(s Snapshot) error {
	if n := len(s.Players); n < config.MinPlayers || n > config.MaxPlayers {
		return fmt.Errorf("player count must be between %d and %d, got %d", config.MinPlayers, config.MaxPlayers, n)
	}
	if s.MaxHandSize < 0 {
		return fmt.Errorf("negative max hand size %d", s.MaxHandSize)
	}
	if s.Jokers < 1 || s.Jokers > card.MaxJokers {
		return fmt.Errorf("invalid joker count %d", s.Jokers)
	}
	if !s.Phase.Valid() {
		return fmt.Errorf("invalid phase %d", int(s.Phase))
	}
	if s.Current < 0 || s.Current >= len(s.Players) {
		return fmt.Errorf("current player %d out of range", s.Current)
	}
	if s.Winner < NoWinner || s.Winner >= len(s.Players) {
		return fmt.Errorf("winner %d out of range", s.Winner)
	}
	for _, p := range s.Players {
		if p.Castle < 0 {
			return fmt.Errorf("player %s has negative castle health", p.Name)
		}
	}
	return nil
}

// Verify 校验结构不变量：
// 每张牌恰好在一处（牌堆、手牌、收集格、弃牌堆）且与建牌时一致，
// 收集格只有数字牌且点数不重复，当前玩家未出局。
func (gs *GameState) Verify() error {
	template := card.NewTemplate(gs.deck.Jokers())
	seen := make(map[int]string, len(template))

	check := func(owner string, cards []card.Card) error {
		for _, c := range cards {
			if err := c.Validate(); err != nil {
				return fmt.Errorf("%s: %w", owner, err)
			}
			if c.ID < 0 || c.ID >= len(template) {
				return fmt.Errorf("%s: unknown card id %d", owner, c.ID)
			}
			want := template[c.ID]
			if c.Kind != want.Kind || c.Suit != want.Suit || c.Value != want.Value {
				return fmt.Errorf("%s: card %d is %s, expected %s", owner, c.ID, c.Name(), want.Name())
			}
			if prev, dup := seen[c.ID]; dup {
				return fmt.Errorf("card %s found in both %s and %s", c.Name(), prev, owner)
			}
			seen[c.ID] = owner
		}
		return nil
	}

	if err := check("deck", gs.deck.Cards()); err != nil {
		return err
	}
	if err := check("discard pile", gs.discard); err != nil {
		return err
	}
	for _, p := range gs.players {
		if err := check(p.Name+" hand", p.Cards()); err != nil {
			return err
		}
		collection := p.Collection()
		if err := check(p.Name+" collection", collection); err != nil {
			return err
		}
		values := make(map[int]bool, len(collection))
		for _, c := range collection {
			if c.Kind != card.Number {
				return fmt.Errorf("%s collection holds non-number card %s", p.Name, c.Name())
			}
			if values[c.Value] {
				return fmt.Errorf("%s collection holds value %d twice", p.Name, c.Value)
			}
			values[c.Value] = true
		}
		if p.Castle() < 0 {
			return fmt.Errorf("%s castle health is negative", p.Name)
		}
	}

	if len(seen) != len(template) {
		return fmt.Errorf("expected %d cards, found %d", len(template), len(seen))
	}
	if !gs.over && gs.players[gs.current].IsEliminated() {
		return fmt.Errorf("current player %s is eliminated", gs.players[gs.current].Name)
	}
	return nil
}
