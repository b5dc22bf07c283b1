package game

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/palemoky/trash-castle/internal/config"
	"github.com/palemoky/trash-castle/internal/game/card"
	"github.com/palemoky/trash-castle/internal/movelog"
	"github.com/palemoky/trash-castle/internal/protocol"
)

// Phase 回合阶段
type Phase int

const (
	PhaseDraw Phase = iota
	PhaseCollection
	PhaseBattle
)

var phaseNames = map[Phase]string{
	PhaseDraw:       "Draw",
	PhaseCollection: "Collection",
	PhaseBattle:     "Battle",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Valid 是否为三个阶段之一
func (p Phase) Valid() bool {
	return p >= PhaseDraw && p <= PhaseBattle
}

// NoWinner 对局未结束或平局
const NoWinner = -1

// pcgStream PCG 的第二个种子
const pcgStream = 0x7472617368636173

// GameState 一局游戏的全部状态
//
// 牌堆、手牌和弃牌堆都只属于 GameState，只能通过它的方法修改；
// 所有随机数都来自同一个可注入种子的生成器，给定种子和指令序列即可复现整局。
type GameState struct {
	id      string
	seed    uint64
	pcg     *rand.PCG
	rng     *rand.Rand
	deck    *card.Deck
	players []*card.Hand
	discard []card.Card

	phase   Phase
	current int
	turn    int
	over    bool
	winner  int

	recorder movelog.Recorder
	history  []protocol.Command
}

// Option 创建对局时的可选项
type Option func(*GameState)

// WithRecorder 设置出牌记录器
func WithRecorder(r movelog.Recorder) Option {
	return func(gs *GameState) {
		if r != nil {
			gs.recorder = r
		}
	}
}

// WithID 指定对局 ID（默认随机生成 UUID）
func WithID(id string) Option {
	return func(gs *GameState) {
		gs.id = id
	}
}

// New 按配置开局：建牌、洗牌并给每名玩家发起始手牌
func New(cfg config.GameConfig, opts ...Option) (*GameState, error) {
	if n := len(cfg.Players); n < config.MinPlayers || n > config.MaxPlayers {
		return nil, fmt.Errorf("invalid player count %d", n)
	}
	if cfg.Jokers < 1 || cfg.Jokers > card.MaxJokers {
		return nil, fmt.Errorf("invalid joker count %d", cfg.Jokers)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	pcg := rand.NewPCG(seed, pcgStream)

	health := cfg.StartingHealth
	if health <= 0 {
		health = card.StartingHealth
	}

	gs := &GameState{
		id:       uuid.NewString(),
		seed:     seed,
		pcg:      pcg,
		rng:      rand.New(pcg),
		winner:   NoWinner,
		recorder: movelog.Nop{},
	}
	for _, opt := range opts {
		opt(gs)
	}

	gs.deck = card.NewDeck(gs.rng, cfg.Jokers)
	for _, p := range cfg.Players {
		gs.players = append(gs.players, card.NewHand(p.Name, p.AI, health, cfg.MaxHandSize))
	}

	// 轮流发起始手牌
	for range cfg.StartingHandSize {
		for _, p := range gs.players {
			gs.drawInto(p)
		}
	}

	return gs, nil
}

// ID 对局 ID
func (gs *GameState) ID() string {
	return gs.id
}

// Seed 随机数种子
func (gs *GameState) Seed() uint64 {
	return gs.seed
}

// CurrentPhase 当前阶段
func (gs *GameState) CurrentPhase() Phase {
	return gs.phase
}

// CurrentPlayerIndex 当前玩家下标
func (gs *GameState) CurrentPlayerIndex() int {
	return gs.current
}

// CurrentPlayer 当前玩家的只读视图
func (gs *GameState) CurrentPlayer() PlayerView {
	return gs.view(gs.current)
}

// Players 所有玩家的只读视图
func (gs *GameState) Players() []PlayerView {
	views := make([]PlayerView, len(gs.players))
	for i := range gs.players {
		views[i] = gs.view(i)
	}
	return views
}

// Player 指定玩家的只读视图
func (gs *GameState) Player(i int) (PlayerView, bool) {
	if i < 0 || i >= len(gs.players) {
		return PlayerView{}, false
	}
	return gs.view(i), true
}

// Turn 已经结束的回合数
func (gs *GameState) Turn() int {
	return gs.turn
}

// DeckRemaining 牌堆剩余张数
func (gs *GameState) DeckRemaining() int {
	return gs.deck.Remaining()
}

// DiscardPile 弃牌堆副本
func (gs *GameState) DiscardPile() []card.Card {
	return append([]card.Card(nil), gs.discard...)
}

// IsOver 对局是否结束
func (gs *GameState) IsOver() bool {
	return gs.over
}

// Winner 获胜者下标；对局未结束或平局时 ok 为 false
func (gs *GameState) Winner() (int, bool) {
	if !gs.over || gs.winner == NoWinner {
		return NoWinner, false
	}
	return gs.winner, true
}

// History 已执行的指令，配合种子可复现整局
func (gs *GameState) History() []protocol.Command {
	return append([]protocol.Command(nil), gs.history...)
}

// PlayerView 玩家的只读数据
type PlayerView struct {
	Index      int
	Name       string
	IsAI       bool
	Castle     int
	Hand       []card.Card
	Collection []card.Card
	Eliminated bool
}

func (gs *GameState) view(i int) PlayerView {
	p := gs.players[i]
	return PlayerView{
		Index:      i,
		Name:       p.Name,
		IsAI:       p.IsAI,
		Castle:     p.Castle(),
		Hand:       p.Cards(),
		Collection: p.Collection(),
		Eliminated: p.IsEliminated(),
	}
}

func (gs *GameState) record(player int, action movelog.Action, c string, damage, target int) {
	m := movelog.Move{
		Turn:   gs.turn,
		Player: gs.players[player].Name,
		Action: action,
		Card:   c,
		Damage: damage,
	}
	if target >= 0 && target < len(gs.players) {
		m.Target = gs.players[target].Name
	}
	gs.recorder.Record(m)
}
