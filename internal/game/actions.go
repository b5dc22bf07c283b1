package game

import (
	"fmt"

	"github.com/palemoky/trash-castle/internal/apperrors"
	"github.com/palemoky/trash-castle/internal/game/card"
	"github.com/palemoky/trash-castle/internal/logger"
	"github.com/palemoky/trash-castle/internal/movelog"
	"github.com/palemoky/trash-castle/internal/protocol"
)

const (
	queenHeal   = 5 // Queen 回复量
	kingBonus   = 5 // King 给抽到的牌增加的伤害
	aceMultiple = 1 // Ace 每张手牌的伤害
)

// Effect 一次出牌的结算结果
type Effect struct {
	Card   card.Card      // 打出的牌
	Action movelog.Action // 特殊动作
	Damage int            // 对目标造成的伤害
	Target int            // 受到伤害的玩家，-1 表示没有

	Healed int // Queen

	Stolen    card.Card // Jack
	StoleFrom int

	Bonus       card.Card // King，BonusDamage 为 0 时表示牌堆已空
	BonusDamage int

	Redrawn int // Joker 重新发出的总张数

	TargetEliminated bool
	GameOver         bool
	Winner           int
}

// actionOf 每种牌对应的特殊动作
func actionOf(kind card.Kind) movelog.Action {
	switch kind {
	case card.Jack:
		return movelog.ActionSteal
	case card.Queen:
		return movelog.ActionHeal
	case card.King:
		return movelog.ActionBonusDraw
	case card.Ace:
		return movelog.ActionScale
	case card.Joker:
		return movelog.ActionReshuffle
	default:
		return movelog.ActionAttack
	}
}

// isTargeted 会对单个对手造成伤害的牌
//
// Queen 和 Joker 只执行自身效果；King 本身伤害为 0，收益体现在抽到的牌上。
func isTargeted(kind card.Kind) bool {
	switch kind {
	case card.Number, card.Jack, card.Ace:
		return true
	default:
		return false
	}
}

// UseCardAt 按手牌下标出牌
func (gs *GameState) UseCardAt(index, target int) (Effect, error) {
	if err := gs.requirePhase(PhaseBattle); err != nil {
		return Effect{}, err
	}
	c, err := gs.players[gs.current].CardAt(index)
	if err != nil {
		return Effect{}, err
	}
	return gs.UseCard(c.ID, target)
}

// UseCard 战斗阶段出牌
//
// target 为 protocol.NoTarget 时随机选择一名可选对手。
// 打出的牌先离开手牌再结算特殊动作；Jack 前置条件不满足时不消耗牌，状态不变。
func (gs *GameState) UseCard(cardID, target int) (Effect, error) {
	if err := gs.requirePhase(PhaseBattle); err != nil {
		return Effect{}, err
	}

	actorIdx := gs.current
	actor := gs.players[actorIdx]
	idx := actor.IndexOf(cardID)
	if idx < 0 {
		return Effect{}, apperrors.ErrCardNotInHand
	}
	c, _ := actor.CardAt(idx)

	if target != protocol.NoTarget && isTargeted(c.Kind) && !gs.isOpponent(actorIdx, target) {
		return Effect{}, apperrors.ErrInvalidTarget
	}
	gs.history = append(gs.history, protocol.UseCardCommand(cardID, target))

	effect := Effect{
		Card:      c,
		Action:    actionOf(c.Kind),
		Target:    protocol.NoTarget,
		StoleFrom: protocol.NoTarget,
		Winner:    NoWinner,
	}

	// Ace 按出牌前的手牌数计算（包含 Ace 自己）
	handSize := actor.CardCount()

	victim := protocol.NoTarget
	if c.Kind == card.Jack {
		var err error
		if victim, err = gs.stealTarget(actorIdx); err != nil {
			logger.LogInfo("%s: %s failed: %v", actor.Name, c.Name(), err)
			return Effect{}, err
		}
	}

	if _, err := actor.RemoveCardAt(idx); err != nil {
		panic(fmt.Sprintf("card %s vanished from hand: %v", c.Name(), err))
	}

	damage := gs.performSpecialAction(c, actorIdx, victim, handSize, &effect)
	gs.discard = append(gs.discard, c)

	if isTargeted(c.Kind) && damage > 0 {
		if target == protocol.NoTarget {
			target, _ = gs.GetRandomOpponent(actorIdx)
		}
		if target != protocol.NoTarget {
			health, _ := gs.DealDamage(target, damage)
			effect.Damage = damage
			effect.Target = target
			effect.TargetEliminated = health == 0
		}
	}

	gs.record(actorIdx, effect.Action, c.Name(), effect.Damage, effect.Target)

	if gs.checkGameOver() {
		effect.GameOver = true
		effect.Winner = gs.winner
	}
	return effect, nil
}

// stealTarget 选择 Jack 偷牌的对象
func (gs *GameState) stealTarget(actor int) (int, error) {
	victim, ok := gs.GetRandomOpponent(actor)
	if !ok {
		return protocol.NoTarget, apperrors.ErrNoEligibleOpponent
	}
	if gs.players[victim].CardCount() == 0 {
		return protocol.NoTarget, apperrors.ErrOpponentHandEmpty
	}
	return victim, nil
}

// performSpecialAction 按牌的种类执行特殊动作，返回这张牌本次的伤害
func (gs *GameState) performSpecialAction(c card.Card, actorIdx, victim, handSize int, effect *Effect) int {
	actor := gs.players[actorIdx]

	switch c.Kind {
	case card.Number:
		return c.Damage

	case card.Jack:
		stolen := gs.steal(actorIdx, victim)
		effect.Stolen = stolen
		effect.StoleFrom = victim
		logger.LogInfo("%s used Jack to steal %s from %s", actor.Name, stolen.Name(), gs.players[victim].Name)
		return c.Damage

	case card.Queen:
		before := actor.Castle()
		effect.Healed = actor.Heal(queenHeal) - before
		return 0

	case card.King:
		bonus, ok := gs.deck.Draw()
		if !ok {
			logger.LogInfo("%s used King but the deck is empty", actor.Name)
			return 0
		}
		// 出牌者刚打出 King，手牌一定还有空位
		if err := actor.AddCard(bonus); err != nil {
			panic(fmt.Sprintf("bonus card into %s: %v", actor.Name, err))
		}
		actor.BoostCard(bonus.ID, kingBonus)
		bonus.Damage += kingBonus
		effect.Bonus = bonus
		effect.BonusDamage = kingBonus
		return 0

	case card.Ace:
		// 被 King 加成过的 Ace 额外伤害按固定值叠加
		return handSize*aceMultiple + (c.Damage - c.BaseDamage())

	case card.Joker:
		effect.Redrawn = gs.reshuffleHands()
		return 0

	default:
		panic(fmt.Sprintf("unknown card kind: %s", c.Kind))
	}
}

// steal 从 victim 手牌中随机取一张交给 actor
func (gs *GameState) steal(actorIdx, victim int) card.Card {
	from := gs.players[victim]
	stolen, err := from.RemoveCardAt(gs.rng.IntN(from.CardCount()))
	if err != nil {
		panic(fmt.Sprintf("steal from %s: %v", from.Name, err))
	}
	// 出牌者刚打出 Jack，手牌一定还有空位
	if err := gs.players[actorIdx].AddCard(stolen); err != nil {
		panic(fmt.Sprintf("steal into %s: %v", gs.players[actorIdx].Name, err))
	}
	return stolen
}

// reshuffleHands 所有人的手牌放回牌堆洗一次，再按原张数重新发牌
//
// 收集格不受影响。返回重新发出的总张数。
func (gs *GameState) reshuffleHands() int {
	counts := make([]int, len(gs.players))
	for i, p := range gs.players {
		cards := p.ClearHand()
		counts[i] = len(cards)
		gs.deck.Add(cards...)
	}
	gs.deck.Shuffle()

	total := 0
	for i, p := range gs.players {
		for range counts[i] {
			if _, ok := gs.drawInto(p); !ok {
				panic("deck ran out while redrawing after reshuffle")
			}
			total++
		}
	}
	return total
}
