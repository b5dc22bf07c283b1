package game

import (
	"errors"

	"github.com/palemoky/trash-castle/internal/apperrors"
	"github.com/palemoky/trash-castle/internal/game/card"
	"github.com/palemoky/trash-castle/internal/logger"
	"github.com/palemoky/trash-castle/internal/movelog"
	"github.com/palemoky/trash-castle/internal/protocol"
)

// drawInto 给玩家抽一张牌；手牌满时该牌进入弃牌堆
func (gs *GameState) drawInto(p *card.Hand) (card.Card, bool) {
	c, ok := gs.deck.Draw()
	if !ok {
		logger.LogInfo("deck is empty, %s draws nothing", p.Name)
		return card.Card{}, false
	}
	if err := p.AddCard(c); err != nil {
		logger.LogInfo("%s hand is full, %s discarded", p.Name, c.Name())
		gs.discard = append(gs.discard, c)
	}
	return c, true
}

func (gs *GameState) requirePhase(phase Phase) error {
	if gs.over {
		return apperrors.ErrGameOver
	}
	if gs.phase != phase {
		return apperrors.ErrWrongPhase
	}
	return nil
}

// DrawCardForCurrentPlayer 抽牌阶段：当前玩家抽一张牌，然后进入收集阶段
//
// 牌堆为空不是错误，drawn 为 false，阶段照常推进。
func (gs *GameState) DrawCardForCurrentPlayer() (c card.Card, drawn bool, err error) {
	if err := gs.requirePhase(PhaseDraw); err != nil {
		return card.Card{}, false, err
	}
	gs.history = append(gs.history, protocol.DrawCommand())

	c, drawn = gs.drawInto(gs.players[gs.current])
	name := ""
	if drawn {
		name = c.Name()
	}
	gs.record(gs.current, movelog.ActionDraw, name, 0, protocol.NoTarget)
	gs.phase = PhaseCollection
	return c, drawn, nil
}

// CollectionResult 收集阶段的结果
type CollectionResult struct {
	Collected []card.Card // 放入收集格
	ToHand    []card.Card // 特殊牌进入手牌
	Discarded []card.Card // 重复点数或手牌已满
}

// RunCollectionPhase 收集阶段：不断抽牌直到收集格填满或牌堆耗尽，然后进入战斗阶段
//
// 数字牌点数空缺时放入收集格，重复的丢弃；特殊牌进入手牌留到战斗阶段使用。
func (gs *GameState) RunCollectionPhase() (CollectionResult, error) {
	var result CollectionResult
	if err := gs.requirePhase(PhaseCollection); err != nil {
		return result, err
	}
	gs.history = append(gs.history, protocol.CollectCommand())

	p := gs.players[gs.current]
	for !p.CollectionFull() {
		c, ok := gs.deck.Draw()
		if !ok {
			logger.LogInfo("deck is empty, collection phase of %s ends", p.Name)
			break
		}

		if c.Kind != card.Number {
			if err := p.AddCard(c); err != nil {
				gs.discard = append(gs.discard, c)
				result.Discarded = append(result.Discarded, c)
				continue
			}
			result.ToHand = append(result.ToHand, c)
			continue
		}

		if p.HasNumberInCollection(c.Value) {
			logger.LogInfo("duplicate number %d discarded", c.Value)
			gs.discard = append(gs.discard, c)
			result.Discarded = append(result.Discarded, c)
			continue
		}

		if p.AddToCollection(c) != card.PlacedInCollection {
			panic("collection slot reported free but card was not placed: " + c.Name())
		}
		result.Collected = append(result.Collected, c)
		gs.record(gs.current, movelog.ActionCollect, c.Name(), 0, protocol.NoTarget)
	}

	gs.phase = PhaseBattle
	return result, nil
}

// EndTurn 结束当前回合，轮到下一位未出局的玩家
func (gs *GameState) EndTurn() error {
	if err := gs.requirePhase(PhaseBattle); err != nil {
		return err
	}
	gs.history = append(gs.history, protocol.EndTurnCommand())

	gs.record(gs.current, movelog.ActionEndTurn, "", 0, protocol.NoTarget)
	gs.turn++
	gs.phase = PhaseDraw
	if gs.checkGameOver() {
		return nil
	}
	gs.current = gs.nextAlive(gs.current)
	if gs.isStalled() {
		gs.endStalled()
	}
	return nil
}

// nextAlive 从 from 之后按顺序找到下一位城堡未被摧毁的玩家
func (gs *GameState) nextAlive(from int) int {
	n := len(gs.players)
	for step := 1; step <= n; step++ {
		i := (from + step) % n
		if !gs.players[i].IsEliminated() {
			return i
		}
	}
	return from
}

// aliveCount 城堡未被摧毁的玩家数
func (gs *GameState) aliveCount() (count, last int) {
	last = NoWinner
	for i, p := range gs.players {
		if !p.IsEliminated() {
			count++
			last = i
		}
	}
	return count, last
}

// checkGameOver 只剩一名玩家时结束对局
func (gs *GameState) checkGameOver() bool {
	if gs.over {
		return true
	}
	count, last := gs.aliveCount()
	if count > 1 {
		return false
	}
	gs.over = true
	gs.winner = last
	if last != NoWinner {
		logger.LogInfo("match %s over, winner: %s", gs.id, gs.players[last].Name)
	}
	return true
}

// isStalled 牌堆已空且没有任何一张牌还能打出，对局无法再推进
//
// 只剩 Jack 时，至少要有两名存活玩家持有手牌才偷得到牌。
func (gs *GameState) isStalled() bool {
	if !gs.deck.IsEmpty() {
		return false
	}
	holders := 0
	for _, p := range gs.players {
		if p.IsEliminated() || p.CardCount() == 0 {
			continue
		}
		for _, c := range p.Cards() {
			if c.Kind != card.Jack {
				return false
			}
		}
		holders++
	}
	return holders < 2
}

// endStalled 僵局时城堡血量最高者获胜，并列最高则为平局
func (gs *GameState) endStalled() {
	best, winner := -1, NoWinner
	for i, p := range gs.players {
		switch {
		case p.Castle() > best:
			best, winner = p.Castle(), i
		case p.Castle() == best:
			winner = NoWinner
		}
	}
	gs.over = true
	gs.winner = winner
	logger.LogInfo("match %s stalled, no playable card left", gs.id)
}

// GetOpponents 返回除 player 以外所有城堡未被摧毁的玩家下标
func (gs *GameState) GetOpponents(player int) []int {
	var opponents []int
	for i, p := range gs.players {
		if i != player && !p.IsEliminated() {
			opponents = append(opponents, i)
		}
	}
	return opponents
}

// GetRandomOpponent 从可选对手中等概率抽取一名，没有对手时 ok 为 false
func (gs *GameState) GetRandomOpponent(player int) (int, bool) {
	opponents := gs.GetOpponents(player)
	if len(opponents) == 0 {
		return protocol.NoTarget, false
	}
	return opponents[gs.rng.IntN(len(opponents))], true
}

// isOpponent 判断 target 是否为 player 的可选对手
func (gs *GameState) isOpponent(player, target int) bool {
	return target >= 0 && target < len(gs.players) &&
		target != player && !gs.players[target].IsEliminated()
}

// DealDamage 对目标城堡造成伤害，血量最低为 0，返回新的血量
func (gs *GameState) DealDamage(target, amount int) (int, error) {
	if target < 0 || target >= len(gs.players) {
		return 0, apperrors.ErrInvalidTarget
	}
	p := gs.players[target]
	before := p.Castle()
	after := p.TakeDamage(amount)
	if before > 0 && after == 0 {
		logger.LogInfo("%s's castle has been destroyed", p.Name)
	}
	return after, nil
}

// isJackFailure Jack 偷牌前置条件不满足，属于正常的失败结果
func isJackFailure(err error) bool {
	return errors.Is(err, apperrors.ErrNoEligibleOpponent) || errors.Is(err, apperrors.ErrOpponentHandEmpty)
}
