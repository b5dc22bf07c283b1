package game

import (
	"github.com/palemoky/trash-castle/internal/apperrors"
	"github.com/palemoky/trash-castle/internal/protocol"
)

// PlayAITurn 自动完成当前玩家剩余的回合
//
// 战斗阶段按手牌顺序打出回合开始时持有的每一张牌，目标随机；
// Jack 偷牌失败时跳过该牌。
func (gs *GameState) PlayAITurn() error {
	if gs.over {
		return apperrors.ErrGameOver
	}

	if gs.phase == PhaseDraw {
		if _, _, err := gs.DrawCardForCurrentPlayer(); err != nil {
			return err
		}
	}
	if gs.phase == PhaseCollection {
		if _, err := gs.RunCollectionPhase(); err != nil {
			return err
		}
	}

	for _, c := range gs.players[gs.current].Cards() {
		if gs.over {
			return nil
		}
		// Joker 会换掉整手牌，已经不在手里的牌直接跳过
		if !gs.players[gs.current].HasCard(c.ID) {
			continue
		}
		if _, err := gs.UseCard(c.ID, protocol.NoTarget); err != nil && !isJackFailure(err) {
			return err
		}
	}

	if gs.over {
		return nil
	}
	return gs.EndTurn()
}

// RunAI 连续执行 AI 回合直到对局结束或轮到非 AI 玩家，maxTurns 为 0 表示不限
func (gs *GameState) RunAI(maxTurns int) error {
	for played := 0; !gs.over && gs.players[gs.current].IsAI; played++ {
		if maxTurns > 0 && played >= maxTurns {
			return nil
		}
		if err := gs.PlayAITurn(); err != nil {
			return err
		}
	}
	return nil
}
