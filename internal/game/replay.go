package game

import (
	"errors"
	"fmt"

	"github.com/palemoky/trash-castle/internal/apperrors"
	"github.com/palemoky/trash-castle/internal/config"
	"github.com/palemoky/trash-castle/internal/protocol"
)

// Apply 执行一条外部提交的指令
func (gs *GameState) Apply(cmd protocol.Command) error {
	if !cmd.Type.Valid() {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidCommand, cmd.Type)
	}
	switch cmd.Type {
	case protocol.CmdDraw:
		_, _, err := gs.DrawCardForCurrentPlayer()
		return err
	case protocol.CmdCollect:
		_, err := gs.RunCollectionPhase()
		return err
	case protocol.CmdUseCard:
		_, err := gs.UseCard(cmd.CardID, cmd.Target)
		return err
	default:
		return gs.EndTurn()
	}
}

// Replay 用相同的种子和指令序列重建对局
//
// 指令序列通常来自 History()，其中可能包含当时就失败的 Jack 出牌，重放时同样失败。
func Replay(cfg config.GameConfig, cmds []protocol.Command, opts ...Option) (*GameState, error) {
	if cfg.Seed == 0 {
		return nil, errors.New("replay requires a fixed seed")
	}
	gs, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	for i, cmd := range cmds {
		if err := gs.Apply(cmd); err != nil && !isJackFailure(err) {
			return nil, fmt.Errorf("replay command %d (%s): %w", i, cmd.Type, err)
		}
	}
	return gs, nil
}
