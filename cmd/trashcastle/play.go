package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/palemoky/trash-castle/internal/apperrors"
	"github.com/palemoky/trash-castle/internal/game"
	"github.com/palemoky/trash-castle/internal/logger"
	"github.com/palemoky/trash-castle/internal/movelog"
	"github.com/palemoky/trash-castle/internal/protocol"
	"github.com/palemoky/trash-castle/internal/storage"
	"github.com/palemoky/trash-castle/internal/view"
)

const helpText = "输入 <牌号> [目标玩家号] 出牌，e 结束回合，b 查看牌桌，q 保存并退出"

var errQuit = errors.New("quit")

// session 终端上的一局游戏
type session struct {
	gs      *game.GameState
	store   *storage.RedisStore // 可以为 nil
	moves   *movelog.MemoryLog
	in      *bufio.Scanner
	out     io.Writer
	verbose bool

	shown int // 已经打印过的出牌记录数
}

func (s *session) run() error {
	for !s.gs.IsOver() {
		cur := s.gs.CurrentPlayer()
		var err error
		if cur.IsAI {
			fmt.Fprintln(s.out, view.RenderPrompt(cur.Name+" is thinking..."))
			err = s.gs.PlayAITurn()
			s.flushMoves()
		} else {
			err = s.humanTurn()
		}
		if errors.Is(err, errQuit) {
			s.save()
			fmt.Fprintf(s.out, "对局已保存，ID: %s\n", s.gs.ID())
			return nil
		}
		if err != nil {
			return err
		}
		s.afterTurn()
	}

	fmt.Fprintln(s.out, view.RenderBoard(s.gs, -1))
	fmt.Fprintln(s.out, view.RenderGameOver(s.gs))
	s.finish()
	return nil
}

func (s *session) humanTurn() error {
	gs := s.gs
	defer func() { s.shown = len(s.moves.All()) }()

	fmt.Fprintln(s.out, view.RenderBoard(gs, gs.CurrentPlayerIndex()))

	if gs.CurrentPhase() == game.PhaseDraw {
		c, drawn, err := gs.DrawCardForCurrentPlayer()
		if err != nil {
			return err
		}
		if drawn {
			fmt.Fprintf(s.out, "You drew %s\n", view.RenderCard(c))
		} else {
			fmt.Fprintln(s.out, view.RenderError(apperrors.ErrDeckEmpty))
		}
	}

	if gs.CurrentPhase() == game.PhaseCollection {
		res, err := gs.RunCollectionPhase()
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Collected %s | to hand %s | discarded %d\n",
			view.RenderHand(res.Collected, false), view.RenderHand(res.ToHand, false), len(res.Discarded))
	}

	for !gs.IsOver() && gs.CurrentPhase() == game.PhaseBattle {
		fmt.Fprintf(s.out, "Hand %s\n", view.RenderHand(gs.CurrentPlayer().Hand, true))
		fmt.Fprintln(s.out, view.RenderPrompt(helpText))

		if !s.in.Scan() {
			return errQuit
		}
		a, err := parseAction(s.in.Text())
		if err != nil {
			fmt.Fprintln(s.out, view.RenderError(err))
			continue
		}

		switch a.kind {
		case actionQuit:
			return errQuit
		case actionEnd:
			return gs.EndTurn()
		case actionBoard:
			fmt.Fprintln(s.out, view.RenderBoard(gs, gs.CurrentPlayerIndex()))
		case actionPlay:
			e, err := gs.UseCardAt(a.index, a.target)
			if err != nil {
				fmt.Fprintln(s.out, view.RenderError(err))
				continue
			}
			fmt.Fprintln(s.out, view.RenderEffect(gs, e))
		}
	}
	return nil
}

// flushMoves 打印上次之后新增的出牌记录
func (s *session) flushMoves() {
	all := s.moves.All()
	if s.shown < len(all) {
		fmt.Fprintln(s.out, view.RenderMoves(all[s.shown:], 0))
	}
	s.shown = len(all)
}

func (s *session) afterTurn() {
	if s.verbose {
		if err := s.gs.Verify(); err != nil {
			logger.LogError("match %s state is inconsistent: %v", s.gs.ID(), err)
		}
	}
	s.save()
}

func (s *session) save() {
	if s.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := s.store.SaveMatch(ctx, s.gs.Snapshot()); err != nil {
		logger.LogError("save match %s: %v", s.gs.ID(), err)
	}
}

func (s *session) finish() {
	if s.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if winner, ok := s.gs.Winner(); ok {
		p, _ := s.gs.Player(winner)
		if _, err := s.store.RecordWin(ctx, p.Name); err != nil {
			logger.LogError("record win for %s: %v", p.Name, err)
		}
	}
	entries, err := s.store.TopWinners(ctx, 5)
	if err != nil {
		logger.LogError("load standings: %v", err)
		return
	}
	fmt.Fprintln(s.out, view.RenderStandings(entries))
}

type actionKind int

const (
	actionPlay actionKind = iota
	actionEnd
	actionBoard
	actionQuit
)

// action 一行输入解析出的操作，index 和 target 已转换为 0 起始
type action struct {
	kind   actionKind
	index  int
	target int
}

func parseAction(line string) (action, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return action{}, errors.New(helpText)
	}

	switch fields[0] {
	case "e", "end":
		return action{kind: actionEnd}, nil
	case "b", "board":
		return action{kind: actionBoard}, nil
	case "q", "quit":
		return action{kind: actionQuit}, nil
	}

	if len(fields) > 2 {
		return action{}, fmt.Errorf("too many arguments: %q", line)
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 1 {
		return action{}, fmt.Errorf("unknown command %q", fields[0])
	}
	a := action{kind: actionPlay, index: n - 1, target: protocol.NoTarget}
	if len(fields) == 2 {
		t, err := strconv.Atoi(fields[1])
		if err != nil || t < 1 {
			return action{}, fmt.Errorf("invalid target %q", fields[1])
		}
		a.target = t - 1
	}
	return a, nil
}
