// Package movelog records one entry per resolved player action.
package movelog

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Action 动作类型
type Action string

const (
	ActionDraw      Action = "draw"
	ActionCollect   Action = "collect"
	ActionAttack    Action = "attack"     // 数字牌
	ActionSteal     Action = "steal"      // Jack
	ActionHeal      Action = "heal"       // Queen
	ActionBonusDraw Action = "bonus_draw" // King
	ActionScale     Action = "scale"      // Ace
	ActionReshuffle Action = "reshuffle"  // Joker
	ActionEndTurn   Action = "end_turn"
)

// Move 一条出牌记录
type Move struct {
	Seq    int       `json:"seq"`
	Time   time.Time `json:"time"`
	Turn   int       `json:"turn"`
	Player string    `json:"player"`
	Action Action    `json:"action"`
	Card   string    `json:"card,omitempty"`
	Damage int       `json:"damage"`
	Target string    `json:"target,omitempty"`
}

// String 格式化为 "[15:04:05] Alice steal Jack of Hearts (0)"
func (m Move) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %s %s", m.Time.Format("15:04:05"), m.Player, m.Action)
	if m.Card != "" {
		fmt.Fprintf(&sb, " %s", m.Card)
	}
	if m.Target != "" {
		fmt.Fprintf(&sb, " -> %s", m.Target)
	}
	if m.Damage != 0 {
		fmt.Fprintf(&sb, " (%d)", m.Damage)
	}
	return sb.String()
}

// Recorder 接收引擎产生的记录，如何保存由实现决定
type Recorder interface {
	Record(m Move)
}

// MemoryLog 内存中的记录，补充序号和时间
type MemoryLog struct {
	moves []Move
	seq   int
	now   func() time.Time

	mu sync.Mutex
}

// NewMemoryLog 创建内存记录
func NewMemoryLog() *MemoryLog {
	return &MemoryLog{now: time.Now}
}

func (l *MemoryLog) Record(m Move) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	m.Seq = l.seq
	if m.Time.IsZero() {
		m.Time = l.now()
	}
	l.moves = append(l.moves, m)
}

// All 返回所有记录的副本
func (l *MemoryLog) All() []Move {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Move(nil), l.moves...)
}

// OfAction 返回某一类动作的记录
func (l *MemoryLog) OfAction(a Action) []Move {
	l.mu.Lock()
	defer l.mu.Unlock()
	var result []Move
	for _, m := range l.moves {
		if m.Action == a {
			result = append(result, m)
		}
	}
	return result
}

// Last 最后一条记录，没有记录时返回零值
func (l *MemoryLog) Last() Move {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.moves) == 0 {
		return Move{}
	}
	return l.moves[len(l.moves)-1]
}

// Lines 每条记录一行
func (l *MemoryLog) Lines() []string {
	moves := l.All()
	lines := make([]string, len(moves))
	for i, m := range moves {
		lines[i] = m.String()
	}
	return lines
}

// Clear 清空记录
func (l *MemoryLog) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.moves = nil
	l.seq = 0
}

// MultiRecorder 把记录分发给多个 Recorder
type MultiRecorder []Recorder

func (mr MultiRecorder) Record(m Move) {
	for _, r := range mr {
		if r != nil {
			r.Record(m)
		}
	}
}

// Nop 丢弃所有记录
type Nop struct{}

func (Nop) Record(Move) {}
