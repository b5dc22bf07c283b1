package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/trash-castle/internal/game"
	"github.com/palemoky/trash-castle/internal/game/card"
	"github.com/palemoky/trash-castle/internal/movelog"
	"github.com/palemoky/trash-castle/internal/storage"
)

const castleBarWidth = 20

// CardLabel 牌的短名称，如 "7♥"、"K♠"、"JK"
func CardLabel(c card.Card) string {
	switch c.Kind {
	case card.Number:
		return fmt.Sprintf("%d%s", c.Value, suitSymbols[c.Suit])
	case card.Joker:
		return "JK"
	default:
		return faceLetters[c.Kind] + suitSymbols[c.Suit]
	}
}

// RenderCard 带颜色的牌面，伤害被加成过时附带当前伤害
func RenderCard(c card.Card) string {
	label := CardLabel(c)
	if c.Damage != c.BaseDamage() {
		label = fmt.Sprintf("%s+%d", label, c.Damage-c.BaseDamage())
	}
	return cardStyle(c).Render(label)
}

// RenderHand 渲染手牌，numbered 为 true 时标出下标供输入选择
func RenderHand(hand []card.Card, numbered bool) string {
	if len(hand) == 0 {
		return grayStyle.Render("(no cards)")
	}
	parts := make([]string, len(hand))
	for i, c := range hand {
		if numbered {
			parts[i] = fmt.Sprintf("%d:%s", i+1, RenderCard(c))
		} else {
			parts[i] = RenderCard(c)
		}
	}
	return strings.Join(parts, " ")
}

// RenderCollection 按点数 2..10 渲染收集格，空位显示为 "·"
func RenderCollection(collection []card.Card) string {
	byValue := make(map[int]card.Card, len(collection))
	for _, c := range collection {
		byValue[c.Value] = c
	}
	slots := make([]string, 0, card.CollectionSize)
	for v := card.MinValue; v <= card.MaxValue; v++ {
		if c, ok := byValue[v]; ok {
			slots = append(slots, RenderCard(c))
		} else {
			slots = append(slots, grayStyle.Render("·"))
		}
	}
	return strings.Join(slots, " ")
}

// CastleBar 城堡血量条
func CastleBar(health, full int) string {
	if full <= 0 {
		full = card.StartingHealth
	}
	filled := min(castleBarWidth, max(health, 0)*castleBarWidth/full)
	if health > 0 && filled == 0 {
		filled = 1
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", max(castleBarWidth-filled, 0))
}

// RenderPlayer 单个玩家的信息框；hideHand 为 true 时只显示张数
func RenderPlayer(p game.PlayerView, current, hideHand bool) string {
	name := TruncateName(p.Name, 16)
	if p.IsAI {
		name += " (AI)"
	}
	icon := CastleIcon
	if p.Eliminated {
		icon = RubbleIcon
	}
	header := fmt.Sprintf("%s %s", icon, name)
	if current {
		header = currentStyle.Render(CurrentIcon + " " + header)
	}

	hand := RenderHand(p.Hand, false)
	if hideHand {
		hand = fmt.Sprintf("%d cards", len(p.Hand))
	}

	var sb strings.Builder
	sb.WriteString(header + "\n")
	fmt.Fprintf(&sb, "Castle %s %d\n", CastleBar(p.Castle, card.StartingHealth), p.Castle)
	fmt.Fprintf(&sb, "Grid   %s\n", RenderCollection(p.Collection))
	fmt.Fprintf(&sb, "Hand   %s", hand)
	return boxStyle.Render(sb.String())
}

// RenderBoard 整个牌桌；viewer 为观看者下标，其他人类玩家的手牌被隐藏
func RenderBoard(gs *game.GameState, viewer int) string {
	var sb strings.Builder
	title := fmt.Sprintf("Turn %d · %s phase · deck %d · discard %d",
		gs.Turn()+1, gs.CurrentPhase(), gs.DeckRemaining(), len(gs.DiscardPile()))
	sb.WriteString(titleStyle(title) + "\n")

	for _, p := range gs.Players() {
		hide := viewer >= 0 && p.Index != viewer && !gs.IsOver()
		sb.WriteString(RenderPlayer(p, p.Index == gs.CurrentPlayerIndex() && !gs.IsOver(), hide) + "\n")
	}
	return docStyle.Render(sb.String())
}

// RenderEffect 一次出牌的结算说明
func RenderEffect(gs *game.GameState, e game.Effect) string {
	actor := gs.CurrentPlayer().Name
	name := func(i int) string {
		if p, ok := gs.Player(i); ok {
			return p.Name
		}
		return "?"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s plays %s", actor, RenderCard(e.Card))
	switch e.Action {
	case movelog.ActionSteal:
		fmt.Fprintf(&sb, ", steals %s from %s", RenderCard(e.Stolen), name(e.StoleFrom))
	case movelog.ActionHeal:
		fmt.Fprintf(&sb, ", castle +%d", e.Healed)
	case movelog.ActionBonusDraw:
		if e.BonusDamage == 0 {
			sb.WriteString(", but the deck is empty")
		} else {
			fmt.Fprintf(&sb, ", draws %s with +%d damage", RenderCard(e.Bonus), e.BonusDamage)
		}
	case movelog.ActionReshuffle:
		fmt.Fprintf(&sb, ", all hands reshuffled (%d cards dealt)", e.Redrawn)
	}
	if e.Target >= 0 {
		fmt.Fprintf(&sb, ", %d damage to %s", e.Damage, name(e.Target))
		if e.TargetEliminated {
			sb.WriteString(" (castle destroyed)")
		}
	}
	return sb.String()
}

// RenderGameOver 对局结果
func RenderGameOver(gs *game.GameState) string {
	msg := "Game over: no winner, castles are tied"
	if winner, ok := gs.Winner(); ok {
		p, _ := gs.Player(winner)
		msg = fmt.Sprintf("%s %s wins with %d castle health!", WinnerIcon, p.Name, p.Castle)
	}
	return boxStyle.Render(titleStyle(msg))
}

// RenderStandings 胜场排行榜
func RenderStandings(entries []storage.WinnerEntry) string {
	var sb strings.Builder
	sb.WriteString(WinnerIcon + " Top winners\n")
	sb.WriteString(strings.Repeat("─", 30) + "\n")
	if len(entries) == 0 {
		sb.WriteString(grayStyle.Render("(no finished matches yet)"))
		return boxStyle.Render(sb.String())
	}
	for _, e := range entries {
		fmt.Fprintf(&sb, "%2d. %-16s %4d\n", e.Rank, TruncateName(e.Name, 16), e.Wins)
	}
	return boxStyle.Render(strings.TrimSuffix(sb.String(), "\n"))
}

// RenderMoves 最近的出牌记录
func RenderMoves(moves []movelog.Move, limit int) string {
	if limit > 0 && len(moves) > limit {
		moves = moves[len(moves)-limit:]
	}
	lines := make([]string, len(moves))
	for i, m := range moves {
		lines[i] = grayStyle.Render(m.String())
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// RenderPrompt 提示语
func RenderPrompt(text string) string {
	return promptStyle.Render(text)
}

// RenderError 错误提示
func RenderError(err error) string {
	return errorStyle.Render(err.Error())
}
