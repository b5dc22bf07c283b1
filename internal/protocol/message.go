package protocol

// Command 玩家指令（一次外部提交的操作）
//
// 对局完全由种子和指令序列决定，网络层只需把指令排队后依次 Apply。
type Command struct {
	Type   CommandType `json:"type"`
	CardID int         `json:"card_id,omitempty"`
	Target int         `json:"target"` // 目标玩家下标，-1 表示随机
}

// CommandType 指令类型
type CommandType string

const (
	CmdDraw    CommandType = "draw"     // 抽牌阶段
	CmdCollect CommandType = "collect"  // 收集阶段
	CmdUseCard CommandType = "use_card" // 出牌
	CmdEndTurn CommandType = "end_turn" // 结束回合
)

// Valid 判断指令类型是否合法
func (t CommandType) Valid() bool {
	switch t {
	case CmdDraw, CmdCollect, CmdUseCard, CmdEndTurn:
		return true
	default:
		return false
	}
}

// NoTarget 表示未指定目标
const NoTarget = -1

// DrawCommand 抽牌指令
func DrawCommand() Command { return Command{Type: CmdDraw, Target: NoTarget} }

// CollectCommand 收集指令
func CollectCommand() Command { return Command{Type: CmdCollect, Target: NoTarget} }

// UseCardCommand 出牌指令
func UseCardCommand(cardID, target int) Command {
	return Command{Type: CmdUseCard, CardID: cardID, Target: target}
}

// EndTurnCommand 结束回合指令
func EndTurnCommand() Command { return Command{Type: CmdEndTurn, Target: NoTarget} }
