package protocol

// 错误码
const (
	ErrCodeUnknown         = 1000
	ErrCodeInvalidCommand  = 1001 // 无法识别的指令
	ErrCodeInvalidSnapshot = 1002 // 存档数据损坏
	ErrCodeDeckEmpty       = 2001
	ErrCodeHandFull        = 2002
	ErrCodeInvalidCardIdx  = 2003
	ErrCodeCardNotInHand   = 2004
	ErrCodeNoOpponent      = 3001 // 没有可选的对手
	ErrCodeOpponentNoCards = 3002 // 对手手牌为空
	ErrCodeInvalidTarget   = 3003
	ErrCodeWrongPhase      = 4001
	ErrCodeGameOver        = 4002
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:         "unknown error",
	ErrCodeInvalidCommand:  "invalid command",
	ErrCodeInvalidSnapshot: "invalid snapshot",
	ErrCodeDeckEmpty:       "deck is empty",
	ErrCodeHandFull:        "hand is full",
	ErrCodeInvalidCardIdx:  "invalid card index",
	ErrCodeCardNotInHand:   "card is not in hand",
	ErrCodeNoOpponent:      "no eligible opponent",
	ErrCodeOpponentNoCards: "opponent hand is empty",
	ErrCodeInvalidTarget:   "target is not an eligible opponent",
	ErrCodeWrongPhase:      "action not allowed in current phase",
	ErrCodeGameOver:        "match is over",
}
