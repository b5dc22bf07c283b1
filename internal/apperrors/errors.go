package apperrors

import (
	"errors"

	"github.com/palemoky/trash-castle/internal/protocol"
)

// GameError 规则引擎返回的可恢复错误
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

func newError(code int) *GameError {
	return &GameError{Code: code, Message: protocol.ErrorMessages[code]}
}

// 预定义错误
var (
	ErrDeckEmpty          = newError(protocol.ErrCodeDeckEmpty)
	ErrHandFull           = newError(protocol.ErrCodeHandFull)
	ErrInvalidCardIndex   = newError(protocol.ErrCodeInvalidCardIdx)
	ErrCardNotInHand      = newError(protocol.ErrCodeCardNotInHand)
	ErrNoEligibleOpponent = newError(protocol.ErrCodeNoOpponent)
	ErrOpponentHandEmpty  = newError(protocol.ErrCodeOpponentNoCards)
	ErrInvalidTarget      = newError(protocol.ErrCodeInvalidTarget)
	ErrWrongPhase         = newError(protocol.ErrCodeWrongPhase)
	ErrGameOver           = newError(protocol.ErrCodeGameOver)
	ErrInvalidSnapshot    = newError(protocol.ErrCodeInvalidSnapshot)
	ErrInvalidCommand     = newError(protocol.ErrCodeInvalidCommand)
)

// CodeOf 提取错误码，非 GameError 返回 ErrCodeUnknown
func CodeOf(err error) int {
	var ge *GameError
	if errors.As(err, &ge) {
		return ge.Code
	}
	return protocol.ErrCodeUnknown
}
