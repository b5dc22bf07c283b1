//go:build !production

package testutil

import (
	"github.com/stretchr/testify/mock"

	"github.com/palemoky/trash-castle/internal/movelog"
)

// MockRecorder 出牌记录 mock
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(move movelog.Move) {
	m.Called(move)
}

// MoveMatching 按动作和玩家匹配记录
func MoveMatching(player string, action movelog.Action) any {
	return mock.MatchedBy(func(m movelog.Move) bool {
		return m.Player == player && m.Action == action
	})
}
