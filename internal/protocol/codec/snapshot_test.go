package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/palemoky/trash-castle/internal/apperrors"
	"github.com/palemoky/trash-castle/internal/config"
	"github.com/palemoky/trash-castle/internal/game"
)

func playedMatch(t *testing.T, turns int) *game.GameState {
	t.Helper()
	cfg := config.GameConfig{
		Players: []config.PlayerConfig{
			{Name: "Alice", AI: true},
			{Name: "Bob", AI: true},
			{Name: "Carol", AI: true},
		},
		StartingHealth:   50,
		StartingHandSize: 5,
		Jokers:           2,
		Seed:             8,
	}
	gs, err := game.New(cfg)
	require.NoError(t, err)
	require.NoError(t, gs.RunAI(turns))
	return gs
}

func TestSnapshotRoundTrip(t *testing.T) {
	t.Parallel()

	for _, turns := range []int{1, 3, 0} {
		gs := playedMatch(t, turns)
		s := gs.Snapshot()

		data := EncodeSnapshot(s)
		decoded, err := DecodeSnapshot(data)
		require.NoError(t, err)
		assert.Equal(t, s, decoded)

		restored, err := game.Restore(decoded)
		require.NoError(t, err)
		assert.Equal(t, s, restored.Snapshot())
	}
}

func TestEncodeSnapshot_DoesNotAliasPool(t *testing.T) {
	t.Parallel()

	s := playedMatch(t, 2).Snapshot()
	first := EncodeSnapshot(s)
	want := append([]byte(nil), first...)

	for range 10 {
		EncodeSnapshot(s)
	}
	assert.Equal(t, want, first)
}

func TestDecodeSnapshot_SkipsUnknownFields(t *testing.T) {
	t.Parallel()

	s := playedMatch(t, 1).Snapshot()
	data := EncodeSnapshot(s)
	data = protowire.AppendTag(data, 99, protowire.BytesType)
	data = protowire.AppendString(data, "future")
	data = protowire.AppendTag(data, 100, protowire.Fixed32Type)
	data = protowire.AppendFixed32(data, 7)

	decoded, err := DecodeSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, s, decoded)
}

func TestDecodeSnapshot_Errors(t *testing.T) {
	t.Parallel()

	valid := EncodeSnapshot(playedMatch(t, 1).Snapshot())

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"missing header", []byte{0x0a, 0x01, 'x'}},
		{"truncated", valid[:len(valid)-3]},
		{"wrong wire type", protowire.AppendVarint(protowire.AppendTag(append([]byte(nil), magic...), fieldID, protowire.VarintType), 1)},
		{"bad tag", append(append([]byte(nil), magic...), 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := DecodeSnapshot(tt.data)
			assert.ErrorIs(t, err, apperrors.ErrInvalidSnapshot)
		})
	}
}
