// Package codec encodes match snapshots in the protobuf wire format.
//
// Field numbers are fixed; unknown fields are skipped on decode so older
// readers accept snapshots written by newer versions.
package codec

import (
	"bytes"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/palemoky/trash-castle/internal/apperrors"
	"github.com/palemoky/trash-castle/internal/game"
	"github.com/palemoky/trash-castle/internal/game/card"
	"github.com/palemoky/trash-castle/internal/protocol"
)

// Snapshot 字段号
const (
	fieldID          protowire.Number = 1
	fieldSeed        protowire.Number = 2
	fieldRNG         protowire.Number = 3
	fieldJokers      protowire.Number = 4
	fieldMaxHandSize protowire.Number = 5
	fieldPhase       protowire.Number = 6
	fieldCurrent     protowire.Number = 7
	fieldTurn        protowire.Number = 8
	fieldOver        protowire.Number = 9
	fieldWinner      protowire.Number = 10
	fieldDeck        protowire.Number = 11
	fieldDiscard     protowire.Number = 12
	fieldPlayers     protowire.Number = 13
	fieldHistory     protowire.Number = 14
)

// Card 字段号
const (
	cardID     protowire.Number = 1
	cardKind   protowire.Number = 2
	cardSuit   protowire.Number = 3
	cardValue  protowire.Number = 4
	cardDamage protowire.Number = 5
)

// PlayerSnapshot 字段号
const (
	playerName       protowire.Number = 1
	playerAI         protowire.Number = 2
	playerCastle     protowire.Number = 3
	playerHand       protowire.Number = 4
	playerCollection protowire.Number = 5
)

// Command 字段号
const (
	commandType   protowire.Number = 1
	commandCardID protowire.Number = 2
	commandTarget protowire.Number = 3
)

// magic 编码结果的前缀，用于快速识别格式
var magic = []byte("TC1")

// EncodeSnapshot 将快照编码为二进制
func EncodeSnapshot(s game.Snapshot) []byte {
	b, release := scratch(1024)
	defer release()

	b = append(b, magic...)
	b = appendString(b, fieldID, s.ID)
	b = appendUint(b, fieldSeed, s.Seed)
	if len(s.RNG) > 0 {
		b = protowire.AppendTag(b, fieldRNG, protowire.BytesType)
		b = protowire.AppendBytes(b, s.RNG)
	}
	b = appendInt(b, fieldJokers, s.Jokers)
	b = appendInt(b, fieldMaxHandSize, s.MaxHandSize)
	b = appendInt(b, fieldPhase, int(s.Phase))
	b = appendInt(b, fieldCurrent, s.Current)
	b = appendInt(b, fieldTurn, s.Turn)
	if s.Over {
		b = appendUint(b, fieldOver, 1)
	}
	b = appendInt(b, fieldWinner, s.Winner)
	b = appendCards(b, fieldDeck, s.Deck)
	b = appendCards(b, fieldDiscard, s.Discard)
	for _, p := range s.Players {
		b = appendMessage(b, fieldPlayers, func(b []byte) []byte {
			b = appendString(b, playerName, p.Name)
			if p.AI {
				b = appendUint(b, playerAI, 1)
			}
			b = appendInt(b, playerCastle, p.Castle)
			b = appendCards(b, playerHand, p.Hand)
			return appendCards(b, playerCollection, p.Collection)
		})
	}
	for _, cmd := range s.History {
		b = appendMessage(b, fieldHistory, func(b []byte) []byte {
			b = appendString(b, commandType, string(cmd.Type))
			b = appendInt(b, commandCardID, cmd.CardID)
			return appendInt(b, commandTarget, cmd.Target)
		})
	}

	return bytes.Clone(b)
}

// DecodeSnapshot 解码 EncodeSnapshot 的结果
//
// 只校验编码格式；卡牌守恒等规则由 game.Restore 校验。
func DecodeSnapshot(data []byte) (game.Snapshot, error) {
	var s game.Snapshot
	if !bytes.HasPrefix(data, magic) {
		return s, fmt.Errorf("%w: missing header", apperrors.ErrInvalidSnapshot)
	}

	err := consumeFields(data[len(magic):], func(num protowire.Number, typ protowire.Type, v field) error {
		var err error
		switch num {
		case fieldID:
			s.ID, err = v.string(typ)
		case fieldSeed:
			s.Seed, err = v.uint(typ)
		case fieldRNG:
			var raw []byte
			raw, err = v.bytes(typ)
			s.RNG = bytes.Clone(raw)
		case fieldJokers:
			s.Jokers, err = v.int(typ)
		case fieldMaxHandSize:
			s.MaxHandSize, err = v.int(typ)
		case fieldPhase:
			var phase int
			phase, err = v.int(typ)
			s.Phase = game.Phase(phase)
		case fieldCurrent:
			s.Current, err = v.int(typ)
		case fieldTurn:
			s.Turn, err = v.int(typ)
		case fieldOver:
			var over uint64
			over, err = v.uint(typ)
			s.Over = over != 0
		case fieldWinner:
			s.Winner, err = v.int(typ)
		case fieldDeck:
			s.Deck, err = appendDecodedCard(s.Deck, v, typ)
		case fieldDiscard:
			s.Discard, err = appendDecodedCard(s.Discard, v, typ)
		case fieldPlayers:
			var p game.PlayerSnapshot
			p, err = decodePlayer(v, typ)
			s.Players = append(s.Players, p)
		case fieldHistory:
			var cmd protocol.Command
			cmd, err = decodeCommand(v, typ)
			s.History = append(s.History, cmd)
		}
		return err
	})
	if err != nil {
		return game.Snapshot{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidSnapshot, err)
	}
	return s, nil
}

func decodePlayer(v field, typ protowire.Type) (game.PlayerSnapshot, error) {
	var p game.PlayerSnapshot
	msg, err := v.bytes(typ)
	if err != nil {
		return p, err
	}
	err = consumeFields(msg, func(num protowire.Number, typ protowire.Type, v field) error {
		var err error
		switch num {
		case playerName:
			p.Name, err = v.string(typ)
		case playerAI:
			var ai uint64
			ai, err = v.uint(typ)
			p.AI = ai != 0
		case playerCastle:
			p.Castle, err = v.int(typ)
		case playerHand:
			p.Hand, err = appendDecodedCard(p.Hand, v, typ)
		case playerCollection:
			p.Collection, err = appendDecodedCard(p.Collection, v, typ)
		}
		return err
	})
	return p, err
}

func decodeCommand(v field, typ protowire.Type) (protocol.Command, error) {
	var cmd protocol.Command
	msg, err := v.bytes(typ)
	if err != nil {
		return cmd, err
	}
	err = consumeFields(msg, func(num protowire.Number, typ protowire.Type, v field) error {
		var err error
		switch num {
		case commandType:
			var name string
			name, err = v.string(typ)
			cmd.Type = protocol.CommandType(name)
		case commandCardID:
			cmd.CardID, err = v.int(typ)
		case commandTarget:
			cmd.Target, err = v.int(typ)
		}
		return err
	})
	return cmd, err
}

func appendDecodedCard(cards []card.Card, v field, typ protowire.Type) ([]card.Card, error) {
	msg, err := v.bytes(typ)
	if err != nil {
		return cards, err
	}
	var c card.Card
	err = consumeFields(msg, func(num protowire.Number, typ protowire.Type, v field) error {
		var err error
		var n int
		switch num {
		case cardID:
			c.ID, err = v.int(typ)
		case cardKind:
			n, err = v.int(typ)
			c.Kind = card.Kind(n)
		case cardSuit:
			n, err = v.int(typ)
			c.Suit = card.Suit(n)
		case cardValue:
			c.Value, err = v.int(typ)
		case cardDamage:
			c.Damage, err = v.int(typ)
		}
		return err
	})
	return append(cards, c), err
}

// --- 编码辅助 ---

func appendUint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

// appendInt 有符号整数使用 zigzag 编码（Winner、Target 可能为 -1）
func appendInt(b []byte, num protowire.Number, v int) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeZigZag(int64(v)))
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendMessage(b []byte, num protowire.Number, encode func([]byte) []byte) []byte {
	inner, release := scratch(64)
	defer release()
	inner = encode(inner)
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, inner)
}

func appendCards(b []byte, num protowire.Number, cards []card.Card) []byte {
	for _, c := range cards {
		b = appendMessage(b, num, func(b []byte) []byte {
			// ID 为 0 的牌也要写出，否则无法与缺失字段区分
			b = protowire.AppendTag(b, cardID, protowire.VarintType)
			b = protowire.AppendVarint(b, protowire.EncodeZigZag(int64(c.ID)))
			b = appendInt(b, cardKind, int(c.Kind))
			b = appendInt(b, cardSuit, int(c.Suit))
			b = appendInt(b, cardValue, c.Value)
			return appendInt(b, cardDamage, c.Damage)
		})
	}
	return b
}

// --- 解码辅助 ---

// field 一个字段的原始值：varint 或长度前缀的字节
type field struct {
	varint uint64
	raw    []byte
}

func (f field) uint(typ protowire.Type) (uint64, error) {
	if typ != protowire.VarintType {
		return 0, fmt.Errorf("expected varint, got wire type %d", typ)
	}
	return f.varint, nil
}

func (f field) int(typ protowire.Type) (int, error) {
	v, err := f.uint(typ)
	return int(protowire.DecodeZigZag(v)), err
}

func (f field) bytes(typ protowire.Type) ([]byte, error) {
	if typ != protowire.BytesType {
		return nil, fmt.Errorf("expected bytes, got wire type %d", typ)
	}
	return f.raw, nil
}

func (f field) string(typ protowire.Type) (string, error) {
	b, err := f.bytes(typ)
	return string(b), err
}

// consumeFields 依次解析 data 中的字段，未知字段直接跳过
func consumeFields(data []byte, fn func(protowire.Number, protowire.Type, field) error) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]

		var v field
		switch typ {
		case protowire.VarintType:
			v.varint, n = protowire.ConsumeVarint(data)
		case protowire.BytesType:
			v.raw, n = protowire.ConsumeBytes(data)
		default:
			n = protowire.ConsumeFieldValue(num, typ, data)
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]

		if typ != protowire.VarintType && typ != protowire.BytesType {
			continue
		}
		if err := fn(num, typ, v); err != nil {
			return fmt.Errorf("field %d: %w", num, err)
		}
	}
	return nil
}
