package card

import (
	"fmt"
	"strconv"
)

// Kind 定义牌的种类
type Kind int

const (
	Number Kind = iota
	Jack
	Queen
	King
	Ace
	Joker
)

// kindNames 种类名称映射表
var kindNames = map[Kind]string{
	Number: "Number",
	Jack:   "Jack",
	Queen:  "Queen",
	King:   "King",
	Ace:    "Ace",
	Joker:  "Joker",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Valid 判断种类是否在六种之内
func (k Kind) Valid() bool {
	return k >= Number && k <= Joker
}

// Suit 定义花色
type Suit int

const (
	NoSuit Suit = iota // Joker 没有花色
	Hearts
	Diamonds
	Clubs
	Spades
)

// Suits 四种花色，按建牌顺序
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// suitNames 花色名称映射表
var suitNames = map[Suit]string{
	NoSuit:   "",
	Hearts:   "Hearts",
	Diamonds: "Diamonds",
	Clubs:    "Clubs",
	Spades:   "Spades",
}

func (s Suit) String() string {
	if name, ok := suitNames[s]; ok {
		return name
	}
	return ""
}

// IsRed 红心与方块为红色
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

const (
	MinValue = 2
	MaxValue = 10

	// CollectionSize 收集格数量（2-10 各一格）
	CollectionSize = MaxValue - MinValue + 1
)

// Card 定义一张牌
//
// ID 在整局中唯一，用于区分两张 Joker 以及校验守恒。
// 除 Damage 外其余字段在建牌后不再变化；Damage 只会被持有该牌的容器修改。
type Card struct {
	ID     int  `json:"id"`
	Kind   Kind `json:"kind"`
	Suit   Suit `json:"suit,omitempty"`
	Value  int  `json:"value,omitempty"`
	Damage int  `json:"damage"`
}

// NewNumber 创建数字牌
func NewNumber(id int, suit Suit, value int) Card {
	if value < MinValue || value > MaxValue {
		panic(fmt.Sprintf("number card value out of range: %d", value))
	}
	return Card{ID: id, Kind: Number, Suit: suit, Value: value, Damage: BaseDamage(Number, value)}
}

// NewFace 创建 J/Q/K/A
func NewFace(id int, kind Kind, suit Suit) Card {
	if kind == Number || kind == Joker || !kind.Valid() {
		panic(fmt.Sprintf("not a suited special kind: %s", kind))
	}
	return Card{ID: id, Kind: kind, Suit: suit, Damage: BaseDamage(kind, 0)}
}

// NewJoker 创建 Joker
func NewJoker(id int) Card {
	return Card{ID: id, Kind: Joker, Damage: BaseDamage(Joker, 0)}
}

// BaseDamage 返回某种牌的基础伤害
//
// Ace 的基础值是倍率，实际伤害在结算时按手牌数放大。
func BaseDamage(kind Kind, value int) int {
	switch kind {
	case Number:
		if value <= 5 {
			return 2
		}
		return 4
	case Jack:
		return 2
	case Queen:
		return 4
	case King:
		return 0
	case Ace:
		return 1
	case Joker:
		return 7
	default:
		return 0
	}
}

// BaseDamage 返回该牌未被修改时的伤害
func (c Card) BaseDamage() int {
	return BaseDamage(c.Kind, c.Value)
}

// IsSpecial 除数字牌外都是特殊牌
func (c Card) IsSpecial() bool {
	return c.Kind != Number
}

// Name 牌名，例如 "7 of Hearts"、"King of Spades"、"Joker"
func (c Card) Name() string {
	switch c.Kind {
	case Joker:
		return "Joker"
	case Number:
		return fmt.Sprintf("%d of %s", c.Value, c.Suit)
	default:
		return fmt.Sprintf("%s of %s", c.Kind, c.Suit)
	}
}

func (c Card) String() string {
	return c.Name()
}

// CanPlaceInCollection 数字牌只能放入与点数相同的格子
func (c Card) CanPlaceInCollection(position int) bool {
	return c.Kind == Number && position == c.Value
}

// Validate 检查牌的结构约束：value 仅数字牌有，suit 仅 Joker 没有
func (c Card) Validate() error {
	if !c.Kind.Valid() {
		return fmt.Errorf("card %d: unknown kind %d", c.ID, int(c.Kind))
	}
	if (c.Kind == Number) != (c.Value != 0) {
		return fmt.Errorf("card %d: value %d not allowed for %s", c.ID, c.Value, c.Kind)
	}
	if c.Kind == Number && (c.Value < MinValue || c.Value > MaxValue) {
		return fmt.Errorf("card %d: value %d out of range", c.ID, c.Value)
	}
	if (c.Kind == Joker) != (c.Suit == NoSuit) {
		return fmt.Errorf("card %d: suit %q not allowed for %s", c.ID, c.Suit, c.Kind)
	}
	return nil
}
