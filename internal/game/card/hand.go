package card

import (
	"slices"
	"strings"

	"github.com/palemoky/trash-castle/internal/apperrors"
)

// StartingHealth 城堡初始血量
const StartingHealth = 50

// Placement AddToCollection 的去向
type Placement int

const (
	PlacedInCollection Placement = iota // 放入收集格
	RoutedToHand                        // 点数重复，退回手牌
	NotCollectible                      // 非数字牌，留给战斗阶段处理
	Rejected                            // 点数重复且手牌已满，由调用方决定去向
)

// Hand 一名玩家的全部持有物：手牌、收集格和城堡
type Hand struct {
	Name string
	IsAI bool

	castle      int
	cards       []Card // 手牌，保留加入顺序
	collection  []Card // 收集格，保留加入顺序，点数互不相同
	maxHandSize int    // 0 表示不限
}

// NewHand 创建玩家
func NewHand(name string, isAI bool, castle, maxHandSize int) *Hand {
	return &Hand{
		Name:        name,
		IsAI:        isAI,
		castle:      castle,
		maxHandSize: maxHandSize,
	}
}

// Castle 当前城堡血量
func (h *Hand) Castle() int {
	return h.castle
}

// Heal 回复城堡血量，没有上限
func (h *Hand) Heal(amount int) int {
	if amount > 0 {
		h.castle += amount
	}
	return h.castle
}

// TakeDamage 扣减城堡血量，最低为 0，返回新的血量
func (h *Hand) TakeDamage(amount int) int {
	if amount <= 0 {
		return h.castle
	}
	h.castle = max(h.castle-amount, 0)
	return h.castle
}

// IsEliminated 城堡血量为 0 即出局
func (h *Hand) IsEliminated() bool {
	return h.castle == 0
}

// MaxHandSize 手牌上限，0 表示不限
func (h *Hand) MaxHandSize() int {
	return h.maxHandSize
}

// IsFull 手牌是否已满
func (h *Hand) IsFull() bool {
	return h.maxHandSize > 0 && len(h.cards) >= h.maxHandSize
}

// AddCard 加入手牌，超过上限时返回 ErrHandFull
func (h *Hand) AddCard(c Card) error {
	if h.IsFull() {
		return apperrors.ErrHandFull
	}
	h.cards = append(h.cards, c)
	return nil
}

// AddCards 依次加入手牌，手牌满时停止，返回成功加入的数量
func (h *Hand) AddCards(cards []Card) int {
	added := 0
	for _, c := range cards {
		if h.AddCard(c) != nil {
			break
		}
		added++
	}
	return added
}

// RemoveCard 按 ID 从手牌中移除一张牌
func (h *Hand) RemoveCard(id int) (Card, error) {
	idx := h.IndexOf(id)
	if idx < 0 {
		return Card{}, apperrors.ErrCardNotInHand
	}
	return h.RemoveCardAt(idx)
}

// RemoveCardAt 按下标从手牌中移除一张牌
func (h *Hand) RemoveCardAt(index int) (Card, error) {
	if index < 0 || index >= len(h.cards) {
		return Card{}, apperrors.ErrInvalidCardIndex
	}
	c := h.cards[index]
	h.cards = slices.Delete(h.cards, index, index+1)
	return c, nil
}

// CardAt 按下标查看手牌
func (h *Hand) CardAt(index int) (Card, error) {
	if index < 0 || index >= len(h.cards) {
		return Card{}, apperrors.ErrInvalidCardIndex
	}
	return h.cards[index], nil
}

// IndexOf 返回该 ID 在手牌中的下标，不存在时返回 -1
func (h *Hand) IndexOf(id int) int {
	return slices.IndexFunc(h.cards, func(c Card) bool { return c.ID == id })
}

// HasCard 手牌中是否有该 ID 的牌
func (h *Hand) HasCard(id int) bool {
	return h.IndexOf(id) >= 0
}

// HasCardOfKind 手牌中是否有某种牌
func (h *Hand) HasCardOfKind(kind Kind) bool {
	return slices.ContainsFunc(h.cards, func(c Card) bool { return c.Kind == kind })
}

// NumberCards 手牌中的数字牌
func (h *Hand) NumberCards() []Card {
	return h.filter(func(c Card) bool { return !c.IsSpecial() })
}

// SpecialCards 手牌中的特殊牌
func (h *Hand) SpecialCards() []Card {
	return h.filter(Card.IsSpecial)
}

func (h *Hand) filter(keep func(Card) bool) []Card {
	var result []Card
	for _, c := range h.cards {
		if keep(c) {
			result = append(result, c)
		}
	}
	return result
}

// Cards 手牌副本
func (h *Hand) Cards() []Card {
	return append([]Card(nil), h.cards...)
}

// CardCount 手牌数量
func (h *Hand) CardCount() int {
	return len(h.cards)
}

// ClearHand 清空手牌并返回原有的牌
func (h *Hand) ClearHand() []Card {
	cards := h.cards
	h.cards = nil
	return cards
}

// HasNumberInCollection 收集格中是否已有该点数
func (h *Hand) HasNumberInCollection(value int) bool {
	return slices.ContainsFunc(h.collection, func(c Card) bool { return c.Value == value })
}

// AddToCollection 尝试把牌放入收集格
//
// 只有数字牌、该点数空缺且收集格未满时才会放入；
// 重复点数的数字牌退回手牌，非数字牌不做处理。
// 返回 PlacedInCollection 或 RoutedToHand 时牌的所有权已转移给玩家。
func (h *Hand) AddToCollection(c Card) Placement {
	if c.Kind != Number {
		return NotCollectible
	}
	if h.HasNumberInCollection(c.Value) || h.CollectionFull() {
		if h.AddCard(c) != nil {
			return Rejected
		}
		return RoutedToHand
	}
	h.collection = append(h.collection, c)
	return PlacedInCollection
}

// CollectionFull 收集格 2-10 是否已全部占满
func (h *Hand) CollectionFull() bool {
	return len(h.collection) >= CollectionSize
}

// Collection 收集格副本
func (h *Hand) Collection() []Card {
	return append([]Card(nil), h.collection...)
}

func (h *Hand) String() string {
	if len(h.cards) == 0 {
		return "Empty hand"
	}
	names := make([]string, len(h.cards))
	for i, c := range h.cards {
		names[i] = c.Name()
	}
	return strings.Join(names, ", ")
}

// RestoreHand 按存档数据重建玩家
func RestoreHand(name string, isAI bool, castle, maxHandSize int, cards, collection []Card) *Hand {
	return &Hand{
		Name:        name,
		IsAI:        isAI,
		castle:      max(castle, 0),
		cards:       append([]Card(nil), cards...),
		collection:  append([]Card(nil), collection...),
		maxHandSize: maxHandSize,
	}
}

// BoostCard 提高手牌中某张牌的伤害
func (h *Hand) BoostCard(id, amount int) bool {
	idx := h.IndexOf(id)
	if idx < 0 {
		return false
	}
	h.cards[idx].Damage += amount
	return true
}
