package card

import (
	"fmt"
	"math/rand/v2"
)

const (
	// StandardSize 四种花色各 13 张
	StandardSize = 13 * 4
	MaxJokers    = 2
)

// NewTemplate 生成一整套标准牌（每种花色 2-10、J、Q、K、A，再加 Joker）
//
// ID 按生成顺序从 0 开始编号。
func NewTemplate(jokers int) []Card {
	if jokers < 1 || jokers > MaxJokers {
		panic(fmt.Sprintf("joker count must be 1 or 2, got %d", jokers))
	}
	cards := make([]Card, 0, StandardSize+jokers)
	id := 0
	for _, s := range Suits {
		for v := MinValue; v <= MaxValue; v++ {
			cards = append(cards, NewNumber(id, s, v))
			id++
		}
		for _, k := range []Kind{Jack, Queen, King, Ace} {
			cards = append(cards, NewFace(id, k, s))
			id++
		}
	}
	for range jokers {
		cards = append(cards, NewJoker(id))
		id++
	}
	return cards
}

// Deck 牌堆，持有所有不在手牌、收集格和弃牌堆中的牌
type Deck struct {
	cards  []Card
	jokers int
	rng    *rand.Rand
}

// NewDeck 创建并洗好一副牌
func NewDeck(rng *rand.Rand, jokers int) *Deck {
	d := &Deck{jokers: jokers, rng: rng}
	d.initialize()
	d.Shuffle()
	return d
}

// NewDeckFromCards 按给定顺序恢复牌堆（用于读档）
func NewDeckFromCards(rng *rand.Rand, jokers int, cards []Card) *Deck {
	return &Deck{
		cards:  append([]Card(nil), cards...),
		jokers: jokers,
		rng:    rng,
	}
}

func (d *Deck) initialize() {
	d.cards = NewTemplate(d.jokers)
}

// Shuffle Fisher-Yates 洗牌
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw 从牌堆顶部取一张牌；牌堆为空时 ok 为 false
func (d *Deck) Draw() (c Card, ok bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	c = d.cards[0]
	d.cards = d.cards[1:]
	return c, true
}

// Add 把牌放回牌堆底部
func (d *Deck) Add(cards ...Card) {
	d.cards = append(d.cards, cards...)
}

// Reset 清空并重建整副牌后洗牌
func (d *Deck) Reset() {
	d.cards = nil
	d.initialize()
	d.Shuffle()
}

// Remaining 剩余张数
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// IsEmpty 牌堆是否已空
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Jokers 本副牌的 Joker 数量
func (d *Deck) Jokers() int {
	return d.jokers
}

// Cards 返回牌堆内容的副本，索引 0 为下一张要抽的牌
func (d *Deck) Cards() []Card {
	return append([]Card(nil), d.cards...)
}
