package dealer

import (
	"math/rand"

	"BlackJack/internal/game/table"
)

// Deck 一副牌，末尾为牌顶。只负责洗牌与发牌（无规则判断）
type Deck struct {
	cards []table.Card
}

// NewDeck 按规范顺序（花色优先，点数其次）生成 52 张牌，不洗牌
func NewDeck() *Deck {
	cards := make([]table.Card, 0, 52)
	for s := table.Hearts; s <= table.Spades; s++ {
		for r := table.Ace; r <= table.King; r++ {
			cards = append(cards, table.Card{Suit: s, Rank: r})
		}
	}
	return &Deck{cards: cards}
}

// FromCards 用持久化的剩余牌堆恢复 Deck，末尾为牌顶
func FromCards(cards []table.Card) *Deck {
	return &Deck{cards: append([]table.Card(nil), cards...)}
}

// Cards 返回剩余牌堆的拷贝
func (d *Deck) Cards() []table.Card {
	return append([]table.Card(nil), d.cards...)
}

func (d *Deck) Len() int {
	return len(d.cards)
}

// Shuffle Fisher-Yates 均匀洗牌
func (d *Deck) Shuffle(rnd *rand.Rand) {
	rnd.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw 从牌顶取一张。牌堆为空时 ok=false，不是错误
func (d *Deck) Draw() (table.Card, bool) {
	n := len(d.cards)
	if n == 0 {
		return table.Card{}, false
	}
	c := d.cards[n-1]
	d.cards = d.cards[:n-1]
	return c, true
}
