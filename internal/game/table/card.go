package table

import "strconv"

// 花色顺序即牌组的规范顺序
const (
	Hearts = iota
	Diamonds
	Clubs
	Spades
)

const (
	Ace   = 1
	Jack  = 11
	Queen = 12
	King  = 13
)

// Card 定义 (suit 0-3, rank 1-13, A=1 J=11 Q=12 K=13)
type Card struct {
	Suit int `json:"suit"`
	Rank int `json:"rank"`
}

// Valid 报告牌面是否在合法范围内（持久化数据可能被篡改）
func (c Card) Valid() bool {
	return c.Suit >= Hearts && c.Suit <= Spades && c.Rank >= Ace && c.Rank <= King
}

// Points 返回单张牌的点数，A 记 11，非法牌记 0
func (c Card) Points() int {
	if !c.Valid() {
		return 0
	}
	switch {
	case c.Rank == Ace:
		return 11
	case c.Rank >= Jack:
		return 10
	default:
		return c.Rank
	}
}

func (c Card) String() string {
	return fmtCard(c)
}

func fmtCard(c Card) string {
	suits := []string{"♥", "♦", "♣", "♠"}
	ranks := map[int]string{
		Ace:   "A",
		Jack:  "J",
		Queen: "Q",
		King:  "K",
	}
	rankStr, ok := ranks[c.Rank]
	if !ok {
		rankStr = strconv.Itoa(c.Rank)
	}
	suitStr := "?"
	if c.Suit >= 0 && c.Suit < len(suits) {
		suitStr = suits[c.Suit]
	}
	return rankStr + suitStr
}
