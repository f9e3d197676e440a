package table

// Score 计算手牌点数：A 先记 11，超过 21 时逐张降为 1。
// 全部降级后仍超过 21 的结果原样返回，由调用方判定爆牌。
func Score(hand []Card) int {
	total := 0
	aces := 0
	for _, c := range hand {
		if !c.Valid() {
			continue
		}
		total += c.Points()
		if c.Rank == Ace {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

// IsBlackjack 起手两张牌正好 21 点
func IsBlackjack(hand []Card) bool {
	return len(hand) == 2 && Score(hand) == 21
}
