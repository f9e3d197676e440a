package engine

import "BlackJack/internal/game/table"

// Resolve 判定胜负，按顺序匹配，先命中者生效：
// 起手黑杰克优先于之后的爆牌与比点。
func Resolve(playerScore, dealerScore int, playerBusted, dealerBusted, playerBlackjack, dealerBlackjack bool) table.Outcome {
	switch {
	case playerBlackjack && dealerBlackjack:
		return table.Push
	case playerBlackjack:
		return table.PlayerWins
	case dealerBlackjack:
		return table.DealerWins
	case playerBusted:
		return table.DealerWins
	case dealerBusted:
		return table.PlayerWins
	case playerScore > dealerScore:
		return table.PlayerWins
	case playerScore < dealerScore:
		return table.DealerWins
	default:
		return table.Push
	}
}
