package engine

import "BlackJack/internal/game/table"

const (
	msgPrompt          = "Hit or stand?"
	msgPlayerBust      = "Bust! You went over 21. Dealer wins."
	msgBothBlackjack   = "Both have Blackjack. Push."
	msgPlayerBlackjack = "Blackjack! You win."
	msgDealerBlackjack = "Dealer has Blackjack. Dealer wins."
	msgDealerBust      = "Dealer busts. You win!"
	msgPlayerHigher    = "You win!"
	msgDealerHigher    = "Dealer wins."
	msgPush            = "Push."
)

// outcomeMessage 根据结果和导致结果的原因生成提示
func outcomeMessage(r *table.Round) string {
	switch {
	case r.PlayerBlackjack && r.DealerBlackjack:
		return msgBothBlackjack
	case r.PlayerBlackjack:
		return msgPlayerBlackjack
	case r.DealerBlackjack:
		return msgDealerBlackjack
	case r.PlayerBusted:
		return msgPlayerBust
	case r.DealerBusted:
		return msgDealerBust
	}
	switch r.Outcome {
	case table.PlayerWins:
		return msgPlayerHigher
	case table.DealerWins:
		return msgDealerHigher
	default:
		return msgPush
	}
}
