package table

// CardView 展示用的牌，暗牌只暴露 Hidden
type CardView struct {
	Suit   int    `json:"suit"`
	Rank   int    `json:"rank"`
	Label  string `json:"label"`
	Hidden bool   `json:"hidden,omitempty"`
}

// View 提供给渲染层的只读投影
type View struct {
	Phase          string     `json:"phase"`
	PlayerHand     []CardView `json:"playerHand"`
	DealerHand     []CardView `json:"dealerHand"`
	PlayerScore    int        `json:"playerScore"`
	DealerScore    int        `json:"dealerScore"`
	DealerRevealed bool       `json:"dealerRevealed"`
	PlayerBusted   bool       `json:"playerBusted"`
	DealerBusted   bool       `json:"dealerBusted"`
	Outcome        string     `json:"outcome"`
	Message        string     `json:"message"`
	GameOver       bool       `json:"gameOver"`
	DeckRemaining  int        `json:"deckRemaining"`
}

// Project 生成展示投影。
// 暗牌遮挡只看 DealerRevealed；未翻牌时的庄家分数固定使用 DealerVisibleScore。
func (r Round) Project() View {
	v := View{
		Phase:          r.Phase.String(),
		PlayerHand:     make([]CardView, 0, len(r.Player)),
		DealerHand:     make([]CardView, 0, len(r.Dealer)),
		PlayerScore:    r.PlayerScore,
		DealerScore:    r.DealerVisibleScore,
		DealerRevealed: r.DealerRevealed,
		PlayerBusted:   r.PlayerBusted,
		DealerBusted:   r.DealerBusted,
		Outcome:        r.Outcome.String(),
		Message:        r.Message,
		GameOver:       r.GameOver(),
		DeckRemaining:  len(r.Deck),
	}
	for _, c := range r.Player {
		v.PlayerHand = append(v.PlayerHand, showCard(c))
	}
	for i, c := range r.Dealer {
		if i == 0 && !r.DealerRevealed {
			v.DealerHand = append(v.DealerHand, CardView{Label: "??", Hidden: true})
			continue
		}
		v.DealerHand = append(v.DealerHand, showCard(c))
	}
	if r.DealerRevealed {
		v.DealerScore = r.DealerScore
	}
	return v
}

func showCard(c Card) CardView {
	return CardView{Suit: c.Suit, Rank: c.Rank, Label: c.String()}
}
