package table

import "fmt"

// Phase 一局的阶段。DealerResolving 只存在于 stand 内部，不会被持久化。
type Phase int

const (
	NotStarted Phase = iota
	PlayerTurn
	RoundOver
)

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not_started"
	case PlayerTurn:
		return "player_turn"
	case RoundOver:
		return "round_over"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Outcome 对局结果
type Outcome int

const (
	OutcomeNone Outcome = iota
	PlayerWins
	DealerWins
	Push
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case PlayerWins:
		return "player_wins"
	case DealerWins:
		return "dealer_wins"
	case Push:
		return "push"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Round 一局的完整状态，每次请求整体读取、整体写回
type Round struct {
	Phase Phase `json:"phase"`

	Deck   []Card `json:"deck"` // 剩余牌堆，末尾为牌顶
	Player []Card `json:"player"`
	Dealer []Card `json:"dealer"` // Dealer[0] 为暗牌

	PlayerScore        int `json:"playerScore"`
	DealerVisibleScore int `json:"dealerVisibleScore"` // 只计 Dealer[1]
	DealerScore        int `json:"dealerScore"`

	PlayerBusted    bool `json:"playerBusted"`
	DealerBusted    bool `json:"dealerBusted"`
	PlayerBlackjack bool `json:"playerBlackjack"` // 起手牌判定，之后不再重算
	DealerBlackjack bool `json:"dealerBlackjack"`

	DealerRevealed bool    `json:"dealerRevealed"`
	Outcome        Outcome `json:"outcome"`
	Message        string  `json:"message"`
}

func (r Round) GameOver() bool {
	return r.Phase == RoundOver
}

// Clone 深拷贝，转换函数不修改传入的 Round
func (r Round) Clone() Round {
	out := r
	out.Deck = append([]Card(nil), r.Deck...)
	out.Player = append([]Card(nil), r.Player...)
	out.Dealer = append([]Card(nil), r.Dealer...)
	return out
}

// CheckInvariants 校验不可能出现的状态组合
func (r Round) CheckInvariants() error {
	if (r.GameOver() || r.PlayerBlackjack || r.DealerBlackjack) && !r.DealerRevealed {
		return fmt.Errorf("dealer hand hidden in phase %s", r.Phase)
	}
	if r.Phase == PlayerTurn && r.Outcome != OutcomeNone {
		return fmt.Errorf("outcome %s set during player turn", r.Outcome)
	}
	if r.GameOver() && r.Outcome == OutcomeNone {
		return fmt.Errorf("round over without outcome")
	}
	return nil
}
