package engine

import (
	"errors"
	"math/rand"
	"sync"

	"BlackJack/internal/game/dealer"
	"BlackJack/internal/game/table"
)

var (
	ErrNoRound       = errors.New("no round in progress")
	ErrRoundOver     = errors.New("round is over")
	ErrDeckExhausted = errors.New("deck exhausted")
)

// ---------------------
//       ENGINE
// ---------------------

// Engine 持有洗牌用的随机源。状态本身不在 Engine 中，
// 每个转换函数接收一个 Round 并返回新的 Round。
type Engine struct {
	mu  sync.Mutex // rand.Rand 非并发安全
	rnd *rand.Rand
}

func NewEngine(seed int64) *Engine {
	return &Engine{rnd: rand.New(rand.NewSource(seed))}
}

// NewGame 任意状态下都可以开新局：新牌、洗牌、发牌
func (e *Engine) NewGame() table.Round {
	d := dealer.NewDeck()
	e.mu.Lock()
	d.Shuffle(e.rnd)
	e.mu.Unlock()
	return Deal(d)
}

// Deal 按 玩家、庄家(暗)、玩家、庄家(明) 的顺序发起手牌
func Deal(d *dealer.Deck) table.Round {
	var r table.Round
	for i := 0; i < 2; i++ {
		if c, ok := d.Draw(); ok {
			r.Player = append(r.Player, c)
		}
		if c, ok := d.Draw(); ok {
			r.Dealer = append(r.Dealer, c)
		}
	}
	r.Deck = d.Cards()

	r.PlayerScore = table.Score(r.Player)
	r.DealerScore = table.Score(r.Dealer)
	// 明分只看第二张，与是否翻牌无关
	if len(r.Dealer) > 1 {
		r.DealerVisibleScore = table.Score(r.Dealer[1:2])
	}
	r.PlayerBlackjack = table.IsBlackjack(r.Player)
	r.DealerBlackjack = table.IsBlackjack(r.Dealer)

	if r.PlayerBlackjack || r.DealerBlackjack {
		finish(&r)
		return r
	}
	r.Phase = table.PlayerTurn
	r.Message = msgPrompt
	return r
}

// Hit 玩家要牌，仅在 PlayerTurn 有效
func Hit(r table.Round) (table.Round, error) {
	if err := checkTurn(&r); err != nil {
		return r, err
	}
	next := r.Clone()
	d := dealer.FromCards(next.Deck)
	c, ok := d.Draw()
	if !ok {
		return r, ErrDeckExhausted
	}
	next.Deck = d.Cards()
	next.Player = append(next.Player, c)
	next.PlayerScore = table.Score(next.Player)

	if next.PlayerScore > 21 {
		// 玩家爆牌直接判负，庄家不再补牌
		next.PlayerBusted = true
		next.DealerRevealed = true
		next.Phase = table.RoundOver
		next.Outcome = table.DealerWins
		next.Message = msgPlayerBust
		return next, nil
	}
	next.Message = msgPrompt
	return next, nil
}

// Stand 玩家停牌：翻开暗牌、庄家补牌、结算
func Stand(r table.Round) (table.Round, error) {
	if err := checkTurn(&r); err != nil {
		return r, err
	}
	next := r.Clone()
	next.DealerRevealed = true

	d := dealer.FromCards(next.Deck)
	next.Dealer, next.DealerScore, next.DealerBusted = dealer.PlayOut(d, next.Dealer)
	next.Deck = d.Cards()

	finish(&next)
	return next, nil
}

// finish 翻牌并结算，黑杰克标记沿用起手判定
func finish(r *table.Round) {
	r.DealerRevealed = true
	r.Phase = table.RoundOver
	r.Outcome = Resolve(r.PlayerScore, r.DealerScore, r.PlayerBusted, r.DealerBusted, r.PlayerBlackjack, r.DealerBlackjack)
	r.Message = outcomeMessage(r)
}

func checkTurn(r *table.Round) error {
	switch r.Phase {
	case table.PlayerTurn:
		return nil
	case table.RoundOver:
		return ErrRoundOver
	default:
		return ErrNoRound
	}
}
