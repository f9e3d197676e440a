package dealer

import "BlackJack/internal/game/table"

// StandThreshold 庄家在此点数及以上停牌
const StandThreshold = 17

// PlayOut 庄家补牌：点数低于 17 持续要牌，牌堆耗尽时提前停止。
// 返回补牌后的手牌、最终点数以及是否爆牌。传入的 hand 不会被修改。
func PlayOut(d *Deck, hand []table.Card) ([]table.Card, int, bool) {
	out := append([]table.Card(nil), hand...)
	score := table.Score(out)
	for score < StandThreshold {
		c, ok := d.Draw()
		if !ok {
			break
		}
		out = append(out, c)
		score = table.Score(out)
	}
	return out, score, score > 21
}
