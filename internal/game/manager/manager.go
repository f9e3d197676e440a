package manager

import (
	"context"
	"errors"
	"fmt"

	"BlackJack/internal/game/engine"
	"BlackJack/internal/game/table"
	"BlackJack/internal/session"
	"BlackJack/internal/utils"
	"BlackJack/internal/websocket"
)

// ErrActionRejected 动作在当前状态下无效，Round 未改变
var ErrActionRejected = errors.New("action rejected")

// GameManager 每个请求：读取会话 Round -> 执行转换 -> 整体写回 -> 推送
type GameManager struct {
	repo   session.Repo
	engine *engine.Engine
	hub    websocket.HubInterface
}

func NewGameManager(repo session.Repo, eng *engine.Engine, hub websocket.HubInterface) *GameManager {
	return &GameManager{repo: repo, engine: eng, hub: hub}
}

// NewGame 任何状态下都可开新局，旧局直接被替换
func (m *GameManager) NewGame(ctx context.Context, sid string) (table.View, error) {
	r := m.engine.NewGame()
	if err := m.save(ctx, sid, &r); err != nil {
		return table.View{}, err
	}
	utils.Log.Info("round dealt", "session", sid, "player", r.Player, "phase", r.Phase)
	return r.Project(), nil
}

func (m *GameManager) Hit(ctx context.Context, sid string) (table.View, error) {
	return m.apply(ctx, sid, "hit", engine.Hit)
}

func (m *GameManager) Stand(ctx context.Context, sid string) (table.View, error) {
	return m.apply(ctx, sid, "stand", engine.Stand)
}

// Current 返回当前局面，没有进行中的局时返回 engine.ErrNoRound
func (m *GameManager) Current(ctx context.Context, sid string) (table.View, error) {
	r, err := m.repo.Load(ctx, sid)
	if err != nil {
		return table.View{}, err
	}
	if r == nil {
		return table.View{}, engine.ErrNoRound
	}
	return r.Project(), nil
}

// Discard 丢弃会话中的局
func (m *GameManager) Discard(ctx context.Context, sid string) error {
	if err := m.repo.Delete(ctx, sid); err != nil {
		return fmt.Errorf("discard round: %w", err)
	}
	m.push(sid, websocket.OutgoingMessage{Event: "round_discarded"})
	return nil
}

// apply 转换失败时不写回，返回未改变的局面与包装后的错误
func (m *GameManager) apply(ctx context.Context, sid, action string, fn func(table.Round) (table.Round, error)) (table.View, error) {
	cur, err := m.repo.Load(ctx, sid)
	if err != nil {
		return table.View{}, err
	}
	if cur == nil {
		return table.View{}, fmt.Errorf("%s: %w: %w", action, ErrActionRejected, engine.ErrNoRound)
	}

	next, err := fn(*cur)
	if err != nil {
		utils.Log.Debug("action rejected", "session", sid, "action", action, "phase", cur.Phase, "err", err)
		return cur.Project(), fmt.Errorf("%s: %w: %w", action, ErrActionRejected, err)
	}
	if err := m.save(ctx, sid, &next); err != nil {
		return cur.Project(), err
	}
	if next.GameOver() {
		utils.Log.Info("round over", "session", sid, "outcome", next.Outcome,
			"player", next.PlayerScore, "dealer", next.DealerScore)
	}
	return next.Project(), nil
}

func (m *GameManager) save(ctx context.Context, sid string, r *table.Round) error {
	if err := m.repo.Save(ctx, sid, r); err != nil {
		return fmt.Errorf("save round: %w", err)
	}
	m.push(sid, websocket.OutgoingMessage{Event: "round_updated", Data: r.Project()})
	return nil
}

func (m *GameManager) push(sid string, msg websocket.OutgoingMessage) {
	if m.hub != nil {
		m.hub.SendToSession(sid, msg)
	}
}
