package session

import (
	"context"

	"BlackJack/internal/game/table"
)

// Repo 定义一局状态的持久化操作，按会话 ID 存取
type Repo interface {
	// Load 读取会话当前的 Round，不存在时返回 nil, nil
	Load(ctx context.Context, id string) (*table.Round, error)
	// Save 整体写入 Round（原子），并刷新过期时间
	Save(ctx context.Context, id string, r *table.Round) error
	// Delete 丢弃会话的 Round
	Delete(ctx context.Context, id string) error
}
