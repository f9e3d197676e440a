package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"BlackJack/internal/game/table"
)

const schema = `
CREATE TABLE IF NOT EXISTS rounds (
    session_id TEXT PRIMARY KEY,
    payload    JSONB NOT NULL,
    expires_at TIMESTAMPTZ NOT NULL
)`

type postgresRepo struct {
	db  *sql.DB
	ttl time.Duration
}

// NewPostgresRepo 建表后返回；过期行按不存在处理并在读取时清理
func NewPostgresRepo(ctx context.Context, db *sql.DB, ttl time.Duration) (Repo, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("create rounds table: %w", err)
	}
	return &postgresRepo{db: db, ttl: ttl}, nil
}

func (p *postgresRepo) Load(ctx context.Context, id string) (*table.Round, error) {
	var (
		payload []byte
		expires time.Time
	)
	err := p.db.QueryRowContext(ctx,
		`SELECT payload, expires_at FROM rounds WHERE session_id = $1`, id,
	).Scan(&payload, &expires)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load round %s: %w", id, err)
	}
	if !time.Now().Before(expires) {
		if _, err := p.db.ExecContext(ctx, `DELETE FROM rounds WHERE session_id = $1`, id); err != nil {
			return nil, fmt.Errorf("purge round %s: %w", id, err)
		}
		return nil, nil
	}
	var round table.Round
	if err := json.Unmarshal(payload, &round); err != nil {
		return nil, fmt.Errorf("decode round %s: %w", id, err)
	}
	return &round, nil
}

func (p *postgresRepo) Save(ctx context.Context, id string, round *table.Round) error {
	payload, err := json.Marshal(round)
	if err != nil {
		return fmt.Errorf("encode round %s: %w", id, err)
	}
	_, err = p.db.ExecContext(ctx, `
INSERT INTO rounds (session_id, payload, expires_at) VALUES ($1, $2, $3)
ON CONFLICT (session_id) DO UPDATE SET payload = EXCLUDED.payload, expires_at = EXCLUDED.expires_at`,
		id, payload, time.Now().Add(p.ttl))
	if err != nil {
		return fmt.Errorf("save round %s: %w", id, err)
	}
	return nil
}

func (p *postgresRepo) Delete(ctx context.Context, id string) error {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM rounds WHERE session_id = $1`, id); err != nil {
		return fmt.Errorf("delete round %s: %w", id, err)
	}
	return nil
}
