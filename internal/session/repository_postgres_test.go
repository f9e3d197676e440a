package session

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"BlackJack/internal/game/table"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	selectRound = regexp.QuoteMeta(`SELECT payload, expires_at FROM rounds WHERE session_id = $1`)
	deleteRound = regexp.QuoteMeta(`DELETE FROM rounds WHERE session_id = $1`)
	upsertRound = `(?s)INSERT INTO rounds \(session_id, payload, expires_at\) VALUES \(\$1, \$2, \$3\).*ON CONFLICT \(session_id\) DO UPDATE`
	roundCols   = []string{"payload", "expires_at"}
)

// roundArg 校验写入的 payload 能解码回指定的 Round
type roundArg struct {
	want table.Round
}

func (a roundArg) Match(v driver.Value) bool {
	b, ok := v.([]byte)
	if !ok {
		return false
	}
	var got table.Round
	if err := json.Unmarshal(b, &got); err != nil {
		return false
	}
	return assert.ObjectsAreEqual(a.want, got)
}

// futureArg 校验过期时间在当前时间之后
type futureArg struct{}

func (futureArg) Match(v driver.Value) bool {
	ts, ok := v.(time.Time)
	return ok && ts.After(time.Now())
}

func newPostgresRepo(t *testing.T) (Repo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS rounds`).WillReturnResult(sqlmock.NewResult(0, 0))
	repo, err := NewPostgresRepo(context.Background(), db, time.Hour)
	require.NoError(t, err)
	return repo, mock
}

func encode(t *testing.T, r *table.Round) []byte {
	t.Helper()
	b, err := json.Marshal(r)
	require.NoError(t, err)
	return b
}

func Test_PostgresRepo_RoundTrip(t *testing.T) {
	repo, mock := newPostgresRepo(t)
	ctx := context.Background()
	want := sampleRound()

	// 不存在 -> nil, nil
	mock.ExpectQuery(selectRound).WithArgs("missing").WillReturnRows(sqlmock.NewRows(roundCols))
	got, err := repo.Load(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	mock.ExpectExec(upsertRound).
		WithArgs("s1", roundArg{want: *want}, futureArg{}).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Save(ctx, "s1", want))

	mock.ExpectQuery(selectRound).WithArgs("s1").
		WillReturnRows(sqlmock.NewRows(roundCols).AddRow(encode(t, want), time.Now().Add(time.Hour)))
	got, err = repo.Load(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *want, *got)

	// 覆盖写入走同一条 upsert
	want.Phase = table.RoundOver
	want.DealerRevealed = true
	want.Outcome = table.DealerWins
	mock.ExpectExec(upsertRound).
		WithArgs("s1", roundArg{want: *want}, futureArg{}).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Save(ctx, "s1", want))

	mock.ExpectExec(deleteRound).WithArgs("s1").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(ctx, "s1"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_PostgresRepo_ExpiredRowIsPurged(t *testing.T) {
	repo, mock := newPostgresRepo(t)

	mock.ExpectQuery(selectRound).WithArgs("old").
		WillReturnRows(sqlmock.NewRows(roundCols).AddRow(encode(t, sampleRound()), time.Now().Add(-time.Minute)))
	mock.ExpectExec(deleteRound).WithArgs("old").WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := repo.Load(context.Background(), "old")
	assert.NoError(t, err)
	assert.Nil(t, got, "expired round should read as absent")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_PostgresRepo_CorruptPayload(t *testing.T) {
	repo, mock := newPostgresRepo(t)

	mock.ExpectQuery(selectRound).WithArgs("bad").
		WillReturnRows(sqlmock.NewRows(roundCols).AddRow([]byte("{not json"), time.Now().Add(time.Hour)))

	_, err := repo.Load(context.Background(), "bad")
	assert.ErrorContains(t, err, "decode round bad")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_PostgresRepo_DriverErrorsAreWrapped(t *testing.T) {
	repo, mock := newPostgresRepo(t)
	ctx := context.Background()
	boom := errors.New("connection reset")

	mock.ExpectQuery(selectRound).WithArgs("s").WillReturnError(boom)
	_, err := repo.Load(ctx, "s")
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "load round s")

	mock.ExpectExec(upsertRound).WithArgs("s", sqlmock.AnyArg(), sqlmock.AnyArg()).WillReturnError(boom)
	err = repo.Save(ctx, "s", sampleRound())
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "save round s")

	mock.ExpectExec(deleteRound).WithArgs("s").WillReturnError(boom)
	err = repo.Delete(ctx, "s")
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "delete round s")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_PostgresRepo_SchemaFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS rounds`).WillReturnError(errors.New("permission denied"))
	_, err = NewPostgresRepo(context.Background(), db, time.Hour)
	assert.ErrorContains(t, err, "create rounds table")
}
