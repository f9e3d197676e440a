package manager

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"BlackJack/internal/game/engine"
	"BlackJack/internal/game/table"
	"BlackJack/internal/middleware"
	"BlackJack/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var handlerSecret = []byte("handler-secret")

func newTestServer(t *testing.T) (*gin.Engine, session.Repo) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repo := session.NewMemoryRepo(time.Hour)
	mgr := NewGameManager(repo, engine.NewEngine(9), newMockHub())

	r := gin.New()
	r.Use(middleware.Session(middleware.SessionConfig{Secret: handlerSecret, CookieName: "bj_session", TTL: time.Hour}))
	NewHandler(mgr).Register(r)
	return r, repo
}

func do(t *testing.T, r *gin.Engine, method, path, sid string) *httptest.ResponseRecorder {
	t.Helper()
	token, err := middleware.IssueToken(handlerSecret, sid, time.Hour)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeView(t *testing.T, w *httptest.ResponseRecorder) table.View {
	t.Helper()
	var v table.View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestHandlerNoRound(t *testing.T) {
	r, _ := newTestServer(t)

	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/game", "a").Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodPost, "/game/hit", "a").Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodPost, "/game/stand", "a").Code)
}

func TestHandlerNewGameAndCurrent(t *testing.T) {
	r, _ := newTestServer(t)

	w := do(t, r, http.MethodPost, "/game/new", "a")
	require.Equal(t, http.StatusOK, w.Code)
	dealt := decodeView(t, w)
	assert.Len(t, dealt.PlayerHand, 2)

	w = do(t, r, http.MethodGet, "/game", "a")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dealt, decodeView(t, w))

	// 其他会话看不到
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/game", "b").Code)
}

func TestHandlerHitStandFlow(t *testing.T) {
	r, repo := newTestServer(t)
	seed(t, repo, "a", riggedRound(10, 10, 5, 7, 3, 4))

	w := do(t, r, http.MethodPost, "/game/hit", "a")
	require.Equal(t, http.StatusOK, w.Code)
	v := decodeView(t, w)
	assert.Equal(t, 18, v.PlayerScore)
	assert.Equal(t, "player_turn", v.Phase)

	w = do(t, r, http.MethodPost, "/game/stand", "a")
	require.Equal(t, http.StatusOK, w.Code)
	v = decodeView(t, w)
	assert.True(t, v.GameOver)
	assert.Equal(t, 17, v.DealerScore)
	assert.Equal(t, "player_wins", v.Outcome)

	// 已结束：409 并附带当前局面
	w = do(t, r, http.MethodPost, "/game/hit", "a")
	assert.Equal(t, http.StatusConflict, w.Code)
	var body struct {
		Error string     `json:"error"`
		Round table.View `json:"round"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "round is over")
	assert.Equal(t, v, body.Round)
}

func TestHandlerDiscard(t *testing.T) {
	r, _ := newTestServer(t)
	require.Equal(t, http.StatusOK, do(t, r, http.MethodPost, "/game/new", "a").Code)

	assert.Equal(t, http.StatusNoContent, do(t, r, http.MethodDelete, "/game", "a").Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/game", "a").Code)
}

func TestHandlerMethodNotRouted(t *testing.T) {
	r, _ := newTestServer(t)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/game/hit", "a").Code)
}
