package manager

import (
	"context"
	"errors"
	"net/http"

	"BlackJack/internal/game/engine"
	"BlackJack/internal/game/table"
	"BlackJack/internal/middleware"
	"BlackJack/internal/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	mgr *GameManager
}

func NewHandler(mgr *GameManager) *Handler {
	return &Handler{mgr: mgr}
}

// Register 挂载 /game 路由
func (h *Handler) Register(r gin.IRouter) {
	g := r.Group("/game")
	g.GET("", h.Current)
	g.POST("/new", h.NewGame)
	g.POST("/hit", h.Hit)
	g.POST("/stand", h.Stand)
	g.DELETE("", h.Discard)
}

// GET /game
func (h *Handler) Current(c *gin.Context) {
	h.respond(c, h.mgr.Current)
}

// POST /game/new
func (h *Handler) NewGame(c *gin.Context) {
	h.respond(c, h.mgr.NewGame)
}

// POST /game/hit
func (h *Handler) Hit(c *gin.Context) {
	h.respond(c, h.mgr.Hit)
}

// POST /game/stand
func (h *Handler) Stand(c *gin.Context) {
	h.respond(c, h.mgr.Stand)
}

// DELETE /game
func (h *Handler) Discard(c *gin.Context) {
	sid, err := middleware.MustSessionID(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := h.mgr.Discard(c.Request.Context(), sid); err != nil {
		utils.Log.Error("discard failed", "session", sid, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
		return
	}
	c.Status(http.StatusNoContent)
}

// respond 状态码约定：没有局 404，动作无效 409（附带当前局面），存储失败 500
func (h *Handler) respond(c *gin.Context, fn func(context.Context, string) (table.View, error)) {
	sid, err := middleware.MustSessionID(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	view, err := fn(c.Request.Context(), sid)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, view)
	case errors.Is(err, engine.ErrNoRound):
		c.JSON(http.StatusNotFound, gin.H{"error": engine.ErrNoRound.Error()})
	case errors.Is(err, ErrActionRejected):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "round": view})
	default:
		utils.Log.Error("game request failed", "session", sid, "path", c.FullPath(), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
	}
}
