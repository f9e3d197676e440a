package main

import (
	"context"
	"net/http"
	"time"

	"BlackJack/config"
	"BlackJack/internal/game/engine"
	"BlackJack/internal/game/manager"
	"BlackJack/internal/middleware"
	"BlackJack/internal/session"
	"BlackJack/internal/storage"
	"BlackJack/internal/utils"
	"BlackJack/internal/websocket"

	"github.com/alecthomas/kong"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var CLI struct {
	Config   string `short:"c" default:"config/config.yaml" help:"Path to YAML configuration file"`
	Port     string `short:"p" help:"Listen address, e.g. :8080 (overrides config)"`
	LogLevel string `short:"l" help:"Log level (overrides config)"`
	Backend  string `help:"Session backend: memory, redis or postgres (overrides config)"`
}

func main() {
	kong.Parse(&CLI,
		kong.Name("blackjack"),
		kong.Description("Single-player Blackjack server"),
		kong.UsageOnError(),
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		utils.Log.Fatal("load config", "err", err)
	}
	if CLI.Port != "" {
		cfg.Server.Port = CLI.Port
	}
	if CLI.LogLevel != "" {
		cfg.Log.Level = CLI.LogLevel
	}
	if CLI.Backend != "" {
		cfg.Session.Backend = CLI.Backend
	}
	utils.Init(cfg.Log.Level)

	//-------------------------------------------------------
	// 1. 会话存储
	//-------------------------------------------------------
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	repo, err := newRepo(ctx, cfg)
	cancel()
	if err != nil {
		utils.Log.Fatal("session store init failed", "backend", cfg.Session.Backend, "err", err)
	}

	//-------------------------------------------------------
	// 2. Hub + 引擎
	//-------------------------------------------------------
	hub := websocket.NewHub()
	go hub.Run()

	seed := cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gameMgr := manager.NewGameManager(repo, engine.NewEngine(seed), hub)

	//-------------------------------------------------------
	// 3. Gin + CORS + 会话
	//-------------------------------------------------------
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-Session-Token"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	sessions := r.Group("/", middleware.Session(middleware.SessionConfig{
		Secret:     []byte(cfg.Session.Secret),
		CookieName: cfg.Session.Cookie,
		TTL:        cfg.Session.TTL,
		Secure:     cfg.Session.Secure,
	}))
	{
		manager.NewHandler(gameMgr).Register(sessions)
		sessions.GET("/ws", websocket.ServeWS(hub))
	}

	//-------------------------------------------------------
	// 4. 启动服务器
	//-------------------------------------------------------
	utils.Log.Info("server running", "addr", cfg.Server.Port, "backend", cfg.Session.Backend)
	if err := r.Run(cfg.Server.Port); err != nil {
		utils.Log.Fatal("server stopped", "err", err)
	}
}

func newRepo(ctx context.Context, cfg *config.Config) (session.Repo, error) {
	switch cfg.Session.Backend {
	case "redis":
		rdb, err := storage.InitRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		return session.NewRedisRepo(rdb, cfg.Session.TTL), nil
	case "postgres":
		db, err := storage.InitPostgres(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, err
		}
		return session.NewPostgresRepo(ctx, db, cfg.Session.TTL)
	default:
		return session.NewMemoryRepo(cfg.Session.TTL), nil
	}
}
