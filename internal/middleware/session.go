package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"BlackJack/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const sessionKey = "session"

type SessionConfig struct {
	Secret     []byte
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// IssueToken 签发携带会话 ID 的 HS256 token
func IssueToken(secret []byte, sessionID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken 校验 token 并返回会话 ID
func ParseToken(secret []byte, tokenStr string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", errors.New("token has no session")
	}
	return claims.Subject, nil
}

// Session 为每个请求确定会话 ID：优先 Authorization: Bearer，其次 cookie；
// 都没有或校验失败时签发新会话并写回 cookie。
func Session(cfg SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sid, ok := sessionFromRequest(c, cfg); ok {
			c.Set(sessionKey, sid)
			c.Next()
			return
		}

		sid := uuid.NewString()
		token, err := IssueToken(cfg.Secret, sid, cfg.TTL)
		if err != nil {
			utils.Log.Error("issue session token", "err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
			return
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cfg.CookieName, token, int(cfg.TTL.Seconds()), "/", "", cfg.Secure, true)
		c.Header("X-Session-Token", token)
		utils.Log.Debug("new session", "session", sid)

		c.Set(sessionKey, sid)
		c.Next()
	}
}

// sessionFromRequest 依次尝试 Bearer 与 cookie，任一有效即可；
// 过期的 Bearer 不能顶掉仍然有效的 cookie 会话
func sessionFromRequest(c *gin.Context, cfg SessionConfig) (string, bool) {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		sid, err := ParseToken(cfg.Secret, strings.TrimPrefix(h, "Bearer "))
		if err == nil {
			return sid, true
		}
		utils.Log.Debug("bearer token rejected", "err", err)
	}
	if v, err := c.Cookie(cfg.CookieName); err == nil && v != "" {
		sid, err := ParseToken(cfg.Secret, v)
		if err == nil {
			return sid, true
		}
		utils.Log.Debug("session cookie rejected", "err", err)
	}
	return "", false
}

// SessionID 读取 Session middleware 注入的会话 ID
func SessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}

// MustSessionID 与 SessionID 相同，缺失时返回错误（middleware 未挂载）
func MustSessionID(c *gin.Context) (string, error) {
	sid := SessionID(c)
	if sid == "" {
		return "", fmt.Errorf("no session on request %s", c.Request.URL.Path)
	}
	return sid, nil
}
