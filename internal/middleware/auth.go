package middleware

import (
	"errors"
	"skillbloom_backend/internal/config"
	"skillbloom_backend/internal/util"
	"skillbloom_backend/pkg/logger"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// bearerToken 优先读 Authorization 头，浏览器 WebSocket 无法设置请求头时回退到 ?token=
func bearerToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return ""
		}
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return c.Query("token")
}

// AuthMiddleware 要求请求携带有效的 Bearer token
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := util.ParseJWT(bearerToken(c), cfg.JWT.Secret)
		if err != nil {
			var ae *util.AuthError
			if !errors.As(err, &ae) {
				ae = &util.AuthError{Kind: util.AuthInvalid, Reason: err.Error()}
			}
			if ae.Kind != util.AuthMissing {
				logger.Log.Debug("JWT rejected",
					zap.String("kind", string(ae.Kind)),
					zap.String("reason", ae.Reason),
				)
			}
			util.AbortWithAuthError(c, ae)
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}

// TryAuthMiddleware 可选认证：token 有效时设置用户，否则按游客继续
func TryAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if claims, err := util.ParseJWT(token, cfg.JWT.Secret); err == nil {
				c.Set("user", claims)
			}
		}
		c.Next()
	}
}
