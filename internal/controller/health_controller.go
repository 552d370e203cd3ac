package controller

import (
	"context"
	"net/http"
	"skillbloom_backend/internal/util"
	"skillbloom_backend/pkg/logger"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HealthController 数据库不可用返回 503；redis 只是缓存，故障时降级但仍可服务
type HealthController struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewHealthController(db *gorm.DB, rdb *redis.Client) *HealthController {
	return &HealthController{DB: db, Redis: rdb}
}

func (c *HealthController) pingDB(ctx context.Context) error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// @Summary 健康检查
// @Description 检查数据库与缓存状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	status := "healthy"
	code := http.StatusOK
	components := gin.H{"database": "up", "cache": "disabled"}

	if err := c.pingDB(pingCtx); err != nil {
		logger.Log.Error("Health check: database unreachable", zap.Error(err))
		status, code = "unhealthy", http.StatusServiceUnavailable
		components["database"] = "down"
	}

	if c.Redis != nil {
		components["cache"] = "up"
		if err := c.Redis.Ping(pingCtx).Err(); err != nil {
			logger.Log.Warn("Health check: redis unreachable", zap.Error(err))
			components["cache"] = "down"
			if code == http.StatusOK {
				status = "degraded"
			}
		}
	}

	ctx.JSON(code, util.Response{
		Code:    code,
		Message: "SkillBloom API is running",
		Data: gin.H{
			"status":     status,
			"components": components,
		},
	})
}
