package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type healthBody struct {
	Code int `json:"code"`
	Data struct {
		Status     string            `json:"status"`
		Components map[string]string `json:"components"`
	} `json:"data"`
}

func serveHealth(t *testing.T, hc *HealthController) (int, healthBody) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", hc.HealthCheck)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body healthBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return db
}

func TestHealthCheck(t *testing.T) {
	t.Run("healthy without cache", func(t *testing.T) {
		code, body := serveHealth(t, NewHealthController(openDB(t), nil))
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "healthy", body.Data.Status)
		assert.Equal(t, "up", body.Data.Components["database"])
		assert.Equal(t, "disabled", body.Data.Components["cache"])
	})

	t.Run("redis down is degraded", func(t *testing.T) {
		rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond, MaxRetries: -1})
		defer rdb.Close()

		code, body := serveHealth(t, NewHealthController(openDB(t), rdb))
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "degraded", body.Data.Status)
		assert.Equal(t, "down", body.Data.Components["cache"])
	})

	t.Run("database closed", func(t *testing.T) {
		db := openDB(t)
		sqlDB, err := db.DB()
		require.NoError(t, err)
		require.NoError(t, sqlDB.Close())

		code, body := serveHealth(t, NewHealthController(db, nil))
		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "unhealthy", body.Data.Status)
		assert.Equal(t, "down", body.Data.Components["database"])
	})
}
