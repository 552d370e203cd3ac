package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"skillbloom_backend/internal/config"
	"skillbloom_backend/pkg/database"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	cfg := &config.Config{
		Server:    config.ServerConfig{Mode: gin.TestMode},
		JWT:       config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour},
		AI:        config.AIConfig{TimeoutSeconds: 1},
		RateLimit: config.RateLimitConfig{MaxRequests: 1000, WindowMinutes: 1},
		Baby:      config.BabyMonitorConfig{StreamIntervalSeconds: 1},
	}
	return newApp(cfg, db, nil)
}

func doJSON(t *testing.T, a *App, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func signup(t *testing.T, a *App, email string) string {
	t.Helper()
	w, env := doJSON(t, a, http.MethodPost, "/api/auth/signup", "", gin.H{
		"name": "Asha", "email": email, "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var data struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.AccessToken)
	return data.AccessToken
}

func TestHealth(t *testing.T) {
	a := newTestApp(t)

	for _, path := range []string{"/health", "/api/health"} {
		w, env := doJSON(t, a, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, string(env.Data), `"healthy"`)
	}
}

func TestAuthFlow(t *testing.T) {
	a := newTestApp(t)
	token := signup(t, a, "asha@example.com")

	t.Run("duplicate email", func(t *testing.T) {
		w, _ := doJSON(t, a, http.MethodPost, "/api/auth/signup", "", gin.H{
			"name": "Other", "email": "ASHA@example.com", "password": "secret123",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("login", func(t *testing.T) {
		w, env := doJSON(t, a, http.MethodPost, "/api/auth/login", "", gin.H{
			"email": "asha@example.com", "password": "secret123",
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, string(env.Data), `"Login successful"`)

		w, _ = doJSON(t, a, http.MethodPost, "/api/auth/login", "", gin.H{
			"email": "asha@example.com", "password": "wrong-password",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("profile requires token", func(t *testing.T) {
		w, _ := doJSON(t, a, http.MethodGet, "/api/auth/profile", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("update profile", func(t *testing.T) {
		w, env := doJSON(t, a, http.MethodPut, "/api/auth/profile", token, gin.H{
			"skills": []string{" Go ", "", "SQL"}, "career_gap": 3,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var user struct {
			Skills    []string `json:"skills"`
			CareerGap int      `json:"career_gap"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &user))
		assert.Equal(t, []string{"Go", "SQL"}, user.Skills)
		assert.Equal(t, 3, user.CareerGap)
	})
}

func TestAssessmentEndpoints(t *testing.T) {
	a := newTestApp(t)
	token := signup(t, a, "assess@example.com")

	w, _ := doJSON(t, a, http.MethodGet, "/api/assessment/personality/questions", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, a, http.MethodGet, "/api/assessment/skill/questions/cooking", "", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, env := doJSON(t, a, http.MethodPost, "/api/assessment/personality/submit", token, gin.H{
		"answers": []gin.H{{"question_id": 1, "rating": 4.5}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "Invalid rating value for question 1", env.Message)

	w, env = doJSON(t, a, http.MethodPost, "/api/assessment/personality/submit", token, gin.H{
		"answers": []gin.H{{"question_id": 1, "rating": 5}, {"question_id": 6, "rating": 4}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, string(env.Data), `"personality_type":"analytical"`)

	w, env = doJSON(t, a, http.MethodGet, "/api/assessment/results", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var results []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &results))
	assert.Len(t, results, 1)
}

func TestAIChatFallsBackWithoutProvider(t *testing.T) {
	a := newTestApp(t)
	token := signup(t, a, "chat@example.com")

	w, _ := doJSON(t, a, http.MethodPost, "/api/ai/chat", token, gin.H{})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, env := doJSON(t, a, http.MethodPost, "/api/ai/chat", token, gin.H{"query": "I feel anxious about returning"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, string(env.Data))
}

func TestSkillPodsEndpoints(t *testing.T) {
	a := newTestApp(t)
	token := signup(t, a, "paths@example.com")

	w, _ := doJSON(t, a, http.MethodGet, "/api/skill-pods/paths", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, a, http.MethodGet, "/api/skill-pods/progress/vlsi", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, a, http.MethodPost, "/api/skill-pods/enroll", token, gin.H{"path_id": "vlsi"})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, _ = doJSON(t, a, http.MethodPost, "/api/skill-pods/enroll", token, gin.H{"path_id": "vlsi"})
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, a, http.MethodGet, "/api/skill-pods/progress/vlsi", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPodsGuestDemo(t *testing.T) {
	a := newTestApp(t)

	w, env := doJSON(t, a, http.MethodPost, "/api/pods/enroll", "", gin.H{"pod_type": "skill"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, string(env.Data), "(demo)")

	w, _ = doJSON(t, a, http.MethodGet, "/api/pods/progress", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// 健康日志必须登录
	w, _ = doJSON(t, a, http.MethodGet, "/api/pods/health/log", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBabyProfileAcceptsStringNumbers(t *testing.T) {
	a := newTestApp(t)
	token := signup(t, a, "baby@example.com")

	w, env := doJSON(t, a, http.MethodPost, "/api/baby/profile", token, gin.H{
		"name": "Mia", "weight": "3.4", "height": 50,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var profile struct {
		Name   string  `json:"name"`
		Weight float64 `json:"weight"`
		Height float64 `json:"height"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, "Mia", profile.Name)
	assert.InDelta(t, 3.4, profile.Weight, 1e-9)
	assert.InDelta(t, 50.0, profile.Height, 1e-9)

	w, _ = doJSON(t, a, http.MethodGet, "/api/baby/current", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	a := newTestApp(t)

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
