package repository

import (
	"context"
	"fmt"
	"skillbloom_backend/internal/model"
	"skillbloom_backend/pkg/database"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
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
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	u := &model.User{Name: "Ada", Email: email, Password: "x", Role: model.RoleUser, Skills: []string{"Go"}}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), u))
	return u
}

func TestUserRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := createUser(t, db, "ada@example.com")

	dup := &model.User{Name: "Other", Email: "ada@example.com", Password: "y"}
	assert.ErrorIs(t, repo.Create(ctx, dup), gorm.ErrDuplicatedKey)

	require.NoError(t, repo.UpdatePersonality(ctx, u.ID, "creative"))

	u.Skills = []string{"Go", "SQL"}
	u.CareerGap = 3
	require.NoError(t, repo.UpdateFields(ctx, u, "skills", "career_gap"))

	got, err := repo.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "creative", got.Personality)
	assert.Equal(t, []string{"Go", "SQL"}, got.Skills)
	assert.Equal(t, 3, got.CareerGap)

	_, err = repo.FindByID(ctx, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAssessmentRepository_ListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewAssessmentRepository(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &model.AssessmentResult{
			UserID:    7,
			TestType:  model.TestSkill,
			Answers:   []byte(`[]`),
			Score:     float64(i * 10),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, repo.Create(ctx, &model.AssessmentResult{UserID: 8, TestType: model.TestSkill, Answers: []byte(`[]`)}))

	results, err := repo.ListByUser(ctx, 7)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, 20.0, results[0].Score)
	assert.Equal(t, 0.0, results[2].Score)
}

func TestSkillEnrollmentRepository_VersionCheck(t *testing.T) {
	db := newTestDB(t)
	repo := NewSkillEnrollmentRepository(db, nil, 0)
	ctx := context.Background()

	e := &model.SkillEnrollment{UserID: 1, PathID: "fullstack", CompletedTopics: []string{}, AssessmentResults: map[string]model.TopicResult{}}
	require.NoError(t, repo.Create(ctx, e))
	assert.Equal(t, 1, e.Version)

	dup := &model.SkillEnrollment{UserID: 1, PathID: "fullstack"}
	assert.ErrorIs(t, repo.Create(ctx, dup), gorm.ErrDuplicatedKey)

	first, err := repo.FindByUserAndPath(ctx, 1, "fullstack")
	require.NoError(t, err)
	stale, err := repo.FindByUserAndPath(ctx, 1, "fullstack")
	require.NoError(t, err)

	first.ApplyTopicResult("frontend", model.TopicResult{Score: 80, CompletedAt: time.Now()}, 5)
	ok, err := repo.UpdateWithVersion(ctx, first)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, first.Version)

	stale.ApplyTopicResult("backend", model.TopicResult{Score: 50, CompletedAt: time.Now()}, 5)
	ok, err = repo.UpdateWithVersion(ctx, stale)
	require.NoError(t, err)
	assert.False(t, ok, "stale version must not overwrite")

	got, err := repo.FindByUserAndPathCached(ctx, 1, "fullstack")
	require.NoError(t, err)
	assert.Equal(t, 20.0, got.Progress)
	assert.Equal(t, []string{"frontend"}, got.CompletedTopics)
	assert.Equal(t, 80.0, got.AssessmentResults["frontend"].Score)
}

func TestPodRepository_SaveProgressUpserts(t *testing.T) {
	db := newTestDB(t)
	repo := NewPodRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.SaveProgress(ctx, &model.PodEnrollment{UserID: 1, PodType: model.PodSkill, Progress: 40}, []int{1}))
	require.NoError(t, repo.SaveProgress(ctx, &model.PodEnrollment{UserID: 1, PodType: model.PodSkill, Progress: 100, BadgeEarned: true}, []int{1, 2}))

	pods, err := repo.ListEnrollments(ctx, 1)
	require.NoError(t, err)
	require.Len(t, pods, 1)
	assert.Equal(t, 100, pods[0].Progress)
	assert.True(t, pods[0].BadgeEarned)

	ids, err := repo.CompletedTaskIDs(ctx, 1, model.PodSkill)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, ids)
}

func TestPodRepository_HealthLogRetention(t *testing.T) {
	db := newTestDB(t)
	repo := NewPodRepository(db)
	ctx := context.Background()

	for i := 0; i < HealthLogRetention+2; i++ {
		require.NoError(t, repo.AddHealthLog(ctx, &model.HealthLog{UserID: 3, Mood: "ok", Sleep: i, Energy: 5, Timestamp: time.Now()}))
	}

	logs, err := repo.ListHealthLogs(ctx, 3)
	require.NoError(t, err)
	require.Len(t, logs, HealthLogRetention)
	assert.Equal(t, 2, logs[0].Sleep)
	assert.Equal(t, HealthLogRetention+1, logs[len(logs)-1].Sleep)

	// 写日志时会自动加入 health pod
	_, err = repo.FindEnrollment(ctx, 3, model.PodHealth)
	assert.NoError(t, err)
}

func TestBabyRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewBabyRepository(db)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, repo.CreateReadings(ctx,
		&model.BabyReading{UserID: 1, Temperature: 36.8, Motion: "Sleeping", SleepStatus: "Deep Sleep", Timestamp: now.Add(-48 * time.Hour)},
		&model.BabyReading{UserID: 1, Temperature: 37.0, Motion: "Awake", SleepStatus: "Awake", Timestamp: now},
	))

	recent, err := repo.ReadingsSince(ctx, 1, now.Add(-24*time.Hour))
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "Awake", recent[0].Motion)
	assert.Len(t, recent[0].ID, 36)

	all, err := repo.ListReadings(ctx, 1, 1)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, repo.UpsertProfile(ctx, &model.BabyProfile{UserID: 1, Name: "Mia", Weight: 4.2}))
	require.NoError(t, repo.UpsertProfile(ctx, &model.BabyProfile{UserID: 1, Name: "Mia", Weight: 4.8}))
	p, err := repo.FindProfile(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 4.8, p.Weight)
}
