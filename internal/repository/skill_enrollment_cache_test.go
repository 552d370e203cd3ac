package repository

import (
	"context"
	"skillbloom_backend/internal/model"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCachedEnrollmentRepo(t *testing.T) (*SkillEnrollmentRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewSkillEnrollmentRepository(newTestDB(t), rdb, 5*time.Minute), mr
}

func newEnrollment(userID uint, pathID string) *model.SkillEnrollment {
	return &model.SkillEnrollment{
		UserID:            userID,
		PathID:            pathID,
		CompletedTopics:   []string{},
		AssessmentResults: map[string]model.TopicResult{},
	}
}

func TestSkillEnrollmentCache_HitAndMiss(t *testing.T) {
	repo, mr := newCachedEnrollmentRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newEnrollment(3, "vlsi")))
	key := progressKey(3, "vlsi")
	require.True(t, mr.Exists(key))
	assert.Equal(t, 5*time.Minute, mr.TTL(key))

	// 绕过仓储直接改库：命中缓存时读不到这次修改
	require.NoError(t, repo.DB.Model(&model.SkillEnrollment{}).
		Where("user_id = ? AND path_id = ?", 3, "vlsi").
		Update("progress", 40).Error)

	got, err := repo.FindByUserAndPathCached(ctx, 3, "vlsi")
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.Progress)
	assert.Equal(t, 1, got.Version)

	mr.FlushAll()
	got, err = repo.FindByUserAndPathCached(ctx, 3, "vlsi")
	require.NoError(t, err)
	assert.Equal(t, 40.0, got.Progress)
	assert.True(t, mr.Exists(key), "miss refills the cache")

	_, err = repo.FindByUserAndPathCached(ctx, 3, "cloud_engineer")
	assert.Error(t, err)
}

func TestSkillEnrollmentCache_WriteRefreshesEntry(t *testing.T) {
	repo, _ := newCachedEnrollmentRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newEnrollment(4, "fullstack")))
	e, err := repo.FindByUserAndPathCached(ctx, 4, "fullstack")
	require.NoError(t, err)

	e.ApplyTopicResult("frontend", model.TopicResult{Score: 90, CompletedAt: time.Now()}, 5)
	ok, err := repo.UpdateWithVersion(ctx, e)
	require.NoError(t, err)
	require.True(t, ok)

	got, err := repo.FindByUserAndPathCached(ctx, 4, "fullstack")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Version)
	assert.Equal(t, 20.0, got.Progress)
	assert.Equal(t, []string{"frontend"}, got.CompletedTopics)
}

func TestSkillEnrollmentCache_StaleFillDoesNotOverwrite(t *testing.T) {
	repo, mr := newCachedEnrollmentRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newEnrollment(5, "ml_engineer")))
	mr.FlushAll()

	// 读者未命中缓存，先从库里拿到旧行
	stale, err := repo.FindByUserAndPath(ctx, 5, "ml_engineer")
	require.NoError(t, err)

	// 此时写者提交新版本
	fresh, err := repo.FindByUserAndPath(ctx, 5, "ml_engineer")
	require.NoError(t, err)
	fresh.ApplyTopicResult("python", model.TopicResult{Score: 70, CompletedAt: time.Now()}, 5)
	ok, err := repo.UpdateWithVersion(ctx, fresh)
	require.NoError(t, err)
	require.True(t, ok)

	// 读者随后回填旧行
	stored, err := repo.cache(ctx, stale)
	require.NoError(t, err)
	assert.False(t, stored)

	got, err := repo.FindByUserAndPathCached(ctx, 5, "ml_engineer")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Version)
	assert.Equal(t, 20.0, got.Progress)
}

func TestSkillEnrollmentCache_LegacyValueIsIgnored(t *testing.T) {
	repo, mr := newCachedEnrollmentRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newEnrollment(6, "data_science")))
	key := progressKey(6, "data_science")
	mr.Del(key)
	require.NoError(t, mr.Set(key, `{"progress":99}`))

	got, err := repo.FindByUserAndPathCached(ctx, 6, "data_science")
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.Progress)
	assert.False(t, mr.Exists(key), "unreadable entry is dropped")

	_, err = repo.FindByUserAndPathCached(ctx, 6, "data_science")
	require.NoError(t, err)
	assert.Equal(t, "1", mr.HGet(key, "version"))
}
