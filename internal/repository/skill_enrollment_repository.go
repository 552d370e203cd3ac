package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"skillbloom_backend/internal/model"
	"skillbloom_backend/pkg/logger"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SkillEnrollmentRepository struct {
	DB    *gorm.DB
	Redis *redis.Client
	ttl   time.Duration
}

// NewSkillEnrollmentRepository 的 rdb 可以为 nil，此时不走缓存
func NewSkillEnrollmentRepository(db *gorm.DB, rdb *redis.Client, ttl time.Duration) *SkillEnrollmentRepository {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &SkillEnrollmentRepository{DB: db, Redis: rdb, ttl: ttl}
}

func progressKey(userID uint, pathID string) string {
	return fmt.Sprintf("skillbloom:progress:%d:%s", userID, pathID)
}

// storeIfNewer 只在缓存为空或缓存版本更旧时写入，避免回源读到的旧行覆盖写路径刚写入的新行
var storeIfNewer = redis.NewScript(`
local cur = redis.call('HGET', KEYS[1], 'version')
if cur and tonumber(cur) >= tonumber(ARGV[1]) then
	return 0
end
redis.call('HSET', KEYS[1], 'version', ARGV[1], 'data', ARGV[2])
redis.call('PEXPIRE', KEYS[1], ARGV[3])
return 1
`)

// cache 把一行进度按版本写入缓存，返回是否写入；缓存里已有同版本或更新版本时不写
func (r *SkillEnrollmentRepository) cache(ctx context.Context, e *model.SkillEnrollment) (bool, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return false, err
	}
	stored, err := storeIfNewer.Run(ctx, r.Redis,
		[]string{progressKey(e.UserID, e.PathID)},
		e.Version, raw, r.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, err
	}
	return stored == 1, nil
}

func (r *SkillEnrollmentRepository) drop(ctx context.Context, userID uint, pathID string, cause error) {
	fields := []zap.Field{zap.Uint("user_id", userID), zap.String("path_id", pathID)}
	if cause != nil {
		logger.Log.Warn("Failed to cache progress", append(fields, zap.Error(cause))...)
	}
	if err := r.Redis.Del(ctx, progressKey(userID, pathID)).Err(); err != nil {
		logger.Log.Warn("Failed to invalidate progress cache", append(fields, zap.Error(err))...)
	}
}

// refresh 写路径成功后直接写入新版本；写不进去时删除键，保证不会留下旧版本
func (r *SkillEnrollmentRepository) refresh(ctx context.Context, e *model.SkillEnrollment) {
	if r.Redis == nil {
		return
	}
	if stored, err := r.cache(ctx, e); err != nil || !stored {
		r.drop(ctx, e.UserID, e.PathID, err)
	}
}

func (r *SkillEnrollmentRepository) cached(ctx context.Context, userID uint, pathID string) (*model.SkillEnrollment, bool) {
	vals, err := r.Redis.HMGet(ctx, progressKey(userID, pathID), "version", "data").Result()
	if err != nil || len(vals) != 2 {
		return nil, false
	}
	verText, ok1 := vals[0].(string)
	data, ok2 := vals[1].(string)
	if !ok1 || !ok2 {
		return nil, false
	}
	version, err := strconv.Atoi(verText)
	if err != nil {
		return nil, false
	}
	var e model.SkillEnrollment
	if json.Unmarshal([]byte(data), &e) != nil {
		return nil, false
	}
	e.Version = version
	return &e, true
}

func (r *SkillEnrollmentRepository) Create(ctx context.Context, e *model.SkillEnrollment) error {
	if e.Version == 0 {
		e.Version = 1
	}
	err := r.DB.WithContext(ctx).Create(e).Error
	if err == nil {
		r.refresh(ctx, e)
	}
	return err
}

func (r *SkillEnrollmentRepository) FindByUserAndPath(ctx context.Context, userID uint, pathID string) (*model.SkillEnrollment, error) {
	var e model.SkillEnrollment
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND path_id = ?", userID, pathID).
		First(&e).Error
	return &e, err
}

// FindByUserAndPathCached 读进度时优先查缓存，缓存未命中回源数据库
func (r *SkillEnrollmentRepository) FindByUserAndPathCached(ctx context.Context, userID uint, pathID string) (*model.SkillEnrollment, error) {
	if r.Redis == nil {
		return r.FindByUserAndPath(ctx, userID, pathID)
	}

	if e, ok := r.cached(ctx, userID, pathID); ok {
		return e, nil
	}

	e, err := r.FindByUserAndPath(ctx, userID, pathID)
	if err != nil {
		return e, err
	}
	// 回填输给更新的版本是正常情况；只有缓存出错（如旧格式的键）才清掉
	if _, cErr := r.cache(ctx, e); cErr != nil {
		r.drop(ctx, userID, pathID, cErr)
	}
	return e, nil
}

// UpdateWithVersion 乐观锁写回：只有 version 未变时才更新，返回是否写入成功
func (r *SkillEnrollmentRepository) UpdateWithVersion(ctx context.Context, e *model.SkillEnrollment) (bool, error) {
	expected := e.Version
	now := time.Now()

	res := r.DB.WithContext(ctx).
		Model(&model.SkillEnrollment{BaseModel: model.BaseModel{ID: e.ID}}).
		Where("version = ?", expected).
		Select("progress", "completed_topics", "assessment_results", "version", "updated_at").
		Updates(&model.SkillEnrollment{
			Progress:          e.Progress,
			CompletedTopics:   e.CompletedTopics,
			AssessmentResults: e.AssessmentResults,
			Version:           expected + 1,
			BaseModel:         model.BaseModel{UpdatedAt: now},
		})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	e.Version = expected + 1
	e.UpdatedAt = now
	r.refresh(ctx, e)
	return true, nil
}
