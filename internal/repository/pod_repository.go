package repository

import (
	"context"
	"errors"
	"skillbloom_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 健康日志每个用户只保留最近 30 条
const HealthLogRetention = 30

type PodRepository struct {
	DB *gorm.DB
}

func NewPodRepository(db *gorm.DB) *PodRepository {
	return &PodRepository{DB: db}
}

func (r *PodRepository) FindEnrollment(ctx context.Context, userID uint, podType model.PodType) (*model.PodEnrollment, error) {
	var pod model.PodEnrollment
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND pod_type = ?", userID, podType).
		First(&pod).Error
	return &pod, err
}

func (r *PodRepository) CreateEnrollment(ctx context.Context, pod *model.PodEnrollment) error {
	return r.DB.WithContext(ctx).Create(pod).Error
}

// EnsureEnrollment 不存在时创建一条进度为 0 的记录
func (r *PodRepository) EnsureEnrollment(ctx context.Context, userID uint, podType model.PodType) error {
	return ensureEnrollment(r.DB.WithContext(ctx), userID, podType)
}

func ensureEnrollment(tx *gorm.DB, userID uint, podType model.PodType) error {
	return tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.PodEnrollment{UserID: userID, PodType: podType}).Error
}

func (r *PodRepository) ListEnrollments(ctx context.Context, userID uint) ([]model.PodEnrollment, error) {
	var pods []model.PodEnrollment
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&pods).Error
	return pods, err
}

// SaveProgress 覆盖进度与徽章状态并记录已完成任务，记录不存在时插入
func (r *PodRepository) SaveProgress(ctx context.Context, pod *model.PodEnrollment, completedTasks []int) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "pod_type"}},
			DoUpdates: clause.AssignmentColumns([]string{"progress", "badge_earned", "completed_at", "updated_at"}),
		}).Create(pod).Error
		if err != nil {
			return err
		}
		if len(completedTasks) == 0 {
			return nil
		}

		rows := make([]model.PodTaskCompletion, 0, len(completedTasks))
		for _, id := range completedTasks {
			rows = append(rows, model.PodTaskCompletion{UserID: pod.UserID, PodType: pod.PodType, TaskID: id})
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
	})
}

func (r *PodRepository) CompletedTaskIDs(ctx context.Context, userID uint, podType model.PodType) ([]int, error) {
	var ids []int
	err := r.DB.WithContext(ctx).Model(&model.PodTaskCompletion{}).
		Where("user_id = ? AND pod_type = ?", userID, podType).
		Order("task_id ASC").
		Pluck("task_id", &ids).Error
	return ids, err
}

// AddHealthLog 写入一条健康日志并裁剪到最近 HealthLogRetention 条
func (r *PodRepository) AddHealthLog(ctx context.Context, entry *model.HealthLog) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureEnrollment(tx, entry.UserID, model.PodHealth); err != nil {
			return err
		}
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		// 找到第 N 新的那条，比它更旧的全部删除
		var boundary model.HealthLog
		err := tx.Where("user_id = ?", entry.UserID).
			Order("id DESC").
			Offset(HealthLogRetention - 1).
			Limit(1).
			Take(&boundary).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return tx.Where("user_id = ? AND id < ?", entry.UserID, boundary.ID).
			Delete(&model.HealthLog{}).Error
	})
}

func (r *PodRepository) ListHealthLogs(ctx context.Context, userID uint) ([]model.HealthLog, error) {
	var logs []model.HealthLog
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&logs).Error
	return logs, err
}

func (r *PodRepository) AddJournalEntry(ctx context.Context, entry *model.JournalEntry) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureEnrollment(tx, entry.UserID, model.PodMentalHealth); err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
}

func (r *PodRepository) ListJournalEntries(ctx context.Context, userID uint) ([]model.JournalEntry, error) {
	var entries []model.JournalEntry
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&entries).Error
	return entries, err
}
