package service

import (
	"context"
	"errors"
	"fmt"
	"skillbloom_backend/internal/catalog"
	"skillbloom_backend/internal/model"
	"skillbloom_backend/internal/repository"
	"skillbloom_backend/internal/util"
	"strings"
	"time"

	"gorm.io/gorm"
)

type PodEnrollResult struct {
	Created bool                 `json:"-"`
	Message string               `json:"message"`
	PodID   *uint                `json:"pod_id"`
	Pod     *model.PodEnrollment `json:"-"`
}

type PodUpdate struct {
	PodType        string `json:"pod_type"`
	Progress       int    `json:"progress"`
	CompletedTasks []int  `json:"completed_tasks"`
}

type PodUpdateResult struct {
	Message     string `json:"message"`
	Progress    int    `json:"progress"`
	BadgeEarned bool   `json:"badge_earned"`
}

type PodTaskStatus struct {
	catalog.PodTask
	Completed bool `json:"completed"`
}

type PodDetails struct {
	PodType string          `json:"pod_type"`
	Tasks   []PodTaskStatus `json:"tasks"`
}

type PodService struct {
	PodRepo *repository.PodRepository
	now     func() time.Time
}

func NewPodService(podRepo *repository.PodRepository) *PodService {
	return &PodService{PodRepo: podRepo, now: time.Now}
}

func parsePodType(podType string) (model.PodType, error) {
	if !model.IsPodType(podType) {
		return "", util.NewValidationError("pod_type", "Invalid pod type")
	}
	return model.PodType(podType), nil
}

func (s *PodService) Enroll(ctx context.Context, userID uint, podType string) (*PodEnrollResult, error) {
	pt, err := parsePodType(podType)
	if err != nil {
		return nil, err
	}

	existing, err := s.PodRepo.FindEnrollment(ctx, userID, pt)
	if err == nil {
		return &PodEnrollResult{Created: false, Message: "Already enrolled in this pod", PodID: &existing.ID, Pod: existing}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.WrapStorage("find pod", err)
	}

	pod := &model.PodEnrollment{UserID: userID, PodType: pt}
	if err := s.PodRepo.CreateEnrollment(ctx, pod); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return &PodEnrollResult{Created: false, Message: "Already enrolled in this pod"}, nil
		}
		return nil, util.WrapStorage("create pod", err)
	}
	return &PodEnrollResult{
		Created: true,
		Message: fmt.Sprintf("Successfully enrolled in %s pod", pt),
		PodID:   &pod.ID,
		Pod:     pod,
	}, nil
}

// DemoEnroll 未登录用户的演示报名，不写库
func (s *PodService) DemoEnroll(podType string) (*PodEnrollResult, error) {
	pt, err := parsePodType(podType)
	if err != nil {
		return nil, err
	}
	return &PodEnrollResult{Created: true, Message: fmt.Sprintf("(demo) Successfully enrolled in %s pod", pt)}, nil
}

func (s *PodService) Progress(ctx context.Context, userID uint) ([]model.PodEnrollment, error) {
	pods, err := s.PodRepo.ListEnrollments(ctx, userID)
	if err != nil {
		return nil, util.WrapStorage("list pods", err)
	}
	return pods, nil
}

func (s *PodService) DemoProgress() []model.PodEnrollment {
	return []model.PodEnrollment{
		{PodType: model.PodSkill, Progress: 40},
		{PodType: model.PodCompany, Progress: 60},
		{PodType: model.PodHealth, Progress: 20},
	}
}

func (s *PodService) validateUpdate(u PodUpdate) (model.PodType, error) {
	pt, err := parsePodType(u.PodType)
	if err != nil {
		return "", err
	}
	if u.Progress < 0 {
		return "", util.NewValidationError("progress", "Progress must not be negative")
	}
	for i, id := range u.CompletedTasks {
		if !catalog.HasPodTask(u.PodType, id) {
			return "", util.NewValidationError(fmt.Sprintf("completed_tasks[%d]", i),
				fmt.Sprintf("Unknown task %d for %s pod", id, pt))
		}
	}
	return pt, nil
}

func updateResult(pt model.PodType, progress int, demo bool) *PodUpdateResult {
	badge := progress >= 100
	msg := "Pod progress updated"
	if demo {
		msg = "Pod progress updated (demo)"
	}
	if progress == 100 {
		msg = fmt.Sprintf("Congratulations! You earned the %s Badge!", badgeTitle(pt))
	}
	return &PodUpdateResult{Message: msg, Progress: progress, BadgeEarned: badge}
}

// badgeTitle baby_monitor -> Baby Monitor
func badgeTitle(pt model.PodType) string {
	words := strings.Fields(strings.ReplaceAll(string(pt), "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// UpdateProgress 覆盖进度，>=100 时获得徽章，记录不存在时自动创建
func (s *PodService) UpdateProgress(ctx context.Context, userID uint, u PodUpdate) (*PodUpdateResult, error) {
	pt, err := s.validateUpdate(u)
	if err != nil {
		return nil, err
	}

	pod := &model.PodEnrollment{
		UserID:      userID,
		PodType:     pt,
		Progress:    u.Progress,
		BadgeEarned: u.Progress >= 100,
	}
	if pod.BadgeEarned {
		// 保留第一次获得徽章的时间
		existing, err := s.PodRepo.FindEnrollment(ctx, userID, pt)
		switch {
		case err == nil && existing.CompletedAt != nil:
			pod.CompletedAt = existing.CompletedAt
		case err == nil || errors.Is(err, gorm.ErrRecordNotFound):
			now := s.now()
			pod.CompletedAt = &now
		default:
			return nil, util.WrapStorage("find pod", err)
		}
	}

	if err := s.PodRepo.SaveProgress(ctx, pod, u.CompletedTasks); err != nil {
		return nil, util.WrapStorage("save pod progress", err)
	}
	return updateResult(pt, u.Progress, false), nil
}

func (s *PodService) DemoUpdate(u PodUpdate) (*PodUpdateResult, error) {
	pt, err := s.validateUpdate(u)
	if err != nil {
		return nil, err
	}
	return updateResult(pt, u.Progress, true), nil
}

type HealthInput struct {
	Mood   string `json:"mood"`
	Sleep  int    `json:"sleep"`
	Energy int    `json:"energy"`
}

func (s *PodService) LogHealth(ctx context.Context, userID uint, in HealthInput) error {
	mood := strings.TrimSpace(in.Mood)
	if mood == "" {
		return util.NewValidationError("mood", "Mood is required")
	}
	if in.Sleep < 0 || in.Sleep > 24 {
		return util.NewValidationError("sleep", "Sleep hours must be between 0 and 24")
	}
	if in.Energy < 0 {
		return util.NewValidationError("energy", "Energy must not be negative")
	}

	entry := &model.HealthLog{
		UserID:    userID,
		Mood:      mood,
		Sleep:     in.Sleep,
		Energy:    in.Energy,
		Timestamp: s.now(),
	}
	if err := s.PodRepo.AddHealthLog(ctx, entry); err != nil {
		return util.WrapStorage("add health log", err)
	}
	return nil
}

func (s *PodService) HealthLogs(ctx context.Context, userID uint) ([]model.HealthLog, error) {
	logs, err := s.PodRepo.ListHealthLogs(ctx, userID)
	if err != nil {
		return nil, util.WrapStorage("list health logs", err)
	}
	return logs, nil
}

func (s *PodService) AddJournalEntry(ctx context.Context, userID uint, entry, emotion string) error {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return util.NewValidationError("entry", "Journal entry is required")
	}

	je := &model.JournalEntry{
		UserID:    userID,
		Entry:     entry,
		Emotion:   strings.TrimSpace(emotion),
		Timestamp: s.now(),
	}
	if err := s.PodRepo.AddJournalEntry(ctx, je); err != nil {
		return util.WrapStorage("add journal entry", err)
	}
	return nil
}

func (s *PodService) Journal(ctx context.Context, userID uint) ([]model.JournalEntry, error) {
	entries, err := s.PodRepo.ListJournalEntries(ctx, userID)
	if err != nil {
		return nil, util.WrapStorage("list journal", err)
	}
	return entries, nil
}

// Details 返回 pod 的任务列表；userID 为 nil 时所有任务都未完成
func (s *PodService) Details(ctx context.Context, userID *uint, podType string) (*PodDetails, error) {
	completed := map[int]bool{}
	if userID != nil && model.IsPodType(podType) {
		ids, err := s.PodRepo.CompletedTaskIDs(ctx, *userID, model.PodType(podType))
		if err != nil {
			return nil, util.WrapStorage("list completed tasks", err)
		}
		for _, id := range ids {
			completed[id] = true
		}
	}

	tasks := catalog.PodTasks(podType)
	out := make([]PodTaskStatus, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, PodTaskStatus{PodTask: t, Completed: completed[t.ID]})
	}
	return &PodDetails{PodType: podType, Tasks: out}, nil
}
