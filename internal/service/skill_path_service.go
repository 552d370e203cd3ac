package service

import (
	"context"
	"errors"
	"fmt"
	"skillbloom_backend/internal/catalog"
	"skillbloom_backend/internal/model"
	"skillbloom_backend/internal/repository"
	"skillbloom_backend/internal/util"
	"skillbloom_backend/pkg/logger"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 乐观锁冲突时的最大尝试次数
const enrollmentUpdateAttempts = 3

type PathSummary struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
}

type EnrollResult struct {
	Created    bool                   `json:"created"`
	Message    string                 `json:"message"`
	Enrollment *model.SkillEnrollment `json:"enrollment"`
}

// TopicAnswer 由调用方预先判定对错
type TopicAnswer struct {
	Correct *bool `json:"correct"`
}

type TopicAssessmentResult struct {
	Topic   string  `json:"topic"`
	Score   float64 `json:"score"`
	Message string  `json:"message"`
}

type SkillPathService struct {
	EnrollmentRepo *repository.SkillEnrollmentRepository
	Mentor         *MentorService
	now            func() time.Time
}

func NewSkillPathService(enrollmentRepo *repository.SkillEnrollmentRepository, mentor *MentorService) *SkillPathService {
	return &SkillPathService{
		EnrollmentRepo: enrollmentRepo,
		Mentor:         mentor,
		now:            time.Now,
	}
}

func (s *SkillPathService) ListPaths() []PathSummary {
	paths := catalog.SkillPaths()
	out := make([]PathSummary, 0, len(paths))
	for _, p := range paths {
		out = append(out, PathSummary{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Skills:      p.Skills,
		})
	}
	return out
}

func lookupPath(pathID string) (catalog.SkillPath, error) {
	path, ok := catalog.SkillPathByID(pathID)
	if !ok {
		return catalog.SkillPath{}, util.NewValidationError("path_id", "Invalid skill path")
	}
	return path, nil
}

// Enroll 幂等：已报名时直接返回，不做任何修改
func (s *SkillPathService) Enroll(ctx context.Context, userID uint, pathID string) (*EnrollResult, error) {
	path, err := lookupPath(pathID)
	if err != nil {
		return nil, err
	}

	existing, err := s.EnrollmentRepo.FindByUserAndPath(ctx, userID, pathID)
	if err == nil {
		return &EnrollResult{Created: false, Message: "Already enrolled in this skill path", Enrollment: existing}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.WrapStorage("find enrollment", err)
	}

	e := &model.SkillEnrollment{
		UserID:            userID,
		PathID:            pathID,
		Progress:          0,
		CompletedTopics:   []string{},
		AssessmentResults: map[string]model.TopicResult{},
	}
	if err := s.EnrollmentRepo.Create(ctx, e); err != nil {
		// 并发报名时唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, findErr := s.EnrollmentRepo.FindByUserAndPath(ctx, userID, pathID)
			if findErr != nil {
				return nil, util.WrapStorage("find enrollment", findErr)
			}
			return &EnrollResult{Created: false, Message: "Already enrolled in this skill path", Enrollment: existing}, nil
		}
		return nil, util.WrapStorage("create enrollment", err)
	}

	return &EnrollResult{
		Created:    true,
		Message:    fmt.Sprintf("Successfully enrolled in %s", path.Title),
		Enrollment: e,
	}, nil
}

// SubmitAssessment 合并单个主题的成绩并重新计算整体进度
func (s *SkillPathService) SubmitAssessment(ctx context.Context, userID uint, pathID, topic string, answers []TopicAnswer) (*TopicAssessmentResult, error) {
	path, err := lookupPath(pathID)
	if err != nil {
		return nil, err
	}
	if topic == "" {
		return nil, util.NewValidationError("topic", "Topic is required")
	}
	if !path.HasTopic(topic) {
		return nil, util.NewValidationError("topic", "Invalid assessment topic")
	}
	if len(answers) == 0 {
		return nil, util.NewValidationError("answers", "Answers are required")
	}

	correct := 0
	for i, a := range answers {
		if a.Correct == nil {
			return nil, util.NewValidationError(fmt.Sprintf("answers[%d].correct", i), "must be true or false")
		}
		if *a.Correct {
			correct++
		}
	}
	score := float64(correct) * 100 / float64(len(answers))
	result := model.TopicResult{Score: score, CompletedAt: s.now()}

	for attempt := 1; attempt <= enrollmentUpdateAttempts; attempt++ {
		e, err := s.EnrollmentRepo.FindByUserAndPath(ctx, userID, pathID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NewNotFoundError("skill path enrollment")
		}
		if err != nil {
			return nil, util.WrapStorage("find enrollment", err)
		}

		e.ApplyTopicResult(topic, result, len(path.AssessmentTopics))
		ok, err := s.EnrollmentRepo.UpdateWithVersion(ctx, e)
		if err != nil {
			return nil, util.WrapStorage("update enrollment", err)
		}
		if ok {
			return &TopicAssessmentResult{
				Topic:   topic,
				Score:   score,
				Message: catalog.ScoreFeedback(score),
			}, nil
		}

		logger.Log.Debug("Enrollment version conflict, retrying",
			zap.Uint("user_id", userID),
			zap.String("path_id", pathID),
			zap.Int("attempt", attempt),
		)
	}

	return nil, util.ErrConcurrentUpdate
}

func (s *SkillPathService) Progress(ctx context.Context, userID uint, pathID string) (*model.SkillEnrollment, error) {
	if _, err := lookupPath(pathID); err != nil {
		return nil, err
	}
	e, err := s.EnrollmentRepo.FindByUserAndPathCached(ctx, userID, pathID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NewNotFoundError("skill path enrollment")
	}
	if err != nil {
		return nil, util.WrapStorage("find enrollment", err)
	}
	return e, nil
}

// MentorGuidance 以路径导师的身份回答某个主题下的问题
func (s *SkillPathService) MentorGuidance(ctx context.Context, pathID, topic, question string) (string, error) {
	path, err := lookupPath(pathID)
	if err != nil {
		return "", err
	}
	topic, question = strings.TrimSpace(topic), strings.TrimSpace(question)
	if topic == "" || question == "" {
		return "", util.NewValidationError("topic", "Topic and question are required")
	}

	background := fmt.Sprintf("As a mentor for %s, focusing on %s", path.Title, topic)
	return s.Mentor.Resolve(ctx, background, question), nil
}
