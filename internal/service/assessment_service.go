package service

import (
	"context"
	"encoding/json"
	"fmt"
	"skillbloom_backend/internal/catalog"
	"skillbloom_backend/internal/model"
	"skillbloom_backend/internal/repository"
	"skillbloom_backend/internal/util"
	"skillbloom_backend/pkg/monitoring"
)

type PersonalityAnswer struct {
	QuestionID int `json:"question_id"`
	Rating     int `json:"rating"`
}

type SkillAnswer struct {
	QuestionID     int `json:"question_id"`
	SelectedOption int `json:"selected_option"`
}

type PersonalityResult struct {
	PersonalityType string         `json:"personality_type"`
	Score           float64        `json:"score"`
	Breakdown       map[string]int `json:"breakdown"`
}

type SkillResult struct {
	Category string  `json:"category"`
	Score    float64 `json:"score"`
	Correct  int     `json:"correct"`
	Total    int     `json:"total"`
	Message  string  `json:"message"`
}

// ScorePersonality 按特质累加评分，取最大值为性格类型（并列时取枚举顺序靠前的）
func ScorePersonality(answers []PersonalityAnswer) (*PersonalityResult, error) {
	if len(answers) == 0 {
		return nil, util.NewValidationError("answers", "No answers provided")
	}

	sums := make(map[catalog.Trait]int, len(catalog.Traits))
	for i, a := range answers {
		q, ok := catalog.PersonalityQuestionByID(a.QuestionID)
		if !ok {
			return nil, util.NewValidationError(fmt.Sprintf("answers[%d].question_id", i),
				fmt.Sprintf("Invalid question id: %d", a.QuestionID))
		}
		if a.Rating < 1 || a.Rating > 5 {
			return nil, util.NewValidationError(fmt.Sprintf("answers[%d].rating", i),
				fmt.Sprintf("Invalid rating value for question %d", a.QuestionID))
		}
		sums[q.Trait] += a.Rating
	}

	var (
		dominant catalog.Trait
		best     = -1
		total    int
	)
	breakdown := make(map[string]int, len(catalog.Traits))
	for _, t := range catalog.Traits {
		v := sums[t]
		breakdown[string(t)] = v
		total += v
		if v > best {
			best = v
			dominant = t
		}
	}

	score := float64(total) / float64(len(answers)*5) * 100
	return &PersonalityResult{
		PersonalityType: string(dominant),
		Score:           util.Round2(score),
		Breakdown:       breakdown,
	}, nil
}

// ScoreSkill 对照答案批改，答案数必须与该分类题目数一致
func ScoreSkill(category string, answers []SkillAnswer) (*SkillResult, error) {
	if category == "" {
		return nil, util.NewValidationError("category", "Missing category")
	}
	if !catalog.IsSkillCategory(category) {
		return nil, util.NewValidationError("category", "Invalid category")
	}
	if len(answers) == 0 {
		return nil, util.NewValidationError("answers", "Missing answers")
	}
	total := catalog.SkillQuestionCount(category)
	if len(answers) != total {
		return nil, util.NewValidationError("answers", "wrong answer count")
	}

	seen := make(map[int]bool, len(answers))
	correct := 0
	for i, a := range answers {
		q, ok := catalog.SkillQuestionByID(category, a.QuestionID)
		if !ok {
			return nil, util.NewValidationError(fmt.Sprintf("answers[%d].question_id", i),
				fmt.Sprintf("Invalid question id: %d", a.QuestionID))
		}
		if seen[a.QuestionID] {
			return nil, util.NewValidationError(fmt.Sprintf("answers[%d].question_id", i),
				fmt.Sprintf("Duplicate answer for question %d", a.QuestionID))
		}
		seen[a.QuestionID] = true
		if a.SelectedOption < 0 || a.SelectedOption >= len(q.Options) {
			return nil, util.NewValidationError(fmt.Sprintf("answers[%d].selected_option", i),
				fmt.Sprintf("Invalid option selected for question %d", a.QuestionID))
		}
		if a.SelectedOption == q.CorrectIndex {
			correct++
		}
	}

	score := util.Round2(float64(correct) / float64(total) * 100)
	return &SkillResult{
		Category: category,
		Score:    score,
		Correct:  correct,
		Total:    total,
		Message:  fmt.Sprintf("You scored %g%% in %s!", score, category),
	}, nil
}

type AssessmentService struct {
	AssessmentRepo *repository.AssessmentRepository
	UserRepo       *repository.UserRepository
}

func NewAssessmentService(assessmentRepo *repository.AssessmentRepository, userRepo *repository.UserRepository) *AssessmentService {
	return &AssessmentService{
		AssessmentRepo: assessmentRepo,
		UserRepo:       userRepo,
	}
}

func (s *AssessmentService) PersonalityQuestions() []catalog.PersonalityQuestion {
	return catalog.PersonalityQuestions()
}

// SkillQuestions 不包含正确答案
func (s *AssessmentService) SkillQuestions(category string) ([]catalog.SkillQuestion, error) {
	if !catalog.IsSkillCategory(category) {
		return nil, util.NewValidationError("category", "Invalid category")
	}
	return catalog.SkillQuestions(category), nil
}

// SubmitPersonality 保存测评记录，并用结果覆盖用户画像中的性格类型
func (s *AssessmentService) SubmitPersonality(ctx context.Context, userID uint, answers []PersonalityAnswer) (*PersonalityResult, error) {
	result, err := ScorePersonality(answers)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}
	record := &model.AssessmentResult{
		UserID:          userID,
		TestType:        model.TestPersonality,
		Answers:         raw,
		Score:           result.Score,
		PersonalityType: result.PersonalityType,
	}
	if err := s.AssessmentRepo.Create(ctx, record); err != nil {
		return nil, util.WrapStorage("create assessment", err)
	}
	if err := s.UserRepo.UpdatePersonality(ctx, userID, result.PersonalityType); err != nil {
		return nil, util.WrapStorage("update personality", err)
	}

	monitoring.AssessmentSubmissions.WithLabelValues(string(model.TestPersonality)).Inc()
	return result, nil
}

func (s *AssessmentService) SubmitSkill(ctx context.Context, userID uint, category string, answers []SkillAnswer) (*SkillResult, error) {
	result, err := ScoreSkill(category, answers)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}
	record := &model.AssessmentResult{
		UserID:        userID,
		TestType:      model.TestSkill,
		Answers:       raw,
		Score:         result.Score,
		SkillCategory: category,
	}
	if err := s.AssessmentRepo.Create(ctx, record); err != nil {
		return nil, util.WrapStorage("create assessment", err)
	}

	monitoring.AssessmentSubmissions.WithLabelValues(string(model.TestSkill)).Inc()
	return result, nil
}

// Results 按时间倒序返回用户的全部测评记录
func (s *AssessmentService) Results(ctx context.Context, userID uint) ([]model.AssessmentResult, error) {
	results, err := s.AssessmentRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, util.WrapStorage("list assessments", err)
	}
	return results, nil
}
