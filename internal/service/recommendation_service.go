package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"skillbloom_backend/internal/catalog"
	"skillbloom_backend/internal/repository"
	"skillbloom_backend/internal/util"
	"strings"

	"gorm.io/gorm"
)

const (
	// 最多返回的岗位建议数
	maxPodRecommendations  = 8
	rolesPerRecommendation = 3
	generalMatchScore      = 75
	maxFallbackMatchScore  = 95
)

var jsonArrayPattern = regexp.MustCompile(`(?s)\[.*\]`)

type Recommendation struct {
	Role       string `json:"role"`
	MatchScore int    `json:"match_score"`
	Reason     string `json:"reason"`
}

type RoleRecommendations struct {
	Personality     string           `json:"personality"`
	Recommendations []Recommendation `json:"recommendations"`
}

type SkillInput struct {
	Category string   `json:"category"`
	Score    *float64 `json:"score"`
}

type RecommendationService struct {
	AI       *AIService
	UserRepo *repository.UserRepository
}

func NewRecommendationService(ai *AIService, userRepo *repository.UserRepository) *RecommendationService {
	return &RecommendationService{AI: ai, UserRepo: userRepo}
}

// RecommendForUser 未传入性格时取用户画像；技能只认请求里的，缺省按空列表计分；职业空窗期总是取画像
func (s *RecommendationService) RecommendForUser(ctx context.Context, userID uint, personality string, skills []string) (*RoleRecommendations, error) {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NewNotFoundError("user")
	}
	if err != nil {
		return nil, util.WrapStorage("find user", err)
	}

	if strings.TrimSpace(personality) == "" {
		personality = user.Personality
	}
	if skills == nil {
		skills = []string{}
	}

	recs, reported := s.RecommendRoles(ctx, personality, skills, user.CareerGap)
	return &RoleRecommendations{Personality: reported, Recommendations: recs}, nil
}

// RecommendRoles 总是返回 3 条建议；AI 不可用或输出不合法时使用固定规则
func (s *RecommendationService) RecommendRoles(ctx context.Context, personality string, skills []string, careerGap int) ([]Recommendation, string) {
	personality = strings.TrimSpace(personality)
	if personality == "" {
		roles := catalog.CareerRoles(string(catalog.DefaultRoleTrait))[:rolesPerRecommendation]
		recs := make([]Recommendation, 0, len(roles))
		for _, role := range roles {
			recs = append(recs, Recommendation{
				Role:       role,
				MatchScore: generalMatchScore,
				Reason:     "Complete your assessment for personalized recommendations",
			})
		}
		return recs, "General"
	}

	if text, ok := s.AI.Complete(ctx, "recommendation", rolePrompt(personality, skills, careerGap)); ok {
		recs, err := parseRecommendations(text)
		if err == nil {
			return recs, personality
		}
		s.AI.recordFallback("recommendation", err)
	}
	return fallbackRecommendations(personality, skills), personality
}

func rolePrompt(personality string, skills []string, careerGap int) string {
	skillText := "General professional experience"
	if len(skills) > 0 {
		skillText = strings.Join(skills, ", ")
	}
	return fmt.Sprintf(`Based on the following profile, recommend 3 specific job roles for a mother returning to work:

Personality Type: %s
Skills/Experience: %s
Career Gap: %d years

For each role, provide:
1. Job title
2. Match percentage (realistic score)
3. Brief reason why this role suits them

Format as JSON array with 3 items, each having: role, match_score (number), reason`, personality, skillText, careerGap)
}

// parseRecommendations 取回复中第一个 [ 到最后一个 ] 之间的 JSON 数组并校验
func parseRecommendations(text string) ([]Recommendation, error) {
	block := jsonArrayPattern.FindString(text)
	if block == "" {
		return nil, errors.New("no JSON array in completion")
	}

	var items []struct {
		Role       string  `json:"role"`
		MatchScore float64 `json:"match_score"`
		Reason     string  `json:"reason"`
	}
	if err := json.Unmarshal([]byte(block), &items); err != nil {
		return nil, fmt.Errorf("decode recommendations: %w", err)
	}
	if len(items) != rolesPerRecommendation {
		return nil, fmt.Errorf("expected %d recommendations, got %d", rolesPerRecommendation, len(items))
	}

	recs := make([]Recommendation, 0, len(items))
	for i, it := range items {
		role := strings.TrimSpace(it.Role)
		if role == "" {
			return nil, fmt.Errorf("recommendation %d has empty role", i)
		}
		if it.MatchScore < 0 || it.MatchScore > 100 {
			return nil, fmt.Errorf("recommendation %d match_score %v out of range", i, it.MatchScore)
		}
		recs = append(recs, Recommendation{
			Role:       role,
			MatchScore: int(math.Round(it.MatchScore)),
			Reason:     strings.TrimSpace(it.Reason),
		})
	}
	return recs, nil
}

func fallbackRecommendations(personality string, skills []string) []Recommendation {
	roles := catalog.CareerRoles(personality)
	if len(roles) > rolesPerRecommendation {
		roles = roles[:rolesPerRecommendation]
	}
	recs := make([]Recommendation, 0, len(roles))
	for i, role := range roles {
		score := 70 + 5*len(skills) + 2*i
		if score > maxFallbackMatchScore {
			score = maxFallbackMatchScore
		}
		recs = append(recs, Recommendation{
			Role:       role,
			MatchScore: score,
			Reason:     fmt.Sprintf("Your %s personality is well-suited for this role", personality),
		})
	}
	return recs
}

// RecommendPods 规则推荐：按规则顺序收集、按岗位去重、最多 8 条，全部未命中时返回固定列表
func (s *RecommendationService) RecommendPods(personalityType string, skill *SkillInput) ([]catalog.RoleSuggestion, error) {
	personality := strings.ToLower(strings.TrimSpace(personalityType))
	if personality == "" {
		return nil, util.NewValidationError("personality_type", "Missing personality type")
	}
	if skill == nil {
		return nil, util.NewValidationError("skill", "Missing skill data")
	}
	if skill.Category == "" || !catalog.IsSkillCategory(skill.Category) {
		return nil, util.NewValidationError("skill.category", "Invalid skill category")
	}
	if skill.Score == nil || math.IsNaN(*skill.Score) || *skill.Score < 0 || *skill.Score > 100 {
		return nil, util.NewValidationError("skill.score", "Invalid skill score")
	}

	trait := catalog.Trait(personality)
	seen := make(map[string]bool)
	out := make([]catalog.RoleSuggestion, 0, maxPodRecommendations)
	for _, rule := range catalog.PodRules() {
		if !rule.Matches(skill.Category, trait) {
			continue
		}
		for _, sug := range rule.Suggestions {
			if len(out) >= maxPodRecommendations {
				break
			}
			if seen[sug.Role] {
				continue
			}
			seen[sug.Role] = true
			out = append(out, sug)
		}
	}

	if len(out) == 0 {
		return catalog.PodFallback(), nil
	}
	return out, nil
}
