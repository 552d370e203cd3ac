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

// 对话历史最多返回的条数
const chatHistoryLimit = 50

const notAssessed = "Not yet assessed"

type MentorService struct {
	AI        *AIService
	UserRepo  *repository.UserRepository
	AILogRepo *repository.AILogRepository
	now       func() time.Time
}

func NewMentorService(ai *AIService, userRepo *repository.UserRepository, aiLogRepo *repository.AILogRepository) *MentorService {
	return &MentorService{
		AI:        ai,
		UserRepo:  userRepo,
		AILogRepo: aiLogRepo,
		now:       time.Now,
	}
}

type ChatReply struct {
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

// Resolve 返回一段支持性的回复：先尝试一次 AI 补全，失败则按关键词选固定回复
func (s *MentorService) Resolve(ctx context.Context, background, question string) string {
	prompt := fmt.Sprintf("%s\nUser Question: %s\nPlease respond in 2-3 concise, supportive sentences.", background, question)
	if text, ok := s.AI.Complete(ctx, "resolve", prompt); ok {
		return text
	}
	return catalog.CannedResponse(background, question)
}

// Chat 结合用户画像回答问题并写入 ai_logs
func (s *MentorService) Chat(ctx context.Context, userID uint, query string) (*ChatReply, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, util.NewValidationError("query", "Empty query")
	}

	user, err := s.UserRepo.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = &model.User{Name: "User"}
	} else if err != nil {
		return nil, util.WrapStorage("find user", err)
	}

	text, ok := s.AI.Complete(ctx, "chat", buildChatPrompt(user, query))
	if !ok {
		// 有意只用问题本身匹配兜底，不扫描画像 prompt：画像里固定含 "Skills"，
		// 一起扫描会让所有不含前置关键词的问题都落到技能类回复
		text = catalog.CannedResponse("", query)
	}

	now := s.now()
	entry := &model.AILog{
		UserID:    userID,
		Query:     query,
		Response:  text,
		Fallback:  !ok,
		Timestamp: now,
	}
	if err := s.AILogRepo.Create(ctx, entry); err != nil {
		return nil, util.WrapStorage("create ai log", err)
	}

	return &ChatReply{Response: text, Timestamp: now}, nil
}

func (s *MentorService) History(ctx context.Context, userID uint) ([]model.AILog, error) {
	logs, err := s.AILogRepo.ListRecent(ctx, userID, chatHistoryLimit)
	if err != nil {
		return nil, util.WrapStorage("list ai logs", err)
	}
	return logs, nil
}

func buildChatPrompt(user *model.User, query string) string {
	personality := user.Personality
	if personality == "" {
		personality = notAssessed
	}
	skills := notAssessed
	if len(user.Skills) > 0 {
		skills = strings.Join(user.Skills, ", ")
	}

	var b strings.Builder
	b.WriteString("You are an AI career mentor for SkillBloom, a platform helping mothers return to work after a career break.\n\n")
	b.WriteString("User Profile:\n")
	fmt.Fprintf(&b, "- Name: %s\n", user.Name)
	fmt.Fprintf(&b, "- Personality Type: %s\n", personality)
	fmt.Fprintf(&b, "- Skills: %s\n", skills)
	fmt.Fprintf(&b, "- Career Gap: %d years\n\n", user.CareerGap)
	b.WriteString("Be empathetic, encouraging, and provide practical career advice. Focus on:\n")
	b.WriteString("- Building confidence for career re-entry\n")
	b.WriteString("- Addressing work-life balance concerns\n")
	b.WriteString("- Highlighting transferable skills from motherhood\n")
	b.WriteString("- Providing actionable career guidance\n\n")
	fmt.Fprintf(&b, "User Question: %s\n\n", query)
	b.WriteString("Respond in a warm, supportive tone in 2-3 sentences.")
	return b.String()
}
