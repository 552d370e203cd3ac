package service

import (
	"context"
	"errors"
	"skillbloom_backend/internal/catalog"
	"skillbloom_backend/internal/model"
	"skillbloom_backend/internal/repository"
	"skillbloom_backend/internal/util"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMentorResolve_CannedFallback(t *testing.T) {
	svc := NewMentorService(NewAIService(unavailableCompleter{}, time.Second), nil, nil)
	ctx := context.Background()

	assert.Equal(t, catalog.CannedResponses("anxious")[0],
		svc.Resolve(ctx, "", "I feel so ANXIOUS about going back"))

	assert.Equal(t, catalog.CannedResponses("default")[0],
		svc.Resolve(ctx, "", "What should I eat for lunch?"))

	// resume 排在 interview 前面
	assert.Equal(t, catalog.CannedResponses("resume")[0],
		svc.Resolve(ctx, "", "interview tips and resume help"))

	// 背景文本同样参与匹配
	assert.Equal(t, catalog.CannedResponses("skills")[0],
		svc.Resolve(ctx, "As a mentor for data skills", "hello"))
}

func TestMentorResolve_Completion(t *testing.T) {
	mc := new(mockCompleter)
	mc.On("Complete", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.HasPrefix(p, "Focus on hdl\nUser Question: how do I start?")
	})).Return("  Start with small combinational circuits.  ", nil).Once()

	svc := NewMentorService(NewAIService(mc, time.Second), nil, nil)
	got := svc.Resolve(context.Background(), "Focus on hdl", "how do I start?")
	assert.Equal(t, "Start with small combinational circuits.", got)
	mc.AssertExpectations(t)
}

func TestMentorResolve_Timeout(t *testing.T) {
	svc := NewMentorService(NewAIService(blockingCompleter{}, 20*time.Millisecond), nil, nil)

	start := time.Now()
	got := svc.Resolve(context.Background(), "", "any interview advice?")
	assert.Equal(t, catalog.CannedResponses("interview")[0], got)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestMentorChat(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	u := seedUser(t, db, &model.User{Name: "Priya", Skills: []string{"Excel", "SQL"}, CareerGap: 5})

	mc := new(mockCompleter)
	mc.On("Complete", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "- Name: Priya") &&
			strings.Contains(p, "- Personality Type: Not yet assessed") &&
			strings.Contains(p, "- Skills: Excel, SQL") &&
			strings.Contains(p, "- Career Gap: 5 years")
	})).Return("You have a lot to offer.", nil).Once()
	mc.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("boom"))

	svc := NewMentorService(NewAIService(mc, time.Second),
		repository.NewUserRepository(db), repository.NewAILogRepository(db))

	reply, err := svc.Chat(ctx, u.ID, "Where do I begin?")
	require.NoError(t, err)
	assert.Equal(t, "You have a lot to offer.", reply.Response)

	reply, err = svc.Chat(ctx, u.ID, "I am anxious")
	require.NoError(t, err)
	assert.Equal(t, catalog.CannedResponses("anxious")[0], reply.Response)

	// 画像 prompt 含 "Skills"，但问题里没有关键词时仍给通用回复
	reply, err = svc.Chat(ctx, u.ID, "What should I do next?")
	require.NoError(t, err)
	assert.Equal(t, catalog.CannedResponses("default")[0], reply.Response)

	_, err = svc.Chat(ctx, u.ID, "   ")
	assert.True(t, util.IsValidation(err))

	history, err := svc.History(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	var fallbacks []string
	for _, h := range history {
		if h.Fallback {
			fallbacks = append(fallbacks, h.Query)
		}
	}
	assert.ElementsMatch(t, []string{"I am anxious", "What should I do next?"}, fallbacks)
}

func TestMentorChat_UnknownUser(t *testing.T) {
	db := newTestDB(t)
	mc := new(mockCompleter)
	mc.On("Complete", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "- Name: User")
	})).Return("Welcome!", nil).Once()

	svc := NewMentorService(NewAIService(mc, time.Second),
		repository.NewUserRepository(db), repository.NewAILogRepository(db))
	reply, err := svc.Chat(context.Background(), 404, "hi")
	require.NoError(t, err)
	assert.Equal(t, "Welcome!", reply.Response)
	mc.AssertExpectations(t)
}
