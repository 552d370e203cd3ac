package controller

import (
	"skillbloom_backend/internal/service"
	"skillbloom_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AIController struct {
	Mentor         *service.MentorService
	Recommendation *service.RecommendationService
}

func NewAIController(mentor *service.MentorService, recommendation *service.RecommendationService) *AIController {
	return &AIController{Mentor: mentor, Recommendation: recommendation}
}

type ChatRequest struct {
	Query *string `json:"query"`
}

// personality 缺省时使用用户资料中的性格；skills 不从资料补全
type RoleRecommendationRequest struct {
	Personality string   `json:"personality"`
	Skills      []string `json:"skills"`
}

// @Summary AI 导师对话
// @Tags AI导师
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ChatRequest true "问题"
// @Success 200 {object} util.Response{data=service.ChatReply}
// @Router /api/ai/chat [post]
func (c *AIController) Chat(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Query == nil {
		util.Unprocessable(ctx, "Missing query in request")
		return
	}

	reply, err := c.Mentor.Chat(ctx.Request.Context(), userID, *req.Query)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, reply)
}

// @Summary 岗位推荐
// @Tags AI导师
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RoleRecommendationRequest false "性格与技能"
// @Success 200 {object} util.Response{data=service.RoleRecommendations}
// @Router /api/ai/recommendation [post]
func (c *AIController) Recommendation(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req RoleRecommendationRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}

	res, err := c.Recommendation.RecommendForUser(ctx.Request.Context(), userID, req.Personality, req.Skills)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

func (c *AIController) History(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	logs, err := c.Mentor.History(ctx.Request.Context(), userID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, logs)
}
