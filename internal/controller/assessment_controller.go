package controller

import (
	"fmt"
	"math"
	"skillbloom_backend/internal/service"
	"skillbloom_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	Service        *service.AssessmentService
	Recommendation *service.RecommendationService
}

func NewAssessmentController(svc *service.AssessmentService, recommendation *service.RecommendationService) *AssessmentController {
	return &AssessmentController{Service: svc, Recommendation: recommendation}
}

// 评分以 JSON number 传入，这里负责拒绝小数
type PersonalitySubmitRequest struct {
	Answers []struct {
		QuestionID int     `json:"question_id"`
		Rating     float64 `json:"rating"`
	} `json:"answers"`
}

type SkillSubmitRequest struct {
	Category string `json:"category"`
	Answers  []struct {
		QuestionID     *int `json:"question_id"`
		SelectedOption *int `json:"selected_option"`
	} `json:"answers"`
}

type PodRecommendRequest struct {
	PersonalityType string              `json:"personality_type"`
	Skill           *service.SkillInput `json:"skill"`
}

// @Summary 性格测试题目
// @Tags 测评
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/assessment/personality/questions [get]
func (c *AssessmentController) PersonalityQuestions(ctx *gin.Context) {
	util.Success(ctx, c.Service.PersonalityQuestions())
}

// @Summary 技能测试题目（不含答案）
// @Tags 测评
// @Produce json
// @Param category path string true "tech | design | hr"
// @Success 200 {object} util.Response
// @Router /api/assessment/skill/questions/{category} [get]
func (c *AssessmentController) SkillQuestions(ctx *gin.Context) {
	qs, err := c.Service.SkillQuestions(ctx.Param("category"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, qs)
}

// @Summary 提交性格测试
// @Tags 测评
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body PersonalitySubmitRequest true "答案"
// @Success 200 {object} util.Response{data=service.PersonalityResult}
// @Failure 422 {object} util.Response
// @Router /api/assessment/personality/submit [post]
func (c *AssessmentController) SubmitPersonality(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req PersonalitySubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.Unprocessable(ctx, "Invalid answer format")
		return
	}

	answers := make([]service.PersonalityAnswer, 0, len(req.Answers))
	for _, a := range req.Answers {
		if a.Rating != math.Trunc(a.Rating) {
			util.Unprocessable(ctx, fmt.Sprintf("Invalid rating value for question %d", a.QuestionID))
			return
		}
		answers = append(answers, service.PersonalityAnswer{QuestionID: a.QuestionID, Rating: int(a.Rating)})
	}

	result, err := c.Service.SubmitPersonality(ctx.Request.Context(), userID, answers)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 提交技能测试
// @Tags 测评
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SkillSubmitRequest true "答案"
// @Success 200 {object} util.Response{data=service.SkillResult}
// @Failure 422 {object} util.Response
// @Router /api/assessment/skill/submit [post]
func (c *AssessmentController) SubmitSkill(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req SkillSubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.Unprocessable(ctx, "Invalid answer format")
		return
	}

	answers := make([]service.SkillAnswer, 0, len(req.Answers))
	for _, a := range req.Answers {
		if a.QuestionID == nil || a.SelectedOption == nil {
			util.Unprocessable(ctx, "Invalid answer format")
			return
		}
		answers = append(answers, service.SkillAnswer{QuestionID: *a.QuestionID, SelectedOption: *a.SelectedOption})
	}

	result, err := c.Service.SubmitSkill(ctx.Request.Context(), userID, req.Category, answers)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 测评历史（最新在前）
// @Tags 测评
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/assessment/results [get]
func (c *AssessmentController) Results(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	results, err := c.Service.Results(ctx.Request.Context(), userID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, results)
}

// @Summary 根据性格与技能推荐岗位和 pod
// @Tags 测评
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body PodRecommendRequest true "性格类型与技能成绩"
// @Success 200 {object} util.Response
// @Router /api/assessment/recommend [post]
func (c *AssessmentController) Recommend(ctx *gin.Context) {
	var req PodRecommendRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.Unprocessable(ctx, "Missing request data")
		return
	}

	recs, err := c.Recommendation.RecommendPods(req.PersonalityType, req.Skill)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"recommendations": recs})
}
