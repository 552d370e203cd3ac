package controller

import (
	"net/http"
	"skillbloom_backend/internal/service"
	"skillbloom_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SkillPathController struct {
	Service *service.SkillPathService
}

func NewSkillPathController(svc *service.SkillPathService) *SkillPathController {
	return &SkillPathController{Service: svc}
}

type EnrollPathRequest struct {
	PathID string `json:"path_id"`
}

type PathMentorRequest struct {
	Topic    string `json:"topic"`
	Question string `json:"question"`
}

type PathAssessmentRequest struct {
	Topic   string                `json:"topic"`
	Answers []service.TopicAnswer `json:"answers"`
}

func (c *SkillPathController) ListPaths(ctx *gin.Context) {
	util.Success(ctx, gin.H{"paths": c.Service.ListPaths()})
}

// @Summary 报名技能路径（重复报名不做修改）
// @Tags 技能路径
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body EnrollPathRequest true "路径ID"
// @Success 201 {object} util.Response
// @Success 200 {object} util.Response "已报名"
// @Router /api/skill-pods/enroll [post]
func (c *SkillPathController) Enroll(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req EnrollPathRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.Service.Enroll(ctx.Request.Context(), userID, req.PathID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	if !res.Created {
		util.Success(ctx, gin.H{"message": res.Message})
		return
	}
	util.Created(ctx, gin.H{"message": res.Message})
}

func (c *SkillPathController) Progress(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	e, err := c.Service.Progress(ctx.Request.Context(), userID, ctx.Param("path_id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"progress":           e.Progress,
		"completed_topics":   e.CompletedTopics,
		"assessment_results": e.AssessmentResults,
	})
}

// @Summary 路径导师答疑
// @Tags 技能路径
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param path_id path string true "路径ID"
// @Param body body PathMentorRequest true "主题与问题"
// @Success 200 {object} util.Response
// @Router /api/skill-pods/mentor/{path_id} [post]
func (c *SkillPathController) Mentor(ctx *gin.Context) {
	var req PathMentorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	answer, err := c.Service.MentorGuidance(ctx.Request.Context(), ctx.Param("path_id"), req.Topic, req.Question)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"response": answer})
}

// @Summary 提交路径主题测评
// @Tags 技能路径
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param path_id path string true "路径ID"
// @Param body body PathAssessmentRequest true "主题与已判分的答案"
// @Success 200 {object} util.Response{data=service.TopicAssessmentResult}
// @Failure 404 {object} util.Response "未报名"
// @Router /api/skill-pods/assessment/{path_id} [post]
func (c *SkillPathController) SubmitAssessment(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req PathAssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.Error(ctx, http.StatusUnprocessableEntity, "Topic and answers are required")
		return
	}

	res, err := c.Service.SubmitAssessment(ctx.Request.Context(), userID, ctx.Param("path_id"), req.Topic, req.Answers)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, res)
}
