package controller

import (
	"skillbloom_backend/internal/service"
	"skillbloom_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PodController struct {
	Service *service.PodService
}

func NewPodController(svc *service.PodService) *PodController {
	return &PodController{Service: svc}
}

type PodEnrollRequest struct {
	PodType string `json:"pod_type"`
}

type JournalRequest struct {
	Entry   string `json:"entry"`
	Emotion string `json:"emotion"`
}

// Enroll 游客走演示逻辑，不落库
func (c *PodController) Enroll(ctx *gin.Context) {
	var req PodEnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID := optionalUserID(ctx)
	if userID == nil {
		res, err := c.Service.DemoEnroll(req.PodType)
		if err != nil {
			util.HandleError(ctx, err)
			return
		}
		util.Created(ctx, res)
		return
	}

	res, err := c.Service.Enroll(ctx.Request.Context(), *userID, req.PodType)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	if !res.Created {
		util.Success(ctx, gin.H{"message": res.Message})
		return
	}
	util.Created(ctx, res)
}

func (c *PodController) Progress(ctx *gin.Context) {
	userID := optionalUserID(ctx)
	if userID == nil {
		util.Success(ctx, c.Service.DemoProgress())
		return
	}

	pods, err := c.Service.Progress(ctx.Request.Context(), *userID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, pods)
}

// @Summary 更新 pod 进度（>=100 获得徽章）
// @Tags Pods
// @Accept json
// @Produce json
// @Param body body service.PodUpdate true "进度与已完成任务"
// @Success 200 {object} util.Response{data=service.PodUpdateResult}
// @Router /api/pods/update [post]
func (c *PodController) Update(ctx *gin.Context) {
	var req service.PodUpdate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var (
		res *service.PodUpdateResult
		err error
	)
	if userID := optionalUserID(ctx); userID != nil {
		res, err = c.Service.UpdateProgress(ctx.Request.Context(), *userID, req)
	} else {
		res, err = c.Service.DemoUpdate(req)
	}
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

func (c *PodController) LogHealth(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req service.HealthInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.Service.LogHealth(ctx.Request.Context(), userID, req); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Health data logged successfully"})
}

func (c *PodController) HealthLogs(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	logs, err := c.Service.HealthLogs(ctx.Request.Context(), userID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, logs)
}

func (c *PodController) AddJournal(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req JournalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.Service.AddJournalEntry(ctx.Request.Context(), userID, req.Entry, req.Emotion); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Journal entry saved"})
}

func (c *PodController) Journal(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	entries, err := c.Service.Journal(ctx.Request.Context(), userID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}

func (c *PodController) Details(ctx *gin.Context) {
	details, err := c.Service.Details(ctx.Request.Context(), optionalUserID(ctx), ctx.Param("pod_type"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, details)
}
