package controller

import (
	"fmt"
	"skillbloom_backend/internal/service"
	"skillbloom_backend/internal/util"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

type BabyController struct {
	Service        *service.BabyMonitorService
	StreamInterval time.Duration
}

func NewBabyController(svc *service.BabyMonitorService, streamInterval time.Duration) *BabyController {
	return &BabyController{Service: svc, StreamInterval: streamInterval}
}

// flexFloat 前端表单会把体重、身高作为字符串提交
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` {
		*f = 0
		return nil
	}
	if unq, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unq)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %s", string(b))
	}
	*f = flexFloat(v)
	return nil
}

type BabyProfileRequest struct {
	Name      string    `json:"name"`
	Weight    flexFloat `json:"weight"`
	Height    flexFloat `json:"height"`
	CameraURL string    `json:"camera_url"`
}

func (c *BabyController) Current(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	reading, err := c.Service.Current(ctx.Request.Context(), userID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, reading)
}

// @Summary 历史读数
// @Tags 婴儿监护
// @Produce json
// @Security BearerAuth
// @Param limit query int false "条数，默认 50"
// @Success 200 {object} util.Response
// @Router /api/baby/history [get]
func (c *BabyController) History(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	limit := util.ParseLimit(ctx.Query("limit"), defaultHistoryLimit, maxHistoryLimit)
	readings, err := c.Service.History(ctx.Request.Context(), userID, limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, readings)
}

func (c *BabyController) Stats(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	stats, err := c.Service.Stats(ctx.Request.Context(), userID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

func (c *BabyController) GetProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	profile, err := c.Service.Profile(ctx.Request.Context(), userID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, profile)
}

func (c *BabyController) SaveProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req BabyProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.Unprocessable(ctx, err.Error())
		return
	}

	profile, err := c.Service.SaveProfile(ctx.Request.Context(), userID, service.BabyProfileInput{
		Name:      req.Name,
		Weight:    float64(req.Weight),
		Height:    float64(req.Height),
		CameraURL: req.CameraURL,
	})
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, profile)
}

// Stream 浏览器通过 ?token= 传递凭证
func (c *BabyController) Stream(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	c.Service.ServeReadingStream(ctx.Writer, ctx.Request, userID, c.StreamInterval)
}
