package controller

import (
	"skillbloom_backend/internal/service"
	"skillbloom_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
	UserService *service.UserService
}

func NewAuthController(authService *service.AuthService, userService *service.UserService) *AuthController {
	return &AuthController{
		AuthService: authService,
		UserService: userService,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup godoc
// @Summary 注册新用户
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body service.SignupInput true "用户注册信息"
// @Success 201 {object} util.Response
// @Failure 409 {object} util.Response "邮箱已被注册"
// @Failure 422 {object} util.Response "参数校验失败"
// @Router /api/auth/signup [post]
func (c *AuthController) Signup(ctx *gin.Context) {
	var req service.SignupInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.AuthService.Signup(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{
		"message":      "User created successfully",
		"user_id":      res.User.ID,
		"access_token": res.Token,
	})
}

// Login godoc
// @Summary 用户登录
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "登录信息"
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response "账号或密码错误"
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.AuthService.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"message":      "Login successful",
		"user_id":      res.User.ID,
		"name":         res.User.Name,
		"role":         res.User.Role,
		"access_token": res.Token,
	})
}

// @Summary 获取当前用户资料
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/auth/profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	user, err := c.UserService.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// @Summary 更新技能、性格类型、职业空窗期
// @Tags 认证
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ProfileUpdate true "资料"
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/auth/profile [put]
func (c *AuthController) UpdateProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req service.ProfileUpdate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateProfile(ctx.Request.Context(), userID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, user)
}
