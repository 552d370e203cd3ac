package controller

import (
	"skillbloom_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// currentUserID 读取鉴权中间件写入的用户，不存在时直接返回 401
func currentUserID(ctx *gin.Context) (uint, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return 0, false
	}
	return claims.UserID, true
}

// optionalUserID 用于可选认证的接口，游客返回 nil
func optionalUserID(ctx *gin.Context) *uint {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		return nil
	}
	id := claims.UserID
	return &id
}
