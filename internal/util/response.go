package util

import (
	"errors"
	"net/http"
	"skillbloom_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func Unprocessable(c *gin.Context, message string) {
	Error(c, http.StatusUnprocessableEntity, message)
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	InternalServerError(c)
}

// HandleError writes the response matching the error taxonomy.
func HandleError(c *gin.Context, err error) {
	var ve *ValidationError
	var nf *NotFoundError
	var ae *AuthError
	switch {
	case errors.As(err, &ve):
		Unprocessable(c, ve.Error())
	case errors.As(err, &nf):
		Error(c, http.StatusNotFound, nf.Error())
	case errors.As(err, &ae):
		AbortWithAuthError(c, ae)
	case errors.Is(err, ErrInvalidCredentials):
		Error(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, ErrEmailRegistered):
		Error(c, http.StatusConflict, "Email already exists")
	case errors.Is(err, ErrConcurrentUpdate):
		Error(c, http.StatusConflict, "Please retry the request")
	default:
		LogInternalError(c, err)
	}
}

// AbortWithAuthError mirrors the status codes the token loaders have always used:
// a malformed token is 422, missing or expired credentials are 401.
func AbortWithAuthError(c *gin.Context, ae *AuthError) {
	code := http.StatusUnauthorized
	if ae.Kind == AuthInvalid {
		code = http.StatusUnprocessableEntity
	}
	c.AbortWithStatusJSON(code, Response{
		Code:    code,
		Message: ae.Error(),
	})
}
