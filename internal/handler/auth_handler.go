package handler

import (
	"net/http"

	"shortlink-hub/internal/dto"
	"shortlink-hub/internal/service"
	"shortlink-hub/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterHandler 用户注册（POST /api/auth/register）
func RegisterHandler(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindingError(req, err))
		return
	}

	user, err := service.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		zap.L().Warn("User registration failed",
			zap.Error(err),
			zap.String("username", req.Username),
		)
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, response.OK(gin.H{"id": user.ID, "username": user.Username}, "注册成功"))
}

// LoginHandler 用户登录（POST /api/auth/login）
func LoginHandler(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindingError(req, err))
		return
	}

	token, err := service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		zap.L().Warn("User login failed",
			zap.Error(err),
			zap.String("username", req.Username),
		)
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(dto.TokenResponse{Token: token}, "success"))
}
