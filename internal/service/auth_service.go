package service

import (
	"context"
	"errors"
	"net/http"

	"shortlink-hub/internal/apperrors"
	"shortlink-hub/internal/jwt"
	"shortlink-hub/internal/model"
	"shortlink-hub/internal/repository"
	"shortlink-hub/pkg/logging"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Register 用户注册
func Register(ctx context.Context, username, password string) (*model.User, error) {
	var existing model.User
	err := repository.DB.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil, apperrors.WithReason(http.StatusConflict, apperrors.ReasonInvalidRequest, "error.username_taken")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logging.Logger.Error("查询用户失败", zap.String("username", username), zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logging.Logger.Error("密码加密失败", zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(hash),
	}

	if err := repository.DB.Create(user).Error; err != nil {
		logging.Logger.Error("创建用户失败", zap.String("username", username), zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}

	return user, nil
}

// Login 用户登录，成功后签发 JWT
func Login(ctx context.Context, username, password string) (string, error) {
	var user model.User
	err := repository.DB.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", apperrors.UnauthorizedError("error.invalid_credentials")
	}
	if err != nil {
		logging.Logger.Error("查询用户失败", zap.String("username", username), zap.Error(err))
		return "", apperrors.SystemErrorDefault()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.UnauthorizedError("error.invalid_credentials")
	}

	token, err := jwt.GenerateToken(user.ID)
	if err != nil {
		logging.Logger.Error("签发令牌失败", zap.Uint("user_id", user.ID), zap.Error(err))
		return "", apperrors.SystemErrorDefault()
	}

	return token, nil
}
