package service

import (
	"crypto/rand"
	"errors"

	"shortlink-hub/internal/model"
	"shortlink-hub/internal/repository"
	"shortlink-hub/pkg/logging"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	codeAlphabet        = "abcdefghijklmnopqrstuvwxyz"
	codeLength          = 6
	maxGenerateAttempts = 10
)

// GenerateShortCode 生成全局唯一的 6 位小写字母短码。
// 随机生成最多重试 10 次，全部撞车后改用 UUID 派生；
// 派生出的短码同样要通过唯一性检查，直到拿到空闲短码为止。
func GenerateShortCode() (string, error) {
	for i := 0; i < maxGenerateAttempts; i++ {
		code, err := randomCode()
		if err != nil {
			return "", err
		}

		exists, err := shortCodeExists(code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}

	logging.Logger.Warn("Short code generation exhausted random attempts, falling back to UUID derivation",
		zap.Int("attempts", maxGenerateAttempts))

	// 退化路径：从 UUID 字节派生短码
	for {
		code := codeFromUUID(uuid.New())
		exists, err := shortCodeExists(code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
}

// randomCode 从 crypto/rand 取 6 字节，逐字节对 26 取模映射为小写字母
func randomCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	code := make([]byte, codeLength)
	for i, b := range buf {
		code[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(code), nil
}

// codeFromUUID 取 UUID 的前 6 个字节（即前 6 对十六进制位），对 26 取模映射为小写字母
func codeFromUUID(u uuid.UUID) string {
	code := make([]byte, codeLength)
	for i := 0; i < codeLength; i++ {
		code[i] = codeAlphabet[int(u[i])%len(codeAlphabet)]
	}
	return string(code)
}

// shortCodeExists 检查短码是否已被占用
func shortCodeExists(code string) (bool, error) {
	var existing model.ShortLink
	err := repository.DB.Select("id").Where("short_code = ?", code).First(&existing).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}
