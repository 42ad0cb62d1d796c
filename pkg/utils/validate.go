package utils

import (
	"fmt"
	"net/url"
	"regexp"
)

// 短码固定为 6 位小写字母
var shortCodePattern = regexp.MustCompile(`^[a-z]{6}$`)

// ValidateShortCode 校验 ShortCode 是否合法（6 位小写字母）
func ValidateShortCode(shortCode string) error {
	if shortCode == "" {
		return fmt.Errorf("error.shortcode_required")
	}

	if !shortCodePattern.MatchString(shortCode) {
		return fmt.Errorf("error.shortcode_invalid")
	}

	return nil
}

// ValidateTargetURL 校验目标 URL 的合法性（仅允许 http/https 绝对地址）
func ValidateTargetURL(targetURL string) error {
	// 1. 检查目标 URL 是否为空
	if targetURL == "" {
		return fmt.Errorf("error.target_url_required")
	}

	// 2. URL 长度限制
	if len(targetURL) > 2048 {
		return fmt.Errorf("error.target_url_max_length")
	}

	// 3. URL 格式校验
	u, err := url.Parse(targetURL)
	if err != nil {
		return fmt.Errorf("error.target_url_invalid")
	}

	// 4. 只接受 http/https 绝对地址
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("error.target_url_invalid")
	}

	return nil
}
