package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateTargetURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"http ok", "http://example.com", false},
		{"https ok", "https://example.com/path?q=1", false},
		{"empty", "", true},
		{"not a url", "not a url", true},
		{"ftp scheme", "ftp://x", true},
		{"relative path", "/foo/bar", true},
		{"scheme only", "https://", true},
		{"too long", "https://example.com/" + strings.Repeat("a", 2048), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTargetURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateShortCode(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantErr bool
	}{
		{"valid", "abcdef", false},
		{"empty", "", true},
		{"too short", "abc", true},
		{"too long", "abcdefg", true},
		{"uppercase", "ABCDEF", true},
		{"digits", "abc12f", true},
		{"whitespace", "abc de", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateShortCode(tt.code)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
