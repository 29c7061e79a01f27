package id

import (
	"strings"

	"github.com/google/uuid"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2024/9/8 16:41
 * @file: uuid.go
 * @description: uuid
 */

// GetUUID 生成不带连字符的 uuid
func GetUUID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}
