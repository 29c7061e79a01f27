package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// GetULID 生成单调递增的 ulid，用于需要按时间排序的记录
func GetULID() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
