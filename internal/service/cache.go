package service

import (
	"context"
	"fmt"
	"time"
)

// ViewCache 课表视图缓存
// 每个 (学年, 学期) 维护一个代数，写入后递增代数，旧键自然过期
type ViewCache interface {
	Generation(ctx context.Context, academicYear, semester int) (int64, error)
	BumpGeneration(ctx context.Context, academicYear, semester int) error
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

type termKey struct {
	academicYear int
	semester     int
}

func viewKey(gen int64, view, id string, academicYear, semester int) string {
	return fmt.Sprintf("%d:%d:g%d:%s:%s", academicYear, semester, gen, view, id)
}
