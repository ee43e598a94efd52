package service

import (
	"errors"
	"strings"

	"campus-timetable/internal/model"
)

// ── 课表模块业务错误 ──

var (
	ErrTimeSlotNotFound    = errors.New("节次不存在")
	ErrBatchNotFound       = errors.New("班级不存在")
	ErrEntryNotFound       = errors.New("课表条目不存在")
	ErrInvalidTeachingDay  = errors.New("day_of_week 必须是教学日（1=周一 … 6=周六）")
	ErrInvalidAcademicTerm = errors.New("学年须在 2000-2100 之间，学期须在 1-8 之间")
	ErrInvalidEntryInput   = errors.New("课表条目参数无效")
	ErrTimetableConflict   = errors.New("课表冲突")
)

// ConflictError 写入被拒绝：至少一个维度（教师/班级/教室）已被占用
// Storage 为 true 表示由数据库唯一约束兜底检测到（并发写入）
type ConflictError struct {
	Conflicts []model.Conflict
	Storage   bool
}

func (e *ConflictError) Error() string {
	msgs := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		msgs = append(msgs, c.Message)
	}
	return "课表冲突: " + strings.Join(msgs, "; ")
}

// Is 使 errors.Is(err, ErrTimetableConflict) 成立
func (e *ConflictError) Is(target error) bool { return target == ErrTimetableConflict }

// AsConflict 提取 ConflictError
func AsConflict(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
