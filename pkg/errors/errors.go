package errors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation PostgreSQL unique_violation 错误码
const pgUniqueViolation = "23505"

// ErrUniqueViolation 唯一约束冲突（与 UniqueViolationError 配合 errors.Is 使用）
var ErrUniqueViolation = errors.New("违反唯一约束")

// UniqueViolationError 存储层唯一约束冲突，携带被违反的约束名
type UniqueViolationError struct {
	Constraint string
	Err        error
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("违反唯一约束 %s: %v", e.Constraint, e.Err)
}

func (e *UniqueViolationError) Unwrap() error { return e.Err }

// Is 使 errors.Is(err, ErrUniqueViolation) 成立
func (e *UniqueViolationError) Is(target error) bool { return target == ErrUniqueViolation }

// FromPg 将 pgx 返回的唯一约束错误转换为 UniqueViolationError，其他错误原样返回
func FromPg(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return &UniqueViolationError{Constraint: pgErr.ConstraintName, Err: err}
	}
	return err
}

// AsUniqueViolation 提取 UniqueViolationError
func AsUniqueViolation(err error) (*UniqueViolationError, bool) {
	var uv *UniqueViolationError
	if errors.As(err, &uv) {
		return uv, true
	}
	return nil, false
}
