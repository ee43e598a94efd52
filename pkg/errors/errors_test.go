package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestFromPg_UniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "uq_timetable_entries_room_slot"}
	err := FromPg(fmt.Errorf("insert: %w", pgErr))

	if !errors.Is(err, ErrUniqueViolation) {
		t.Fatalf("期望 ErrUniqueViolation，实际: %v", err)
	}
	uv, ok := AsUniqueViolation(err)
	if !ok {
		t.Fatal("期望可提取 UniqueViolationError")
	}
	if uv.Constraint != "uq_timetable_entries_room_slot" {
		t.Errorf("约束名错误: %s", uv.Constraint)
	}
	if !errors.As(err, &pgErr) {
		t.Error("期望保留原始 PgError")
	}
}

func TestFromPg_OtherErrors(t *testing.T) {
	if FromPg(nil) != nil {
		t.Error("nil 应原样返回")
	}

	fk := &pgconn.PgError{Code: "23503"}
	if err := FromPg(fk); errors.Is(err, ErrUniqueViolation) {
		t.Error("外键错误不应视为唯一约束冲突")
	}

	plain := errors.New("boom")
	if err := FromPg(plain); err != plain {
		t.Error("普通错误应原样返回")
	}
}
