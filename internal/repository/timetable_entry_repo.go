package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"campus-timetable/internal/model"
	pkgerrors "campus-timetable/pkg/errors"
)

// Coordinate 课表坐标：学年 + 学期 + 星期 + 节次
type Coordinate struct {
	AcademicYear int
	Semester     int
	DayOfWeek    int
	TimeSlotID   string
}

// TimetableEntryRepository 课表条目数据访问接口
type TimetableEntryRepository interface {
	// FindOccupant 查找在 coord 上占用了指定维度（教师/班级/教室）的条目，excludeID 非空时排除该条目
	// 未找到返回 gorm.ErrRecordNotFound
	FindOccupant(ctx context.Context, kind model.ConflictKind, key string, coord Coordinate, excludeID string) (*model.TimetableEntry, error)
	// Create / Update 遇到唯一约束冲突时返回 *pkgerrors.UniqueViolationError
	Create(ctx context.Context, entry *model.TimetableEntry) error
	Update(ctx context.Context, entry *model.TimetableEntry) error
	GetByID(ctx context.Context, id string) (*model.TimetableEntry, error)
	Delete(ctx context.Context, id string) error
	// DeleteByBatches 删除指定班级在某学期的全部条目；academicYear 为 0 时不限学年
	// 返回被删除条目的 entry_id / academic_year / semester
	DeleteByBatches(ctx context.Context, batchIDs []string, semester, academicYear int) ([]model.TimetableEntry, error)
	ListByStaff(ctx context.Context, staffID string, academicYear, semester int) ([]model.TimetableEntry, error)
	ListByBatch(ctx context.Context, batchID string, academicYear, semester int) ([]model.TimetableEntry, error)
}

type timetableEntryRepo struct {
	db *gorm.DB
}

// NewTimetableEntryRepo 创建 TimetableEntryRepository 实例
func NewTimetableEntryRepo(db *gorm.DB) TimetableEntryRepository {
	return &timetableEntryRepo{db: db}
}

func occupantColumn(kind model.ConflictKind) (string, error) {
	switch kind {
	case model.ConflictTeacher:
		return "staff_id", nil
	case model.ConflictBatch:
		return "batch_id", nil
	case model.ConflictRoom:
		return "room_number", nil
	default:
		return "", fmt.Errorf("未知冲突维度: %s", kind)
	}
}

func (r *timetableEntryRepo) FindOccupant(ctx context.Context, kind model.ConflictKind, key string, coord Coordinate, excludeID string) (*model.TimetableEntry, error) {
	column, err := occupantColumn(kind)
	if err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx).
		Preload("Staff").
		Preload("Subject").
		Preload("Batch").
		Where(column+" = ?", key).
		Where("academic_year = ? AND semester = ? AND day_of_week = ? AND time_slot_id = ?",
			coord.AcademicYear, coord.Semester, coord.DayOfWeek, coord.TimeSlotID)
	if excludeID != "" {
		db = db.Where("entry_id <> ?", excludeID)
	}

	var entry model.TimetableEntry
	if err := db.First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *timetableEntryRepo) Create(ctx context.Context, entry *model.TimetableEntry) error {
	return pkgerrors.FromPg(r.db.WithContext(ctx).Omit(clause.Associations).Create(entry).Error)
}

func (r *timetableEntryRepo) Update(ctx context.Context, entry *model.TimetableEntry) error {
	result := r.db.WithContext(ctx).
		Model(&model.TimetableEntry{}).
		Where("entry_id = ?", entry.EntryID).
		Updates(map[string]interface{}{
			"staff_id":      entry.StaffID,
			"subject_code":  entry.SubjectCode,
			"batch_id":      entry.BatchID,
			"day_of_week":   entry.DayOfWeek,
			"time_slot_id":  entry.TimeSlotID,
			"room_number":   entry.RoomNumber,
			"academic_year": entry.AcademicYear,
			"semester":      entry.Semester,
			"updated_by":    entry.UpdatedBy,
			"updated_at":    gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return pkgerrors.FromPg(result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *timetableEntryRepo) GetByID(ctx context.Context, id string) (*model.TimetableEntry, error) {
	var entry model.TimetableEntry
	err := r.db.WithContext(ctx).
		Joins("TimeSlot").
		Preload("Staff").
		Preload("Subject").
		Preload("Batch").
		Where("timetable_entries.entry_id = ?", id).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *timetableEntryRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("entry_id = ?", id).
		Delete(&model.TimetableEntry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *timetableEntryRepo) DeleteByBatches(ctx context.Context, batchIDs []string, semester, academicYear int) ([]model.TimetableEntry, error) {
	if len(batchIDs) == 0 {
		return nil, nil
	}
	db := r.db.WithContext(ctx).
		Clauses(clause.Returning{Columns: []clause.Column{
			{Name: "entry_id"}, {Name: "academic_year"}, {Name: "semester"},
		}}).
		Where("batch_id IN ? AND semester = ?", batchIDs, semester)
	if academicYear != 0 {
		db = db.Where("academic_year = ?", academicYear)
	}

	var deleted []model.TimetableEntry
	if err := db.Delete(&deleted).Error; err != nil {
		return nil, err
	}
	return deleted, nil
}

func (r *timetableEntryRepo) ListByStaff(ctx context.Context, staffID string, academicYear, semester int) ([]model.TimetableEntry, error) {
	return r.listOrdered(ctx, "timetable_entries.staff_id = ?", staffID, academicYear, semester)
}

func (r *timetableEntryRepo) ListByBatch(ctx context.Context, batchID string, academicYear, semester int) ([]model.TimetableEntry, error) {
	return r.listOrdered(ctx, "timetable_entries.batch_id = ?", batchID, academicYear, semester)
}

// listOrdered 按 星期、节次序号 排序返回条目，并加载关联
func (r *timetableEntryRepo) listOrdered(ctx context.Context, cond string, key string, academicYear, semester int) ([]model.TimetableEntry, error) {
	var entries []model.TimetableEntry
	err := r.db.WithContext(ctx).
		Joins("TimeSlot").
		Preload("Staff").
		Preload("Subject").
		Preload("Batch").
		Where(cond, key).
		Where("timetable_entries.academic_year = ? AND timetable_entries.semester = ?", academicYear, semester).
		Order(`timetable_entries.day_of_week ASC, "TimeSlot"."slot_order" ASC`).
		Find(&entries).Error
	return entries, err
}
