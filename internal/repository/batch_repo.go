package repository

import (
	"context"

	"gorm.io/gorm"

	"campus-timetable/internal/model"
)

// BatchRepository 班级数据访问接口（只读）
type BatchRepository interface {
	GetByID(ctx context.Context, id string) (*model.Batch, error)
	ListByClass(ctx context.Context, department string, year int, section string) ([]model.Batch, error)
}

type batchRepo struct {
	db *gorm.DB
}

// NewBatchRepo 创建 BatchRepository 实例
func NewBatchRepo(db *gorm.DB) BatchRepository {
	return &batchRepo{db: db}
}

func (r *batchRepo) GetByID(ctx context.Context, id string) (*model.Batch, error) {
	var batch model.Batch
	err := r.db.WithContext(ctx).
		Where("batch_id = ?", id).
		First(&batch).Error
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

func (r *batchRepo) ListByClass(ctx context.Context, department string, year int, section string) ([]model.Batch, error) {
	var batches []model.Batch
	err := r.db.WithContext(ctx).
		Where("department = ? AND year = ? AND section = ?", department, year, section).
		Find(&batches).Error
	return batches, err
}
