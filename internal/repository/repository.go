package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	TimeSlot       TimeSlotRepository
	Batch          BatchRepository
	TimetableEntry TimetableEntryRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		TimeSlot:       NewTimeSlotRepo(db),
		Batch:          NewBatchRepo(db),
		TimetableEntry: NewTimetableEntryRepo(db),
	}
}
