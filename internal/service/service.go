package service

import (
	"go.uber.org/zap"

	"campus-timetable/config"
	"campus-timetable/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Timetable TimetableService
	TimeSlot  TimeSlotService
	Export    ExportService
}

// NewService 创建 Service 聚合
// cache 为 nil 时课表视图不走缓存
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	cache ViewCache,
	logger *zap.Logger,
) *Service {
	timetable := NewTimetableService(repo, cache, &cfg.Timetable, logger)
	return &Service{
		Timetable: timetable,
		TimeSlot:  NewTimeSlotService(repo, logger),
		Export:    NewExportService(repo, timetable, &cfg.Timetable, logger),
	}
}
