package handler

import (
	"campus-timetable/config"
	"campus-timetable/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	TimeSlot  *TimeSlotHandler
	Timetable *TimetableHandler
	Export    *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service, cfg *config.TimetableConfig) *Handler {
	return &Handler{
		TimeSlot:  NewTimeSlotHandler(svc.TimeSlot),
		Timetable: NewTimetableHandler(svc.Timetable, cfg.BulkMaxEntries),
		Export:    NewExportHandler(svc.Export),
	}
}
