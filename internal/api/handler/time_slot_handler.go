package handler

import (
	"github.com/gin-gonic/gin"

	"campus-timetable/internal/service"
	"campus-timetable/pkg/response"
)

// TimeSlotHandler 节次模块 HTTP 处理器
type TimeSlotHandler struct {
	timeSlotSvc service.TimeSlotService
}

// NewTimeSlotHandler 创建 TimeSlotHandler
func NewTimeSlotHandler(timeSlotSvc service.TimeSlotService) *TimeSlotHandler {
	return &TimeSlotHandler{timeSlotSvc: timeSlotSvc}
}

// ListTimeSlots 获取节次列表
// GET /api/v1/time-slots
func (h *TimeSlotHandler) ListTimeSlots(c *gin.Context) {
	slots, err := h.timeSlotSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": slots})
}
