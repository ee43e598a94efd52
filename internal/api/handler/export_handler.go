package handler

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"campus-timetable/internal/dto"
	"campus-timetable/internal/service"
	"campus-timetable/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportBatchTimetable 导出班级课表
// GET /api/v1/timetable/batch/:batchId/export
func (h *ExportHandler) ExportBatchTimetable(c *gin.Context) {
	q, ok := bindTimetableQuery(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportBatchTimetable(c.Request.Context(), c.Param("batchId"), q.AcademicYear, q.Semester)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	const contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	attachment(c, filename)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// ExportTeacherCalendar 导出教师单周日历
// GET /api/v1/timetable/teacher/:staffId/calendar.ics?week_of=2024-07-01
func (h *ExportHandler) ExportTeacherCalendar(c *gin.Context) {
	var q dto.CalendarQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	q.ApplyDefaults(time.Now())

	// 零值由 Service 取日历时区下的本周
	var weekOf time.Time
	if q.WeekOf != "" {
		// 格式已由 binding 校验
		weekOf, _ = time.Parse("2006-01-02", q.WeekOf)
	}

	data, filename, err := h.exportSvc.ExportTeacherCalendar(c.Request.Context(), c.Param("staffId"), q.AcademicYear, q.Semester, weekOf)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	attachment(c, filename)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", data)
}

func attachment(c *gin.Context, filename string) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		handleTimetableError(c, err)
	}
}
