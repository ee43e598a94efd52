package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"campus-timetable/internal/dto"
	"campus-timetable/internal/service"
	"campus-timetable/pkg/response"
	"campus-timetable/pkg/validate"
)

// TimetableHandler 课表模块 HTTP 处理器
type TimetableHandler struct {
	timetableSvc service.TimetableService
	bulkMax      int
}

// NewTimetableHandler 创建 TimetableHandler
func NewTimetableHandler(timetableSvc service.TimetableService, bulkMax int) *TimetableHandler {
	if bulkMax <= 0 {
		bulkMax = 500
	}
	return &TimetableHandler{timetableSvc: timetableSvc, bulkMax: bulkMax}
}

// ── 写操作 ──

// CheckConflicts 冲突预检
// POST /api/v1/timetable/check-conflicts
func (h *TimetableHandler) CheckConflicts(c *gin.Context) {
	var req dto.CheckConflictsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	conflicts, err := h.timetableSvc.CheckConflicts(c.Request.Context(), &req.EntryInput, req.ExcludeEntryID)
	if err != nil {
		handleTimetableError(c, err)
		return
	}

	response.OK(c, dto.CheckConflictsResponse{
		HasConflicts: len(conflicts) > 0,
		Conflicts:    conflicts,
	})
}

// CreateEntry 创建课表条目
// POST /api/v1/timetable/entries
func (h *TimetableHandler) CreateEntry(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	entry, err := h.timetableSvc.CreateEntry(c.Request.Context(), &req.EntryInput, callerID)
	if err != nil {
		handleTimetableError(c, err)
		return
	}

	response.Created(c, entry)
}

// UpdateEntry 更新课表条目
// PUT /api/v1/timetable/entries/:id
func (h *TimetableHandler) UpdateEntry(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	entry, err := h.timetableSvc.UpdateEntry(c.Request.Context(), c.Param("id"), &req.EntryInput, callerID)
	if err != nil {
		handleTimetableError(c, err)
		return
	}

	response.OK(c, entry)
}

// DeleteEntry 删除课表条目
// DELETE /api/v1/timetable/entries/:id
func (h *TimetableHandler) DeleteEntry(c *gin.Context) {
	if err := h.timetableSvc.DeleteEntry(c.Request.Context(), c.Param("id")); err != nil {
		handleTimetableError(c, err)
		return
	}

	response.OK(c, nil)
}

// DeleteByClass 按 院系/年级/学期/班 删除课表
// DELETE /api/v1/timetable/entries?department=&year=&semester=&section=
func (h *TimetableHandler) DeleteByClass(c *gin.Context) {
	var req dto.DeleteByClassRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	n, err := h.timetableSvc.DeleteByClass(c.Request.Context(), &req)
	if err != nil {
		handleTimetableError(c, err)
		return
	}

	response.OK(c, dto.DeleteByClassResponse{Deleted: n})
}

// BulkCreate 批量创建课表条目，单条失败不影响其他条目
// POST /api/v1/timetable/bulk-create
func (h *TimetableHandler) BulkCreate(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.BulkCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if len(req.Entries) > h.bulkMax {
		response.BadRequest(c, 16006, fmt.Sprintf("单次最多提交 %d 条", h.bulkMax))
		return
	}

	result := h.timetableSvc.BulkCreate(c.Request.Context(), req.Entries, callerID)
	response.OK(c, result)
}

// ── 读操作 ──

// GetEntry 获取课表条目
// GET /api/v1/timetable/entries/:id
func (h *TimetableHandler) GetEntry(c *gin.Context) {
	entry, err := h.timetableSvc.GetEntry(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleTimetableError(c, err)
		return
	}

	response.OK(c, entry)
}

// GetTeacherTimetable 获取教师课表
// GET /api/v1/timetable/teacher/:staffId
func (h *TimetableHandler) GetTeacherTimetable(c *gin.Context) {
	h.teacherTimetable(c, c.Param("staffId"))
}

// GetMyTimetable 获取当前教师的课表
// GET /api/v1/timetable/my-timetable
func (h *TimetableHandler) GetMyTimetable(c *gin.Context) {
	staffID, ok := MustGetStaffID(c)
	if !ok {
		return
	}
	h.teacherTimetable(c, staffID)
}

// GetBatchTimetable 获取班级课表
// GET /api/v1/timetable/batch/:batchId
func (h *TimetableHandler) GetBatchTimetable(c *gin.Context) {
	h.batchTimetable(c, c.Param("batchId"))
}

// GetMyBatchTimetable 获取当前学生所在班级的课表
// GET /api/v1/timetable/my-batch
func (h *TimetableHandler) GetMyBatchTimetable(c *gin.Context) {
	batchID, ok := MustGetBatchID(c)
	if !ok {
		return
	}
	h.batchTimetable(c, batchID)
}

// GetTeacherWorkload 获取教师工作量
// GET /api/v1/timetable/workload/:staffId
func (h *TimetableHandler) GetTeacherWorkload(c *gin.Context) {
	q, ok := bindTimetableQuery(c)
	if !ok {
		return
	}

	workload, err := h.timetableSvc.GetTeacherWorkload(c.Request.Context(), c.Param("staffId"), q.AcademicYear, q.Semester)
	if err != nil {
		handleTimetableError(c, err)
		return
	}

	response.OK(c, workload)
}

func (h *TimetableHandler) teacherTimetable(c *gin.Context, staffID string) {
	q, ok := bindTimetableQuery(c)
	if !ok {
		return
	}

	entries, err := h.timetableSvc.GetTeacherTimetable(c.Request.Context(), staffID, q.AcademicYear, q.Semester)
	if err != nil {
		handleTimetableError(c, err)
		return
	}

	response.OK(c, gin.H{"list": entries, "academic_year": q.AcademicYear, "semester": q.Semester})
}

func (h *TimetableHandler) batchTimetable(c *gin.Context, batchID string) {
	q, ok := bindTimetableQuery(c)
	if !ok {
		return
	}

	entries, err := h.timetableSvc.GetBatchTimetable(c.Request.Context(), batchID, q.AcademicYear, q.Semester)
	if err != nil {
		handleTimetableError(c, err)
		return
	}

	response.OK(c, gin.H{"list": entries, "academic_year": q.AcademicYear, "semester": q.Semester})
}

// ── 辅助函数 ──

func bindTimetableQuery(c *gin.Context) (*dto.TimetableQuery, bool) {
	var q dto.TimetableQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return nil, false
	}
	q.ApplyDefaults(time.Now())
	return &q, true
}

// bindError 参数绑定/校验失败，data 为 字段 → 提示
func bindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
		return
	}
	if msgs := validate.Messages(err); msgs != nil {
		response.ErrorWithData(c, http.StatusBadRequest, 16001, "参数校验失败", msgs)
		return
	}
	response.ErrorWithDetails(c, http.StatusBadRequest, 16001, "参数校验失败", err.Error())
}

// handleTimetableError 将 Service 层错误映射为 HTTP 响应
func handleTimetableError(c *gin.Context, err error) {
	if ce, ok := service.AsConflict(err); ok {
		response.ErrorWithData(c, http.StatusConflict, 16005, ce.Error(), gin.H{"conflicts": ce.Conflicts})
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidTeachingDay),
		errors.Is(err, service.ErrInvalidAcademicTerm),
		errors.Is(err, service.ErrInvalidEntryInput):
		response.BadRequest(c, 16001, err.Error())
	case errors.Is(err, service.ErrTimeSlotNotFound):
		response.NotFound(c, 16002, err.Error())
	case errors.Is(err, service.ErrBatchNotFound):
		response.NotFound(c, 16003, err.Error())
	case errors.Is(err, service.ErrEntryNotFound):
		response.NotFound(c, 16004, err.Error())
	default:
		response.InternalError(c)
	}
}
