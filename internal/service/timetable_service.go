package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"campus-timetable/config"
	"campus-timetable/internal/dto"
	"campus-timetable/internal/model"
	"campus-timetable/internal/repository"
	pkgerrors "campus-timetable/pkg/errors"
)

// ── TimetableService 接口 ──────────────────────────────────
//
// 设计说明：
//   - 写入前按 教师 → 班级 → 教室 三个维度独立查重，任一维度被占用即整体拒绝，不做部分写入。
//   - 查重与插入之间不加锁；数据库的三条唯一约束是最终保障，
//     违反约束时同样以 ConflictError 返回（Storage=true）。
//   - 教师/班级视图按 (学年, 学期) 代数缓存，任何写入都会递增对应代数。
// ─────────────────────────────────────────────────────────────

// TimetableService 课表模块业务接口
type TimetableService interface {
	// CheckConflicts 冲突预检；excludeEntryID 非空时排除该条目（编辑场景）
	CheckConflicts(ctx context.Context, in *dto.EntryInput, excludeEntryID string) ([]model.Conflict, error)
	// CreateEntry 查重后写入；存在冲突时返回 *ConflictError
	CreateEntry(ctx context.Context, in *dto.EntryInput, callerID string) (*dto.EntryResponse, error)
	// UpdateEntry 以自身为排除项重新查重后更新
	UpdateEntry(ctx context.Context, id string, in *dto.EntryInput, callerID string) (*dto.EntryResponse, error)
	GetEntry(ctx context.Context, id string) (*dto.EntryResponse, error)
	DeleteEntry(ctx context.Context, id string) error
	// DeleteByClass 删除匹配 (院系, 年级, 班) 的所有班级在某学期的条目，返回删除条数
	DeleteByClass(ctx context.Context, req *dto.DeleteByClassRequest) (int64, error)
	GetTeacherTimetable(ctx context.Context, staffID string, academicYear, semester int) ([]dto.EntryResponse, error)
	GetBatchTimetable(ctx context.Context, batchID string, academicYear, semester int) ([]dto.EntryResponse, error)
	GetTeacherWorkload(ctx context.Context, staffID string, academicYear, semester int) (*dto.WorkloadResponse, error)
	// BulkCreate 逐条调用 CreateEntry，单条失败不影响其他条目
	BulkCreate(ctx context.Context, items []dto.EntryInput, callerID string) *dto.BulkCreateResponse
}

type timetableService struct {
	repo     *repository.Repository
	cache    ViewCache
	cacheTTL time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewTimetableService 创建 TimetableService 实例
// cache 为 nil 时不启用视图缓存
func NewTimetableService(repo *repository.Repository, cache ViewCache, cfg *config.TimetableConfig, logger *zap.Logger) TimetableService {
	ttl := 10 * time.Minute
	if cfg != nil && cfg.CacheTTL > 0 {
		ttl = cfg.CacheTTL
	}
	return &timetableService{
		repo:     repo,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger,
		now:      time.Now,
	}
}

// ════════════════════════════════════════════════════════════
// CheckConflicts：冲突预检
// ════════════════════════════════════════════════════════════

func (s *timetableService) CheckConflicts(ctx context.Context, in *dto.EntryInput, excludeEntryID string) ([]model.Conflict, error) {
	entry, err := s.normalize(in)
	if err != nil {
		return nil, err
	}
	if excludeEntryID != "" {
		id, ok := parseID(excludeEntryID)
		if !ok {
			return nil, fmt.Errorf("%w: exclude_entry_id 不是合法的 UUID", ErrInvalidEntryInput)
		}
		excludeEntryID = id
	}
	if err := s.ensureTimeSlot(ctx, entry.TimeSlotID); err != nil {
		return nil, err
	}
	return s.findConflicts(ctx, entry, excludeEntryID)
}

// findConflicts 按 教师、班级、教室 顺序依次查找占用者
func (s *timetableService) findConflicts(ctx context.Context, entry *model.TimetableEntry, excludeID string) ([]model.Conflict, error) {
	coord := coordinateOf(entry)
	conflicts := make([]model.Conflict, 0, 3)

	dims := []struct {
		kind model.ConflictKind
		key  string
	}{
		{model.ConflictTeacher, entry.StaffID},
		{model.ConflictBatch, entry.BatchID},
		{model.ConflictRoom, entry.Room()},
	}
	for _, d := range dims {
		if d.key == "" {
			continue // 未分配教室
		}
		occupant, err := s.repo.TimetableEntry.FindOccupant(ctx, d.kind, d.key, coord, excludeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			s.logger.Error("冲突查询失败", zap.String("kind", string(d.kind)), zap.Error(err))
			return nil, err
		}
		conflicts = append(conflicts, describeConflict(d.kind, occupant))
	}
	return conflicts, nil
}

// ════════════════════════════════════════════════════════════
// CreateEntry：查重并写入
// ════════════════════════════════════════════════════════════

func (s *timetableService) CreateEntry(ctx context.Context, in *dto.EntryInput, callerID string) (*dto.EntryResponse, error) {
	entry, err := s.normalize(in)
	if err != nil {
		return nil, err
	}
	if err := s.ensureReferences(ctx, entry); err != nil {
		return nil, err
	}

	conflicts, err := s.findConflicts(ctx, entry, "")
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, &ConflictError{Conflicts: conflicts}
	}

	if callerID != "" {
		entry.CreatedBy = &callerID
		entry.UpdatedBy = &callerID
	}

	if err := s.repo.TimetableEntry.Create(ctx, entry); err != nil {
		if uv, ok := pkgerrors.AsUniqueViolation(err); ok {
			return nil, s.storageConflict(ctx, entry, "", uv)
		}
		s.logger.Error("创建课表条目失败", zap.Error(err))
		return nil, err
	}

	s.invalidate(ctx, termKey{entry.AcademicYear, entry.Semester})

	return s.reload(ctx, entry), nil
}

// ════════════════════════════════════════════════════════════
// UpdateEntry：编辑（排除自身查重）
// ════════════════════════════════════════════════════════════

func (s *timetableService) UpdateEntry(ctx context.Context, id string, in *dto.EntryInput, callerID string) (*dto.EntryResponse, error) {
	id, ok := parseID(id)
	if !ok {
		return nil, ErrEntryNotFound
	}
	existing, err := s.repo.TimetableEntry.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		s.logger.Error("查询课表条目失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	entry, err := s.normalize(in)
	if err != nil {
		return nil, err
	}
	if err := s.ensureReferences(ctx, entry); err != nil {
		return nil, err
	}

	conflicts, err := s.findConflicts(ctx, entry, id)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, &ConflictError{Conflicts: conflicts}
	}

	entry.EntryID = id
	entry.CreatedAt = existing.CreatedAt
	entry.CreatedBy = existing.CreatedBy
	if callerID != "" {
		entry.UpdatedBy = &callerID
	}

	if err := s.repo.TimetableEntry.Update(ctx, entry); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		if uv, ok := pkgerrors.AsUniqueViolation(err); ok {
			return nil, s.storageConflict(ctx, entry, id, uv)
		}
		s.logger.Error("更新课表条目失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.invalidate(ctx,
		termKey{existing.AcademicYear, existing.Semester},
		termKey{entry.AcademicYear, entry.Semester},
	)

	return s.reload(ctx, entry), nil
}

// ════════════════════════════════════════════════════════════
// GetEntry / DeleteEntry / DeleteByClass
// ════════════════════════════════════════════════════════════

func (s *timetableService) GetEntry(ctx context.Context, id string) (*dto.EntryResponse, error) {
	id, ok := parseID(id)
	if !ok {
		return nil, ErrEntryNotFound
	}
	entry, err := s.repo.TimetableEntry.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		s.logger.Error("查询课表条目失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	resp := toEntryResponse(entry)
	return &resp, nil
}

func (s *timetableService) DeleteEntry(ctx context.Context, id string) error {
	id, ok := parseID(id)
	if !ok {
		return ErrEntryNotFound
	}
	existing, err := s.repo.TimetableEntry.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEntryNotFound
		}
		s.logger.Error("查询课表条目失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.TimetableEntry.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEntryNotFound
		}
		s.logger.Error("删除课表条目失败", zap.String("id", id), zap.Error(err))
		return err
	}

	s.invalidate(ctx, termKey{existing.AcademicYear, existing.Semester})
	return nil
}

func (s *timetableService) DeleteByClass(ctx context.Context, req *dto.DeleteByClassRequest) (int64, error) {
	batches, err := s.repo.Batch.ListByClass(ctx, strings.TrimSpace(req.Department), req.Year, strings.TrimSpace(req.Section))
	if err != nil {
		s.logger.Error("查询班级失败", zap.Error(err))
		return 0, err
	}
	if len(batches) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(batches))
	for _, b := range batches {
		ids = append(ids, b.BatchID)
	}

	deleted, err := s.repo.TimetableEntry.DeleteByBatches(ctx, ids, req.Semester, req.AcademicYear)
	if err != nil {
		s.logger.Error("按班级删除课表失败", zap.Strings("batch_ids", ids), zap.Error(err))
		return 0, err
	}

	terms := make([]termKey, 0, 1)
	seen := make(map[termKey]bool)
	for _, d := range deleted {
		k := termKey{d.AcademicYear, d.Semester}
		if !seen[k] {
			seen[k] = true
			terms = append(terms, k)
		}
	}
	s.invalidate(ctx, terms...)

	s.logger.Info("按班级删除课表",
		zap.String("department", req.Department),
		zap.Int("year", req.Year),
		zap.String("section", req.Section),
		zap.Int("semester", req.Semester),
		zap.Int("deleted", len(deleted)),
	)
	return int64(len(deleted)), nil
}

// ════════════════════════════════════════════════════════════
// 查询视图
// ════════════════════════════════════════════════════════════

func (s *timetableService) GetTeacherTimetable(ctx context.Context, staffID string, academicYear, semester int) ([]dto.EntryResponse, error) {
	if !model.IsAcademicTerm(academicYear, semester) {
		return nil, ErrInvalidAcademicTerm
	}
	return s.cachedView(ctx, "teacher", staffID, academicYear, semester, func() ([]model.TimetableEntry, error) {
		return s.repo.TimetableEntry.ListByStaff(ctx, staffID, academicYear, semester)
	})
}

func (s *timetableService) GetBatchTimetable(ctx context.Context, batchID string, academicYear, semester int) ([]dto.EntryResponse, error) {
	if !model.IsAcademicTerm(academicYear, semester) {
		return nil, ErrInvalidAcademicTerm
	}
	batchID, ok := parseID(batchID)
	if !ok {
		return nil, ErrBatchNotFound
	}
	if _, err := s.repo.Batch.GetByID(ctx, batchID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBatchNotFound
		}
		s.logger.Error("查询班级失败", zap.String("batch_id", batchID), zap.Error(err))
		return nil, err
	}
	return s.cachedView(ctx, "batch", batchID, academicYear, semester, func() ([]model.TimetableEntry, error) {
		return s.repo.TimetableEntry.ListByBatch(ctx, batchID, academicYear, semester)
	})
}

func (s *timetableService) GetTeacherWorkload(ctx context.Context, staffID string, academicYear, semester int) (*dto.WorkloadResponse, error) {
	entries, err := s.GetTeacherTimetable(ctx, staffID, academicYear, semester)
	if err != nil {
		return nil, err
	}

	// 计数按课程代码与班级 ID 去重，名称只用于展示列表
	subjectCodes := make(map[string]bool)
	batchIDs := make(map[string]bool)
	subjectNames := make(map[string]bool)
	classNames := make(map[string]bool)
	for _, e := range entries {
		subjectCodes[e.SubjectCode] = true
		batchIDs[e.BatchID] = true
		subjectNames[firstNonEmpty(e.SubjectName, e.SubjectCode)] = true
		classNames[firstNonEmpty(e.ClassName, e.BatchID)] = true
	}

	return &dto.WorkloadResponse{
		StaffID:      staffID,
		AcademicYear: academicYear,
		Semester:     semester,
		TotalPeriods: len(entries),
		SubjectCount: len(subjectCodes),
		BatchCount:   len(batchIDs),
		Subjects:     sortedKeys(subjectNames),
		Batches:      sortedKeys(classNames),
	}, nil
}

// cachedView 读取视图缓存，未命中时查询并回填
func (s *timetableService) cachedView(ctx context.Context, view, id string, academicYear, semester int, load func() ([]model.TimetableEntry, error)) ([]dto.EntryResponse, error) {
	var key string
	if s.cache != nil {
		gen, err := s.cache.Generation(ctx, academicYear, semester)
		if err != nil {
			s.logger.Warn("读取缓存代数失败，直接查询数据库", zap.Error(err))
		} else {
			key = viewKey(gen, view, id, academicYear, semester)
			var cached []dto.EntryResponse
			if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
				return cached, nil
			}
		}
	}

	entries, err := load()
	if err != nil {
		s.logger.Error("查询课表失败", zap.String("view", view), zap.String("id", id), zap.Error(err))
		return nil, err
	}
	sortEntries(entries)

	result := make([]dto.EntryResponse, 0, len(entries))
	for i := range entries {
		result = append(result, toEntryResponse(&entries[i]))
	}

	if key != "" {
		if err := s.cache.SetJSON(ctx, key, result, s.cacheTTL); err != nil {
			s.logger.Warn("写入视图缓存失败", zap.String("key", key), zap.Error(err))
		}
	}
	return result, nil
}

// ════════════════════════════════════════════════════════════
// BulkCreate：批量创建
// ════════════════════════════════════════════════════════════

func (s *timetableService) BulkCreate(ctx context.Context, items []dto.EntryInput, callerID string) *dto.BulkCreateResponse {
	resp := &dto.BulkCreateResponse{Results: make([]dto.BulkItemResult, 0, len(items))}

	for i := range items {
		item := items[i]
		result := dto.BulkItemResult{Index: i}

		created, err := s.CreateEntry(ctx, &item, callerID)
		if err != nil {
			result.Error = err.Error()
			if ce, ok := AsConflict(err); ok {
				result.Conflicts = ce.Conflicts
			}
			resp.Failed++
		} else {
			result.Created = true
			result.Entry = created
			resp.Created++
		}
		resp.Results = append(resp.Results, result)
	}

	s.logger.Info("批量创建课表完成",
		zap.Int("total", len(items)),
		zap.Int("created", resp.Created),
		zap.Int("failed", resp.Failed),
	)
	return resp
}

// ── 辅助函数 ──

// normalize 校验输入并转换为模型；学年学期补默认值，空教室视为未分配
func (s *timetableService) normalize(in *dto.EntryInput) (*model.TimetableEntry, error) {
	in.ApplyDefaults(s.now())

	entry := &model.TimetableEntry{
		StaffID:      strings.TrimSpace(in.StaffID),
		SubjectCode:  strings.TrimSpace(in.SubjectCode),
		BatchID:      strings.TrimSpace(in.BatchID),
		DayOfWeek:    in.DayOfWeek,
		TimeSlotID:   strings.TrimSpace(in.TimeSlotID),
		AcademicYear: in.AcademicYear,
		Semester:     in.Semester,
	}
	if entry.StaffID == "" || entry.SubjectCode == "" || entry.BatchID == "" || entry.TimeSlotID == "" {
		return nil, fmt.Errorf("%w: 教师、课程、班级、节次均不能为空", ErrInvalidEntryInput)
	}
	var ok bool
	if entry.BatchID, ok = parseID(entry.BatchID); !ok {
		return nil, fmt.Errorf("%w: batch_id 不是合法的 UUID", ErrInvalidEntryInput)
	}
	if entry.TimeSlotID, ok = parseID(entry.TimeSlotID); !ok {
		return nil, fmt.Errorf("%w: time_slot_id 不是合法的 UUID", ErrInvalidEntryInput)
	}
	if !model.IsTeachingDay(entry.DayOfWeek) {
		return nil, ErrInvalidTeachingDay
	}
	if !model.IsAcademicTerm(entry.AcademicYear, entry.Semester) {
		return nil, ErrInvalidAcademicTerm
	}
	if room := strings.TrimSpace(in.RoomNumber); room != "" {
		entry.RoomNumber = &room
	}
	return entry, nil
}

func (s *timetableService) ensureTimeSlot(ctx context.Context, id string) error {
	if _, err := s.repo.TimeSlot.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTimeSlotNotFound
		}
		s.logger.Error("查询节次失败", zap.String("time_slot_id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *timetableService) ensureReferences(ctx context.Context, entry *model.TimetableEntry) error {
	if err := s.ensureTimeSlot(ctx, entry.TimeSlotID); err != nil {
		return err
	}
	if _, err := s.repo.Batch.GetByID(ctx, entry.BatchID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBatchNotFound
		}
		s.logger.Error("查询班级失败", zap.String("batch_id", entry.BatchID), zap.Error(err))
		return err
	}
	return nil
}

// storageConflict 将唯一约束冲突还原为 ConflictError
func (s *timetableService) storageConflict(ctx context.Context, entry *model.TimetableEntry, excludeID string, uv *pkgerrors.UniqueViolationError) error {
	s.logger.Warn("唯一约束拦截到并发冲突",
		zap.String("constraint", uv.Constraint),
		zap.String("staff_id", entry.StaffID),
		zap.String("batch_id", entry.BatchID),
	)

	kind, key := kindForConstraint(uv.Constraint, entry)
	conflict := model.Conflict{Kind: kind, Message: genericConflictMessage(kind, entry)}
	if key != "" {
		occupant, err := s.repo.TimetableEntry.FindOccupant(ctx, kind, key, coordinateOf(entry), excludeID)
		if err == nil {
			conflict = describeConflict(kind, occupant)
		}
	}
	return &ConflictError{Conflicts: []model.Conflict{conflict}, Storage: true}
}

// reload 重新读取条目以带出关联信息，失败时退化为仅含写入字段
func (s *timetableService) reload(ctx context.Context, entry *model.TimetableEntry) *dto.EntryResponse {
	full, err := s.repo.TimetableEntry.GetByID(ctx, entry.EntryID)
	if err != nil {
		s.logger.Warn("重新加载课表条目失败", zap.String("id", entry.EntryID), zap.Error(err))
		full = entry
	}
	resp := toEntryResponse(full)
	return &resp
}

// invalidate 递增相关学期的缓存代数
func (s *timetableService) invalidate(ctx context.Context, terms ...termKey) {
	if s.cache == nil {
		return
	}
	seen := make(map[termKey]bool, len(terms))
	for _, t := range terms {
		if seen[t] {
			continue
		}
		seen[t] = true
		if err := s.cache.BumpGeneration(ctx, t.academicYear, t.semester); err != nil {
			s.logger.Warn("递增缓存代数失败",
				zap.Int("academic_year", t.academicYear),
				zap.Int("semester", t.semester),
				zap.Error(err),
			)
		}
	}
}

func coordinateOf(e *model.TimetableEntry) repository.Coordinate {
	return repository.Coordinate{
		AcademicYear: e.AcademicYear,
		Semester:     e.Semester,
		DayOfWeek:    e.DayOfWeek,
		TimeSlotID:   e.TimeSlotID,
	}
}

func kindForConstraint(constraint string, e *model.TimetableEntry) (model.ConflictKind, string) {
	switch constraint {
	case model.ConstraintStaffSlot:
		return model.ConflictTeacher, e.StaffID
	case model.ConstraintBatchSlot:
		return model.ConflictBatch, e.BatchID
	case model.ConstraintRoomSlot:
		return model.ConflictRoom, e.Room()
	default:
		return model.ConflictTeacher, ""
	}
}

func describeConflict(kind model.ConflictKind, occupant *model.TimetableEntry) model.Conflict {
	subject := occupant.SubjectCode
	if occupant.Subject != nil && occupant.Subject.SubjectName != "" {
		subject = occupant.Subject.SubjectName
	}
	className := occupant.BatchID
	if occupant.Batch != nil && occupant.Batch.ClassName != "" {
		className = occupant.Batch.ClassName
	}
	teacher := occupant.StaffID
	if occupant.Staff != nil && occupant.Staff.Name != "" {
		teacher = occupant.Staff.Name
	}

	var msg string
	switch kind {
	case model.ConflictTeacher:
		msg = fmt.Sprintf("教师该时段已安排 %s（%s）", subject, className)
	case model.ConflictBatch:
		msg = fmt.Sprintf("班级该时段已有 %s（授课教师 %s）", subject, teacher)
	case model.ConflictRoom:
		msg = fmt.Sprintf("教室 %s 该时段已被 %s 占用（%s）", occupant.Room(), teacher, subject)
	}
	return model.Conflict{Kind: kind, Message: msg, EntryID: occupant.EntryID}
}

func genericConflictMessage(kind model.ConflictKind, e *model.TimetableEntry) string {
	switch kind {
	case model.ConflictBatch:
		return "班级该时段已有其他课程"
	case model.ConflictRoom:
		return fmt.Sprintf("教室 %s 该时段已被占用", e.Room())
	default:
		return "教师该时段已有其他安排"
	}
}

// sortEntries 按 星期、节次序号 稳定排序
func sortEntries(entries []model.TimetableEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].DayOfWeek != entries[j].DayOfWeek {
			return entries[i].DayOfWeek < entries[j].DayOfWeek
		}
		return slotOrder(&entries[i]) < slotOrder(&entries[j])
	})
}

func slotOrder(e *model.TimetableEntry) int {
	if e.TimeSlot == nil {
		return 0
	}
	return e.TimeSlot.SlotOrder
}

func toEntryResponse(e *model.TimetableEntry) dto.EntryResponse {
	resp := dto.EntryResponse{
		ID:           e.EntryID,
		StaffID:      e.StaffID,
		SubjectCode:  e.SubjectCode,
		BatchID:      e.BatchID,
		DayOfWeek:    e.DayOfWeek,
		TimeSlotID:   e.TimeSlotID,
		RoomNumber:   e.RoomNumber,
		AcademicYear: e.AcademicYear,
		Semester:     e.Semester,
	}
	if !e.CreatedAt.IsZero() {
		resp.CreatedAt = e.CreatedAt.Format(time.RFC3339)
	}
	if !e.UpdatedAt.IsZero() {
		resp.UpdatedAt = e.UpdatedAt.Format(time.RFC3339)
	}
	if e.Staff != nil {
		resp.TeacherName = e.Staff.Name
	}
	if e.Subject != nil {
		resp.SubjectName = e.Subject.SubjectName
	}
	if e.Batch != nil {
		resp.ClassName = e.Batch.ClassName
		resp.Department = e.Batch.Department
		resp.Year = e.Batch.Year
		resp.Section = e.Batch.Section
	}
	if e.TimeSlot != nil {
		resp.SlotName = e.TimeSlot.SlotName
		resp.StartTime = model.ClockHHMM(e.TimeSlot.StartTime)
		resp.EndTime = model.ClockHHMM(e.TimeSlot.EndTime)
		resp.SlotOrder = e.TimeSlot.SlotOrder
	}
	return resp
}

// parseID 校验 UUID 并返回规范形式；非法 ID 不可能命中任何行
func parseID(id string) (string, bool) {
	u, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", false
	}
	return u.String(), true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
