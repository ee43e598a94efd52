package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"campus-timetable/internal/model"
	"campus-timetable/internal/repository"
	pkgerrors "campus-timetable/pkg/errors"
)

// invalidUUID 模拟 Postgres 对 UUID 列传入非法文本时的报错
func invalidUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return &pgconn.PgError{Code: "22P02", Message: "invalid input syntax for type uuid: \"" + id + "\""}
	}
	return nil
}

// ── Mock TimeSlotRepository ──

type mockTimeSlotRepo struct {
	slots map[string]*model.TimeSlot
}

func newMockTimeSlotRepo() *mockTimeSlotRepo {
	return &mockTimeSlotRepo{slots: make(map[string]*model.TimeSlot)}
}

func (m *mockTimeSlotRepo) add(slot *model.TimeSlot) {
	m.slots[slot.TimeSlotID] = slot
}

func (m *mockTimeSlotRepo) GetByID(_ context.Context, id string) (*model.TimeSlot, error) {
	if err := invalidUUID(id); err != nil {
		return nil, err
	}
	if s, ok := m.slots[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTimeSlotRepo) List(_ context.Context) ([]model.TimeSlot, error) {
	result := make([]model.TimeSlot, 0, len(m.slots))
	for _, s := range m.slots {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SlotOrder < result[j].SlotOrder })
	return result, nil
}

// ── Mock BatchRepository ──

type mockBatchRepo struct {
	batches map[string]*model.Batch
}

func newMockBatchRepo() *mockBatchRepo {
	return &mockBatchRepo{batches: make(map[string]*model.Batch)}
}

func (m *mockBatchRepo) add(b *model.Batch) {
	m.batches[b.BatchID] = b
}

func (m *mockBatchRepo) GetByID(_ context.Context, id string) (*model.Batch, error) {
	if err := invalidUUID(id); err != nil {
		return nil, err
	}
	if b, ok := m.batches[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBatchRepo) ListByClass(_ context.Context, department string, year int, section string) ([]model.Batch, error) {
	var result []model.Batch
	for _, b := range m.batches {
		if b.Department == department && b.Year == year && b.Section == section {
			result = append(result, *b)
		}
	}
	return result, nil
}

// ── Mock TimetableEntryRepository ──
// 以内存 map 模拟三条唯一约束，并按外键填充关联

type mockEntryRepo struct {
	entries  map[string]*model.TimetableEntry
	staff    map[string]*model.Staff
	subjects map[string]*model.Subject
	slots    *mockTimeSlotRepo
	batches  *mockBatchRepo

	// blind 为 true 时 FindOccupant 永远未命中，用于模拟并发下查重被绕过
	blind bool
	// findErr 非 nil 时 FindOccupant 直接返回该错误
	findErr error
	// listCalls 记录列表查询次数（验证缓存命中）
	listCalls int
}

func newMockEntryRepo(slots *mockTimeSlotRepo, batches *mockBatchRepo) *mockEntryRepo {
	return &mockEntryRepo{
		entries:  make(map[string]*model.TimetableEntry),
		staff:    make(map[string]*model.Staff),
		subjects: make(map[string]*model.Subject),
		slots:    slots,
		batches:  batches,
	}
}

func sameCoordinate(e *model.TimetableEntry, c repository.Coordinate) bool {
	return e.AcademicYear == c.AcademicYear && e.Semester == c.Semester &&
		e.DayOfWeek == c.DayOfWeek && e.TimeSlotID == c.TimeSlotID
}

func (m *mockEntryRepo) hydrate(e *model.TimetableEntry) *model.TimetableEntry {
	cp := *e
	cp.Staff = m.staff[e.StaffID]
	cp.Subject = m.subjects[e.SubjectCode]
	cp.Batch = m.batches.batches[e.BatchID]
	cp.TimeSlot = m.slots.slots[e.TimeSlotID]
	return &cp
}

// violation 模拟唯一约束检查
func (m *mockEntryRepo) violation(e *model.TimetableEntry) error {
	coord := repository.Coordinate{AcademicYear: e.AcademicYear, Semester: e.Semester, DayOfWeek: e.DayOfWeek, TimeSlotID: e.TimeSlotID}
	for id, other := range m.entries {
		if id == e.EntryID || !sameCoordinate(other, coord) {
			continue
		}
		switch {
		case other.StaffID == e.StaffID:
			return &pkgerrors.UniqueViolationError{Constraint: model.ConstraintStaffSlot, Err: pkgerrors.ErrUniqueViolation}
		case other.BatchID == e.BatchID:
			return &pkgerrors.UniqueViolationError{Constraint: model.ConstraintBatchSlot, Err: pkgerrors.ErrUniqueViolation}
		case e.RoomNumber != nil && other.RoomNumber != nil && *other.RoomNumber == *e.RoomNumber:
			return &pkgerrors.UniqueViolationError{Constraint: model.ConstraintRoomSlot, Err: pkgerrors.ErrUniqueViolation}
		}
	}
	return nil
}

func (m *mockEntryRepo) FindOccupant(_ context.Context, kind model.ConflictKind, key string, coord repository.Coordinate, excludeID string) (*model.TimetableEntry, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	if excludeID != "" {
		if err := invalidUUID(excludeID); err != nil {
			return nil, err
		}
	}
	if m.blind {
		return nil, gorm.ErrRecordNotFound
	}
	for id, e := range m.entries {
		if id == excludeID || !sameCoordinate(e, coord) {
			continue
		}
		var match bool
		switch kind {
		case model.ConflictTeacher:
			match = e.StaffID == key
		case model.ConflictBatch:
			match = e.BatchID == key
		case model.ConflictRoom:
			match = e.Room() == key
		}
		if match {
			return m.hydrate(e), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEntryRepo) Create(_ context.Context, entry *model.TimetableEntry) error {
	if err := m.violation(entry); err != nil {
		return err
	}
	entry.EntryID = uuid.NewString()
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = entry.CreatedAt
	cp := *entry
	m.entries[entry.EntryID] = &cp
	return nil
}

func (m *mockEntryRepo) Update(_ context.Context, entry *model.TimetableEntry) error {
	if err := invalidUUID(entry.EntryID); err != nil {
		return err
	}
	if _, ok := m.entries[entry.EntryID]; !ok {
		return gorm.ErrRecordNotFound
	}
	if err := m.violation(entry); err != nil {
		return err
	}
	entry.UpdatedAt = time.Now()
	cp := *entry
	m.entries[entry.EntryID] = &cp
	return nil
}

func (m *mockEntryRepo) GetByID(_ context.Context, id string) (*model.TimetableEntry, error) {
	if err := invalidUUID(id); err != nil {
		return nil, err
	}
	if e, ok := m.entries[id]; ok {
		return m.hydrate(e), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEntryRepo) Delete(_ context.Context, id string) error {
	if err := invalidUUID(id); err != nil {
		return err
	}
	if _, ok := m.entries[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *mockEntryRepo) DeleteByBatches(_ context.Context, batchIDs []string, semester, academicYear int) ([]model.TimetableEntry, error) {
	wanted := make(map[string]bool, len(batchIDs))
	for _, id := range batchIDs {
		wanted[id] = true
	}
	var deleted []model.TimetableEntry
	for id, e := range m.entries {
		if !wanted[e.BatchID] || e.Semester != semester {
			continue
		}
		if academicYear != 0 && e.AcademicYear != academicYear {
			continue
		}
		deleted = append(deleted, model.TimetableEntry{EntryID: id, AcademicYear: e.AcademicYear, Semester: e.Semester})
		delete(m.entries, id)
	}
	return deleted, nil
}

// list 以 map 顺序返回（不排序），排序由 service 保证
func (m *mockEntryRepo) list(match func(e *model.TimetableEntry) bool, academicYear, semester int) []model.TimetableEntry {
	m.listCalls++
	var result []model.TimetableEntry
	for _, e := range m.entries {
		if match(e) && e.AcademicYear == academicYear && e.Semester == semester {
			result = append(result, *m.hydrate(e))
		}
	}
	return result
}

func (m *mockEntryRepo) ListByStaff(_ context.Context, staffID string, academicYear, semester int) ([]model.TimetableEntry, error) {
	return m.list(func(e *model.TimetableEntry) bool { return e.StaffID == staffID }, academicYear, semester), nil
}

func (m *mockEntryRepo) ListByBatch(_ context.Context, batchID string, academicYear, semester int) ([]model.TimetableEntry, error) {
	return m.list(func(e *model.TimetableEntry) bool { return e.BatchID == batchID }, academicYear, semester), nil
}

// ── Fake ViewCache ──

type fakeViewCache struct {
	gens  map[termKey]int64
	data  map[string][]byte
	bumps int
	hits  int
}

func newFakeViewCache() *fakeViewCache {
	return &fakeViewCache{gens: make(map[termKey]int64), data: make(map[string][]byte)}
}

func (f *fakeViewCache) Generation(_ context.Context, academicYear, semester int) (int64, error) {
	return f.gens[termKey{academicYear, semester}], nil
}

func (f *fakeViewCache) BumpGeneration(_ context.Context, academicYear, semester int) error {
	f.gens[termKey{academicYear, semester}]++
	f.bumps++
	return nil
}

func (f *fakeViewCache) GetJSON(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := f.data[key]
	if !ok {
		return false, nil
	}
	f.hits++
	return true, json.Unmarshal(raw, dest)
}

func (f *fakeViewCache) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = raw
	return nil
}
