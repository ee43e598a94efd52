package model

// 教学日：周一(1) 至 周六(6)
const (
	Monday   = 1
	Saturday = 6
)

// 数据库约束名，存储层冲突据此还原冲突维度
const (
	ConstraintStaffSlot = "uq_timetable_entries_staff_slot"
	ConstraintBatchSlot = "uq_timetable_entries_batch_slot"
	ConstraintRoomSlot  = "uq_timetable_entries_room_slot"
)

// IsTeachingDay 判断 day_of_week 是否为教学日
func IsTeachingDay(day int) bool {
	return day >= Monday && day <= Saturday
}

// IsAcademicTerm 判断学年与学期是否在允许范围内
func IsAcademicTerm(academicYear, semester int) bool {
	return academicYear >= 2000 && academicYear <= 2100 && semester >= 1 && semester <= 8
}

// TimetableEntry 课表条目，对应 timetable_entries
// 同一 (学年, 学期, 星期, 节次) 下，教师、班级、非空教室各自至多出现一次
type TimetableEntry struct {
	EntryID      string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"entry_id"`
	StaffID      string  `gorm:"type:varchar(20);not null"                      json:"staff_id"`
	SubjectCode  string  `gorm:"type:varchar(20);not null"                      json:"subject_code"`
	BatchID      string  `gorm:"type:uuid;not null"                             json:"batch_id"`
	DayOfWeek    int     `gorm:"type:smallint;not null"                         json:"day_of_week"`
	TimeSlotID   string  `gorm:"type:uuid;not null"                             json:"time_slot_id"`
	RoomNumber   *string `gorm:"type:varchar(20)"                               json:"room_number,omitempty"`
	AcademicYear int     `gorm:"type:smallint;not null"                         json:"academic_year"`
	Semester     int     `gorm:"type:smallint;not null"                         json:"semester"`
	BaseModel

	// 关联
	Staff    *Staff    `gorm:"foreignKey:StaffID;references:StaffID"         json:"staff,omitempty"`
	Subject  *Subject  `gorm:"foreignKey:SubjectCode;references:SubjectCode" json:"subject,omitempty"`
	Batch    *Batch    `gorm:"foreignKey:BatchID;references:BatchID"         json:"batch,omitempty"`
	TimeSlot *TimeSlot `gorm:"foreignKey:TimeSlotID;references:TimeSlotID"   json:"time_slot,omitempty"`
}

// TableName 指定表名
func (TimetableEntry) TableName() string { return "timetable_entries" }

// Room 返回教室号，未分配时为空串
func (e *TimetableEntry) Room() string {
	if e.RoomNumber == nil {
		return ""
	}
	return *e.RoomNumber
}

// ConflictKind 冲突维度
type ConflictKind string

const (
	ConflictTeacher ConflictKind = "teacher"
	ConflictBatch   ConflictKind = "batch"
	ConflictRoom    ConflictKind = "room"
)

// Conflict 单条冲突：维度、可读说明、已占用该坐标的条目
type Conflict struct {
	Kind    ConflictKind `json:"type"`
	Message string       `json:"message"`
	EntryID string       `json:"existing_entry_id,omitempty"`
}
