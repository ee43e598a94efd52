package model

// Staff 教职工，对应 staff（外部导入，只读）
type Staff struct {
	StaffID    string `gorm:"type:varchar(20);primaryKey" json:"staff_id"`
	Name       string `gorm:"type:varchar(100);not null"  json:"name"`
	Department string `gorm:"type:varchar(50)"            json:"department,omitempty"`
	ReferenceModel
}

// TableName 指定表名
func (Staff) TableName() string { return "staff" }

// Subject 课程，对应 subjects（外部导入，只读）
type Subject struct {
	SubjectCode string `gorm:"type:varchar(20);primaryKey" json:"subject_code"`
	SubjectName string `gorm:"type:varchar(150);not null"  json:"subject_name"`
	ReferenceModel
}

// TableName 指定表名
func (Subject) TableName() string { return "subjects" }

// Batch 班级，对应 batches（外部导入，只读）
type Batch struct {
	BatchID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"batch_id"`
	ClassName  string `gorm:"type:varchar(100);not null"                     json:"class_name"`
	Department string `gorm:"type:varchar(50);not null"                      json:"department"`
	Year       int    `gorm:"type:smallint;not null"                         json:"year"`
	Section    string `gorm:"type:varchar(10);not null"                      json:"section"`
	ReferenceModel
}

// TableName 指定表名
func (Batch) TableName() string { return "batches" }
