package model

import (
	"fmt"
	"time"
)

// TimeSlot 固定节次表，对应 time_slots
// 由迁移一次性写入，运行期只读
type TimeSlot struct {
	TimeSlotID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"time_slot_id"`
	SlotName   string `gorm:"type:varchar(20);not null"                      json:"slot_name"`
	StartTime  string `gorm:"type:time;not null"                             json:"start_time"`
	EndTime    string `gorm:"type:time;not null"                             json:"end_time"`
	SlotOrder  int    `gorm:"type:smallint;not null;uniqueIndex"             json:"slot_order"`
}

// TableName 指定表名
func (TimeSlot) TableName() string { return "time_slots" }

// ClockHHMM 将 PostgreSQL TIME 文本（09:00:00 / 09:00）规整为 HH:MM，无法解析时原样返回
func ClockHHMM(s string) string {
	if hhmm, ok := parseClock(s); ok {
		return hhmm
	}
	return s
}

func parseClock(s string) (string, bool) {
	for _, layout := range []string{"15:04:05", "15:04", time.RFC3339, "0000-01-01T15:04:05Z"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04"), true
		}
	}
	return "", false
}

// VerifySlotGrid 校验节次网格：时间可解析、开始早于结束、序号唯一、序号与开始时间同向递增
// slots 须已按 slot_order 升序排列
func VerifySlotGrid(slots []TimeSlot) error {
	seen := make(map[int]bool, len(slots))
	prevStart := ""
	for i, s := range slots {
		start, ok := parseClock(s.StartTime)
		if !ok {
			return fmt.Errorf("节次 %s 的开始时间 %q 不是合法时刻", s.SlotName, s.StartTime)
		}
		end, ok := parseClock(s.EndTime)
		if !ok {
			return fmt.Errorf("节次 %s 的结束时间 %q 不是合法时刻", s.SlotName, s.EndTime)
		}
		if start >= end {
			return fmt.Errorf("节次 %s 的开始时间 %s 不早于结束时间 %s", s.SlotName, start, end)
		}
		if seen[s.SlotOrder] {
			return fmt.Errorf("节次序号 %d 重复", s.SlotOrder)
		}
		seen[s.SlotOrder] = true
		if i > 0 {
			if s.SlotOrder <= slots[i-1].SlotOrder {
				return fmt.Errorf("节次未按序号升序排列: %d 在 %d 之后", s.SlotOrder, slots[i-1].SlotOrder)
			}
			if start <= prevStart {
				return fmt.Errorf("节次 %s 的开始时间 %s 未晚于上一节 %s", s.SlotName, start, prevStart)
			}
		}
		prevStart = start
	}
	return nil
}
