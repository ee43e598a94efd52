package dto

// ── 节次模块 DTO ──

// TimeSlotResponse 节次信息响应
type TimeSlotResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartTime string `json:"start_time"` // HH:MM
	EndTime   string `json:"end_time"`   // HH:MM
	SlotOrder int    `json:"slot_order"`
}
