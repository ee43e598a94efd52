package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"campus-timetable/internal/dto"
	"campus-timetable/internal/model"
	"campus-timetable/internal/repository"
)

// TimeSlotService 节次业务接口（节次由迁移写入，只读）
type TimeSlotService interface {
	List(ctx context.Context) ([]dto.TimeSlotResponse, error)
	// VerifySlotGrid 校验节次网格，启动时调用
	VerifySlotGrid(ctx context.Context) error
}

type timeSlotService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTimeSlotService 创建 TimeSlotService 实例
func NewTimeSlotService(repo *repository.Repository, logger *zap.Logger) TimeSlotService {
	return &timeSlotService{repo: repo, logger: logger}
}

func (s *timeSlotService) List(ctx context.Context) ([]dto.TimeSlotResponse, error) {
	slots, err := s.repo.TimeSlot.List(ctx)
	if err != nil {
		s.logger.Error("列出节次失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.TimeSlotResponse, 0, len(slots))
	for i := range slots {
		result = append(result, toTimeSlotResponse(&slots[i]))
	}
	return result, nil
}

func (s *timeSlotService) VerifySlotGrid(ctx context.Context) error {
	slots, err := s.repo.TimeSlot.List(ctx)
	if err != nil {
		return fmt.Errorf("读取节次失败: %w", err)
	}
	if len(slots) == 0 {
		return fmt.Errorf("节次表为空")
	}
	if err := model.VerifySlotGrid(slots); err != nil {
		return err
	}

	s.logger.Info("节次网格校验通过",
		zap.Int("slots", len(slots)),
		zap.String("first", model.ClockHHMM(slots[0].StartTime)),
		zap.String("last", model.ClockHHMM(slots[len(slots)-1].EndTime)),
	)
	return nil
}

func toTimeSlotResponse(slot *model.TimeSlot) dto.TimeSlotResponse {
	return dto.TimeSlotResponse{
		ID:        slot.TimeSlotID,
		Name:      slot.SlotName,
		StartTime: model.ClockHHMM(slot.StartTime),
		EndTime:   model.ClockHHMM(slot.EndTime),
		SlotOrder: slot.SlotOrder,
	}
}
