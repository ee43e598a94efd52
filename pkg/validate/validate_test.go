package validate

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type sampleRequest struct {
	Name string `json:"name" binding:"notblank"`
	Day  int    `json:"day" binding:"teaching_day"`
}

func setupForTest(t *testing.T) {
	t.Helper()
	err := Setup(map[string]validator.Func{
		TeachingDayTag: IntRule(func(d int) bool { return d >= 1 && d <= 6 }),
	})
	if err != nil {
		t.Fatalf("Setup 失败: %v", err)
	}
}

func TestSetup_ValidRequest(t *testing.T) {
	setupForTest(t)

	req := sampleRequest{Name: "Period 1", Day: 6}
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		t.Errorf("期望校验通过，实际: %v", err)
	}
}

func TestSetup_InvalidRequest(t *testing.T) {
	setupForTest(t)

	req := sampleRequest{Name: "   ", Day: 7}
	err := binding.Validator.ValidateStruct(&req)
	if err == nil {
		t.Fatal("期望校验失败")
	}

	msgs := Messages(err)
	for _, field := range []string{"name", "day"} {
		if _, ok := msgs[field]; !ok {
			t.Errorf("期望字段 %s 出现在错误信息中，实际: %v", field, msgs)
		}
	}
}

func TestMessages_NonValidationError(t *testing.T) {
	if Messages(nil) != nil {
		t.Error("nil 错误应返回 nil")
	}
}
