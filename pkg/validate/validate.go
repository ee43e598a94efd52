package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
)

// 自定义校验标签
const (
	NotBlankTag    = "notblank"
	TeachingDayTag = "teaching_day"
)

var (
	translator ut.Translator
	once       sync.Once
	setupErr   error
)

// Setup 在 gin 默认校验引擎上注册自定义规则与中文错误翻译
// extra 为业务层提供的附加规则（如 teaching_day），只在首次调用时生效
func Setup(extra map[string]validator.Func) error {
	once.Do(func() {
		setupErr = setup(extra)
	})
	return setupErr
}

func setup(extra map[string]validator.Func) error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin 校验引擎不是 validator/v10")
	}

	// 错误信息使用 JSON 字段名
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})

	_zh := zh.New()
	uni := ut.New(_zh, _zh)
	translator, _ = uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(v, translator); err != nil {
		return fmt.Errorf("注册校验翻译失败: %w", err)
	}

	rules := map[string]validator.Func{
		NotBlankTag: notBlank,
	}
	for tag, fn := range extra {
		rules[tag] = fn
	}

	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("注册校验规则 %s 失败: %w", tag, err)
		}
		if err := v.RegisterTranslation(tag, translator, noopRegister, translateCustom); err != nil {
			return fmt.Errorf("注册校验规则 %s 翻译失败: %w", tag, err)
		}
	}
	return nil
}

// IntRule 将整数谓词包装为校验函数
func IntRule(pred func(int) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		switch fl.Field().Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return pred(int(fl.Field().Int()))
		default:
			return false
		}
	}
}

// Messages 将校验错误转换为 字段 → 中文提示；非校验错误返回 nil
func Messages(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if translator != nil {
			out[fe.Field()] = fe.Translate(translator)
		} else {
			out[fe.Field()] = fe.Error()
		}
	}
	return out
}

func noopRegister(ut.Translator) error { return nil }

func translateCustom(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case NotBlankTag:
		return fe.Field() + "不能为空白"
	case TeachingDayTag:
		return fe.Field() + "必须是教学日（1=周一 … 6=周六）"
	default:
		return fe.Field() + "校验失败"
	}
}

func notBlank(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return false
}
