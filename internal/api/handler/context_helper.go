package handler

import (
	"github.com/gin-gonic/gin"

	"campus-timetable/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	return mustGetString(c, "user_id")
}

// MustGetRole 从 Gin 上下文中安全提取 role。
func MustGetRole(c *gin.Context) (string, bool) {
	return mustGetString(c, "role")
}

// MustGetStaffID 提取教师账号关联的 staff_id，未关联时返回 403
func MustGetStaffID(c *gin.Context) (string, bool) {
	return mustGetLinked(c, "staff_id", "当前账号未关联教职工")
}

// MustGetBatchID 提取学生账号关联的 batch_id，未关联时返回 403
func MustGetBatchID(c *gin.Context) (string, bool) {
	return mustGetLinked(c, "batch_id", "当前账号未关联班级")
}

func mustGetString(c *gin.Context, key string) (string, bool) {
	v, exists := c.Get(key)
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

func mustGetLinked(c *gin.Context, key, message string) (string, bool) {
	if _, ok := MustGetUserID(c); !ok {
		return "", false
	}
	s := c.GetString(key)
	if s == "" {
		response.Forbidden(c, 10003, message)
		return "", false
	}
	return s, true
}
