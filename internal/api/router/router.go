package router

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"campus-timetable/config"
	"campus-timetable/internal/api/handler"
	"campus-timetable/internal/api/middleware"
	"campus-timetable/internal/model"
	"campus-timetable/pkg/jwt"
	"campus-timetable/pkg/redis"
	"campus-timetable/pkg/validate"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 为 nil 时黑名单与限流降级放行
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)

	// 自定义校验规则须在任何绑定之前注册
	if err := validate.Setup(map[string]validator.Func{
		validate.TeachingDayTag: validate.IntRule(model.IsTeachingDay),
	}); err != nil {
		return nil, fmt.Errorf("注册校验规则失败: %w", err)
	}

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	authorized := v1.Group("")
	authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
	{
		adminOnly := middleware.RoleAuth(jwt.RoleAdmin)

		// 节次模块
		authorized.GET("/time-slots", h.TimeSlot.ListTimeSlots)

		// 课表模块
		timetable := authorized.Group("/timetable")
		{
			timetable.POST("/check-conflicts", adminOnly, h.Timetable.CheckConflicts)
			timetable.POST("/bulk-create", adminOnly,
				middleware.RateLimit(rdb, cfg.Timetable.BulkRateLimit, cfg.Timetable.BulkRateWindow),
				h.Timetable.BulkCreate)

			timetable.POST("/entries", adminOnly, h.Timetable.CreateEntry)
			timetable.DELETE("/entries", adminOnly, h.Timetable.DeleteByClass)
			timetable.GET("/entries/:id", h.Timetable.GetEntry)
			timetable.PUT("/entries/:id", adminOnly, h.Timetable.UpdateEntry)
			timetable.DELETE("/entries/:id", adminOnly, h.Timetable.DeleteEntry)

			timetable.GET("/teacher/:staffId", h.Timetable.GetTeacherTimetable)
			timetable.GET("/teacher/:staffId/calendar.ics", h.Export.ExportTeacherCalendar)
			timetable.GET("/my-timetable", middleware.RoleAuth(jwt.RoleTeacher), h.Timetable.GetMyTimetable)

			timetable.GET("/batch/:batchId", h.Timetable.GetBatchTimetable)
			timetable.GET("/batch/:batchId/export", h.Export.ExportBatchTimetable)
			timetable.GET("/my-batch", middleware.RoleAuth(jwt.RoleStudent), h.Timetable.GetMyBatchTimetable)

			timetable.GET("/workload/:staffId", h.Timetable.GetTeacherWorkload)
		}
	}

	return r, nil
}
