package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"school-enroll/config"
	"school-enroll/internal/api/handler"
	"school-enroll/internal/api/middleware"
	"school-enroll/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 为 nil 时选课接口不限流
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	var limiter middleware.RateLimiter
	if rdb != nil {
		limiter = rdb
	}
	enrollLimit := middleware.RateLimit(limiter, cfg.RateLimit.EnrollLimit, cfg.RateLimit.EnrollWindow)

	// 选课模块
	r.GET("/enrollments", h.Enrollment.ListEnrollments)
	r.PUT("/enrollments/:enrollment_id", h.Enrollment.UpdateGrade)
	enroll := r.Group("/enroll", enrollLimit)
	{
		enroll.POST("/:user_id/:course_id", h.Enrollment.Enroll)
		enroll.DELETE("/:user_id/:course_id", h.Enrollment.Withdraw)
	}

	// 课程模块
	r.GET("/courses", h.Course.ListCourses)
	r.PUT("/courses/:course_id", h.Course.UpdateCapacity)

	// 用户模块
	r.GET("/users", h.User.ListUsers)
	r.GET("/users/:user_id/courses", h.User.ListUserCourses)

	// 导出模块
	r.GET("/export/enrollments", h.Export.ExportEnrollments)

	return r
}
