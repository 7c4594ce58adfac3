package router

import (
	"time"

	"skillmatch-go/internal/api/handler"
	"skillmatch-go/internal/config"
	"skillmatch-go/internal/constants"
	"skillmatch-go/pkg/ratelimit"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/hertz-contrib/cors"
)

// RegisterRoutes 注册 API 路由
func RegisterRoutes(h *server.Hertz, skillHandler *handler.SkillHandler, cfg config.ServerConfig) {
	h.Use(
		RequestID(),
		AccessLog(),
		cors.New(corsConfig(cfg.AllowOrigins)),
	)

	// PDF解析开销较大，可单独限流
	if cfg.UploadRateLimitQPM > 0 {
		limiter := ratelimit.NewTokenBucket(cfg.UploadRateLimitQPM, 0)
		h.POST("/extract-skills", RateLimit(limiter), skillHandler.HandleExtractSkills)
	} else {
		h.POST("/extract-skills", skillHandler.HandleExtractSkills)
	}
	h.POST("/match-job", skillHandler.HandleMatchJob)

	// 添加健康检查
	h.GET("/health", skillHandler.HandleHealth)
}

// corsConfig 空列表或包含 "*" 时允许所有来源
func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", constants.RequestIDHeader},
		ExposeHeaders: []string{constants.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
			break
		}
	}
	if allowAll {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}
