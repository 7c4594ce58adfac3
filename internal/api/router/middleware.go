package router

import (
	"context"
	"math"
	"strconv"
	"time"

	"skillmatch-go/internal/constants"
	"skillmatch-go/internal/logger"
	"skillmatch-go/internal/types"
	"skillmatch-go/pkg/ratelimit"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/gofrs/uuid/v5"
)

// RequestID 透传或生成请求ID，并把带请求ID的日志放入上下文
func RequestID() app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		id := string(ctx.GetHeader(constants.RequestIDHeader))
		if id == "" {
			if u, err := uuid.NewV7(); err == nil {
				id = u.String()
			} else {
				id = uuid.Must(uuid.NewV4()).String()
			}
		}

		ctx.Response.Header.Set(constants.RequestIDHeader, id)
		ctx.Next(logger.WithRequestID(c, id))
	}
}

// AccessLog 记录每个请求的方法、路径、状态码和耗时
func AccessLog() app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		start := time.Now()
		ctx.Next(c)

		status := ctx.Response.StatusCode()
		event := logger.Ctx(c).Info()
		if status >= 500 {
			event = logger.Ctx(c).Error()
		} else if status >= 400 {
			event = logger.Ctx(c).Warn()
		}
		event.
			Str("method", string(ctx.Method())).
			Str("path", string(ctx.Path())).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", ctx.ClientIP()).
			Msg("request completed")
	}
}

// RateLimit 令牌耗尽时返回 429 和 Retry-After
func RateLimit(tb *ratelimit.TokenBucket) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		if tb.Allow() {
			ctx.Next(c)
			return
		}

		retryAfter := int(math.Ceil(tb.RetryAfter().Seconds()))
		if retryAfter < 1 {
			retryAfter = 1
		}
		ctx.Response.Header.Set("Retry-After", strconv.Itoa(retryAfter))
		logger.Ctx(c).Warn().Str("path", string(ctx.Path())).Msg("请求被限流")
		ctx.AbortWithStatusJSON(consts.StatusTooManyRequests, types.ErrorResponse{Error: constants.MsgTooManyRequests})
	}
}
