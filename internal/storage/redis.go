package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skillmatch-go/internal/config"
	"skillmatch-go/internal/constants"
	"skillmatch-go/internal/tracing"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ErrNotFound is returned when a key is not found in Redis.
var ErrNotFound = redis.Nil

// 为Redis操作定义专用tracer
var redisTracer = otel.Tracer("skillmatch-go/storage/redis")

// Redis wraps the Redis client and implements the extracted-text cache.
type Redis struct {
	Client *redis.Client
	config *config.RedisConfig
}

// NewRedisAdapter creates a new Redis client connection
func NewRedisAdapter(ctx context.Context, cfg *config.RedisConfig) (*Redis, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis config cannot be nil")
	}
	if cfg.Address == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	opt := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,

		// 连接池设置
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,

		// 超时设置
		DialTimeout:  time.Duration(cfg.DialTimeoutSeconds) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,

		MaxRetries: cfg.MaxRetries,
	}

	client := redis.NewClient(opt)

	// 添加OpenTelemetry钩子, 记录所有Redis操作
	if err := redisotel.InstrumentTracing(client); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to instrument Redis with OpenTelemetry: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := client.Ping(pingCtx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Address, err)
	}

	return &Redis{
		Client: client,
		config: cfg,
	}, nil
}

// Close closes the Redis client connection
func (r *Redis) Close() error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}

// Ping checks the Redis connection
func (r *Redis) Ping(ctx context.Context) error {
	if r.Client == nil {
		return fmt.Errorf("redis client is not initialized")
	}
	return r.Client.Ping(ctx).Err()
}

// TextTTL 返回提取文本缓存的过期时间
func (r *Redis) TextTTL() time.Duration {
	return config.GetDuration(r.config.TextCacheTTL, constants.ExtractedTextCacheDuration)
}

// TextKey 文件MD5对应的缓存键
func TextKey(fileMD5 string) string {
	return constants.ExtractedTextCachePrefix + fileMD5
}

// GetExtractedText 按文件MD5读取缓存的提取文本
// 未命中时返回 ("", false, nil)
func (r *Redis) GetExtractedText(ctx context.Context, fileMD5 string) (string, bool, error) {
	if r.Client == nil {
		return "", false, fmt.Errorf("redis客户端未初始化")
	}

	key := TextKey(fileMD5)
	ctx, span := redisTracer.Start(ctx, "Redis.GetExtractedText", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "redis"),
		attribute.String("db.operation", "GET"),
		attribute.String("db.redis.key", tracing.SafeRedisKey(key)),
	)

	val, err := r.Client.Get(ctx, key).Result()
	if err != nil {
		// key不存在不算错误
		if errors.Is(err, ErrNotFound) {
			span.SetAttributes(attribute.Bool("db.redis.key_exists", false))
			return "", false, nil
		}
		tracing.RecordError(span, err, tracing.ErrorTypeRedis)
		return "", false, fmt.Errorf("读取提取文本缓存失败: %w", err)
	}

	span.SetAttributes(
		attribute.Bool("db.redis.key_exists", true),
		attribute.Int("db.redis.value_length", len(val)),
	)
	return val, true, nil
}

// SetExtractedText 按文件MD5写入提取文本
func (r *Redis) SetExtractedText(ctx context.Context, fileMD5 string, text string) error {
	if r.Client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}

	key := TextKey(fileMD5)
	ttl := r.TextTTL()
	ctx, span := redisTracer.Start(ctx, "Redis.SetExtractedText", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "redis"),
		attribute.String("db.operation", "SET"),
		attribute.String("db.redis.key", tracing.SafeRedisKey(key)),
		attribute.Int("db.redis.value_length", len(text)),
		attribute.Int64("db.redis.expiration_ms", ttl.Milliseconds()),
	)

	if err := r.Client.Set(ctx, key, text, ttl).Err(); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeRedis)
		return fmt.Errorf("写入提取文本缓存失败: %w", err)
	}
	return nil
}

// DeleteExtractedText 删除缓存的提取文本
func (r *Redis) DeleteExtractedText(ctx context.Context, fileMD5 string) error {
	if r.Client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}
	return r.Client.Del(ctx, TextKey(fileMD5)).Err()
}
