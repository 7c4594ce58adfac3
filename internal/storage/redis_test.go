package storage_test

import (
	"context"
	"os"
	"testing"
	"time"

	"skillmatch-go/internal/config"
	"skillmatch-go/internal/storage"
	"skillmatch-go/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRedis 连接本地Redis，连不上时跳过测试
func newTestRedis(t *testing.T) *storage.Redis {
	t.Helper()

	addr := os.Getenv("SKILLMATCH_TEST_REDIS_ADDRESS")
	if addr == "" {
		addr = "localhost:6379"
	}
	cfg := &config.RedisConfig{
		Address:             addr,
		DialTimeoutSeconds:  1,
		ReadTimeoutSeconds:  1,
		WriteTimeoutSeconds: 1,
		TextCacheTTL:        "1m",
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	r, err := storage.NewRedisAdapter(ctx, cfg)
	if err != nil {
		t.Skipf("Redis不可用，跳过测试: %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestNewRedisAdapterValidation(t *testing.T) {
	_, err := storage.NewRedisAdapter(context.Background(), nil)
	require.Error(t, err, "配置为nil时应返回错误")

	_, err = storage.NewRedisAdapter(context.Background(), &config.RedisConfig{})
	require.Error(t, err, "地址为空时应返回错误")
}

func TestTextKey(t *testing.T) {
	assert.Equal(t, "skillmatch:text:abc", storage.TextKey("abc"))
}

func TestRedisExtractedTextRoundTrip(t *testing.T) {
	r := newTestRedis(t)
	ctx := context.Background()

	md5 := utils.CalculateMD5([]byte("redis-test-" + time.Now().String()))
	t.Cleanup(func() { _ = r.DeleteExtractedText(ctx, md5) })

	_, found, err := r.GetExtractedText(ctx, md5)
	require.NoError(t, err)
	assert.False(t, found, "未写入前不应命中")

	require.NoError(t, r.SetExtractedText(ctx, md5, "Python and Go"))

	text, found, err := r.GetExtractedText(ctx, md5)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Python and Go", text)

	ttl, err := r.Client.TTL(ctx, storage.TextKey(md5)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}
