package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// clearEnv 清除会影响配置加载的环境变量
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"SKILLMATCH_ADDRESS", "SKILLMATCH_LOG_LEVEL", "SKILLMATCH_REDIS_ADDRESS", "OTEL_EXPORTER_OTLP_ENDPOINT"} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644), "无法写入临时配置文件")
	return configPath
}

// TestLoadConfigMergesWithDefaults 验证文件中未出现的字段保留默认值
func TestLoadConfigMergesWithDefaults(t *testing.T) {
	clearEnv(t)
	configPath := writeConfig(t, `
server:
  address: ":9090"
redis:
  enabled: true
  address: "redis:6379"
scorer:
  min_confidence: 0.5
  max_confidence: 0.9
catalog:
  path: "/etc/skillmatch/catalog.yaml"
`)

	config, err := LoadConfig(configPath)
	require.NoError(t, err)
	require.NotNil(t, config)

	assert.Equal(t, ":9090", config.Server.Address)
	assert.Equal(t, 10*1024*1024, config.Server.MaxRequestBodySize, "未配置的字段应保留默认值")
	assert.True(t, config.Redis.Enabled)
	assert.Equal(t, "redis:6379", config.Redis.Address)
	assert.Equal(t, 10, config.Redis.PoolSize)
	assert.Equal(t, 0.5, config.Scorer.MinConfidence)
	assert.Equal(t, 0.9, config.Scorer.MaxConfidence)
	assert.Equal(t, "/etc/skillmatch/catalog.yaml", config.Catalog.Path)
	assert.Equal(t, "info", config.Logger.Level)
	assert.Equal(t, ParserTypeEino, config.Parser.Type)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	clearEnv(t)
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err, "显式指定的配置文件不存在时应返回错误")
}

func TestLoadConfigWithoutFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	clearEnv(t)
	configPath := writeConfig(t, "server: [unclosed")
	_, err := LoadConfig(configPath)
	require.Error(t, err)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SKILLMATCH_ADDRESS", ":7070")
	t.Setenv("SKILLMATCH_LOG_LEVEL", "debug")
	t.Setenv("SKILLMATCH_REDIS_ADDRESS", "cache:6379")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4317")

	config, err := LoadConfig(writeConfig(t, "server:\n  address: \":9090\"\n"))
	require.NoError(t, err)
	assert.Equal(t, ":7070", config.Server.Address, "环境变量应覆盖文件配置")
	assert.Equal(t, "debug", config.Logger.Level)
	assert.True(t, config.Redis.Enabled)
	assert.Equal(t, "cache:6379", config.Redis.Address)
	assert.True(t, config.Tracing.Enabled)
	assert.Equal(t, "collector:4317", config.Tracing.Endpoint)
}

func TestLoadConfigEmptyValuesGetDefaults(t *testing.T) {
	clearEnv(t)
	config, err := LoadConfig(writeConfig(t, `
server:
  address: ""
  max_request_body_size: 0
`))
	require.NoError(t, err)
	assert.Equal(t, ":8080", config.Server.Address)
	assert.Equal(t, 10*1024*1024, config.Server.MaxRequestBodySize)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"置信度区间颠倒", func(c *Config) { c.Scorer.MinConfidence, c.Scorer.MaxConfidence = 0.9, 0.1 }},
		{"置信度超过1", func(c *Config) { c.Scorer.MaxConfidence = 1.5 }},
		{"启用Redis但无地址", func(c *Config) { c.Redis.Enabled = true; c.Redis.Address = "" }},
		{"启用追踪但无地址", func(c *Config) { c.Tracing.Enabled = true; c.Tracing.Endpoint = "" }},
		{"采样率越界", func(c *Config) { c.Tracing.SampleRatio = 2 }},
		{"无法解析的时长", func(c *Config) { c.Parser.Timeout = "soon" }},
		{"未知解析器", func(c *Config) { c.Parser.Type = "ocr" }},
		{"tika缺少地址", func(c *Config) { c.Parser.Type = ParserTypeTika; c.Parser.TikaURL = "" }},
		{"限流为负数", func(c *Config) { c.Server.UploadRateLimitQPM = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := DefaultConfig()
			tc.mutate(c)
			assert.Error(t, c.Validate())
		})
	}

	assert.NoError(t, DefaultConfig().Validate(), "默认配置应通过校验")
}

func TestWriteSampleConfigRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSampleConfig(&buf))

	var decoded Config
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, DefaultConfig(), &decoded)
}

func TestCreateSampleConfigDoesNotOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, CreateSampleConfig(path))
	require.Error(t, CreateSampleConfig(path), "文件已存在时不应覆盖")
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 5*time.Second, GetDuration("", 5*time.Second))
	assert.Equal(t, 5*time.Second, GetDuration("bogus", 5*time.Second))
	assert.Equal(t, 2*time.Minute, GetDuration("2m", 5*time.Second))
}
