package config

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 应用程序配置
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logger  LoggerConfig  `yaml:"logger"`
	Redis   RedisConfig   `yaml:"redis"`
	Tracing TracingConfig `yaml:"tracing"`
	Parser  ParserConfig  `yaml:"parser"`
	Scorer  ScorerConfig  `yaml:"scorer"`
	Catalog CatalogConfig `yaml:"catalog"`
}

// ServerConfig 定义服务器配置
type ServerConfig struct {
	Address            string   `yaml:"address"`               // 例如 ":8080" or "0.0.0.0:8080"
	MaxRequestBodySize int      `yaml:"max_request_body_size"` // 请求体上限(字节)
	ReadTimeout        string   `yaml:"read_timeout"`          // 例如 "30s"
	WriteTimeout       string   `yaml:"write_timeout"`
	AllowOrigins       []string `yaml:"allow_origins"` // CORS允许的来源，空或包含"*"表示全部
	// 简历上传接口每分钟允许的请求数，0 表示不限流
	UploadRateLimitQPM int `yaml:"upload_rate_limit_qpm"`
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level        string `yaml:"level"`         // debug, info, warn, error
	Format       string `yaml:"format"`        // json, pretty
	TimeFormat   string `yaml:"time_format"`   // 时间格式
	ReportCaller bool   `yaml:"report_caller"` // 是否报告调用位置
}

// RedisConfig holds configuration for Redis
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"` // 是否启用提取文本缓存
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	// 连接池设置
	PoolSize     int `yaml:"pool_size"`      // 连接池大小
	MinIdleConns int `yaml:"min_idle_conns"` // 最小空闲连接数
	// 超时设置
	DialTimeoutSeconds  int `yaml:"dial_timeout_seconds"`  // 连接超时(秒)
	ReadTimeoutSeconds  int `yaml:"read_timeout_seconds"`  // 读取超时(秒)
	WriteTimeoutSeconds int `yaml:"write_timeout_seconds"` // 写入超时(秒)
	MaxRetries          int `yaml:"max_retries"`           // 最大重试次数
	// 提取文本缓存过期时间，例如 "24h"
	TextCacheTTL string `yaml:"text_cache_ttl"`
}

// TracingConfig OpenTelemetry 配置
type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint"` // OTLP gRPC 地址，例如 "localhost:4317"
	Insecure    bool    `yaml:"insecure"`
	ServiceName string  `yaml:"service_name"`
	SampleRatio float64 `yaml:"sample_ratio"` // 0~1
}

// ParserConfig 文档解析配置
type ParserConfig struct {
	Type    string `yaml:"type"`     // eino（内置）或 tika（外部服务）
	Timeout string `yaml:"timeout"`  // 单个PDF解析超时，例如 "30s"
	TikaURL string `yaml:"tika_url"` // Tika服务地址，例如 "http://localhost:9998"
}

// ScorerConfig 置信度打分配置
type ScorerConfig struct {
	MinConfidence float64 `yaml:"min_confidence"`
	MaxConfidence float64 `yaml:"max_confidence"`
}

// CatalogConfig 技能/岗位目录配置
type CatalogConfig struct {
	Path string `yaml:"path"` // 为空时使用内置目录
}

// 支持的PDF解析器类型
const (
	ParserTypeEino = "eino"
	ParserTypeTika = "tika"
)

// DefaultConfigPaths 未指定配置文件时依次查找的位置
var DefaultConfigPaths = []string{
	"config.yaml",
	"config/config.yaml",
	"internal/config/config.yaml",
}

// LoadConfig 从文件加载配置
// configPath 为空时在默认位置查找，找不到则使用默认配置；显式指定的文件不存在时返回错误
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if configPath == "" {
		for _, path := range DefaultConfigPaths {
			if _, err := os.Stat(path); err == nil {
				configPath = path
				break
			}
		}
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("配置文件不存在: %s", configPath)
		}

		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}

		// 在默认配置之上解析，文件中未出现的字段保留默认值
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("解析配置文件失败: %w", err)
		}
	}

	applyEnvOverrides(config)
	applyDefaults(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// applyEnvOverrides 从环境变量覆盖配置（如果存在）
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("SKILLMATCH_ADDRESS"); v != "" {
		config.Server.Address = v
	}
	if v := os.Getenv("SKILLMATCH_LOG_LEVEL"); v != "" {
		config.Logger.Level = v
	}
	if v := os.Getenv("SKILLMATCH_REDIS_ADDRESS"); v != "" {
		config.Redis.Address = v
		config.Redis.Enabled = true
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		config.Tracing.Endpoint = v
		config.Tracing.Enabled = true
	}
}

// applyDefaults 对显式置空的字段补默认值
func applyDefaults(config *Config) {
	if config.Server.Address == "" {
		config.Server.Address = ":8080"
	}
	if config.Server.MaxRequestBodySize <= 0 {
		config.Server.MaxRequestBodySize = 10 * 1024 * 1024
	}
	if config.Logger.Level == "" {
		config.Logger.Level = "info"
	}
	if config.Tracing.ServiceName == "" {
		config.Tracing.ServiceName = "skillmatch-go"
	}
	if config.Parser.Type == "" {
		config.Parser.Type = ParserTypeEino
	}
}

// Validate 校验配置
func (c *Config) Validate() error {
	var problems []string

	if c.Scorer.MinConfidence < 0 || c.Scorer.MaxConfidence > 1 || c.Scorer.MinConfidence > c.Scorer.MaxConfidence {
		problems = append(problems, fmt.Sprintf("scorer: 置信度区间非法 [%v, %v]", c.Scorer.MinConfidence, c.Scorer.MaxConfidence))
	}
	if c.Redis.Enabled && c.Redis.Address == "" {
		problems = append(problems, "redis: 启用缓存时必须配置 address")
	}
	if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		problems = append(problems, "tracing: 启用追踪时必须配置 endpoint")
	}
	switch c.Parser.Type {
	case ParserTypeEino:
	case ParserTypeTika:
		if c.Parser.TikaURL == "" {
			problems = append(problems, "parser: 使用tika时必须配置 tika_url")
		}
	default:
		problems = append(problems, fmt.Sprintf("parser: 不支持的解析器类型 %q", c.Parser.Type))
	}
	if c.Server.UploadRateLimitQPM < 0 {
		problems = append(problems, "server: upload_rate_limit_qpm 不能为负数")
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		problems = append(problems, fmt.Sprintf("tracing: sample_ratio 必须在 [0,1] 内, 当前 %v", c.Tracing.SampleRatio))
	}
	for name, d := range map[string]string{
		"server.read_timeout":  c.Server.ReadTimeout,
		"server.write_timeout": c.Server.WriteTimeout,
		"parser.timeout":       c.Parser.Timeout,
		"redis.text_cache_ttl": c.Redis.TextCacheTTL,
	} {
		if d == "" {
			continue
		}
		if _, err := time.ParseDuration(d); err != nil {
			problems = append(problems, fmt.Sprintf("%s: 无法解析时长 %q", name, d))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("配置校验失败: %s", strings.Join(problems, "; "))
	}
	return nil
}

// DefaultConfig 创建默认配置
func DefaultConfig() *Config {
	config := &Config{}

	config.Server.Address = ":8080"
	config.Server.MaxRequestBodySize = 10 * 1024 * 1024 // 10MB
	config.Server.ReadTimeout = "30s"
	config.Server.WriteTimeout = "30s"
	config.Server.AllowOrigins = []string{"*"}

	// 日志默认配置
	config.Logger.Level = "info"
	config.Logger.Format = "pretty"
	config.Logger.TimeFormat = "2006-01-02 15:04:05"
	config.Logger.ReportCaller = false

	// Redis默认配置（默认不启用）
	config.Redis.Enabled = false
	config.Redis.Address = "localhost:6379"
	config.Redis.PoolSize = 10
	config.Redis.MinIdleConns = 2
	config.Redis.DialTimeoutSeconds = 5
	config.Redis.ReadTimeoutSeconds = 3
	config.Redis.WriteTimeoutSeconds = 3
	config.Redis.MaxRetries = 3
	config.Redis.TextCacheTTL = "24h"

	// 追踪默认配置（默认不启用）
	config.Tracing.Enabled = false
	config.Tracing.Endpoint = "localhost:4317"
	config.Tracing.Insecure = true
	config.Tracing.ServiceName = "skillmatch-go"
	config.Tracing.SampleRatio = 1.0

	config.Parser.Type = ParserTypeEino
	config.Parser.Timeout = "30s"
	config.Parser.TikaURL = "http://localhost:9998"

	config.Scorer.MinConfidence = 0.7
	config.Scorer.MaxConfidence = 1.0

	return config
}

// WriteSampleConfig 将默认配置以YAML格式写出
func WriteSampleConfig(w io.Writer) error {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("写出示例配置失败: %w", err)
	}
	return nil
}

// CreateSampleConfig 创建一个示例配置文件，文件已存在时不会覆盖
func CreateSampleConfig(filePath string) error {
	if _, err := os.Stat(filePath); err == nil {
		return fmt.Errorf("文件 '%s' 已存在，不会覆盖", filePath)
	}

	f, err := os.OpenFile(filePath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("创建示例配置文件 '%s' 失败: %w", filePath, err)
	}
	defer f.Close()

	return WriteSampleConfig(f)
}

// GetDuration utility to parse duration strings from config
func GetDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	if durationStr == "" {
		return defaultDuration
	}
	d, err := time.ParseDuration(durationStr)
	if err != nil {
		return defaultDuration
	}
	return d
}
