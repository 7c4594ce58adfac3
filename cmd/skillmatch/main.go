package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skillmatch-go/internal/api/handler"
	"skillmatch-go/internal/api/router"
	"skillmatch-go/internal/catalog"
	"skillmatch-go/internal/config"
	appCoreLogger "skillmatch-go/internal/logger" // aliased to avoid conflict with std log and hertz log
	"skillmatch-go/internal/matcher"
	"skillmatch-go/internal/parser"
	"skillmatch-go/internal/processor"
	"skillmatch-go/internal/storage"
	"skillmatch-go/internal/tracing"

	"github.com/cloudwego/hertz/pkg/app/server"
	hconfig "github.com/cloudwego/hertz/pkg/common/config"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"
	"github.com/spf13/pflag"
)

func main() {
	var (
		configPath         string
		printDefaultConfig bool
	)
	pflag.StringVarP(&configPath, "config", "c", "", "Path to config file")
	pflag.BoolVar(&printDefaultConfig, "print-default-config", false, "Print the default configuration and exit")
	pflag.Parse()

	if printDefaultConfig {
		if err := config.WriteSampleConfig(os.Stdout); err != nil {
			log.Fatalf("输出默认配置失败: %v", err)
		}
		return
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	initLogger(cfg)
	glog.Info("配置加载成功")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracer, err := tracing.InitProvider(ctx, cfg.Tracing)
	if err != nil {
		glog.Fatalf("初始化链路追踪失败: %v", err)
	}

	skillService, closeCache, err := initializeService(ctx, cfg)
	if err != nil {
		glog.Fatalf("初始化技能服务失败: %v", err)
	}
	defer closeCache()
	glog.Info("SkillService初始化成功")

	serverOpts := []hconfig.Option{
		server.WithHostPorts(cfg.Server.Address),
		server.WithMaxRequestBodySize(cfg.Server.MaxRequestBodySize),
		server.WithReadTimeout(config.GetDuration(cfg.Server.ReadTimeout, 30*time.Second)),
		server.WithWriteTimeout(config.GetDuration(cfg.Server.WriteTimeout, 30*time.Second)),
		server.WithHandleMethodNotAllowed(true),
	}
	var serverTracerCfg *hertztracing.Config
	if cfg.Tracing.Enabled {
		tracerOpt, tracerCfg := hertztracing.NewServerTracer()
		serverOpts = append(serverOpts, tracerOpt)
		serverTracerCfg = tracerCfg
	}

	h := server.New(serverOpts...)
	if serverTracerCfg != nil {
		h.Use(hertztracing.ServerMiddleware(serverTracerCfg))
	}

	router.RegisterRoutes(h, handler.NewSkillHandler(skillService), cfg.Server)
	glog.Info("HTTP路由注册成功")

	glog.Infof("HTTP 服务器启动中，监听地址: %s", cfg.Server.Address)

	go func() {
		if err := h.Run(); err != nil {
			glog.Fatalf("启动HTTP服务器失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	glog.Info("接收到终止信号，正在优雅退出...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		glog.Errorf("服务器关闭失败: %v", err)
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		glog.Errorf("关闭链路追踪失败: %v", err)
	}
	glog.Info("优雅退出完成")
}

// initLogger 按配置初始化 zerolog，并附加服务级字段
func initLogger(cfg *config.Config) {
	appCoreLogger.Init(appCoreLogger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	})

	// 设置一些全局的字段
	appCoreLogger.Logger = appCoreLogger.Logger.With().
		Str("app", cfg.Tracing.ServiceName).
		Logger()
}

// initializeService 组装目录、匹配器、PDF解析器和可选的Redis缓存
// 返回的 cleanup 用于释放Redis连接
func initializeService(ctx context.Context, cfg *config.Config) (*processor.SkillService, func(), error) {
	cleanup := func() {}

	cat := catalog.Default()
	if cfg.Catalog.Path != "" {
		loaded, err := catalog.LoadFromFile(cfg.Catalog.Path)
		if err != nil {
			return nil, cleanup, fmt.Errorf("加载技能目录失败: %w", err)
		}
		cat = loaded
	}
	glog.Infof("技能目录加载完成: %d 项技能, %d 个岗位", cat.SkillCount(), cat.JobCount())

	scorer := matcher.NewRandomScorer(cfg.Scorer.MinConfidence, cfg.Scorer.MaxConfidence, nil)
	skillMatcher := matcher.NewSkillMatcher(cat.Skills(), matcher.WithScorer(scorer))
	jobMatcher := matcher.NewJobMatcher(cat.Skills(), cat.Jobs())

	pdfExtractor, err := newTextExtractor(ctx, cfg.Parser)
	if err != nil {
		return nil, cleanup, err
	}

	var opts []processor.ServiceOption
	if cfg.Redis.Enabled {
		redisCache, err := storage.NewRedisAdapter(ctx, &cfg.Redis)
		if err != nil {
			// 缓存不是必需的，连接失败时继续运行
			glog.Warnf("Redis不可用，禁用提取文本缓存: %v", err)
		} else {
			opts = append(opts, processor.WithTextCache(redisCache))
			cleanup = func() { _ = redisCache.Close() }
			glog.Infof("Redis文本缓存已启用: %s", cfg.Redis.Address)
		}
	}

	svc, err := processor.NewSkillService(pdfExtractor, skillMatcher, jobMatcher, opts...)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	return svc, cleanup, nil
}

// newTextExtractor 按配置选择PDF解析器
func newTextExtractor(ctx context.Context, cfg config.ParserConfig) (processor.TextExtractor, error) {
	timeout := config.GetDuration(cfg.Timeout, parser.DefaultParseTimeout)

	if cfg.Type == config.ParserTypeTika {
		// Use appCoreLogger.Logger which is zerolog.Logger and implements io.Writer
		tikaLogger := log.New(appCoreLogger.Logger, "[TikaPDF] ", 0)
		extractor, err := parser.NewTikaPDFExtractor(cfg.TikaURL,
			parser.WithTikaLogger(tikaLogger),
			parser.WithTimeout(timeout),
		)
		if err != nil {
			return nil, fmt.Errorf("创建Tika PDF提取器失败: %w", err)
		}
		glog.Infof("使用Tika PDF解析器: %s", cfg.TikaURL)
		return extractor, nil
	}

	pdfLogger := log.New(appCoreLogger.Logger, "[EinoPDF] ", 0)
	extractor, err := parser.NewEinoPDFTextExtractor(ctx,
		parser.WithEinoLogger(pdfLogger),
		parser.WithParseTimeout(timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("创建Eino PDF提取器失败: %w", err)
	}
	glog.Info("使用Eino PDF解析器")
	return extractor, nil
}
