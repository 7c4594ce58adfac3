package processor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"skillmatch-go/internal/logger"
	"skillmatch-go/internal/tracing"
	"skillmatch-go/internal/types"
	"skillmatch-go/pkg/utils"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// 定义tracer
var tracer = otel.Tracer("skillmatch-go/processor")

// SkillService 组合文本提取、缓存和匹配器
// 构造后只读，可被多个请求并发使用
type SkillService struct {
	extractor TextExtractor
	cache     TextCache // 可选
	skills    SkillExtractor
	jobs      JobMatcher
	logger    *zerolog.Logger
}

// ServiceOption SkillService 的配置选项
type ServiceOption func(*SkillService)

// WithTextCache 启用提取文本缓存
func WithTextCache(cache TextCache) ServiceOption {
	return func(s *SkillService) {
		s.cache = cache
	}
}

// WithLogger 使用固定的日志记录器，未设置时使用请求上下文中的日志
func WithLogger(l *zerolog.Logger) ServiceOption {
	return func(s *SkillService) {
		s.logger = l
	}
}

// NewSkillService 创建技能服务
func NewSkillService(extractor TextExtractor, skills SkillExtractor, jobs JobMatcher, options ...ServiceOption) (*SkillService, error) {
	if extractor == nil {
		return nil, ErrExtractorNotInit
	}
	if skills == nil || jobs == nil {
		return nil, ErrMatcherNotInit
	}

	s := &SkillService{
		extractor: extractor,
		skills:    skills,
		jobs:      jobs,
	}
	for _, option := range options {
		option(s)
	}
	return s, nil
}

func (s *SkillService) log(ctx context.Context) *zerolog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return logger.Ctx(ctx)
}

// ExtractSkills 读取上传的PDF，提取文本并识别技能
func (s *SkillService) ExtractSkills(ctx context.Context, reader io.Reader, filename string) (skills []types.Skill, err error) {
	ctx, span := tracer.Start(ctx, "SkillService.ExtractSkills")
	defer span.End()
	defer s.recoverPanic(ctx, "extract_skills", &err)

	if reader == nil {
		err = NewClientError("read_upload", errors.New("upload is empty"))
		tracing.RecordError(span, err, tracing.ErrorTypeValidation)
		return nil, err
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		err = NewInternalError("read_upload", fmt.Errorf("failed to read upload: %w", err))
		tracing.RecordError(span, err, tracing.ErrorTypeInternal)
		return nil, err
	}

	fileMD5 := utils.CalculateMD5(data)
	span.SetAttributes(
		attribute.String("upload.filename", tracing.SafeAttributeValue("upload.filename", filename, tracing.DefaultMaxLength)),
		attribute.String("file.md5", fileMD5),
		attribute.Int("file.size", len(data)),
	)

	text, err := s.extractText(ctx, data, filename, fileMD5)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeExtraction)
		return nil, err
	}

	skills = s.skills.Extract(text)
	span.SetAttributes(
		attribute.Int("text.length", len(text)),
		attribute.Int("skills.count", len(skills)),
	)
	s.log(ctx).Debug().
		Str("file_md5", fileMD5).
		Int("text_length", len(text)).
		Int("skills", len(skills)).
		Msg("技能提取完成")
	return skills, nil
}

// extractText 先查缓存，未命中再调用提取器
// 缓存读写失败只记录日志，不影响结果
func (s *SkillService) extractText(ctx context.Context, data []byte, filename, fileMD5 string) (string, error) {
	if s.cache != nil {
		text, ok, err := s.cache.GetExtractedText(ctx, fileMD5)
		switch {
		case err != nil:
			s.log(ctx).Warn().Err(err).Str("file_md5", fileMD5).Msg("读取文本缓存失败，继续解析")
		case ok:
			s.log(ctx).Debug().Str("file_md5", fileMD5).Msg("命中文本缓存")
			return text, nil
		}
	}

	text, err := s.extractor.ExtractText(ctx, bytes.NewReader(data), filename)
	if err != nil {
		return "", NewExtractionError("extract_text", err)
	}

	if s.cache != nil {
		if err := s.cache.SetExtractedText(ctx, fileMD5, text); err != nil {
			s.log(ctx).Warn().Err(err).Str("file_md5", fileMD5).Msg("写入文本缓存失败")
		}
	}
	return text, nil
}

// MatchJob 将技能列表与岗位目录或职位描述进行匹配
func (s *SkillService) MatchJob(ctx context.Context, skills []string, jobDescription string) (matches []types.JobMatch, err error) {
	ctx, span := tracer.Start(ctx, "SkillService.MatchJob")
	defer span.End()
	defer s.recoverPanic(ctx, "match_job", &err)

	span.SetAttributes(
		attribute.Int("skills.count", len(skills)),
		attribute.String("job.description", tracing.SafeDescription(jobDescription)),
	)

	matches = s.jobs.Match(skills, jobDescription)
	span.SetAttributes(attribute.Int("matches.count", len(matches)))
	return matches, nil
}

// recoverPanic 将匹配过程中的 panic 转换为内部错误
func (s *SkillService) recoverPanic(ctx context.Context, op string, err *error) {
	if r := recover(); r != nil {
		s.log(ctx).Error().Str("op", op).Interface("panic", r).Msg("处理请求时发生panic")
		*err = NewInternalError(op, fmt.Errorf("unexpected failure: %v", r))
	}
}
