package processor

import (
	"context"
	"io"

	"skillmatch-go/internal/types"
)

//
// 文本提取相关接口
//

// TextExtractor 从上传的文档中提取纯文本
type TextExtractor interface {
	// ExtractText 读取 reader 中的文档并返回全文
	// uri 仅用于日志和元数据
	ExtractText(ctx context.Context, reader io.Reader, uri string) (string, error)
}

// TextCache 按文件MD5缓存提取结果
type TextCache interface {
	// GetExtractedText 未命中时返回 ("", false, nil)
	GetExtractedText(ctx context.Context, fileMD5 string) (string, bool, error)
	SetExtractedText(ctx context.Context, fileMD5 string, text string) error
}

//
// 匹配相关接口
//

// SkillExtractor 从文本中识别技能
type SkillExtractor interface {
	Extract(text string) []types.Skill
}

// JobMatcher 将技能列表与岗位进行匹配
type JobMatcher interface {
	Match(skills []string, jobDescription string) []types.JobMatch
}
