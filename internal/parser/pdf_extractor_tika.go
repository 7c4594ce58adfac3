package parser

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// TikaPDFExtractor 是基于Apache Tika服务的PDF解析器
type TikaPDFExtractor struct {
	// Tika服务器地址，例如 http://localhost:9998
	serverURL string
	client    *client.Client
	timeout   time.Duration
	// 是否提取链接注释文本
	extractAnnotations bool
	logger             *log.Logger
}

// TikaOption 定义配置选项函数
type TikaOption func(*TikaPDFExtractor)

// WithAnnotations 配置是否提取PDF链接注释文本
func WithAnnotations(extract bool) TikaOption {
	return func(e *TikaPDFExtractor) {
		e.extractAnnotations = extract
	}
}

// WithTikaLogger 配置自定义日志记录器
func WithTikaLogger(logger *log.Logger) TikaOption {
	return func(e *TikaPDFExtractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithTimeout 配置单次请求超时时间
func WithTimeout(timeout time.Duration) TikaOption {
	return func(e *TikaPDFExtractor) {
		if timeout > 0 {
			e.timeout = timeout
		}
	}
}

// NewTikaPDFExtractor 创建一个新的Tika PDF解析器
func NewTikaPDFExtractor(serverURL string, options ...TikaOption) (*TikaPDFExtractor, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("tika server url is required")
	}

	c, err := client.NewClient(client.WithDialTimeout(5 * time.Second))
	if err != nil {
		return nil, fmt.Errorf("创建Tika HTTP客户端失败: %w", err)
	}

	extractor := &TikaPDFExtractor{
		serverURL:          strings.TrimRight(serverURL, "/"),
		client:             c,
		timeout:            DefaultParseTimeout,
		extractAnnotations: true, // 默认提取注释文本
		logger:             log.New(os.Stderr, "[TikaPDF] ", log.LstdFlags),
	}

	for _, option := range options {
		option(extractor)
	}

	return extractor, nil
}

// ExtractText 实现 processor.TextExtractor 接口
func (e *TikaPDFExtractor) ExtractText(ctx context.Context, reader io.Reader, uri string) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("读取PDF内容失败: %w", err)
	}
	text, _, err := e.ExtractTextFromBytes(ctx, data, uri)
	return text, err
}

// ExtractTextFromBytes 从字节数组提取文本内容
func (e *TikaPDFExtractor) ExtractTextFromBytes(ctx context.Context, data []byte, uri string) (string, map[string]any, error) {
	startTime := time.Now()
	e.logger.Printf("开始提取PDF文本 (URI: %s)", uri)

	// 基本元数据，无论如何都会包含
	metadata := map[string]any{
		"extraction_time":  startTime.Format(time.RFC3339),
		"source_file_path": uri,
	}

	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer protocol.ReleaseRequest(req)
	defer protocol.ReleaseResponse(resp)

	// 纯文本模式
	req.SetMethod(consts.MethodPut)
	req.SetRequestURI(e.serverURL + "/tika")
	req.Header.SetContentTypeBytes([]byte("application/pdf"))
	req.Header.Set("Accept", "text/plain")
	if uri != "" {
		req.Header.Set("X-Tika-Resource-Name", uri)
	}
	if !e.extractAnnotations {
		req.Header.Set("X-Tika-PDFExtractAnnotationText", "false")
	}
	req.SetBody(data)

	if err := e.client.DoTimeout(ctx, req, resp, e.timeout); err != nil {
		e.logger.Printf("请求Tika失败: %s (用时 %.2f秒)", err, time.Since(startTime).Seconds())
		return "", metadata, fmt.Errorf("发送请求到Tika服务器失败: %w", err)
	}

	if resp.StatusCode() != consts.StatusOK {
		return "", metadata, fmt.Errorf("tika服务器返回错误状态码: %d", resp.StatusCode())
	}

	text := string(resp.Body())

	duration := time.Since(startTime)
	metadata["text_length"] = len(text)
	metadata["processing_duration_ms"] = duration.Milliseconds()

	e.logger.Printf("PDF文本提取完成: 提取了 %d 个字符 (用时 %.2f秒)", len(text), duration.Seconds())
	return text, metadata, nil
}
