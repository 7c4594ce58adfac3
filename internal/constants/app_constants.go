package constants

import "time"

const (
	// Application-level constants
	ServiceName    = "skillmatch-go"
	ServiceVersion = "1.0.0"

	// CustomJobTitle 没有任何目录岗位命中时，合成岗位使用的固定标题
	CustomJobTitle = "Custom Job Position"

	// 上传表单字段名
	ResumeFormField = "resume"
	PDFExtension    = ".pdf"

	// Storage-related constants
	ExtractedTextCachePrefix   = "skillmatch:text:" // + 文件MD5
	ExtractedTextCacheDuration = 24 * time.Hour

	// RequestIDHeader 请求ID头
	RequestIDHeader = "X-Request-ID"
)

// 客户端错误消息，对外接口契约的一部分，不要修改文案
const (
	MsgNoFilePart        = "No file part"
	MsgNoSelectedFile    = "No selected file"
	MsgFileMustBePDF     = "File must be a PDF"
	MsgMissingMatchInput = "Missing skills or job description"
	MsgTooManyRequests   = "Too many requests"
)
