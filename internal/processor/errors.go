package processor

import (
	"errors"
	"fmt"
)

// 定义基础错误类型
var (
	ErrClientInput      = errors.New("客户端输入无效")
	ErrExtractionFailed = errors.New("提取简历文本失败")
	ErrInternal         = errors.New("内部处理失败")
)

// 组件未初始化
var (
	ErrExtractorNotInit = errors.New("extractor is not initialized")
	ErrMatcherNotInit   = errors.New("matcher is not initialized")
)

// SkillError 包含操作名和错误分类的自定义错误
type SkillError struct {
	Op   string
	Kind error // ErrClientInput / ErrExtractionFailed / ErrInternal
	Err  error
}

// Error 返回底层错误信息，500 响应直接透出该信息
func (e *SkillError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s (操作:%s)", e.Kind, e.Op)
}

func (e *SkillError) Unwrap() error {
	return e.Err
}

// Is 实现 errors.Is 接口，分类和底层错误都可以比较
func (e *SkillError) Is(target error) bool {
	return e.Kind == target
}

// 错误构造函数
func NewClientError(op string, err error) error {
	return &SkillError{Op: op, Kind: ErrClientInput, Err: err}
}

func NewExtractionError(op string, err error) error {
	return &SkillError{Op: op, Kind: ErrExtractionFailed, Err: err}
}

func NewInternalError(op string, err error) error {
	return &SkillError{Op: op, Kind: ErrInternal, Err: err}
}

// IsClientError 判断错误是否应映射为 400
func IsClientError(err error) bool {
	return errors.Is(err, ErrClientInput)
}
