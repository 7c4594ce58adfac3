package tracing

import (
	"context"
	"errors"
	"strings"
	"testing"

	"skillmatch-go/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecorder() (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	sr := tracetest.NewSpanRecorder()
	return sr, sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
}

func attrValue(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestRecordError(t *testing.T) {
	sr, tp := newRecorder()
	_, span := tp.Tracer("test").Start(context.Background(), "op")
	RecordError(span, errors.New("boom"), ErrorTypeExtraction, attribute.String("file.md5", "abc"))
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	v, ok := attrValue(spans[0].Attributes(), "error.type")
	require.True(t, ok)
	assert.Equal(t, "extraction", v.AsString())
	_, ok = attrValue(spans[0].Attributes(), "file.md5")
	assert.True(t, ok)

	// nil 参数不应 panic
	RecordError(nil, errors.New("x"), ErrorTypeInternal)
	RecordError(span, nil, ErrorTypeInternal)
}

func TestRecordHTTPErrorClientErrorKeepsStatus(t *testing.T) {
	sr, tp := newRecorder()
	_, span := tp.Tracer("test").Start(context.Background(), "op")
	RecordHTTPError(span, errors.New("bad input"), 400)
	span.End()

	s := sr.Ended()[0]
	assert.NotEqual(t, codes.Error, s.Status().Code, "4xx不应标记为错误状态")
	v, ok := attrValue(s.Attributes(), "error.category")
	require.True(t, ok)
	assert.Equal(t, "client_error", v.AsString())
}

func TestRecordHTTPErrorServerError(t *testing.T) {
	sr, tp := newRecorder()
	_, span := tp.Tracer("test").Start(context.Background(), "op")
	RecordHTTPError(span, errors.New("broken"), 500)
	span.End()

	s := sr.Ended()[0]
	assert.Equal(t, codes.Error, s.Status().Code)
	v, _ := attrValue(s.Attributes(), "error.category")
	assert.Equal(t, "server_error", v.AsString())
}

func TestInitProviderDisabled(t *testing.T) {
	shutdown, err := InitProvider(context.Background(), config.TracingConfig{Enabled: false})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "abc", TruncateString("abcdef", 3))

	long := strings.Repeat("a", 50) + strings.Repeat("b", 50)
	got := TruncateString(long, 21)
	assert.Equal(t, strings.Repeat("a", 9)+"..."+strings.Repeat("b", 9), got)

	// 按 rune 截断，不破坏多字节字符
	assert.Equal(t, "简...历", TruncateString("简历文本内容很长的简历", 5))
}

func TestMaskPII(t *testing.T) {
	assert.Equal(t, "", MaskPII(""))
	assert.Equal(t, "*", MaskPII("a"))
	assert.Equal(t, "张*", MaskPII("张三"))
	assert.Equal(t, "王*明", MaskPII("王小明"))
	assert.Equal(t, "re******df", MaskPII("resume.pdf"))
}

func TestSafeAttributeValue(t *testing.T) {
	assert.Equal(t, "jo****df", SafeAttributeValue("upload.filename", "john.pdf", DefaultMaxLength))
	assert.Equal(t, "plain", SafeAttributeValue("job.title", "plain", DefaultMaxLength))
}
