package handler

import (
	"bytes"
	"context"
	"io"
	"mime"
	"mime/multipart"

	"skillmatch-go/internal/constants"
	"skillmatch-go/internal/logger"
	"skillmatch-go/internal/processor"
	"skillmatch-go/internal/tracing"
	"skillmatch-go/internal/types"
	"skillmatch-go/pkg/utils"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/json"
	hutils "github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"go.opentelemetry.io/otel/trace"
)

// SkillProcessor 处理器需要提供的能力
type SkillProcessor interface {
	ExtractSkills(ctx context.Context, reader io.Reader, filename string) ([]types.Skill, error)
	MatchJob(ctx context.Context, skills []string, jobDescription string) ([]types.JobMatch, error)
}

// SkillHandler 技能提取与岗位匹配的HTTP处理器
type SkillHandler struct {
	processor SkillProcessor
}

// NewSkillHandler 创建一个新的技能处理器
func NewSkillHandler(processor SkillProcessor) *SkillHandler {
	return &SkillHandler{processor: processor}
}

// HandleExtractSkills 处理 POST /extract-skills
// 表单字段 resume 必须是 .pdf 文件
func (h *SkillHandler) HandleExtractSkills(c context.Context, ctx *app.RequestContext) {
	form, err := ctx.MultipartForm()
	if err != nil {
		h.clientError(c, ctx, constants.MsgNoFilePart)
		return
	}

	files := form.File[constants.ResumeFormField]
	if len(files) == 0 {
		// 文件名为空的文件字段会被解析为普通表单值，需要看原始头才能和文本字段区分
		if _, ok := form.Value[constants.ResumeFormField]; ok && partHasFilename(ctx, constants.ResumeFormField) {
			h.clientError(c, ctx, constants.MsgNoSelectedFile)
			return
		}
		h.clientError(c, ctx, constants.MsgNoFilePart)
		return
	}

	fileHeader := files[0]
	if fileHeader.Filename == "" {
		h.clientError(c, ctx, constants.MsgNoSelectedFile)
		return
	}
	if !utils.HasExtension(fileHeader.Filename, constants.PDFExtension) {
		h.clientError(c, ctx, constants.MsgFileMustBePDF)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.serverError(c, ctx, err)
		return
	}
	defer file.Close()

	skills, err := h.processor.ExtractSkills(c, file, fileHeader.Filename)
	if err != nil {
		h.writeError(c, ctx, err)
		return
	}

	logger.Ctx(c).Info().
		Str("filename", tracing.MaskPII(fileHeader.Filename)).
		Int64("size", fileHeader.Size).
		Int("skills", len(skills)).
		Msg("简历技能提取成功")
	ctx.JSON(consts.StatusOK, types.ExtractSkillsResponse{Skills: skills})
}

// partHasFilename 判断 multipart 中名为 field 的部分是否带有 filename 参数
func partHasFilename(ctx *app.RequestContext, field string) bool {
	boundary := ctx.Request.MultipartFormBoundary()
	if boundary == "" {
		return false
	}

	mr := multipart.NewReader(bytes.NewReader(ctx.Request.Body()), boundary)
	for {
		part, err := mr.NextPart()
		if err != nil {
			return false
		}
		_, params, err := mime.ParseMediaType(part.Header.Get("Content-Disposition"))
		_ = part.Close()
		if err != nil || params["name"] != field {
			continue
		}
		if _, ok := params["filename"]; ok {
			return true
		}
	}
}

// HandleMatchJob 处理 POST /match-job
// skills 和 jobDescription 缺失或为 null 时返回 400
func (h *SkillHandler) HandleMatchJob(c context.Context, ctx *app.RequestContext) {
	var req types.MatchJobRequest
	if err := json.Unmarshal(ctx.Request.Body(), &req); err != nil {
		logger.Ctx(c).Debug().Err(err).Msg("解析匹配请求失败")
		h.clientError(c, ctx, constants.MsgMissingMatchInput)
		return
	}
	if req.Skills == nil || req.JobDescription == nil {
		h.clientError(c, ctx, constants.MsgMissingMatchInput)
		return
	}

	matches, err := h.processor.MatchJob(c, *req.Skills, *req.JobDescription)
	if err != nil {
		h.writeError(c, ctx, err)
		return
	}

	logger.Ctx(c).Info().
		Int("skills", len(*req.Skills)).
		Int("matches", len(matches)).
		Msg("岗位匹配完成")
	ctx.JSON(consts.StatusOK, types.MatchJobResponse{Matches: matches})
}

// HandleHealth 健康检查
func (h *SkillHandler) HandleHealth(_ context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, hutils.H{"status": "ok"})
}

// writeError 按错误分类选择状态码
func (h *SkillHandler) writeError(c context.Context, ctx *app.RequestContext, err error) {
	if processor.IsClientError(err) {
		h.clientError(c, ctx, err.Error())
		return
	}
	h.serverError(c, ctx, err)
}

func (h *SkillHandler) clientError(c context.Context, ctx *app.RequestContext, msg string) {
	logger.Ctx(c).Debug().Str("path", string(ctx.Path())).Str("error", msg).Msg("客户端请求无效")
	ctx.JSON(consts.StatusBadRequest, types.ErrorResponse{Error: msg})
}

func (h *SkillHandler) serverError(c context.Context, ctx *app.RequestContext, err error) {
	logger.Ctx(c).Error().Err(err).Str("path", string(ctx.Path())).Msg("处理请求失败")
	tracing.RecordHTTPError(trace.SpanFromContext(c), err, consts.StatusInternalServerError)
	ctx.JSON(consts.StatusInternalServerError, types.ErrorResponse{Error: err.Error()})
}
