// Package handler 提供 HTTP 请求处理器
package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"contentforge-ai-api/internal/application/generation"
	"contentforge-ai-api/internal/application/generation/contextrepo"
	"contentforge-ai-api/internal/application/generation/executor"
	"contentforge-ai-api/internal/application/generation/prompt"
	"contentforge-ai-api/internal/interfaces/http/dto"
	"contentforge-ai-api/internal/interfaces/http/middleware"
)

// AIHandler AI 生成操作处理器
type AIHandler struct {
	svc *generation.Service
}

// NewAIHandler 创建 AI 处理器
func NewAIHandler(svc *generation.Service) *AIHandler {
	return &AIHandler{svc: svc}
}

// runFn 一次流式操作的执行函数
type runFn func(ctx context.Context, onChunk executor.ChunkHandler) (*generation.ExecResult, error)

// stream 执行操作并把输出翻译为 SSE 事件
// 流式开始前的失败（参数、余额、资源缺失）仍返回普通 JSON 错误
func (h *AIHandler) stream(c *gin.Context, operation string, run runFn) {
	sse := newSSEWriter(c)

	res, err := run(c.Request.Context(), sse.Chunk)
	if err != nil {
		sse.Fail(operation, err)
		return
	}

	payload := gin.H{}
	if res != nil {
		if res.Usage != nil {
			payload["input_tokens"] = res.Usage.InputTokens
			payload["output_tokens"] = res.Usage.OutputTokens
		}
		payload["provider"] = res.Provider
		payload["model"] = res.Model
	}
	sse.Done(payload)
}

// toSelection 转换上下文素材引用
func toSelection(req dto.ContextSelectionRequest) generation.ContextSelection {
	return generation.ContextSelection{
		PersonaID:        req.PersonaID,
		BrandVoiceID:     req.BrandVoiceID,
		KnowledgeItemIDs: req.KnowledgeItemIDs,
		ExampleIDs:       req.ExampleIDs,
		UploadFileIDs:    req.UploadFileIDs,
	}
}

// Draft 生成草稿
// @Summary 生成内容草稿
// @Description 基于内容单元与上下文素材流式生成完整草稿
// @Tags AI
// @Accept json
// @Produce text/event-stream
// @Param body body dto.DraftRequest true "草稿生成参数"
// @Success 200 "SSE stream"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 402 {object} dto.ErrorResponse
// @Router /api/v1/ai/draft [post]
func (h *AIHandler) Draft(c *gin.Context) {
	var req dto.DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	in := &generation.DraftInput{
		WorkspaceID:      middleware.GetWorkspaceIDFromGin(c),
		UserID:           middleware.GetUserIDFromGin(c),
		ContentPieceID:   req.ContentPieceID,
		ContextSelection: toSelection(req.ContextSelectionRequest),
	}

	h.stream(c, generation.OperationDraft, func(ctx context.Context, onChunk executor.ChunkHandler) (*generation.ExecResult, error) {
		return h.svc.GenerateDraft(ctx, in, onChunk)
	})
}

// Refine 整体润色
// @Summary 按指令润色整篇内容
// @Tags AI
// @Accept json
// @Produce text/event-stream
// @Param body body dto.RefineRequest true "润色参数"
// @Success 200 "SSE stream"
// @Router /api/v1/ai/refine [post]
func (h *AIHandler) Refine(c *gin.Context) {
	var req dto.RefineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	in := &generation.RefineInput{
		WorkspaceID:      middleware.GetWorkspaceIDFromGin(c),
		UserID:           middleware.GetUserIDFromGin(c),
		ContentPieceID:   req.ContentPieceID,
		Instruction:      req.Instruction,
		ContextSelection: toSelection(req.ContextSelectionRequest),
	}

	h.stream(c, generation.OperationRefine, func(ctx context.Context, onChunk executor.ChunkHandler) (*generation.ExecResult, error) {
		return h.svc.RefineContent(ctx, in, onChunk)
	})
}

// RefineSelection 选区润色
// @Summary 重写选中的段落
// @Description 支持自由指令或 improve/shorten/changeTone 快捷操作
// @Tags AI
// @Accept json
// @Produce text/event-stream
// @Param body body dto.RefineSelectionRequest true "选区润色参数"
// @Success 200 "SSE stream"
// @Router /api/v1/ai/refine-selection [post]
func (h *AIHandler) RefineSelection(c *gin.Context) {
	var req dto.RefineSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	in := &generation.RefineSelectionInput{
		WorkspaceID:      middleware.GetWorkspaceIDFromGin(c),
		UserID:           middleware.GetUserIDFromGin(c),
		ContentPieceID:   req.ContentPieceID,
		Selection:        req.Selection,
		Instruction:      req.Instruction,
		QuickAction:      prompt.QuickAction(req.QuickAction),
		Tone:             req.Tone,
		ContextSelection: toSelection(req.ContextSelectionRequest),
	}

	h.stream(c, generation.OperationRefineSelection, func(ctx context.Context, onChunk executor.ChunkHandler) (*generation.ExecResult, error) {
		return h.svc.RefineSelection(ctx, in, onChunk)
	})
}

// Chat 围绕内容的多轮对话
// @Summary 内容对话
// @Tags AI
// @Accept json
// @Produce text/event-stream
// @Param body body dto.ChatRequest true "对话参数"
// @Success 200 "SSE stream"
// @Router /api/v1/ai/chat [post]
func (h *AIHandler) Chat(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	in := &generation.ChatInput{
		WorkspaceID:      middleware.GetWorkspaceIDFromGin(c),
		UserID:           middleware.GetUserIDFromGin(c),
		ContentPieceID:   req.ContentPieceID,
		Message:          req.Message,
		ContextSelection: toSelection(req.ContextSelectionRequest),
	}

	h.stream(c, generation.OperationChat, func(ctx context.Context, onChunk executor.ChunkHandler) (*generation.ExecResult, error) {
		return h.svc.GenerateChatResponse(ctx, in, onChunk)
	})
}

// Repurpose 内容再利用
// @Summary 把内容转换到另一内容类型
// @Tags AI
// @Accept json
// @Produce text/event-stream
// @Param body body dto.RepurposeRequest true "再利用参数"
// @Success 200 "SSE stream"
// @Router /api/v1/ai/repurpose [post]
func (h *AIHandler) Repurpose(c *gin.Context) {
	var req dto.RepurposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	in := &generation.RepurposeInput{
		WorkspaceID:      middleware.GetWorkspaceIDFromGin(c),
		UserID:           middleware.GetUserIDFromGin(c),
		ContentPieceID:   req.ContentPieceID,
		TargetCategoryID: req.TargetCategoryID,
		Title:            req.Title,
		ContextSelection: toSelection(req.ContextSelectionRequest),
	}

	h.stream(c, generation.OperationRepurpose, func(ctx context.Context, onChunk executor.ChunkHandler) (*generation.ExecResult, error) {
		return h.svc.RepurposeContent(ctx, in, onChunk)
	})
}

// ImagePrompt 生成图片提示词，非流式
// @Summary 基于内容生成图片提示词
// @Tags AI
// @Accept json
// @Produce json
// @Param body body dto.ImagePromptRequest true "图片提示词参数"
// @Success 200 {object} dto.Response[dto.GenerationResponse]
// @Router /api/v1/ai/image-prompt [post]
func (h *AIHandler) ImagePrompt(c *gin.Context) {
	var req dto.ImagePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	in := &generation.ImagePromptInput{
		WorkspaceID:    middleware.GetWorkspaceIDFromGin(c),
		UserID:         middleware.GetUserIDFromGin(c),
		ContentPieceID: req.ContentPieceID,
	}

	res, err := h.svc.GenerateImagePrompt(c.Request.Context(), in)
	if err != nil {
		respondError(c, generation.OperationImagePrompt, err)
		return
	}

	resp := &dto.GenerationResponse{
		Text:     res.Text,
		Provider: res.Provider,
		Model:    res.Model,
	}
	if res.Usage != nil {
		resp.InputTokens = res.Usage.InputTokens
		resp.OutputTokens = res.Usage.OutputTokens
	}
	dto.Success(c, resp)
}

// AssembleContext 组装生成上下文
// @Summary 组装生成上下文
// @Description 返回按类型/人设/品牌声音/知识库/范例/附件组装的上下文
// @Tags AI
// @Accept json
// @Produce json
// @Param body body dto.AssembleContextRequest true "上下文参数"
// @Success 200 {object} dto.Response[contextrepo.GenerationContext]
// @Router /api/v1/ai/context [post]
func (h *AIHandler) AssembleContext(c *gin.Context) {
	var req dto.AssembleContextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	gc, err := h.svc.AssembleContext(c.Request.Context(), &contextrepo.AssembleInput{
		WorkspaceID:      middleware.GetWorkspaceIDFromGin(c),
		ProjectID:        req.ProjectID,
		CategoryID:       req.CategoryID,
		PersonaID:        req.PersonaID,
		BrandVoiceID:     req.BrandVoiceID,
		KnowledgeItemIDs: req.KnowledgeItemIDs,
		ExampleIDs:       req.ExampleIDs,
		UploadFileIDs:    req.UploadFileIDs,
		Query:            req.Query,
	})
	if err != nil {
		respondError(c, "assemble context", err)
		return
	}
	dto.Success(c, gc)
}
