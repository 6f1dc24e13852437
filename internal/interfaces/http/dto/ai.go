package dto

// ContextSelectionRequest 一次生成操作引用的上下文素材
type ContextSelectionRequest struct {
	PersonaID        string   `json:"persona_id,omitempty"`
	BrandVoiceID     string   `json:"brand_voice_id,omitempty"`
	KnowledgeItemIDs []string `json:"knowledge_item_ids,omitempty"`
	ExampleIDs       []string `json:"example_ids,omitempty"`
	UploadFileIDs    []string `json:"upload_file_ids,omitempty"`
}

// DraftRequest 草稿生成请求
type DraftRequest struct {
	ContentPieceID string `json:"content_piece_id" binding:"required"`
	ContextSelectionRequest
}

// RefineRequest 全文改写请求
type RefineRequest struct {
	ContentPieceID string `json:"content_piece_id" binding:"required"`
	Instruction    string `json:"instruction" binding:"required"`
	ContextSelectionRequest
}

// RefineSelectionRequest 选区改写请求
// Instruction 与 QuickAction 至少填一个
type RefineSelectionRequest struct {
	ContentPieceID string `json:"content_piece_id" binding:"required"`
	Selection      string `json:"selection" binding:"required"`
	Instruction    string `json:"instruction,omitempty"`
	QuickAction    string `json:"quick_action,omitempty"`
	Tone           string `json:"tone,omitempty"`
	ContextSelectionRequest
}

// ChatRequest 对话请求
type ChatRequest struct {
	ContentPieceID string `json:"content_piece_id" binding:"required"`
	Message        string `json:"message" binding:"required"`
	ContextSelectionRequest
}

// RepurposeRequest 内容再利用请求
type RepurposeRequest struct {
	ContentPieceID   string `json:"content_piece_id" binding:"required"`
	TargetCategoryID string `json:"target_category_id" binding:"required"`
	Title            string `json:"title,omitempty"`
	ContextSelectionRequest
}

// ImagePromptRequest 图片提示词生成请求
type ImagePromptRequest struct {
	ContentPieceID string `json:"content_piece_id" binding:"required"`
	ContextSelectionRequest
}

// GenerationResponse 非流式生成结果
type GenerationResponse struct {
	Text         string `json:"text"`
	Provider     string `json:"provider,omitempty"`
	Model        string `json:"model,omitempty"`
	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
}

// AssembleContextRequest 上下文组装请求
type AssembleContextRequest struct {
	ProjectID  string `json:"project_id,omitempty"`
	CategoryID string `json:"category_id" binding:"required"`
	Query      string `json:"query,omitempty"`
	ContextSelectionRequest
}
