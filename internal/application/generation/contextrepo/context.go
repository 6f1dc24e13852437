// Package contextrepo 负责组装一次生成调用所需的上下文
package contextrepo

// 上限约束：超出部分静默丢弃，不报错
const (
	MaxKnowledgeItems = 10
	MaxExamples       = 5
)

// ContextItem 注入提示词的单个素材条目
type ContextItem struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// GenerationContext 一次生成调用的完整上下文
// 每次调用即时组装，构建后只读，从不持久化
type GenerationContext struct {
	FormatGuidelines string        `json:"format_guidelines,omitempty"`
	Persona          string        `json:"persona,omitempty"`
	BrandVoice       string        `json:"brand_voice,omitempty"`
	KnowledgeItems   []ContextItem `json:"knowledge_items,omitempty"`
	Examples         []ContextItem `json:"examples,omitempty"`
	AttachedFiles    string        `json:"attached_files,omitempty"`
}

// AssembleInput 上下文组装输入
type AssembleInput struct {
	WorkspaceID      string
	ProjectID        string
	CategoryID       string
	PersonaID        string
	BrandVoiceID     string
	KnowledgeItemIDs []string
	ExampleIDs       []string
	UploadFileIDs    []string
	// Query 非空且配置了向量检索时，知识条目按相似度重排后再截断
	Query string
}
