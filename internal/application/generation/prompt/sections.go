package prompt

import (
	"strings"

	"contentforge-ai-api/internal/application/generation/contextrepo"
)

// writeSection 输出一个标签分隔的上下文段，内容为空时不输出任何标签
func writeSection(b *strings.Builder, tag, content string) {
	content = strings.TrimSpace(content)
	if content == "" {
		return
	}
	b.WriteString("\n\n<" + tag + ">\n")
	b.WriteString(content)
	b.WriteString("\n</" + tag + ">")
}

// writeContextSections 按固定顺序输出全部上下文段
func writeContextSections(b *strings.Builder, gc *contextrepo.GenerationContext) {
	writeSection(b, "format_guidelines", gc.FormatGuidelines)
	writeSection(b, "persona", gc.Persona)
	writeSection(b, "brand_voice", gc.BrandVoice)
	writeSection(b, "knowledge_base", renderItems(gc.KnowledgeItems))
	writeSection(b, "examples", renderItems(gc.Examples))
	writeSection(b, "attached_files", gc.AttachedFiles)
}

// renderItems 渲染素材条目列表，标题后跟内容
func renderItems(items []contextrepo.ContextItem) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if item.Title != "" {
			b.WriteString("## " + item.Title + "\n")
		}
		b.WriteString(item.Content)
	}
	return b.String()
}
