// Package prompt 提供各操作的提示词构建，纯函数、无 I/O
package prompt

import (
	"fmt"
	"strings"

	"contentforge-ai-api/internal/application/generation/contextrepo"
)

// Kind 操作类型，闭集
type Kind string

const (
	KindDraft           Kind = "draft"
	KindRefine          Kind = "refine"
	KindRefineSelection Kind = "refine_selection"
	KindChat            Kind = "chat"
	KindRepurpose       Kind = "repurpose"
	KindImagePrompt     Kind = "image_prompt"
)

// PromptPair 一次调用的系统提示词与用户提示词，构建后不再修改
type PromptPair struct {
	System string
	User   string
}

// Input 提示词构建输入，按操作类型取用相应字段
type Input struct {
	Kind Kind

	// draft
	Title        string
	Topic        string
	DraftContent string

	// refine / repurpose / image-prompt 的源内容
	Content string

	// refine / refine-selection 的修改指令
	Instruction string

	// refine-selection
	Selection   string
	FullContent string

	// repurpose
	SourceCategory string
	TargetCategory string
}

// Build 按操作类型分派到对应构建函数
func Build(in *Input, gc *contextrepo.GenerationContext) (*PromptPair, error) {
	if gc == nil {
		gc = &contextrepo.GenerationContext{}
	}

	switch in.Kind {
	case KindDraft:
		return buildDraft(in, gc), nil
	case KindRefine:
		return buildRefine(in, gc), nil
	case KindRefineSelection:
		return buildRefineSelection(in, gc), nil
	case KindChat:
		return buildChat(in, gc), nil
	case KindRepurpose:
		return buildRepurpose(in, gc), nil
	case KindImagePrompt:
		return buildImagePrompt(in, gc), nil
	default:
		return nil, fmt.Errorf("unknown prompt kind: %s", in.Kind)
	}
}

func buildDraft(in *Input, gc *contextrepo.GenerationContext) *PromptPair {
	var sys strings.Builder
	sys.WriteString("You are an expert content writer. Write high-quality content that follows the provided guidelines and grounding material.")
	writeContextSections(&sys, gc)
	sys.WriteString("\nReturn only the content itself, with no conversational wrapper or explanation.")

	var usr strings.Builder
	usr.WriteString("Create complete content for the following piece.\n")
	usr.WriteString("Title: " + in.Title + "\n")
	if in.Topic != "" {
		usr.WriteString("Topic: " + in.Topic + "\n")
	}
	if strings.TrimSpace(in.DraftContent) != "" {
		usr.WriteString("\nAn initial draft exists. Expand and complete it:\n")
		usr.WriteString(in.DraftContent)
	}

	return &PromptPair{System: sys.String(), User: strings.TrimRight(usr.String(), "\n")}
}

func buildRefine(in *Input, gc *contextrepo.GenerationContext) *PromptPair {
	var sys strings.Builder
	sys.WriteString("You are an expert content editor. Refine the given content according to the instruction while preserving its intent.")
	writeContextSections(&sys, gc)
	sys.WriteString("\nReturn only the refined content, with no conversational wrapper or explanation.")

	var usr strings.Builder
	usr.WriteString("Instruction: " + in.Instruction + "\n\n")
	usr.WriteString("Content to refine:\n")
	usr.WriteString(in.Content)

	return &PromptPair{System: sys.String(), User: usr.String()}
}

func buildRefineSelection(in *Input, gc *contextrepo.GenerationContext) *PromptPair {
	var sys strings.Builder
	sys.WriteString("You are an expert content editor. Rewrite only the selected passage according to the instruction.\n")
	sys.WriteString("Hard constraint: the output must preserve the exact structural markers of the selection — ")
	sys.WriteString("same heading level, same list or bullet marker, same inline emphasis markers. ")
	sys.WriteString("If the selection is a plain paragraph, return a plain paragraph.")
	writeContextSections(&sys, gc)
	sys.WriteString("\nReturn only the rewritten selection, with no conversational wrapper or explanation.")

	var usr strings.Builder
	usr.WriteString("Instruction: " + in.Instruction + "\n\n")
	usr.WriteString("Selected passage:\n")
	usr.WriteString(in.Selection)
	if strings.TrimSpace(in.FullContent) != "" {
		usr.WriteString("\n\nSurrounding document (for context only, do not rewrite it):\n")
		usr.WriteString(in.FullContent)
	}

	return &PromptPair{System: sys.String(), User: usr.String()}
}

func buildChat(in *Input, gc *contextrepo.GenerationContext) *PromptPair {
	var sys strings.Builder
	sys.WriteString("You are a helpful writing assistant discussing a content piece with its author. Give concrete, actionable answers grounded in the piece and the provided material.")
	writeContextSections(&sys, gc)
	if strings.TrimSpace(in.Content) != "" {
		writeSection(&sys, "current_content", in.Content)
	}

	return &PromptPair{System: sys.String(), User: in.Instruction}
}

func buildRepurpose(in *Input, gc *contextrepo.GenerationContext) *PromptPair {
	var sys strings.Builder
	sys.WriteString("You are an expert content strategist. Transform content from one format to another while preserving its core message.")
	writeContextSections(&sys, gc)
	sys.WriteString("\nReturn only the repurposed content, with no conversational wrapper or explanation.")

	var usr strings.Builder
	usr.WriteString(fmt.Sprintf("Repurpose the following %s content into %s format.\n", in.SourceCategory, in.TargetCategory))
	usr.WriteString("Follow the format guidelines of the target content type.\n\n")
	usr.WriteString("Source content:\n")
	usr.WriteString(in.Content)

	return &PromptPair{System: sys.String(), User: usr.String()}
}

func buildImagePrompt(in *Input, gc *contextrepo.GenerationContext) *PromptPair {
	var sys strings.Builder
	sys.WriteString("You are an expert at writing prompts for AI image generation. Produce a single vivid, concrete prompt describing one image.")
	writeContextSections(&sys, gc)
	sys.WriteString("\nReturn only the image prompt text, with no conversational wrapper, no quotes, no explanation.")

	var usr strings.Builder
	usr.WriteString("Write an image-generation prompt for a visual that accompanies the following content:\n\n")
	usr.WriteString(in.Content)

	return &PromptPair{System: sys.String(), User: usr.String()}
}
