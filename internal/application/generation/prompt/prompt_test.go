package prompt

import (
	"strings"
	"testing"

	"contentforge-ai-api/internal/application/generation/contextrepo"
)

func TestWriteSectionSkipsEmptyContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "empty", content: "", want: ""},
		{name: "whitespace only", content: "  \n\t ", want: ""},
		{name: "non-empty", content: "hello", want: "\n\n<persona>\nhello\n</persona>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b strings.Builder
			writeSection(&b, "persona", tt.content)
			if got := b.String(); got != tt.want {
				t.Errorf("writeSection() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContextSectionsOrder(t *testing.T) {
	gc := &contextrepo.GenerationContext{
		FormatGuidelines: "guidelines",
		Persona:          "persona text",
		BrandVoice:       "voice text",
		KnowledgeItems:   []contextrepo.ContextItem{{Title: "KB", Content: "kb content"}},
		Examples:         []contextrepo.ContextItem{{Content: "example content"}},
		AttachedFiles:    "[notes.txt]\nfile body",
	}

	var b strings.Builder
	writeContextSections(&b, gc)
	out := b.String()

	tags := []string{"format_guidelines", "persona", "brand_voice", "knowledge_base", "examples", "attached_files"}
	last := -1
	for _, tag := range tags {
		idx := strings.Index(out, "<"+tag+">")
		if idx < 0 {
			t.Fatalf("section %q missing from output", tag)
		}
		if idx < last {
			t.Errorf("section %q out of order", tag)
		}
		last = idx
	}
}

func TestContextSectionsEmptyContextEmitsNothing(t *testing.T) {
	var b strings.Builder
	writeContextSections(&b, &contextrepo.GenerationContext{})
	if out := b.String(); out != "" {
		t.Errorf("empty context should emit no sections, got %q", out)
	}
}

func TestBuildDraft(t *testing.T) {
	pair, err := Build(&Input{
		Kind:  KindDraft,
		Title: "Launch Post",
		Topic: "new feature",
	}, &contextrepo.GenerationContext{FormatGuidelines: "keep it short"})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if !strings.Contains(pair.System, "<format_guidelines>") {
		t.Error("system prompt missing format guidelines section")
	}
	if !strings.Contains(pair.User, "Create complete content") {
		t.Error("user prompt missing draft instruction")
	}
	if !strings.Contains(pair.User, "Title: Launch Post") {
		t.Error("user prompt missing title")
	}
	if !strings.Contains(pair.User, "Topic: new feature") {
		t.Error("user prompt missing topic")
	}
}

func TestBuildDraftWithExistingDraft(t *testing.T) {
	pair, err := Build(&Input{
		Kind:         KindDraft,
		Title:        "Launch Post",
		DraftContent: "an unfinished draft",
	}, nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !strings.Contains(pair.User, "an unfinished draft") {
		t.Error("user prompt should carry the existing draft")
	}
}

func TestBuildRefineSelectionCarriesSelectionVerbatim(t *testing.T) {
	tests := []struct {
		name      string
		selection string
	}{
		{"heading", "## Quarterly Roadmap"},
		{"paragraph", "Our launch slipped by two weeks because the beta\nuncovered a pagination bug."},
		{"list item", "- ship the onboarding email sequence"},
		{"bold span", "the **single most important** metric"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair, err := Build(&Input{
				Kind:        KindRefineSelection,
				Instruction: "make it punchier",
				Selection:   tt.selection,
				FullContent: "the whole document",
			}, nil)
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}

			if !strings.Contains(pair.User, tt.selection) {
				t.Error("selection must appear verbatim in the user prompt")
			}
			if !strings.Contains(pair.User, "the whole document") {
				t.Error("surrounding document missing from user prompt")
			}
			if !strings.Contains(pair.System, "structural markers") {
				t.Error("system prompt missing structure-preservation constraint")
			}
		})
	}
}

func TestBuildChatUsesInstructionAsUserPrompt(t *testing.T) {
	pair, err := Build(&Input{
		Kind:        KindChat,
		Instruction: "how do I end this piece?",
		Content:     "draft body",
	}, nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if pair.User != "how do I end this piece?" {
		t.Errorf("chat user prompt = %q, want the raw question", pair.User)
	}
	if !strings.Contains(pair.System, "<current_content>") {
		t.Error("system prompt missing current content section")
	}
}

func TestBuildRepurposeNamesBothCategories(t *testing.T) {
	pair, err := Build(&Input{
		Kind:           KindRepurpose,
		Content:        "source body",
		SourceCategory: "Blog Post",
		TargetCategory: "Newsletter",
	}, nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !strings.Contains(pair.User, "Blog Post") || !strings.Contains(pair.User, "Newsletter") {
		t.Error("repurpose prompt must name source and target categories")
	}
}

func TestBuildUnknownKind(t *testing.T) {
	if _, err := Build(&Input{Kind: Kind("bogus")}, nil); err == nil {
		t.Error("Build() with unknown kind should fail")
	}
}

func TestRenderItems(t *testing.T) {
	out := renderItems([]contextrepo.ContextItem{
		{Title: "First", Content: "one"},
		{Content: "two"},
	})
	if !strings.Contains(out, "## First\none") {
		t.Errorf("titled item rendered wrong: %q", out)
	}
	if !strings.HasSuffix(out, "two") {
		t.Errorf("untitled item rendered wrong: %q", out)
	}
}
