package contextrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"contentforge-ai-api/internal/domain/entity"
	apperrors "contentforge-ai-api/pkg/errors"
)

type fakeCategoryRepo struct {
	category *entity.Category
	err      error
}

func (f *fakeCategoryRepo) Create(ctx context.Context, c *entity.Category) error { return nil }
func (f *fakeCategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	return f.category, f.err
}
func (f *fakeCategoryRepo) Update(ctx context.Context, c *entity.Category) error { return nil }
func (f *fakeCategoryRepo) Delete(ctx context.Context, id string) error          { return nil }
func (f *fakeCategoryRepo) ListByProject(ctx context.Context, projectID string) ([]*entity.Category, error) {
	return nil, nil
}

type fakePersonaRepo struct {
	persona *entity.Persona
	err     error
}

func (f *fakePersonaRepo) Create(ctx context.Context, p *entity.Persona) error { return nil }
func (f *fakePersonaRepo) GetByID(ctx context.Context, id string) (*entity.Persona, error) {
	return f.persona, f.err
}
func (f *fakePersonaRepo) Update(ctx context.Context, p *entity.Persona) error { return nil }
func (f *fakePersonaRepo) Delete(ctx context.Context, id string) error         { return nil }
func (f *fakePersonaRepo) ListByProject(ctx context.Context, projectID string) ([]*entity.Persona, error) {
	return nil, nil
}

type fakeVoiceRepo struct {
	voice *entity.BrandVoice
}

func (f *fakeVoiceRepo) Create(ctx context.Context, v *entity.BrandVoice) error { return nil }
func (f *fakeVoiceRepo) GetByID(ctx context.Context, id string) (*entity.BrandVoice, error) {
	return f.voice, nil
}
func (f *fakeVoiceRepo) Update(ctx context.Context, v *entity.BrandVoice) error { return nil }
func (f *fakeVoiceRepo) Delete(ctx context.Context, id string) error            { return nil }
func (f *fakeVoiceRepo) ListByProject(ctx context.Context, projectID string) ([]*entity.BrandVoice, error) {
	return nil, nil
}

type fakeKnowledgeRepo struct {
	items []*entity.KnowledgeItem
}

func (f *fakeKnowledgeRepo) Create(ctx context.Context, i *entity.KnowledgeItem) error { return nil }
func (f *fakeKnowledgeRepo) GetByID(ctx context.Context, id string) (*entity.KnowledgeItem, error) {
	return nil, nil
}
func (f *fakeKnowledgeRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.KnowledgeItem, error) {
	return f.items, nil
}
func (f *fakeKnowledgeRepo) Update(ctx context.Context, i *entity.KnowledgeItem) error { return nil }
func (f *fakeKnowledgeRepo) Delete(ctx context.Context, id string) error               { return nil }
func (f *fakeKnowledgeRepo) ListByProject(ctx context.Context, projectID string, limit int) ([]*entity.KnowledgeItem, error) {
	return nil, nil
}

type fakeExampleRepo struct {
	examples []*entity.Example
}

func (f *fakeExampleRepo) Create(ctx context.Context, e *entity.Example) error { return nil }
func (f *fakeExampleRepo) GetByID(ctx context.Context, id string) (*entity.Example, error) {
	return nil, nil
}
func (f *fakeExampleRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.Example, error) {
	return f.examples, nil
}
func (f *fakeExampleRepo) Update(ctx context.Context, e *entity.Example) error { return nil }
func (f *fakeExampleRepo) Delete(ctx context.Context, id string) error         { return nil }
func (f *fakeExampleRepo) ListByCategory(ctx context.Context, categoryID string, limit int) ([]*entity.Example, error) {
	return nil, nil
}
func (f *fakeExampleRepo) ListByProject(ctx context.Context, projectID string, limit int) ([]*entity.Example, error) {
	return nil, nil
}

type fakeUploadRepo struct {
	files []*entity.UploadFile
}

func (f *fakeUploadRepo) Create(ctx context.Context, u *entity.UploadFile) error { return nil }
func (f *fakeUploadRepo) GetByID(ctx context.Context, id string) (*entity.UploadFile, error) {
	return nil, nil
}
func (f *fakeUploadRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.UploadFile, error) {
	return f.files, nil
}
func (f *fakeUploadRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeRanker struct {
	ids []string
	err error
}

func (f *fakeRanker) Rank(ctx context.Context, workspaceID, projectID, query string, topK int) ([]string, error) {
	return f.ids, f.err
}

func newTestAssembler(category *entity.Category, knowledge []*entity.KnowledgeItem, examples []*entity.Example, files []*entity.UploadFile, ranker KnowledgeRanker) *Assembler {
	return NewAssembler(
		&fakeCategoryRepo{category: category},
		&fakePersonaRepo{persona: &entity.Persona{Description: "busy founders"}},
		&fakeVoiceRepo{voice: &entity.BrandVoice{Description: "warm and direct"}},
		&fakeKnowledgeRepo{items: knowledge},
		&fakeExampleRepo{examples: examples},
		&fakeUploadRepo{files: files},
		ranker,
		nil,
	)
}

func TestAssembleCategoryIsHardRequired(t *testing.T) {
	assembler := newTestAssembler(nil, nil, nil, nil, nil)

	_, err := assembler.Assemble(context.Background(), &AssembleInput{CategoryID: "cat-missing"})
	if err == nil {
		t.Fatal("missing category must fail assembly")
	}
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeCategoryNotFound {
		t.Fatalf("error = %v, want code %v", err, apperrors.CodeCategoryNotFound)
	}
}

func TestAssembleOptionalMaterialsDegrade(t *testing.T) {
	assembler := NewAssembler(
		&fakeCategoryRepo{category: &entity.Category{FormatGuidelines: "short posts"}},
		&fakePersonaRepo{persona: nil}, // 已删除的画像降级为空
		&fakeVoiceRepo{voice: nil},
		&fakeKnowledgeRepo{},
		&fakeExampleRepo{},
		&fakeUploadRepo{},
		nil,
		nil,
	)

	gc, err := assembler.Assemble(context.Background(), &AssembleInput{
		CategoryID:   "cat-1",
		PersonaID:    "persona-gone",
		BrandVoiceID: "voice-gone",
	})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if gc.FormatGuidelines != "short posts" {
		t.Errorf("format guidelines = %q", gc.FormatGuidelines)
	}
	if gc.Persona != "" || gc.BrandVoice != "" {
		t.Error("missing optional materials must degrade to empty, not fail")
	}
}

func TestAssembleCapsKnowledgeAndExamples(t *testing.T) {
	knowledge := make([]*entity.KnowledgeItem, 0, MaxKnowledgeItems+5)
	for i := 0; i < MaxKnowledgeItems+5; i++ {
		knowledge = append(knowledge, &entity.KnowledgeItem{
			ID: fmt.Sprintf("kb-%d", i), Title: fmt.Sprintf("KB %d", i), Content: "body",
		})
	}
	examples := make([]*entity.Example, 0, MaxExamples+3)
	for i := 0; i < MaxExamples+3; i++ {
		examples = append(examples, &entity.Example{
			ID: fmt.Sprintf("ex-%d", i), Content: "example body",
		})
	}

	assembler := newTestAssembler(&entity.Category{FormatGuidelines: "g"}, knowledge, examples, nil, nil)
	gc, err := assembler.Assemble(context.Background(), &AssembleInput{
		CategoryID:       "cat-1",
		KnowledgeItemIDs: []string{"any"},
		ExampleIDs:       []string{"any"},
	})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if len(gc.KnowledgeItems) != MaxKnowledgeItems {
		t.Errorf("knowledge items = %d, want capped at %d", len(gc.KnowledgeItems), MaxKnowledgeItems)
	}
	if len(gc.Examples) != MaxExamples {
		t.Errorf("examples = %d, want capped at %d", len(gc.Examples), MaxExamples)
	}
}

func TestAssembleFilesCarryFilenameHeaders(t *testing.T) {
	files := []*entity.UploadFile{
		{Filename: "notes.txt", ExtractedText: "first file body"},
		{Filename: "brief.md", ExtractedText: "second file body"},
		{Filename: "empty.pdf", ExtractedText: ""}, // 无抽取文本的文件被跳过
	}

	assembler := newTestAssembler(&entity.Category{}, nil, nil, files, nil)
	gc, err := assembler.Assemble(context.Background(), &AssembleInput{
		CategoryID:    "cat-1",
		UploadFileIDs: []string{"f1", "f2", "f3"},
	})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	if !strings.Contains(gc.AttachedFiles, "[notes.txt]\nfirst file body") {
		t.Errorf("attached files missing first header: %q", gc.AttachedFiles)
	}
	if !strings.Contains(gc.AttachedFiles, "[brief.md]\nsecond file body") {
		t.Errorf("attached files missing second header: %q", gc.AttachedFiles)
	}
	if strings.Contains(gc.AttachedFiles, "empty.pdf") {
		t.Error("files without extracted text must be skipped")
	}
}

func TestRankKnowledgeReordersBySimilarity(t *testing.T) {
	items := []*entity.KnowledgeItem{
		{ID: "a", Title: "A"},
		{ID: "b", Title: "B"},
		{ID: "c", Title: "C"},
	}
	assembler := newTestAssembler(&entity.Category{}, items, nil, nil, &fakeRanker{ids: []string{"c", "a"}})

	gc, err := assembler.Assemble(context.Background(), &AssembleInput{
		CategoryID:       "cat-1",
		KnowledgeItemIDs: []string{"a", "b", "c"},
		Query:            "relevant topic",
	})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	got := make([]string, 0, len(gc.KnowledgeItems))
	for _, item := range gc.KnowledgeItems {
		got = append(got, item.Title)
	}
	want := []string{"C", "A", "B"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ranked order = %v, want %v", got, want)
		}
	}
}

func TestRankKnowledgeFailureFallsBackToOriginalOrder(t *testing.T) {
	items := []*entity.KnowledgeItem{
		{ID: "a", Title: "A"},
		{ID: "b", Title: "B"},
	}
	assembler := newTestAssembler(&entity.Category{}, items, nil, nil, &fakeRanker{err: errors.New("milvus down")})

	gc, err := assembler.Assemble(context.Background(), &AssembleInput{
		CategoryID:       "cat-1",
		KnowledgeItemIDs: []string{"a", "b"},
		Query:            "anything",
	})
	if err != nil {
		t.Fatalf("ranking failure must not fail assembly: %v", err)
	}
	if gc.KnowledgeItems[0].Title != "A" || gc.KnowledgeItems[1].Title != "B" {
		t.Error("ranking failure must preserve the original order")
	}
}
