package generation

import (
	"context"
	"strings"

	"contentforge-ai-api/internal/application/generation/contextrepo"
	"contentforge-ai-api/internal/application/generation/executor"
	"contentforge-ai-api/internal/domain/entity"
	"contentforge-ai-api/internal/domain/repository"
	apperrors "contentforge-ai-api/pkg/errors"
)

// Service 内容生成服务，六种操作共用一条管线
type Service struct {
	pipeline  *Pipeline
	assembler *contextrepo.Assembler
	exec      *executor.Executor

	projects   repository.ProjectRepository
	pieces     repository.ContentPieceRepository
	versions   repository.ContentVersionRepository
	chats      repository.ChatMessageRepository
	categories repository.CategoryRepository
	transactor repository.Transactor

	defaultProvider string
}

// NewService 创建生成服务
func NewService(
	pipeline *Pipeline,
	assembler *contextrepo.Assembler,
	exec *executor.Executor,
	projects repository.ProjectRepository,
	pieces repository.ContentPieceRepository,
	versions repository.ContentVersionRepository,
	chats repository.ChatMessageRepository,
	categories repository.CategoryRepository,
	transactor repository.Transactor,
	defaultProvider string,
) *Service {
	return &Service{
		pipeline:        pipeline,
		assembler:       assembler,
		exec:            exec,
		projects:        projects,
		pieces:          pieces,
		versions:        versions,
		chats:           chats,
		categories:      categories,
		transactor:      transactor,
		defaultProvider: defaultProvider,
	}
}

// ContextSelection 一次操作引用的上下文素材
type ContextSelection struct {
	PersonaID        string   `json:"persona_id,omitempty"`
	BrandVoiceID     string   `json:"brand_voice_id,omitempty"`
	KnowledgeItemIDs []string `json:"knowledge_item_ids,omitempty"`
	ExampleIDs       []string `json:"example_ids,omitempty"`
	UploadFileIDs    []string `json:"upload_file_ids,omitempty"`
}

// loadPiece 加载内容单元，缺失视为硬错误
func (s *Service) loadPiece(ctx context.Context, pieceID string) (*entity.ContentPiece, error) {
	piece, err := s.pieces.GetByID(ctx, pieceID)
	if err != nil {
		return nil, err
	}
	if piece == nil {
		return nil, apperrors.New(apperrors.CodeContentPieceNotFound, "content piece not found").
			WithDetail("content_piece_id=" + pieceID)
	}
	return piece, nil
}

// latestBody 读取最新版本正文，无版本时返回空串
func (s *Service) latestBody(ctx context.Context, pieceID string) (string, error) {
	version, err := s.versions.GetLatest(ctx, pieceID)
	if err != nil {
		return "", err
	}
	if version == nil {
		return "", nil
	}
	return version.Body, nil
}

// resolveOptions 合并项目 AI 配置与全局默认
func (s *Service) resolveOptions(ctx context.Context, projectID string) (*executor.Options, error) {
	opts := &executor.Options{Provider: s.defaultProvider}

	if strings.TrimSpace(projectID) == "" {
		return opts, nil
	}

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperrors.New(apperrors.CodeProjectNotFound, "project not found").
			WithDetail("project_id=" + projectID)
	}

	if ai := project.AISettings; ai != nil {
		if ai.Provider != "" {
			opts.Provider = ai.Provider
		}
		opts.Model = ai.Model
		if ai.Temperature > 0 {
			t := float32(ai.Temperature)
			opts.Temperature = &t
		}
		if ai.MaxOutputTokens > 0 {
			m := ai.MaxOutputTokens
			opts.MaxTokens = &m
		}
	}

	return opts, nil
}

// appendVersion 在事务内追加新版本并推进内容单元的当前版本号
func (s *Service) appendVersion(ctx context.Context, piece *entity.ContentPiece, body string, source entity.VersionSource) error {
	return s.transactor.WithTransaction(ctx, func(txCtx context.Context) error {
		next := piece.CurrentVersion + 1
		if err := s.versions.Create(txCtx, entity.NewContentVersion(piece.ID, next, body, source)); err != nil {
			return err
		}
		piece.CurrentVersion = next
		return s.pieces.Update(txCtx, piece)
	})
}

// AssembleContext 对外暴露的上下文组装入口
func (s *Service) AssembleContext(ctx context.Context, in *contextrepo.AssembleInput) (*contextrepo.GenerationContext, error) {
	return s.assembler.Assemble(ctx, in)
}
