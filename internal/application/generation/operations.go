package generation

import (
	"context"
	"strings"

	"contentforge-ai-api/internal/application/generation/contextrepo"
	"contentforge-ai-api/internal/application/generation/executor"
	"contentforge-ai-api/internal/application/generation/prompt"
	"contentforge-ai-api/internal/domain/entity"
	"contentforge-ai-api/internal/domain/service"
	apperrors "contentforge-ai-api/pkg/errors"
	"contentforge-ai-api/pkg/logger"
)

// OperationDraft 等操作名同时用作指标 label 和用量流水的 operation 字段
const (
	OperationDraft           = "generate draft"
	OperationRefine          = "refine content"
	OperationRefineSelection = "refine selection"
	OperationChat            = "generate chat response"
	OperationRepurpose       = "repurpose content"
	OperationImagePrompt     = "generate image prompt"
)

// DraftInput 草稿生成输入
type DraftInput struct {
	WorkspaceID    string
	UserID         string
	ContentPieceID string
	ContextSelection
}

// GenerateDraft 为内容单元生成完整草稿，结果追加为新版本
func (s *Service) GenerateDraft(ctx context.Context, in *DraftInput, onChunk executor.ChunkHandler) (*ExecResult, error) {
	var (
		piece *entity.ContentPiece
		draft string
		opts  *executor.Options
	)

	hooks := &Hooks{
		Operation:   OperationDraft,
		WorkspaceID: in.WorkspaceID,
		UserID:      in.UserID,
		FetchData: func(ctx context.Context) error {
			var err error
			if piece, err = s.loadPiece(ctx, in.ContentPieceID); err != nil {
				return err
			}
			if draft, err = s.latestBody(ctx, piece.ID); err != nil {
				return err
			}
			opts, err = s.resolveOptions(ctx, piece.ProjectID)
			return err
		},
		AssembleContext: func(ctx context.Context) (*contextrepo.GenerationContext, error) {
			return s.assembler.Assemble(ctx, &contextrepo.AssembleInput{
				WorkspaceID:      in.WorkspaceID,
				ProjectID:        piece.ProjectID,
				CategoryID:       piece.CategoryID,
				PersonaID:        in.PersonaID,
				BrandVoiceID:     in.BrandVoiceID,
				KnowledgeItemIDs: in.KnowledgeItemIDs,
				ExampleIDs:       in.ExampleIDs,
				UploadFileIDs:    in.UploadFileIDs,
				Query:            strings.TrimSpace(piece.Title + " " + piece.Topic),
			})
		},
		BuildPrompts: func(ctx context.Context, gc *contextrepo.GenerationContext) (*prompt.PromptPair, error) {
			return prompt.Build(&prompt.Input{
				Kind:         prompt.KindDraft,
				Title:        piece.Title,
				Topic:        piece.Topic,
				DraftContent: draft,
			}, gc)
		},
		Execute: func(ctx context.Context, pair *prompt.PromptPair) (*ExecResult, error) {
			return s.executeStream(ctx, pair, opts, onChunk)
		},
		FormatOutput: func(ctx context.Context, res *ExecResult) error {
			return s.appendVersion(ctx, piece, res.Text, entity.VersionSourceDraft)
		},
	}

	return s.pipeline.Run(ctx, hooks)
}

// RefineInput 整体润色输入
type RefineInput struct {
	WorkspaceID    string
	UserID         string
	ContentPieceID string
	Instruction    string
	ContextSelection
}

// RefineContent 按指令润色整篇内容，结果追加为新版本
// 已定稿的内容单元不原地修改，同样走追加版本
func (s *Service) RefineContent(ctx context.Context, in *RefineInput, onChunk executor.ChunkHandler) (*ExecResult, error) {
	var (
		piece   *entity.ContentPiece
		content string
		opts    *executor.Options
	)

	hooks := &Hooks{
		Operation:   OperationRefine,
		WorkspaceID: in.WorkspaceID,
		UserID:      in.UserID,
		ValidateInput: func(ctx context.Context) error {
			if strings.TrimSpace(in.Instruction) == "" {
				return apperrors.New(apperrors.CodeInvalidParam, "refinement instruction is required")
			}
			return nil
		},
		FetchData: func(ctx context.Context) error {
			var err error
			if piece, err = s.loadPiece(ctx, in.ContentPieceID); err != nil {
				return err
			}
			if content, err = s.latestBody(ctx, piece.ID); err != nil {
				return err
			}
			if strings.TrimSpace(content) == "" {
				return apperrors.New(apperrors.CodeInvalidParam, "content piece has no content to refine")
			}
			opts, err = s.resolveOptions(ctx, piece.ProjectID)
			return err
		},
		AssembleContext: func(ctx context.Context) (*contextrepo.GenerationContext, error) {
			return s.assembler.Assemble(ctx, &contextrepo.AssembleInput{
				WorkspaceID:      in.WorkspaceID,
				ProjectID:        piece.ProjectID,
				CategoryID:       piece.CategoryID,
				PersonaID:        in.PersonaID,
				BrandVoiceID:     in.BrandVoiceID,
				KnowledgeItemIDs: in.KnowledgeItemIDs,
				ExampleIDs:       in.ExampleIDs,
				UploadFileIDs:    in.UploadFileIDs,
			})
		},
		BuildPrompts: func(ctx context.Context, gc *contextrepo.GenerationContext) (*prompt.PromptPair, error) {
			return prompt.Build(&prompt.Input{
				Kind:        prompt.KindRefine,
				Instruction: in.Instruction,
				Content:     content,
			}, gc)
		},
		Execute: func(ctx context.Context, pair *prompt.PromptPair) (*ExecResult, error) {
			return s.executeStream(ctx, pair, opts, onChunk)
		},
		FormatOutput: func(ctx context.Context, res *ExecResult) error {
			return s.appendVersion(ctx, piece, res.Text, entity.VersionSourceRefine)
		},
	}

	return s.pipeline.Run(ctx, hooks)
}

// RefineSelectionInput 选区润色输入
// Instruction 与 QuickAction 二选一，QuickAction 优先展开为完整指令
type RefineSelectionInput struct {
	WorkspaceID    string
	UserID         string
	ContentPieceID string
	Selection      string
	Instruction    string
	QuickAction    prompt.QuickAction
	Tone           string
	ContextSelection
}

// RefineSelection 只重写选中的段落，不落库，由客户端套用结果
func (s *Service) RefineSelection(ctx context.Context, in *RefineSelectionInput, onChunk executor.ChunkHandler) (*ExecResult, error) {
	var (
		piece       *entity.ContentPiece
		fullContent string
		instruction string
		opts        *executor.Options
	)

	hooks := &Hooks{
		Operation:   OperationRefineSelection,
		WorkspaceID: in.WorkspaceID,
		UserID:      in.UserID,
		ValidateInput: func(ctx context.Context) error {
			if strings.TrimSpace(in.Selection) == "" {
				return apperrors.New(apperrors.CodeInvalidParam, "selection is required")
			}
			if in.QuickAction == "" && strings.TrimSpace(in.Instruction) == "" {
				return apperrors.New(apperrors.CodeInvalidParam, "instruction or quick action is required")
			}
			return nil
		},
		FetchData: func(ctx context.Context) error {
			var err error
			if piece, err = s.loadPiece(ctx, in.ContentPieceID); err != nil {
				return err
			}
			if fullContent, err = s.latestBody(ctx, piece.ID); err != nil {
				return err
			}
			if in.QuickAction != "" {
				if instruction, err = prompt.QuickActionInstruction(in.QuickAction, in.Selection, in.Tone); err != nil {
					return apperrors.Wrap(err, apperrors.CodeInvalidParam, "invalid quick action")
				}
			} else {
				instruction = in.Instruction
			}
			opts, err = s.resolveOptions(ctx, piece.ProjectID)
			return err
		},
		AssembleContext: func(ctx context.Context) (*contextrepo.GenerationContext, error) {
			return s.assembler.Assemble(ctx, &contextrepo.AssembleInput{
				WorkspaceID:  in.WorkspaceID,
				ProjectID:    piece.ProjectID,
				CategoryID:   piece.CategoryID,
				PersonaID:    in.PersonaID,
				BrandVoiceID: in.BrandVoiceID,
			})
		},
		BuildPrompts: func(ctx context.Context, gc *contextrepo.GenerationContext) (*prompt.PromptPair, error) {
			return prompt.Build(&prompt.Input{
				Kind:        prompt.KindRefineSelection,
				Instruction: instruction,
				Selection:   in.Selection,
				FullContent: fullContent,
			}, gc)
		},
		Execute: func(ctx context.Context, pair *prompt.PromptPair) (*ExecResult, error) {
			return s.executeStream(ctx, pair, opts, onChunk)
		},
	}

	return s.pipeline.Run(ctx, hooks)
}

// ChatInput 对话输入
type ChatInput struct {
	WorkspaceID    string
	UserID         string
	ContentPieceID string
	Message        string
	ContextSelection
}

// GenerateChatResponse 围绕内容单元的多轮对话
// 历史截断为最近 10 条；消息持久化在响应返回后异步进行
func (s *Service) GenerateChatResponse(ctx context.Context, in *ChatInput, onChunk executor.ChunkHandler) (*ExecResult, error) {
	var (
		piece   *entity.ContentPiece
		content string
		history []prompt.ChatTurn
		opts    *executor.Options
	)

	hooks := &Hooks{
		Operation:   OperationChat,
		WorkspaceID: in.WorkspaceID,
		UserID:      in.UserID,
		ValidateInput: func(ctx context.Context) error {
			if strings.TrimSpace(in.Message) == "" {
				return apperrors.New(apperrors.CodeInvalidParam, "message is required")
			}
			return nil
		},
		FetchData: func(ctx context.Context) error {
			var err error
			if piece, err = s.loadPiece(ctx, in.ContentPieceID); err != nil {
				return err
			}
			if content, err = s.latestBody(ctx, piece.ID); err != nil {
				return err
			}
			messages, err := s.chats.ListByPiece(ctx, piece.ID, prompt.MaxChatHistory)
			if err != nil {
				return err
			}
			history = prompt.HistoryFromMessages(messages)
			opts, err = s.resolveOptions(ctx, piece.ProjectID)
			return err
		},
		AssembleContext: func(ctx context.Context) (*contextrepo.GenerationContext, error) {
			return s.assembler.Assemble(ctx, &contextrepo.AssembleInput{
				WorkspaceID:      in.WorkspaceID,
				ProjectID:        piece.ProjectID,
				CategoryID:       piece.CategoryID,
				PersonaID:        in.PersonaID,
				BrandVoiceID:     in.BrandVoiceID,
				KnowledgeItemIDs: in.KnowledgeItemIDs,
				ExampleIDs:       in.ExampleIDs,
				Query:            in.Message,
			})
		},
		BuildPrompts: func(ctx context.Context, gc *contextrepo.GenerationContext) (*prompt.PromptPair, error) {
			return prompt.Build(&prompt.Input{
				Kind:        prompt.KindChat,
				Instruction: in.Message,
				Content:     content,
			}, gc)
		},
		Execute: func(ctx context.Context, pair *prompt.PromptPair) (*ExecResult, error) {
			text, usage, err := s.exec.StreamChat(ctx, pair.System, history, in.Message, opts, onChunk)
			return &ExecResult{Text: text, Usage: usage, Provider: opts.Provider, Model: opts.Model}, err
		},
		FormatOutput: func(ctx context.Context, res *ExecResult) error {
			s.persistChatTurn(ctx, piece, in.UserID, in.Message, res.Text)
			return nil
		},
	}

	return s.pipeline.Run(ctx, hooks)
}

// RepurposeInput 内容再利用输入
type RepurposeInput struct {
	WorkspaceID      string
	UserID           string
	ContentPieceID   string
	TargetCategoryID string
	Title            string
	ContextSelection
}

// RepurposeContent 将内容转换到另一内容类型，产出一个新的内容单元
func (s *Service) RepurposeContent(ctx context.Context, in *RepurposeInput, onChunk executor.ChunkHandler) (*ExecResult, error) {
	var (
		piece          *entity.ContentPiece
		content        string
		sourceCategory string
		targetCategory string
		opts           *executor.Options
	)

	hooks := &Hooks{
		Operation:   OperationRepurpose,
		WorkspaceID: in.WorkspaceID,
		UserID:      in.UserID,
		ValidateInput: func(ctx context.Context) error {
			if strings.TrimSpace(in.TargetCategoryID) == "" {
				return apperrors.New(apperrors.CodeInvalidParam, "target category is required")
			}
			return nil
		},
		FetchData: func(ctx context.Context) error {
			var err error
			if piece, err = s.loadPiece(ctx, in.ContentPieceID); err != nil {
				return err
			}
			if content, err = s.latestBody(ctx, piece.ID); err != nil {
				return err
			}
			if strings.TrimSpace(content) == "" {
				return apperrors.New(apperrors.CodeInvalidParam, "content piece has no content to repurpose")
			}

			// 源类型缺失降级为空名称，目标类型在组装上下文时硬校验
			if source, srcErr := s.categories.GetByID(ctx, piece.CategoryID); srcErr == nil && source != nil {
				sourceCategory = source.Name
			}
			target, err := s.categories.GetByID(ctx, in.TargetCategoryID)
			if err != nil {
				return err
			}
			if target == nil {
				return apperrors.New(apperrors.CodeCategoryNotFound, "target category not found").
					WithDetail("category_id=" + in.TargetCategoryID)
			}
			targetCategory = target.Name

			opts, err = s.resolveOptions(ctx, piece.ProjectID)
			return err
		},
		AssembleContext: func(ctx context.Context) (*contextrepo.GenerationContext, error) {
			// 以目标类型为上下文，使格式指南指向输出格式
			return s.assembler.Assemble(ctx, &contextrepo.AssembleInput{
				WorkspaceID:  in.WorkspaceID,
				ProjectID:    piece.ProjectID,
				CategoryID:   in.TargetCategoryID,
				PersonaID:    in.PersonaID,
				BrandVoiceID: in.BrandVoiceID,
			})
		},
		BuildPrompts: func(ctx context.Context, gc *contextrepo.GenerationContext) (*prompt.PromptPair, error) {
			return prompt.Build(&prompt.Input{
				Kind:           prompt.KindRepurpose,
				Content:        content,
				SourceCategory: sourceCategory,
				TargetCategory: targetCategory,
			}, gc)
		},
		Execute: func(ctx context.Context, pair *prompt.PromptPair) (*ExecResult, error) {
			return s.executeStream(ctx, pair, opts, onChunk)
		},
		FormatOutput: func(ctx context.Context, res *ExecResult) error {
			title := strings.TrimSpace(in.Title)
			if title == "" {
				title = piece.Title + " (" + targetCategory + ")"
			}
			newPiece := &entity.ContentPiece{
				WorkspaceID:    piece.WorkspaceID,
				ProjectID:      piece.ProjectID,
				CategoryID:     in.TargetCategoryID,
				Title:          title,
				Topic:          piece.Topic,
				CurrentVersion: 0,
				Status:         entity.ContentStatusDraft,
			}
			return s.transactor.WithTransaction(ctx, func(txCtx context.Context) error {
				if err := s.pieces.Create(txCtx, newPiece); err != nil {
					return err
				}
				if err := s.versions.Create(txCtx, entity.NewContentVersion(newPiece.ID, 1, res.Text, entity.VersionSourceRepurpose)); err != nil {
					return err
				}
				newPiece.CurrentVersion = 1
				return s.pieces.Update(txCtx, newPiece)
			})
		},
	}

	return s.pipeline.Run(ctx, hooks)
}

// ImagePromptInput 图片提示词生成输入
type ImagePromptInput struct {
	WorkspaceID    string
	UserID         string
	ContentPieceID string
}

// GenerateImagePrompt 基于内容生成一条图片提示词，非流式
func (s *Service) GenerateImagePrompt(ctx context.Context, in *ImagePromptInput) (*ExecResult, error) {
	var (
		piece   *entity.ContentPiece
		content string
		opts    *executor.Options
	)

	hooks := &Hooks{
		Operation:   OperationImagePrompt,
		WorkspaceID: in.WorkspaceID,
		UserID:      in.UserID,
		FetchData: func(ctx context.Context) error {
			var err error
			if piece, err = s.loadPiece(ctx, in.ContentPieceID); err != nil {
				return err
			}
			if content, err = s.latestBody(ctx, piece.ID); err != nil {
				return err
			}
			if strings.TrimSpace(content) == "" {
				content = piece.Title + "\n" + piece.Topic
			}
			opts, err = s.resolveOptions(ctx, piece.ProjectID)
			return err
		},
		BuildPrompts: func(ctx context.Context, gc *contextrepo.GenerationContext) (*prompt.PromptPair, error) {
			return prompt.Build(&prompt.Input{
				Kind:    prompt.KindImagePrompt,
				Content: content,
			}, gc)
		},
		Execute: func(ctx context.Context, pair *prompt.PromptPair) (*ExecResult, error) {
			text, usage, err := s.exec.Generate(ctx, pair, opts)
			return &ExecResult{Text: strings.TrimSpace(text), Usage: usage, Provider: opts.Provider, Model: opts.Model}, err
		},
	}

	return s.pipeline.Run(ctx, hooks)
}

// executeStream 统一的流式执行收口
func (s *Service) executeStream(ctx context.Context, pair *prompt.PromptPair, opts *executor.Options, onChunk executor.ChunkHandler) (*ExecResult, error) {
	ctx = service.WithProvider(ctx, opts.Provider)
	text, usage, err := s.exec.Stream(ctx, pair, opts, onChunk)
	return &ExecResult{Text: text, Usage: usage, Provider: opts.Provider, Model: opts.Model}, err
}

// persistChatTurn 响应返回后异步落库本轮对话，失败只记日志
func (s *Service) persistChatTurn(ctx context.Context, piece *entity.ContentPiece, userID, userMessage, assistantReply string) {
	bg := context.WithoutCancel(ctx)
	go func() {
		if err := s.chats.Create(bg, entity.NewChatMessage(piece.WorkspaceID, piece.ID, userID, entity.RoleUser, userMessage)); err != nil {
			logger.FromContext(bg).Error("failed to persist user chat message", "error", err, "content_piece_id", piece.ID)
			return
		}
		if err := s.chats.Create(bg, entity.NewChatMessage(piece.WorkspaceID, piece.ID, userID, entity.RoleAssistant, assistantReply)); err != nil {
			logger.FromContext(bg).Error("failed to persist assistant chat message", "error", err, "content_piece_id", piece.ID)
		}
	}()
}
