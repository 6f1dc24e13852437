package handler

import (
	"github.com/gin-gonic/gin"

	"contentforge-ai-api/internal/application/image"
	"contentforge-ai-api/internal/domain/repository"
	"contentforge-ai-api/internal/interfaces/http/dto"
	"contentforge-ai-api/internal/interfaces/http/middleware"
)

// ImageHandler 图片生成处理器
type ImageHandler struct {
	svc *image.Service
}

// NewImageHandler 创建图片处理器
func NewImageHandler(svc *image.Service) *ImageHandler {
	return &ImageHandler{svc: svc}
}

// Generate 生成图片
// @Summary 基于提示词生成图片
// @Description 受限流与固定费用预检约束，成功后异步生成缩略图
// @Tags Images
// @Accept json
// @Produce json
// @Param body body dto.GenerateImageRequest true "图片生成参数"
// @Success 200 {object} dto.Response[dto.GenerateImagesResponse]
// @Failure 402 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Router /api/v1/ai/images [post]
func (h *ImageHandler) Generate(c *gin.Context) {
	var req dto.GenerateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	out, err := h.svc.Generate(c.Request.Context(), &image.GenerateInput{
		WorkspaceID: middleware.GetWorkspaceIDFromGin(c),
		UserID:      middleware.GetUserIDFromGin(c),
		ProjectID:   req.ProjectID,
		Prompt:      req.Prompt,
		Provider:    req.Provider,
	})
	if err != nil {
		respondError(c, "generate image", err)
		return
	}

	items := make([]*dto.GeneratedImageItem, 0, len(out.Images))
	for _, img := range out.Images {
		items = append(items, &dto.GeneratedImageItem{
			FileID:       img.FileID,
			StorageKey:   img.StorageKey,
			PreviewURL:   img.PreviewURL,
			ThumbnailURL: img.ThumbnailURL,
		})
	}

	dto.Success(c, &dto.GenerateImagesResponse{
		Provider:  out.Provider,
		Model:     out.Model,
		TokenCost: out.TokenCost,
		Images:    items,
	})
}

// List 查询生成的图片
// @Summary 分页查询当前用户生成的图片
// @Tags Images
// @Produce json
// @Param page query int false "页码"
// @Param page_size query int false "每页条数"
// @Success 200 {object} dto.Response[[]dto.GeneratedImageResponse]
// @Router /api/v1/ai/images [get]
func (h *ImageHandler) List(c *gin.Context) {
	userID := middleware.GetUserIDFromGin(c)
	page := dto.BindPage(c)

	result, err := h.svc.ListImages(c.Request.Context(), userID, repository.NewPagination(page.Page, page.PageSize))
	if err != nil {
		respondError(c, "list images", err)
		return
	}

	images := make([]*dto.GeneratedImageResponse, 0, len(result.Items))
	for _, img := range result.Items {
		images = append(images, &dto.GeneratedImageResponse{
			ImageID:      img.ID,
			Provider:     img.Provider,
			Model:        img.Model,
			StorageKey:   img.StorageKey,
			PreviewURL:   img.PreviewURL,
			ThumbnailURL: img.ThumbnailURL,
			CreatedAt:    img.CreatedAt,
		})
	}

	dto.SuccessWithPage(c, images, dto.NewPageMeta(result.Page, result.PageSize, int(result.Total)))
}
