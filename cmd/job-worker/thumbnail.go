package main

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"path"
	"strings"

	// 注册常见图片格式解码器
	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
)

// thumbnailContentType 缩略图统一编码为 JPEG
const thumbnailContentType = "image/jpeg"

// defaultThumbnailQuality JPEG 编码质量兜底值
const defaultThumbnailQuality = 80

// buildThumbnail 解码原图并等比缩放到 maxWidth，原图更窄时原样重编码
func buildThumbnail(data []byte, maxWidth, quality int) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image dimensions: %dx%d", width, height)
	}

	if maxWidth > 0 && width > maxWidth {
		scaled := image.NewRGBA(image.Rect(0, 0, maxWidth, height*maxWidth/width))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), src, bounds, draw.Over, nil)
		src = scaled
	}

	if quality <= 0 || quality > 100 {
		quality = defaultThumbnailQuality
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// thumbnailKey 由原图 key 派生缩略图 key，保持同目录
func thumbnailKey(storageKey string) string {
	ext := path.Ext(storageKey)
	base := strings.TrimSuffix(storageKey, ext)
	return base + "_thumb.jpg"
}
