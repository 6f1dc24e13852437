package main

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func encodeTestPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return buf.Bytes()
}

func TestBuildThumbnailScalesDownWideImages(t *testing.T) {
	data := encodeTestPNG(t, 1024, 512)

	thumb, err := buildThumbnail(data, 256, 80)
	if err != nil {
		t.Fatalf("buildThumbnail() error = %v", err)
	}

	decoded, err := jpeg.Decode(bytes.NewReader(thumb))
	if err != nil {
		t.Fatalf("thumbnail must be valid JPEG: %v", err)
	}
	bounds := decoded.Bounds()
	if bounds.Dx() != 256 {
		t.Errorf("width = %d, want 256", bounds.Dx())
	}
	if bounds.Dy() != 128 {
		t.Errorf("height = %d, want 128 (aspect ratio preserved)", bounds.Dy())
	}
}

func TestBuildThumbnailKeepsNarrowImages(t *testing.T) {
	data := encodeTestPNG(t, 100, 60)

	thumb, err := buildThumbnail(data, 512, 80)
	if err != nil {
		t.Fatalf("buildThumbnail() error = %v", err)
	}

	decoded, err := jpeg.Decode(bytes.NewReader(thumb))
	if err != nil {
		t.Fatalf("thumbnail must be valid JPEG: %v", err)
	}
	if decoded.Bounds().Dx() != 100 || decoded.Bounds().Dy() != 60 {
		t.Errorf("narrow image must keep its size, got %v", decoded.Bounds())
	}
}

func TestBuildThumbnailInvalidQualityFallsBack(t *testing.T) {
	data := encodeTestPNG(t, 64, 64)

	if _, err := buildThumbnail(data, 32, 0); err != nil {
		t.Errorf("quality 0 must fall back to default: %v", err)
	}
	if _, err := buildThumbnail(data, 32, 150); err != nil {
		t.Errorf("quality 150 must fall back to default: %v", err)
	}
}

func TestBuildThumbnailRejectsGarbage(t *testing.T) {
	if _, err := buildThumbnail([]byte("not an image"), 256, 80); err == nil {
		t.Error("garbage input must fail decoding")
	}
}

func TestThumbnailKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"images/ws-1/img-1.png", "images/ws-1/img-1_thumb.jpg"},
		{"images/ws-1/img-2.jpeg", "images/ws-1/img-2_thumb.jpg"},
		{"images/ws-1/noext", "images/ws-1/noext_thumb.jpg"},
	}
	for _, tt := range tests {
		if got := thumbnailKey(tt.key); got != tt.want {
			t.Errorf("thumbnailKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
