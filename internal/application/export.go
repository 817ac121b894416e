package app

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/nfnt/resize"
)

// EncodePNG кодирует изображение в PNG для скачивания.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Preview уменьшает изображение, чтобы длинная сторона была не больше maxSide.
func Preview(img image.Image, maxSide int) image.Image {
	b := img.Bounds()
	if maxSide <= 0 || max(b.Dx(), b.Dy()) <= maxSide {
		return img
	}
	return resize.Thumbnail(uint(maxSide), uint(maxSide), img, resize.Lanczos3)
}

// EncodePreview кодирует уменьшенную копию в PNG.
func EncodePreview(img image.Image, maxSide int) ([]byte, error) {
	return EncodePNG(Preview(img, maxSide))
}
