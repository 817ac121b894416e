package app

import (
	"context"
	"errors"
	"image"
	"image/color"
	"io"

	"cv-filters/internal/domain/entity"
)

// fakeProcessor помечает результат значением пикселя, чтобы проверить диспетчеризацию
type fakeProcessor struct {
	err error
}

func (f *fakeProcessor) mark(img image.Image, v uint8) (image.Image, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := image.NewGray(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	for i := range out.Pix {
		out.Pix[i] = v
	}
	return out, nil
}

func (f *fakeProcessor) Grayscale(img image.Image) (image.Image, error) { return f.mark(img, 1) }
func (f *fakeProcessor) Laplacian(img image.Image) (image.Image, error) { return f.mark(img, 2) }
func (f *fakeProcessor) Canny(img image.Image) (image.Image, error)     { return f.mark(img, 3) }

type fakeRemover struct {
	called bool
}

func (f *fakeRemover) Remove(ctx context.Context, img image.Image) (image.Image, error) {
	f.called = true
	b := img.Bounds()
	return image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy())), nil
}

// fakeSource источник с одним примером и записью последнего вызова
type fakeSource struct {
	last string
}

func (f *fakeSource) Open(ctx context.Context, path string) (image.Image, error) {
	f.last = "open:" + path
	if path == "/missing.png" {
		return nil, entity.ErrFileNotFound
	}
	return solid(3, 2), nil
}

func (f *fakeSource) Decode(ctx context.Context, name string, r io.Reader) (image.Image, error) {
	f.last = "decode:" + name
	if _, err := io.ReadAll(r); err != nil {
		return nil, err
	}
	return solid(4, 4), nil
}

func (f *fakeSource) Sample(ctx context.Context, name string) (image.Image, error) {
	f.last = "sample:" + name
	if name != "zebra.png" {
		return nil, entity.ErrUnknownSample
	}
	return solid(5, 5), nil
}

func (f *fakeSource) Samples() []string {
	return []string{"zebra.png"}
}

var errBoom = errors.New("boom")

func solid(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 30, G: 60, B: 90, A: 255})
		}
	}
	return img
}
