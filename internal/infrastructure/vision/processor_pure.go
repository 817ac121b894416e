//go:build !gocv
// +build !gocv

package vision

import (
	"image"

	"golang.org/x/image/draw"
)

// Processor применяет фильтры без OpenCV, повторяя его поведение.
type Processor struct {
	CannyLow  float64
	CannyHigh float64
}

// NewProcessor создаёт процессор с порогами Canny 100/200.
func NewProcessor() *Processor {
	return &Processor{
		CannyLow:  DefaultCannyLow,
		CannyHigh: DefaultCannyHigh,
	}
}

// Grayscale переводит RGB в яркость.
func (p *Processor) Grayscale(img image.Image) (image.Image, error) {
	if err := checkImage(img); err != nil {
		return nil, err
	}
	return toGray(img), nil
}

// Laplacian считает модуль лапласиана (ядро 3x3, 4 соседа) с насыщением до 8 бит.
func (p *Processor) Laplacian(img image.Image) (image.Image, error) {
	if err := checkImage(img); err != nil {
		return nil, err
	}
	gray := toGray(img)
	w, h := gray.Rect.Dx(), gray.Rect.Dy()

	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		up, down := reflect101(y-1, h), reflect101(y+1, h)
		for x := 0; x < w; x++ {
			left, right := reflect101(x-1, w), reflect101(x+1, w)
			v := int(gray.Pix[up*gray.Stride+x]) +
				int(gray.Pix[down*gray.Stride+x]) +
				int(gray.Pix[y*gray.Stride+left]) +
				int(gray.Pix[y*gray.Stride+right]) -
				4*int(gray.Pix[y*gray.Stride+x])
			if v < 0 {
				v = -v
			}
			out.Pix[y*out.Stride+x] = saturate(v)
		}
	}
	return out, nil
}

// Canny: Собель 3x3, L1-норма градиента, подавление немаксимумов и гистерезис.
func (p *Processor) Canny(img image.Image) (image.Image, error) {
	if err := checkImage(img); err != nil {
		return nil, err
	}
	low, high := p.CannyLow, p.CannyHigh
	if low > high {
		low, high = high, low
	}
	return canny(toGray(img), low, high), nil
}

// toGray повторяет целочисленное преобразование OpenCV RGB2GRAY.
// Яркость считается по цвету без умножения на альфу, альфа отбрасывается.
func toGray(img image.Image) *image.Gray {
	b := img.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)

	gray := image.NewGray(nrgba.Rect)
	for i, j := 0, 0; i < len(nrgba.Pix); i, j = i+4, j+1 {
		r := int(nrgba.Pix[i])
		g := int(nrgba.Pix[i+1])
		bl := int(nrgba.Pix[i+2])
		gray.Pix[j] = uint8((r*4899 + g*9617 + bl*1868 + 1<<13) >> 14)
	}
	return gray
}

// reflect101 отражение индекса на границе без повтора крайнего пикселя (gfedcb|abcdefgh|gfedcba).
func reflect101(i, n int) int {
	if n == 1 {
		return 0
	}
	if i < 0 {
		return -i
	}
	if i >= n {
		return 2*n - 2 - i
	}
	return i
}

// clampIndex повторяет крайний пиксель (aaaaaa|abcdefgh|hhhhhhh).
func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func saturate(v int) uint8 {
	if v > 255 {
		return 255
	}
	return uint8(v)
}
