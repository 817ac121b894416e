//go:build gocv
// +build gocv

package vision

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Processor применяет фильтры через OpenCV.
type Processor struct {
	CannyLow       float32
	CannyHigh      float32
	LaplacianKSize int
}

// NewProcessor создаёт процессор с порогами Canny 100/200.
func NewProcessor() *Processor {
	return &Processor{
		CannyLow:       DefaultCannyLow,
		CannyHigh:      DefaultCannyHigh,
		LaplacianKSize: 1,
	}
}

// Grayscale переводит RGB в яркость.
func (p *Processor) Grayscale(img image.Image) (image.Image, error) {
	gray, err := toGrayMat(img)
	if err != nil {
		return nil, err
	}
	defer gray.Close()

	return gray.ToImage()
}

// Laplacian считает вторую производную в CV_64F, берёт модуль и насыщает до 8 бит.
func (p *Processor) Laplacian(img image.Image) (image.Image, error) {
	gray, err := toGrayMat(img)
	if err != nil {
		return nil, err
	}
	defer gray.Close()

	lap := gocv.NewMat()
	defer lap.Close()
	gocv.Laplacian(gray, &lap, gocv.MatTypeCV64F, p.LaplacianKSize, 1, 0, gocv.BorderDefault)

	abs := gocv.NewMat()
	defer abs.Close()
	gocv.ConvertScaleAbs(lap, &abs, 1, 0)

	return abs.ToImage()
}

// Canny запускает детектор границ с двумя порогами.
func (p *Processor) Canny(img image.Image) (image.Image, error) {
	gray, err := toGrayMat(img)
	if err != nil {
		return nil, err
	}
	defer gray.Close()

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(gray, &edges, p.CannyLow, p.CannyHigh)

	return edges.ToImage()
}

// toGrayMat превращает image.Image в одноканальный gocv.Mat.
func toGrayMat(img image.Image) (gocv.Mat, error) {
	if err := checkImage(img); err != nil {
		return gocv.NewMat(), err
	}

	if g, ok := img.(*image.Gray); ok {
		mat, err := gocv.ImageGrayToMatGray(g)
		if err != nil {
			return gocv.NewMat(), fmt.Errorf("convert gray image: %w", err)
		}
		return mat, nil
	}

	// ImageToMatRGB кладёт каналы в порядке BGR, как принято в OpenCV.
	bgr, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("convert image: %w", err)
	}
	defer bgr.Close()

	gray := gocv.NewMat()
	gocv.CvtColor(bgr, &gray, gocv.ColorBGRToGray)
	return gray, nil
}
