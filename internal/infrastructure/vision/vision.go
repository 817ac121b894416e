// Package vision содержит фильтры компьютерного зрения: оттенки серого,
// лапласиан и детектор границ Canny.
//
// С тегом сборки gocv фильтры вызывают OpenCV, без него собирается
// реализация на Go с той же семантикой.
package vision

import (
	"errors"
	"image"
)

const (
	// DefaultCannyLow нижний порог гистерезиса
	DefaultCannyLow = 100
	// DefaultCannyHigh верхний порог гистерезиса
	DefaultCannyHigh = 200
)

var errEmptyImage = errors.New("empty image")

func checkImage(img image.Image) error {
	if img == nil || img.Bounds().Empty() {
		return errEmptyImage
	}
	return nil
}
