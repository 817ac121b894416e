package port

import "image"

// ImageProcessor интерфейс фильтров компьютерного зрения
type ImageProcessor interface {
	// Grayscale переводит изображение в одноканальное по яркости
	Grayscale(img image.Image) (image.Image, error)

	// Laplacian возвращает модуль лапласиана, обрезанный до 8 бит
	Laplacian(img image.Image) (image.Image, error)

	// Canny возвращает бинарную карту границ (0/255)
	Canny(img image.Image) (image.Image, error)
}
