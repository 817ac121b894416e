package port

import (
	"context"
	"image"
)

// BackgroundRemover интерфейс удаления фона
type BackgroundRemover interface {
	// Remove возвращает изображение того же размера с прозрачным фоном
	Remove(ctx context.Context, img image.Image) (image.Image, error)
}
