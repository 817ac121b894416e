package port

import (
	"context"
	"image"
	"io"
)

// ImageSource интерфейс получения изображений
type ImageSource interface {
	// Open декодирует файл по пути; для отсутствующего файла entity.ErrFileNotFound
	Open(ctx context.Context, path string) (image.Image, error)

	// Decode декодирует загруженный файл
	Decode(ctx context.Context, name string, r io.Reader) (image.Image, error)

	// Sample декодирует встроенный пример по имени
	Sample(ctx context.Context, name string) (image.Image, error)

	// Samples возвращает имена встроенных примеров
	Samples() []string
}
