package app

import (
	"context"
	"fmt"
	"image"

	"cv-filters/internal/domain/entity"
	"cv-filters/internal/domain/port"
)

// FilterFunc преобразует одно изображение в другое
type FilterFunc func(ctx context.Context, img image.Image) (image.Image, error)

// FilterService применяет фильтр по имени
type FilterService struct {
	filters map[entity.FilterName]FilterFunc
}

// NewFilterService собирает неизменяемую таблицу фильтров.
func NewFilterService(processor port.ImageProcessor, remover port.BackgroundRemover) *FilterService {
	withoutContext := func(f func(image.Image) (image.Image, error)) FilterFunc {
		return func(_ context.Context, img image.Image) (image.Image, error) {
			return f(img)
		}
	}

	return &FilterService{
		filters: map[entity.FilterName]FilterFunc{
			entity.FilterRemoveBackground: remover.Remove,
			entity.FilterGrayscale:        withoutContext(processor.Grayscale),
			entity.FilterLaplacian:        withoutContext(processor.Laplacian),
			entity.FilterCanny:            withoutContext(processor.Canny),
		},
	}
}

// Names возвращает фильтры в порядке отображения.
func (s *FilterService) Names() []entity.FilterName {
	return entity.Filters()
}

// Apply применяет фильтр name к img.
func (s *FilterService) Apply(ctx context.Context, name entity.FilterName, img image.Image) (image.Image, error) {
	f, ok := s.filters[name]
	if !ok {
		return nil, &entity.UnknownFilterError{Name: string(name)}
	}

	out, err := f(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("apply %s: %w", name, err)
	}
	return out, nil
}
