package app

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/segmentio/ksuid"

	"cv-filters/internal/domain/entity"
	"cv-filters/internal/domain/port"
)

// ProcessingService применяет фильтр и хранит результат до скачивания
type ProcessingService struct {
	filters        *FilterService
	results        port.ResultRepository
	previewMaxSide int
	now            func() time.Time
}

// NewProcessingService создаёт сервис обработки.
func NewProcessingService(filters *FilterService, results port.ResultRepository, previewMaxSide int) *ProcessingService {
	return &ProcessingService{
		filters:        filters,
		results:        results,
		previewMaxSide: previewMaxSide,
		now:            time.Now,
	}
}

// Process применяет фильтр, кодирует результат в PNG и сохраняет его.
func (s *ProcessingService) Process(ctx context.Context, src entity.Source, img image.Image, filter entity.FilterName) (*entity.ProcessedImage, error) {
	started := s.now()

	out, err := s.filters.Apply(ctx, filter, img)
	if err != nil {
		return nil, err
	}

	full, err := EncodePNG(out)
	if err != nil {
		return nil, err
	}
	preview := full
	if b := out.Bounds(); s.previewMaxSide > 0 && max(b.Dx(), b.Dy()) > s.previewMaxSide {
		if preview, err = EncodePreview(out, s.previewMaxSide); err != nil {
			return nil, err
		}
	}

	result := &entity.ProcessedImage{
		ID:        ksuid.New().String(),
		Filter:    filter,
		Filename:  src.OutputFilename(),
		Preview:   preview,
		Result:    full,
		Width:     out.Bounds().Dx(),
		Height:    out.Bounds().Dy(),
		CreatedAt: s.now(),
	}
	if err := s.results.Save(ctx, result); err != nil {
		return nil, fmt.Errorf("save result: %w", err)
	}

	slog.Info("filter applied",
		"id", result.ID,
		"filter", filter,
		"source", src.Kind,
		"width", result.Width,
		"height", result.Height,
		"elapsed", s.now().Sub(started),
	)
	return result, nil
}

// Result возвращает сохранённый результат.
func (s *ProcessingService) Result(ctx context.Context, id string) (*entity.ProcessedImage, error) {
	return s.results.Get(ctx, id)
}

// Cleanup удаляет результаты старше ttl.
func (s *ProcessingService) Cleanup(ctx context.Context, ttl time.Duration) (int, error) {
	return s.results.DeleteOlderThan(ctx, s.now().Add(-ttl))
}
