package port

import (
	"context"
	"time"

	"cv-filters/internal/domain/entity"
)

// ResultRepository интерфейс хранилища результатов для скачивания
type ResultRepository interface {
	// Save сохраняет результат
	Save(ctx context.Context, result *entity.ProcessedImage) error

	// Get возвращает результат по ID или entity.ErrResultNotFound
	Get(ctx context.Context, id string) (*entity.ProcessedImage, error)

	// DeleteOlderThan удаляет результаты, созданные раньше before, и возвращает их число
	DeleteOlderThan(ctx context.Context, before time.Time) (int, error)
}
