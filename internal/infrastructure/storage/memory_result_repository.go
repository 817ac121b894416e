package storage

import (
	"context"
	"sync"
	"time"

	"cv-filters/internal/domain/entity"
	"cv-filters/internal/domain/port"
)

// MemoryResultRepository in-memory хранилище обработанных изображений
type MemoryResultRepository struct {
	mu      sync.RWMutex
	results map[string]*entity.ProcessedImage
}

// NewMemoryResultRepository создаёт пустое хранилище
func NewMemoryResultRepository() *MemoryResultRepository {
	return &MemoryResultRepository{
		results: make(map[string]*entity.ProcessedImage),
	}
}

// Save сохраняет результат под его ID
func (r *MemoryResultRepository) Save(ctx context.Context, result *entity.ProcessedImage) error {
	r.mu.Lock()
	r.results[result.ID] = result
	r.mu.Unlock()

	return nil
}

// Get возвращает результат по ID
func (r *MemoryResultRepository) Get(ctx context.Context, id string) (*entity.ProcessedImage, error) {
	r.mu.RLock()
	result, exists := r.results[id]
	r.mu.RUnlock()

	if !exists {
		return nil, entity.ErrResultNotFound
	}
	return result, nil
}

// DeleteOlderThan удаляет результаты, созданные до before
func (r *MemoryResultRepository) DeleteOlderThan(ctx context.Context, before time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := 0
	for id, result := range r.results {
		if result.CreatedAt.Before(before) {
			delete(r.results, id)
			deleted++
		}
	}

	return deleted, nil
}

// Len возвращает число сохранённых результатов
func (r *MemoryResultRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.results)
}

// Проверка реализации интерфейса
var _ port.ResultRepository = (*MemoryResultRepository)(nil)
