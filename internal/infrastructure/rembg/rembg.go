// Package rembg удаляет фон с изображений: локальной моделью U²-Net через
// onnxruntime или через HTTP-сервер rembg.
package rembg

import (
	"context"
	"fmt"
	"image"
	"time"

	"cv-filters/internal/domain/entity"
)

// Режимы удаления фона
const (
	ModeONNX = "onnx" // локальная модель U²-Net
	ModeHTTP = "http" // сервер `rembg s`
	ModeNone = "none" // удаление фона выключено
)

// Remover удаляет фон и освобождает ресурсы при Close.
type Remover interface {
	Remove(ctx context.Context, img image.Image) (image.Image, error)
	Close() error
}

// Config параметры выбора реализации
type Config struct {
	Mode        string
	ModelPath   string
	LibraryPath string
	URL         string
	Timeout     time.Duration
}

// New создаёт реализацию по режиму из конфигурации.
func New(cfg Config) (Remover, error) {
	switch cfg.Mode {
	case ModeONNX:
		return NewU2Net(U2NetConfig{
			ModelPath:   cfg.ModelPath,
			LibraryPath: cfg.LibraryPath,
		})
	case ModeHTTP:
		return NewRemote(cfg.URL, cfg.Timeout), nil
	case ModeNone, "":
		return NewDisabled(), nil
	default:
		return nil, fmt.Errorf("unknown rembg mode %q", cfg.Mode)
	}
}

// Disabled используется, когда удаление фона не настроено: каждый вызов
// возвращает entity.ErrRemoverDisabled.
type Disabled struct{}

func NewDisabled() *Disabled {
	return &Disabled{}
}

func (d *Disabled) Remove(ctx context.Context, img image.Image) (image.Image, error) {
	return nil, entity.ErrRemoverDisabled
}

func (d *Disabled) Close() error {
	return nil
}
