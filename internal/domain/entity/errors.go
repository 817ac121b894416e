package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrFileNotFound путь не существует или не является файлом
	ErrFileNotFound = errors.New("file does not exist")
	// ErrUnsupportedFormat расширение файла не поддерживается
	ErrUnsupportedFormat = errors.New("unsupported image format")
	// ErrDecode не удалось декодировать изображение
	ErrDecode = errors.New("failed to decode image")
	// ErrUnknownFilter фильтр не найден
	ErrUnknownFilter = errors.New("unknown filter")
	// ErrUnknownSample встроенного изображения с таким именем нет
	ErrUnknownSample = errors.New("unknown sample image")
	// ErrResultNotFound результат не найден или уже удалён
	ErrResultNotFound = errors.New("result not found")
	// ErrRemoverDisabled удаление фона не настроено (REMBG_MODE=none)
	ErrRemoverDisabled = errors.New("background removal is not configured")
)

// UnknownFilterError содержит имя, которое не удалось распознать.
type UnknownFilterError struct {
	Name string
}

func (e *UnknownFilterError) Error() string {
	return fmt.Sprintf("unknown filter %q", e.Name)
}

func (e *UnknownFilterError) Unwrap() error {
	return ErrUnknownFilter
}
