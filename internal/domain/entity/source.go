package entity

import (
	"path"
	"strings"
)

// SourceKind откуда пришло изображение
type SourceKind string

const (
	SourcePath   SourceKind = "path"   // Путь в локальной файловой системе
	SourceUpload SourceKind = "upload" // Загруженный файл
	SourceSample SourceKind = "sample" // Встроенный пример
)

// OutputSuffix добавляется к имени исходного файла при скачивании
const OutputSuffix = "_processed.png"

// Source ссылка на исходное изображение
type Source struct {
	Kind SourceKind
	Ref  string // путь, имя загруженного файла или имя примера
}

// OutputFilename строит имя файла для скачивания: имя до первой точки + суффикс.
func (s Source) OutputFilename() string {
	return OutputFilename(s.Ref)
}

// OutputFilename отрезает директорию и всё после первой точки.
func OutputFilename(ref string) string {
	base := path.Base(strings.ReplaceAll(ref, "\\", "/"))
	if base == "." || base == "/" {
		base = ""
	}
	if i := strings.Index(base, "."); i >= 0 {
		base = base[:i]
	}
	return base + OutputSuffix
}
