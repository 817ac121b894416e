package source

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // регистрация декодеров
	_ "image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "golang.org/x/image/webp"

	"cv-filters/internal/domain/entity"
)

// uploadExtensions расширения, которые принимаются при загрузке файла
var uploadExtensions = []string{".png", ".jpg", ".jpeg"}

// sampleExtensions расширения встроенных примеров
var sampleExtensions = []string{".png", ".jpg", ".jpeg", ".webp"}

// FileSource читает изображения с диска и из загрузок
type FileSource struct {
	samplesDir string
	samples    []string
}

// NewFileSource создаёт источник и находит примеры в samplesDir.
func NewFileSource(samplesDir string) *FileSource {
	s := &FileSource{samplesDir: samplesDir}

	entries, err := os.ReadDir(samplesDir)
	if err != nil {
		slog.Warn("samples directory is not readable", "dir", samplesDir, "error", err)
		return s
	}
	for _, e := range entries {
		if e.IsDir() || !hasExtension(e.Name(), sampleExtensions) {
			continue
		}
		s.samples = append(s.samples, e.Name())
	}
	slices.Sort(s.samples)

	return s
}

// Samples возвращает имена примеров в алфавитном порядке.
func (s *FileSource) Samples() []string {
	return slices.Clone(s.samples)
}

// Open проверяет, что путь существует и это файл, и только потом читает его.
func (s *FileSource) Open(ctx context.Context, path string) (image.Image, error) {
	_ = ctx
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", entity.ErrFileNotFound, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	return decode(path, f)
}

// Decode декодирует загруженный файл с расширением png, jpg или jpeg.
func (s *FileSource) Decode(ctx context.Context, name string, r io.Reader) (image.Image, error) {
	_ = ctx
	if !hasExtension(name, uploadExtensions) {
		return nil, fmt.Errorf("%w: %s", entity.ErrUnsupportedFormat, name)
	}
	return decode(name, r)
}

// Sample декодирует встроенный пример.
func (s *FileSource) Sample(ctx context.Context, name string) (image.Image, error) {
	if !slices.Contains(s.samples, name) {
		return nil, fmt.Errorf("%w: %s", entity.ErrUnknownSample, name)
	}
	return s.Open(ctx, s.SamplePath(name))
}

// SamplePath возвращает путь к примеру на диске.
func (s *FileSource) SamplePath(name string) string {
	return filepath.Join(s.samplesDir, name)
}

func decode(name string, r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", entity.ErrDecode, name, err)
	}
	return img, nil
}

func hasExtension(name string, exts []string) bool {
	return slices.Contains(exts, strings.ToLower(filepath.Ext(name)))
}
