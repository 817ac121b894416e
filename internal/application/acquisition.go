package app

import (
	"context"
	"image"
	"io"
	"slices"
	"strings"

	"cv-filters/internal/domain/entity"
	"cv-filters/internal/domain/port"
)

// Upload загруженный пользователем файл
type Upload struct {
	Name   string
	Reader io.Reader
}

// AcquireRequest все способы указать изображение; используется первый заполненный.
type AcquireRequest struct {
	Path   string
	Upload *Upload
	Sample string
}

// ImageService получает изображения из пути, загрузки или примеров
type ImageService struct {
	source        port.ImageSource
	defaultSample string
}

// NewImageService создаёт сервис; defaultSample показывается, пока ничего не выбрано.
func NewImageService(source port.ImageSource, defaultSample string) *ImageService {
	return &ImageService{source: source, defaultSample: defaultSample}
}

// Acquire выбирает источник в порядке: путь, загрузка, пример.
func (s *ImageService) Acquire(ctx context.Context, req AcquireRequest) (image.Image, entity.Source, error) {
	if path := strings.TrimSpace(req.Path); path != "" {
		src := entity.Source{Kind: entity.SourcePath, Ref: path}
		img, err := s.source.Open(ctx, path)
		return img, src, err
	}

	if req.Upload != nil {
		src := entity.Source{Kind: entity.SourceUpload, Ref: req.Upload.Name}
		img, err := s.source.Decode(ctx, req.Upload.Name, req.Upload.Reader)
		return img, src, err
	}

	name := req.Sample
	if name == "" {
		name = s.DefaultSample()
	}
	src := entity.Source{Kind: entity.SourceSample, Ref: name}
	img, err := s.source.Sample(ctx, name)
	return img, src, err
}

// Samples возвращает имена встроенных примеров.
func (s *ImageService) Samples() []string {
	return s.source.Samples()
}

// DefaultSample настроенный пример, если он есть среди найденных, иначе первый.
func (s *ImageService) DefaultSample() string {
	samples := s.source.Samples()
	if len(samples) == 0 {
		return ""
	}
	if slices.Contains(samples, s.defaultSample) {
		return s.defaultSample
	}
	return samples[0]
}
