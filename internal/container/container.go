package container

import (
	app "cv-filters/internal/application"
	"cv-filters/internal/domain/port"
)

// Deps инфраструктура, из которой собираются сервисы
type Deps struct {
	Source         port.ImageSource
	Processor      port.ImageProcessor
	Remover        port.BackgroundRemover
	Results        port.ResultRepository
	Users          port.UserRepository
	DefaultSample  string
	PreviewMaxSide int
}

type Container struct {
	ImageService      *app.ImageService
	FilterService     *app.FilterService
	ProcessingService *app.ProcessingService
	UserService       *app.UserService
}

func New(deps Deps) *Container {
	filterService := app.NewFilterService(deps.Processor, deps.Remover)

	return &Container{
		ImageService:      app.NewImageService(deps.Source, deps.DefaultSample),
		FilterService:     filterService,
		ProcessingService: app.NewProcessingService(filterService, deps.Results, deps.PreviewMaxSide),
		UserService:       app.NewUserService(deps.Users),
	}
}
