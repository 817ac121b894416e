package web

import (
	"encoding/base64"
	"errors"
	"html/template"
	"image"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	app "cv-filters/internal/application"
	"cv-filters/internal/container"
	"cv-filters/internal/domain/entity"
)

const (
	msgFileNotFound    = "File does not exist."
	msgRemoverDisabled = "Background removal is not configured. Set REMBG_MODE to onnx or http."
	contentTypePNG     = "image/png"
)

// Handler обработчики страницы и API
type Handler struct {
	images         *app.ImageService
	filters        *app.FilterService
	processing     *app.ProcessingService
	previewMaxSide int
}

// NewHandler создаёт обработчики поверх сервисов контейнера
func NewHandler(c *container.Container, previewMaxSide int) *Handler {
	return &Handler{
		images:         c.ImageService,
		filters:        c.FilterService,
		processing:     c.ProcessingService,
		previewMaxSide: previewMaxSide,
	}
}

type filterOption struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// pageData данные шаблона index.html
type pageData struct {
	Samples   []string
	Filters   []filterOption
	Path      string
	Sample    string
	Filter    string
	Error     string
	Original  template.URL
	Processed *entity.ProcessedImage
}

func (h *Handler) newPage() *pageData {
	return &pageData{
		Samples: h.images.Samples(),
		Filters: h.filterOptions(),
		Sample:  h.images.DefaultSample(),
		Filter:  string(entity.FilterRemoveBackground),
	}
}

// Index GET /: выбранный пример без обработки
func (h *Handler) Index(c *gin.Context) {
	page := h.newPage()
	if sample := c.Query("sample"); sample != "" {
		page.Sample = sample
	}
	if page.Sample == "" {
		c.HTML(http.StatusOK, "index.html", page)
		return
	}

	img, _, err := h.images.Acquire(c.Request.Context(), app.AcquireRequest{Sample: page.Sample})
	if err != nil {
		h.renderError(c, page, err)
		return
	}
	if err := h.setOriginal(page, img); err != nil {
		h.renderError(c, page, err)
		return
	}

	c.HTML(http.StatusOK, "index.html", page)
}

// Apply POST /: получает изображение и, если нажата кнопка, применяет фильтр
func (h *Handler) Apply(c *gin.Context) {
	ctx := c.Request.Context()
	page := h.newPage()
	page.Path = c.PostForm("path")
	if sample := c.PostForm("sample"); sample != "" {
		page.Sample = sample
	}
	if filter := c.PostForm("filter"); filter != "" {
		page.Filter = filter
	}

	req := app.AcquireRequest{Path: page.Path, Sample: page.Sample}
	upload, closeUpload, err := formUpload(c, "upload")
	if err != nil {
		h.renderError(c, page, err)
		return
	}
	defer closeUpload()
	req.Upload = upload

	if strings.TrimSpace(req.Path) == "" && req.Upload == nil && req.Sample == "" {
		c.HTML(http.StatusOK, "index.html", page)
		return
	}

	img, src, err := h.images.Acquire(ctx, req)
	if err != nil {
		h.renderError(c, page, err)
		return
	}
	if err := h.setOriginal(page, img); err != nil {
		h.renderError(c, page, err)
		return
	}

	if c.PostForm("apply") == "" {
		c.HTML(http.StatusOK, "index.html", page)
		return
	}

	filter, err := entity.ParseFilter(page.Filter)
	if err != nil {
		h.renderError(c, page, err)
		return
	}

	result, err := h.processing.Process(ctx, src, img, filter)
	if err != nil {
		h.renderError(c, page, err)
		return
	}
	page.Processed = result

	c.HTML(http.StatusOK, "index.html", page)
}

// Preview GET /results/:id/preview
func (h *Handler) Preview(c *gin.Context) {
	result, err := h.processing.Result(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, contentTypePNG, result.Preview)
}

// Download GET /results/:id/download: PNG в полном разрешении
func (h *Handler) Download(c *gin.Context) {
	result, err := h.processing.Result(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	sendAttachment(c, result)
}

// ListFilters GET /api/filters
func (h *Handler) ListFilters(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"filters": h.filterOptions()})
}

// ApplyFilter POST /api/filters/:filter, multipart поле file, ответ PNG
func (h *Handler) ApplyFilter(c *gin.Context) {
	ctx := c.Request.Context()

	filter, err := entity.ParseFilter(c.Param("filter"))
	if err != nil {
		respondError(c, err)
		return
	}

	upload, closeUpload, err := formUpload(c, "file")
	if err != nil {
		respondError(c, err)
		return
	}
	defer closeUpload()
	if upload == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	img, src, err := h.images.Acquire(ctx, app.AcquireRequest{Upload: upload})
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.processing.Process(ctx, src, img, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("X-Result-ID", result.ID)
	sendAttachment(c, result)
}

// Health GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) filterOptions() []filterOption {
	names := h.filters.Names()
	opts := make([]filterOption, 0, len(names))
	for _, f := range names {
		opts = append(opts, filterOption{Name: string(f), Slug: f.Slug()})
	}
	return opts
}

func (h *Handler) setOriginal(page *pageData, img image.Image) error {
	data, err := app.EncodePreview(img, h.previewMaxSide)
	if err != nil {
		return err
	}
	page.Original = template.URL("data:" + contentTypePNG + ";base64," + base64.StdEncoding.EncodeToString(data))
	return nil
}

func (h *Handler) renderError(c *gin.Context, page *pageData, err error) {
	status := statusFor(err)
	logFailure(c, status, err)
	page.Error = userMessage(err)
	c.HTML(status, "index.html", page)
}

// formUpload возвращает загруженный файл или nil, если поле пустое.
func formUpload(c *gin.Context, field string) (*app.Upload, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}
		return nil, func() {}, err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, err
	}
	return &app.Upload{Name: fh.Filename, Reader: f}, func() { closeFile(f) }, nil
}

func closeFile(f multipart.File) {
	_ = f.Close()
}

func sendAttachment(c *gin.Context, result *entity.ProcessedImage) {
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": result.Filename}))
	c.Data(http.StatusOK, contentTypePNG, result.Result)
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	logFailure(c, status, err)
	c.JSON(status, gin.H{"error": userMessage(err)})
}

func logFailure(c *gin.Context, status int, err error) {
	switch {
	case status == http.StatusServiceUnavailable:
		slog.Warn("request failed", "path", c.Request.URL.Path, "error", err)
	case status >= http.StatusInternalServerError:
		slog.Error("request failed", "path", c.Request.URL.Path, "error", err)
	}
}

func statusFor(err error) int {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.Is(err, entity.ErrFileNotFound),
		errors.Is(err, entity.ErrUnknownSample),
		errors.Is(err, entity.ErrResultNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrUnsupportedFormat),
		errors.Is(err, entity.ErrUnknownFilter):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrDecode):
		return http.StatusUnprocessableEntity
	case errors.Is(err, entity.ErrRemoverDisabled):
		return http.StatusServiceUnavailable
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, entity.ErrFileNotFound):
		return msgFileNotFound
	case errors.Is(err, entity.ErrRemoverDisabled):
		return msgRemoverDisabled
	default:
		return err.Error()
	}
}
