// Package web отдаёт HTML-страницу с фильтрами и HTTP API поверх gin.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cv-filters/internal/container"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Options параметры HTTP-сервера
type Options struct {
	UploadMaxBytes int64
	PreviewMaxSide int
}

// Server HTTP-сервер приложения
type Server struct {
	router *gin.Engine
	srv    *http.Server
}

// NewServer собирает роутер и сервер.
func NewServer(addr string, c *container.Container, opts Options) *Server {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	router.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))
	if opts.UploadMaxBytes > 0 {
		router.MaxMultipartMemory = opts.UploadMaxBytes
		router.Use(limitBody(opts.UploadMaxBytes))
	}

	h := NewHandler(c, opts.PreviewMaxSide)

	router.GET("/", h.Index)
	router.POST("/", h.Apply)
	router.GET("/results/:id/preview", h.Preview)
	router.GET("/results/:id/download", h.Download)

	api := router.Group("/api")
	api.GET("/filters", h.ListFilters)
	api.POST("/filters/:filter", h.ApplyFilter)

	router.GET("/health", h.Health)

	return &Server{
		router: router,
		srv: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler возвращает http.Handler для тестов и встраивания.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run блокируется до остановки сервера.
func (s *Server) Run() error {
	slog.Info("http server listening", "addr", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown дожидается завершения активных запросов.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		slog.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}

// limitBody ограничивает размер тела запроса.
func limitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}
