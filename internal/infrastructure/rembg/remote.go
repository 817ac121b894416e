package rembg

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const removePath = "/api/remove"

// Remote отправляет изображение на сервер rembg (`rembg s`) и получает PNG без фона.
type Remote struct {
	baseURL string
	client  *http.Client
}

// NewRemote создаёт клиента для сервера rembg.
func NewRemote(baseURL string, timeout time.Duration) *Remote {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Remote{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

/*
	curl -X POST "$REMBG_URL/api/remove" \
	  -F "file=@image.png" -o out.png
*/
func (r *Remote) Remove(ctx context.Context, img image.Image) (image.Image, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", "image.png")
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if err := png.Encode(part, img); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+removePath, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("rembg failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	out, err := png.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	slog.Debug("background removed remotely", "url", r.baseURL, "width", out.Bounds().Dx(), "height", out.Bounds().Dy())
	return out, nil
}

func (r *Remote) Close() error {
	r.client.CloseIdleConnections()
	return nil
}
