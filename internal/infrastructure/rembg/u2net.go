package rembg

import (
	"context"
	"image"
	"image/color"
	"log/slog"
	"math"
	"os"
	"sync"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"
	"golang.org/x/image/draw"
)

// DefaultU2NetSize сторона входа модели U²-Net
const DefaultU2NetSize = 320

var (
	u2netMean = [3]float32{0.485, 0.456, 0.406}
	u2netStd  = [3]float32{0.229, 0.224, 0.225}
)

// U2NetConfig параметры локальной модели
type U2NetConfig struct {
	// Путь к u2net.onnx (или u2netp.onnx)
	ModelPath string
	// Путь к libonnxruntime; если пусто, используется путь по умолчанию onnxruntime_go
	LibraryPath string
	// Сторона квадратного входа модели
	Size int
}

// U2Net сегментирует передний план моделью U²-Net.
//
// Тензоры выделяются один раз и переиспользуются, поэтому Remove
// выполняется под мьютексом.
type U2Net struct {
	mu      sync.Mutex
	size    int
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	output  *ort.Tensor[float32]
}

// NewU2Net загружает модель и создаёт сессию onnxruntime.
func NewU2Net(cfg U2NetConfig) (*U2Net, error) {
	if cfg.Size <= 0 {
		cfg.Size = DefaultU2NetSize
	}
	if _, err := os.Stat(cfg.ModelPath); err != nil {
		return nil, errors.Wrapf(err, "u2net model not found at %s", cfg.ModelPath)
	}

	if !ort.IsInitialized() {
		if cfg.LibraryPath != "" {
			ort.SetSharedLibraryPath(cfg.LibraryPath)
		}
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, errors.Wrap(err, "initialize onnxruntime environment")
		}
	}

	inputs, outputs, err := ort.GetInputOutputInfo(cfg.ModelPath)
	if err != nil {
		return nil, errors.Wrap(err, "read model inputs and outputs")
	}
	if len(inputs) == 0 || len(outputs) == 0 {
		return nil, errors.Errorf("model %s has no inputs or outputs", cfg.ModelPath)
	}

	size := int64(cfg.Size)
	input, err := ort.NewEmptyTensor[float32](ort.NewShape(1, 3, size, size))
	if err != nil {
		return nil, errors.Wrap(err, "create input tensor")
	}
	output, err := ort.NewEmptyTensor[float32](ort.NewShape(1, 1, size, size))
	if err != nil {
		_ = input.Destroy()
		return nil, errors.Wrap(err, "create output tensor")
	}

	session, err := ort.NewAdvancedSession(
		cfg.ModelPath,
		[]string{inputs[0].Name},
		[]string{outputs[0].Name},
		[]ort.ArbitraryTensor{input},
		[]ort.ArbitraryTensor{output},
		nil,
	)
	if err != nil {
		_ = input.Destroy()
		_ = output.Destroy()
		return nil, errors.Wrap(err, "create onnxruntime session")
	}

	slog.Info("u2net session created", "model", cfg.ModelPath, "input", inputs[0].Name, "output", outputs[0].Name)

	return &U2Net{
		size:    cfg.Size,
		session: session,
		input:   input,
		output:  output,
	}, nil
}

// Remove строит маску переднего плана и использует её как альфа-канал.
func (u *U2Net) Remove(ctx context.Context, img image.Image) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if u.session == nil {
		return nil, errors.New("u2net session is closed")
	}

	prepareInput(img, u.size, u.input.GetData())
	if err := u.session.Run(); err != nil {
		return nil, errors.Wrap(err, "run u2net")
	}

	mask := maskFromOutput(u.output.GetData(), u.size)
	b := img.Bounds()
	scaled := resize.Resize(uint(b.Dx()), uint(b.Dy()), mask, resize.Lanczos3)

	return cutout(img, scaled), nil
}

// Close освобождает сессию и тензоры.
func (u *U2Net) Close() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	var firstErr error
	if u.session != nil {
		firstErr = u.session.Destroy()
		u.session = nil
	}
	if u.input != nil {
		_ = u.input.Destroy()
		u.input = nil
	}
	if u.output != nil {
		_ = u.output.Destroy()
		u.output = nil
	}
	return firstErr
}

// prepareInput масштабирует изображение до size×size, делит на максимум
// и нормализует средним и дисперсией ImageNet в раскладке CHW.
func prepareInput(img image.Image, size int, dst []float32) {
	scaled := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)

	var maxVal uint8
	for i := 0; i < len(scaled.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			if v := scaled.Pix[i+c]; v > maxVal {
				maxVal = v
			}
		}
	}
	scale := float32(math.Max(float64(maxVal), 1e-6))

	plane := size * size
	for p := 0; p < plane; p++ {
		for c := 0; c < 3; c++ {
			v := float32(scaled.Pix[p*4+c]) / scale
			dst[c*plane+p] = (v - u2netMean[c]) / u2netStd[c]
		}
	}
}

// maskFromOutput нормализует первый канал выхода в диапазон 0..255.
func maskFromOutput(data []float32, size int) *image.Gray {
	plane := data[:size*size]
	lo, hi := plane[0], plane[0]
	for _, v := range plane {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	mask := image.NewGray(image.Rect(0, 0, size, size))
	for i, v := range plane {
		mask.Pix[i] = uint8((v - lo) / span * 255)
	}
	return mask
}

// cutout накладывает изображение на прозрачный фон через маску.
func cutout(img image.Image, mask image.Image) *image.RGBA {
	b := img.Bounds()
	mb := mask.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			// RGBA() уже умножен на собственную альфу, поэтому итоговая альфа a*m
			r, g, bl, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			m, _, _, _ := mask.At(mb.Min.X+x, mb.Min.Y+y).RGBA()
			dst.SetRGBA(x, y, color.RGBA{
				R: uint8(r * m / 0xffff >> 8),
				G: uint8(g * m / 0xffff >> 8),
				B: uint8(bl * m / 0xffff >> 8),
				A: uint8(a * m / 0xffff >> 8),
			})
		}
	}
	return dst
}
