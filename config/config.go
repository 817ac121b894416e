package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr        string
	SamplesDir      string
	DefaultSample   string
	UploadMaxBytes  int64
	PreviewMaxSide  int
	ResultTTL       time.Duration
	CleanupSchedule string

	RembgMode      string
	RembgModelPath string
	OnnxRuntimeLib string
	RembgURL       string
	RembgTimeout   time.Duration

	TelegramToken string
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:        getEnv("HTTP_ADDR", ":8501"),
		SamplesDir:      getEnv("SAMPLES_DIR", "./data/images"),
		DefaultSample:   getEnv("DEFAULT_SAMPLE", "zebra.png"),
		CleanupSchedule: getEnv("CLEANUP_SCHEDULE", "@every 1m"),
		RembgMode:       getEnv("REMBG_MODE", "none"),
		RembgModelPath:  getEnv("REMBG_MODEL_PATH", "./models/u2net.onnx"),
		OnnxRuntimeLib:  os.Getenv("ONNXRUNTIME_LIB"),
		RembgURL:        getEnv("REMBG_URL", "http://localhost:7000"),
		TelegramToken:   os.Getenv("TELEGRAM_TOKEN"),
	}

	var err error
	if cfg.UploadMaxBytes, err = getInt64("UPLOAD_MAX_BYTES", 50<<20); err != nil {
		return nil, err
	}
	maxSide, err := getInt64("PREVIEW_MAX_SIDE", 1024)
	if err != nil {
		return nil, err
	}
	cfg.PreviewMaxSide = int(maxSide)
	if cfg.ResultTTL, err = getDuration("RESULT_TTL", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.RembgTimeout, err = getDuration("REMBG_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getInt64(key string, defaultVal int64) (int64, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a non-negative integer", key, val)
	}
	return n, nil
}

func getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive duration", key, val)
	}
	return d, nil
}
