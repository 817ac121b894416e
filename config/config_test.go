package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"HTTP_ADDR", "SAMPLES_DIR", "DEFAULT_SAMPLE", "UPLOAD_MAX_BYTES", "PREVIEW_MAX_SIDE", "RESULT_TTL", "REMBG_MODE", "REMBG_TIMEOUT", "TELEGRAM_TOKEN"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8501", cfg.HTTPAddr)
	require.Equal(t, "./data/images", cfg.SamplesDir)
	require.Equal(t, "zebra.png", cfg.DefaultSample)
	require.Equal(t, int64(50<<20), cfg.UploadMaxBytes)
	require.Equal(t, 1024, cfg.PreviewMaxSide)
	require.Equal(t, 15*time.Minute, cfg.ResultTTL)
	require.Equal(t, "@every 1m", cfg.CleanupSchedule)
	require.Equal(t, "none", cfg.RembgMode)
	require.Equal(t, time.Minute, cfg.RembgTimeout)
	require.Empty(t, cfg.TelegramToken)
}

func TestLoad_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("UPLOAD_MAX_BYTES", "1024")
	t.Setenv("PREVIEW_MAX_SIDE", "256")
	t.Setenv("RESULT_TTL", "1h")
	t.Setenv("REMBG_MODE", "http")
	t.Setenv("REMBG_URL", "http://rembg:7000")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.HTTPAddr)
	require.Equal(t, int64(1024), cfg.UploadMaxBytes)
	require.Equal(t, 256, cfg.PreviewMaxSide)
	require.Equal(t, time.Hour, cfg.ResultTTL)
	require.Equal(t, "http", cfg.RembgMode)
	require.Equal(t, "http://rembg:7000", cfg.RembgURL)
}

func TestLoad_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Setenv("UPLOAD_MAX_BYTES", "lots")
	_, err := Load()
	require.ErrorContains(t, err, "UPLOAD_MAX_BYTES")

	t.Setenv("UPLOAD_MAX_BYTES", "")
	t.Setenv("RESULT_TTL", "-5m")
	_, err = Load()
	require.ErrorContains(t, err, "RESULT_TTL")
}
