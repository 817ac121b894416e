package app

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cv-filters/internal/domain/entity"
	"cv-filters/internal/infrastructure/storage"
)

func newProcessingService(previewMaxSide int) (*ProcessingService, *storage.MemoryResultRepository) {
	repo := storage.NewMemoryResultRepository()
	filters := NewFilterService(&fakeProcessor{}, &fakeRemover{})
	return NewProcessingService(filters, repo, previewMaxSide), repo
}

func TestProcessingService_Process(t *testing.T) {
	svc, repo := newProcessingService(8)
	ctx := context.Background()
	src := entity.Source{Kind: entity.SourceSample, Ref: "./data/images/zebra.png"}

	result, err := svc.Process(ctx, src, solid(20, 10), entity.FilterGrayscale)
	require.NoError(t, err)
	require.NotEmpty(t, result.ID)
	require.Equal(t, "zebra_processed.png", result.Filename)
	require.Equal(t, entity.FilterGrayscale, result.Filter)
	require.Equal(t, 20, result.Width)
	require.Equal(t, 10, result.Height)
	require.Equal(t, 1, repo.Len())

	full, err := png.Decode(bytes.NewReader(result.Result))
	require.NoError(t, err)
	require.Equal(t, 20, full.Bounds().Dx())

	preview, err := png.Decode(bytes.NewReader(result.Preview))
	require.NoError(t, err)
	require.Equal(t, 8, preview.Bounds().Dx())
	require.Equal(t, 4, preview.Bounds().Dy())

	stored, err := svc.Result(ctx, result.ID)
	require.NoError(t, err)
	require.Same(t, result, stored)
}

func TestProcessingService_Process_SmallImageKeepsPreview(t *testing.T) {
	svc, _ := newProcessingService(1024)

	result, err := svc.Process(context.Background(), entity.Source{Ref: "a.png"}, solid(4, 4), entity.FilterCanny)
	require.NoError(t, err)
	require.Equal(t, result.Result, result.Preview)
}

func TestProcessingService_Process_UnknownFilter(t *testing.T) {
	svc, repo := newProcessingService(0)

	_, err := svc.Process(context.Background(), entity.Source{Ref: "a.png"}, solid(4, 4), "Sepia")
	require.True(t, errors.Is(err, entity.ErrUnknownFilter))
	require.Zero(t, repo.Len())
}

func TestProcessingService_Cleanup(t *testing.T) {
	svc, repo := newProcessingService(0)
	ctx := context.Background()

	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	_, err := svc.Process(ctx, entity.Source{Ref: "a.png"}, solid(2, 2), entity.FilterGrayscale)
	require.NoError(t, err)

	now = now.Add(10 * time.Minute)
	deleted, err := svc.Cleanup(ctx, 15*time.Minute)
	require.NoError(t, err)
	require.Zero(t, deleted)

	now = now.Add(10 * time.Minute)
	deleted, err = svc.Cleanup(ctx, 15*time.Minute)
	require.NoError(t, err)
	require.Equal(t, 1, deleted)
	require.Zero(t, repo.Len())
}
