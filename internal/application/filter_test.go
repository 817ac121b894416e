package app

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/require"

	"cv-filters/internal/domain/entity"
)

func TestFilterService_Dispatch(t *testing.T) {
	remover := &fakeRemover{}
	svc := NewFilterService(&fakeProcessor{}, remover)
	ctx := context.Background()

	tests := []struct {
		filter entity.FilterName
		mark   uint8
	}{
		{entity.FilterGrayscale, 1},
		{entity.FilterLaplacian, 2},
		{entity.FilterCanny, 3},
	}
	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			out, err := svc.Apply(ctx, tt.filter, solid(6, 4))
			require.NoError(t, err)
			gray := out.(*image.Gray)
			require.Equal(t, tt.mark, gray.Pix[0])
			require.Equal(t, image.Rect(0, 0, 6, 4), gray.Bounds())
		})
	}

	out, err := svc.Apply(ctx, entity.FilterRemoveBackground, solid(6, 4))
	require.NoError(t, err)
	require.True(t, remover.called)
	require.IsType(t, &image.NRGBA{}, out)
}

func TestFilterService_UnknownFilter(t *testing.T) {
	svc := NewFilterService(&fakeProcessor{}, &fakeRemover{})

	_, err := svc.Apply(context.Background(), "Sepia", solid(2, 2))
	require.True(t, errors.Is(err, entity.ErrUnknownFilter))
}

func TestFilterService_Error(t *testing.T) {
	svc := NewFilterService(&fakeProcessor{err: errBoom}, &fakeRemover{})

	_, err := svc.Apply(context.Background(), entity.FilterCanny, solid(2, 2))
	require.True(t, errors.Is(err, errBoom))
	require.Contains(t, err.Error(), "Canny Edge Detection")
}

func TestFilterService_Names(t *testing.T) {
	svc := NewFilterService(&fakeProcessor{}, &fakeRemover{})
	require.Equal(t, entity.Filters(), svc.Names())
}
