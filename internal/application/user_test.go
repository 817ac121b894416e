package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"cv-filters/internal/domain/entity"
	"cv-filters/internal/infrastructure/storage"
)

func TestUserService_AwaitPhotoAndCancel(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, err := svc.AwaitPhoto(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingPhoto, user.State)

	user, err = svc.Cancel(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, user.State)
}

func TestUserService_SetState(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, err := svc.SetState(ctx, 2, 20, entity.StateProcessing)
	require.NoError(t, err)
	require.Equal(t, entity.StateProcessing, user.State)
}

func TestUserService_SelectFilter(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	_, err := svc.SelectFilter(ctx, 3, 30, entity.FilterLaplacian)
	require.NoError(t, err)

	user, err := svc.Get(ctx, 3, 30)
	require.NoError(t, err)
	require.Equal(t, entity.FilterLaplacian, user.Filter)
	require.Equal(t, entity.StateAwaitingPhoto, user.State)
}

func TestUserService_BeginAndFinishProcessing(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, ok, err := svc.BeginProcessing(ctx, 3, 30)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, entity.StateProcessing, user.State)

	_, ok, err = svc.BeginProcessing(ctx, 3, 30)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, svc.FinishProcessing(ctx, 3))
	user, err = svc.Get(ctx, 3, 30)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingPhoto, user.State)
}
