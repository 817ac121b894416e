package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewUser_DefaultState(t *testing.T) {
	u := NewUser(1, 10)
	require.Equal(t, StateMainMenu, u.State)
	require.Equal(t, int64(1), u.ID)
	require.Equal(t, int64(10), u.ChatID)
	require.Equal(t, FilterGrayscale, u.Filter)
}

func TestUser_SelectFilter(t *testing.T) {
	u := NewUser(1, 10)
	u.SelectFilter(FilterCanny)
	require.Equal(t, FilterCanny, u.Filter)
	require.Equal(t, StateAwaitingPhoto, u.State)
}

func TestUser_BeginProcessing(t *testing.T) {
	u := NewUser(1, 10)

	require.True(t, u.BeginProcessing())
	require.Equal(t, StateProcessing, u.State)
	require.False(t, u.BeginProcessing())

	// выбор фильтра во время обработки не снимает блокировку
	u.SelectFilter(FilterLaplacian)
	require.Equal(t, FilterLaplacian, u.Filter)
	require.Equal(t, StateProcessing, u.State)
}
