package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOutputFilename(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{"./data/images/zebra.png", "zebra_processed.png"},
		{"wallaby.png", "wallaby_processed.png"},
		{"/tmp/photo.final.jpeg", "photo_processed.png"},
		{`C:\Users\me\cat.jpg`, "cat_processed.png"},
		{"noext", "noext_processed.png"},
		{"", "_processed.png"},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			require.Equal(t, tt.want, OutputFilename(tt.ref))
		})
	}
}

func TestSource_OutputFilename(t *testing.T) {
	s := Source{Kind: SourceUpload, Ref: "dog.JPG"}
	require.Equal(t, "dog_processed.png", s.OutputFilename())
}

func TestProcessedImage_Expired(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	p := &ProcessedImage{CreatedAt: now.Add(-20 * time.Minute)}
	require.True(t, p.Expired(now, 15*time.Minute))
	require.False(t, p.Expired(now, 30*time.Minute))
}
