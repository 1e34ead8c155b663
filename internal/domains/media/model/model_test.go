package model_test

import (
	"testing"

	"studio/internal/domains/media/model"

	"github.com/stretchr/testify/assert"
)

func TestAsset_ResolveURL(t *testing.T) {
	tests := []struct {
		name    string
		asset   model.Asset
		baseURL string
		want    string
	}{
		{
			name:    "stored asset is rebuilt from relative path",
			asset:   model.Asset{RelativePath: "gallery/compressed-1-abc.jpg", URL: "http://old-host:5000/uploads/gallery/compressed-1-abc.jpg"},
			baseURL: "https://studio.example.com",
			want:    "https://studio.example.com/uploads/gallery/compressed-1-abc.jpg",
		},
		{
			name:    "trailing slash on base",
			asset:   model.Asset{RelativePath: "reviews/a.jpg"},
			baseURL: "https://studio.example.com/",
			want:    "https://studio.example.com/uploads/reviews/a.jpg",
		},
		{
			name:    "legacy absolute uploads url gets new origin",
			asset:   model.Asset{URL: "http://localhost:5000/uploads/videos/clip.mp4"},
			baseURL: "https://cdn.example.com",
			want:    "https://cdn.example.com/uploads/videos/clip.mp4",
		},
		{
			name:    "external link is verbatim",
			asset:   model.Asset{URL: "https://www.youtube.com/watch?v=abc"},
			baseURL: "https://studio.example.com",
			want:    "https://www.youtube.com/watch?v=abc",
		},
		{
			name:    "empty asset",
			asset:   model.Asset{},
			baseURL: "https://studio.example.com",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.asset.ResolveURL(tt.baseURL))
		})
	}
}

func TestAsset_Flags(t *testing.T) {
	assert.True(t, model.Asset{}.IsEmpty())
	assert.False(t, model.Asset{URL: "https://youtu.be/x"}.IsStored())
	assert.True(t, model.Asset{RelativePath: "videos/x.mp4"}.IsStored())
}
