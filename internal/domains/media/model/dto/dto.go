package dto

import "studio/internal/domains/media/model"

// AssetResponse is the public view of a stored file. URL is always resolved against the current base URL.
type AssetResponse struct {
	Filename string `json:"filename,omitempty"`
	Path     string `json:"path,omitempty"`
	URL      string `json:"url,omitempty"`
}

func (r *AssetResponse) FromModel(asset model.Asset, baseURL string) {
	r.Filename = asset.Filename
	r.Path = asset.RelativePath
	r.URL = asset.ResolveURL(baseURL)
}
