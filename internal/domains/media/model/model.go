package model

import (
	"net/url"
	"strings"
)

const (
	FieldFilename     = "filename"
	FieldRelativePath = "relative_path"
	FieldURL          = "url"

	UploadsPrefix = "/uploads/"
)

// Asset is a stored file reference embedded in gallery images, reviews, services and videos.
// RelativePath is the content store key; URL is the absolute URL captured at write time,
// or an external link when RelativePath is empty.
type Asset struct {
	Filename     string `db:"filename"`
	RelativePath string `db:"relative_path"`
	URL          string `db:"url"`
}

func (a Asset) IsEmpty() bool {
	return a.RelativePath == "" && a.URL == ""
}

// IsStored reports whether the asset lives in the content store.
func (a Asset) IsStored() bool {
	return a.RelativePath != ""
}

// Fields maps the asset onto its columns for partial updates.
func (a Asset) Fields() map[string]any {
	return map[string]any{
		FieldFilename:     a.Filename,
		FieldRelativePath: a.RelativePath,
		FieldURL:          a.URL,
	}
}

// ResolveURL rebuilds the public URL against baseURL.
// Stored assets are derived from RelativePath. A legacy absolute URL pointing at /uploads/
// gets its origin replaced. Anything else is an external link and is returned as is.
func (a Asset) ResolveURL(baseURL string) string {
	base := strings.TrimRight(baseURL, "/")

	if a.RelativePath != "" {
		return base + UploadsPrefix + strings.TrimLeft(a.RelativePath, "/")
	}

	if a.URL == "" {
		return ""
	}

	parsed, err := url.Parse(a.URL)
	if err != nil || !strings.HasPrefix(parsed.Path, UploadsPrefix) {
		return a.URL
	}

	resolved := base + parsed.Path
	if parsed.RawQuery != "" {
		resolved += "?" + parsed.RawQuery
	}

	return resolved
}
