package model

import (
	mediaModel "studio/internal/domains/media/model"
	"studio/shared/model"
)

const (
	TableName  = "videos"
	EntityName = "Video"

	FieldID       = "id"
	FieldTitle    = "title"
	FieldCategory = "category"

	DefaultCategory = "General"
)

// Video is either an uploaded file (Asset.RelativePath set) or an external link (only Asset.URL set).
type Video struct {
	ID string `db:"id"`
	mediaModel.Asset
	Title    string `db:"title"`
	Category string `db:"category"`
	model.Metadata
}
