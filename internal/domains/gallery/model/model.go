package model

import (
	mediaModel "studio/internal/domains/media/model"
	"studio/shared/model"
)

const (
	TableName  = "gallery_images"
	EntityName = "Image"

	FieldID       = "id"
	FieldCaption  = "caption"
	FieldCategory = "category"

	DefaultCategory = "others"
)

type Image struct {
	ID string `db:"id"`
	mediaModel.Asset
	Caption  string `db:"caption"`
	Category string `db:"category"`
	model.Metadata
}
