package model

import (
	mediaModel "studio/internal/domains/media/model"
	"studio/shared/model"
)

const (
	TableName  = "services"
	EntityName = "Service"

	FieldID          = "id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldPrice       = "price"
)

// Offering is a package the studio sells, listed on the services page.
type Offering struct {
	ID string `db:"id"`
	mediaModel.Asset
	Title       string  `db:"title"`
	Description string  `db:"description"`
	Price       float64 `db:"price"`
	model.Metadata
}
