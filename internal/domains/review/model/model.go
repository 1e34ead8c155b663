package model

import (
	mediaModel "studio/internal/domains/media/model"
	"studio/shared/model"
)

const (
	TableName  = "reviews"
	EntityName = "Review"

	FieldID      = "id"
	FieldName    = "name"
	FieldRating  = "rating"
	FieldComment = "comment"
)

// Review is a customer testimonial. The photo is optional, so Asset may be empty.
type Review struct {
	ID string `db:"id"`
	mediaModel.Asset
	Name    string `db:"name"`
	Rating  int    `db:"rating"`
	Comment string `db:"comment"`
	model.Metadata
}
