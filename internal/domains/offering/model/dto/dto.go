package dto

import (
	"mime/multipart"
	"strings"

	mediaModel "studio/internal/domains/media/model"
	mediaDto "studio/internal/domains/media/model/dto"
	"studio/internal/domains/offering/model"
	gDto "studio/shared/dto"
	gModel "studio/shared/model"
	"studio/shared/timezone"

	"github.com/google/uuid"
)

const MessageDeleted = "Service deleted"

type CreateOfferingRequest struct {
	Image       *multipart.FileHeader `form:"image"       swaggerignore:"true" validate:"omitempty,mimetypes=image/jpeg image/jpg image/png image/gif image/webp image/bmp image/tiff,maxfilesize=20"`
	Title       string                `form:"title"       validate:"required,max=200"`
	Description string                `form:"description" validate:"omitempty,max=5000"`
	Price       float64               `form:"price"       validate:"gte=0"`
}

func (c *CreateOfferingRequest) ToModel(asset mediaModel.Asset, user string) model.Offering {
	now := timezone.Now()

	return model.Offering{
		ID:          uuid.NewString(),
		Asset:       asset,
		Title:       strings.TrimSpace(c.Title),
		Description: strings.TrimSpace(c.Description),
		Price:       c.Price,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateOfferingRequest struct {
	Image       *multipart.FileHeader `db:"-"           form:"image"       swaggerignore:"true" validate:"omitempty,mimetypes=image/jpeg image/jpg image/png image/gif image/webp image/bmp image/tiff,maxfilesize=20"`
	Title       *string               `db:"title"       form:"title"       validate:"omitempty,min=1,max=200"`
	Description *string               `db:"description" form:"description" validate:"omitempty,max=5000"`
	Price       *float64              `db:"price"       form:"price"       validate:"omitempty,gte=0"`
}

type OfferingResponse struct {
	ID string `json:"id"`
	mediaDto.AssetResponse
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	gDto.Metadata
}

func (r *OfferingResponse) FromModel(model model.Offering, baseURL string) {
	r.ID = model.ID
	r.AssetResponse.FromModel(model.Asset, baseURL)
	r.Title = model.Title
	r.Description = model.Description
	r.Price = model.Price
	r.Metadata.FromModel(model.Metadata)
}

func FromModels(models []model.Offering, baseURL string) []OfferingResponse {
	res := make([]OfferingResponse, len(models))
	for i, m := range models {
		res[i].FromModel(m, baseURL)
	}

	return res
}
