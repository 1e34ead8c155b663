package dto

import (
	"mime/multipart"
	"strings"

	"studio/internal/domains/gallery/model"
	mediaModel "studio/internal/domains/media/model"
	mediaDto "studio/internal/domains/media/model/dto"
	gDto "studio/shared/dto"
	gModel "studio/shared/model"
	"studio/shared/timezone"

	"github.com/google/uuid"
)

const MessageDeleted = "Image deleted successfully"

type CreateImageRequest struct {
	Image    *multipart.FileHeader `form:"image"    swaggerignore:"true" validate:"required,mimetypes=image/jpeg image/jpg image/png image/gif image/webp image/bmp image/tiff,maxfilesize=20"`
	Caption  string                `form:"caption"  validate:"omitempty,max=500"`
	Category string                `form:"category" validate:"omitempty,max=100"`
}

// Normalize trims the category and falls back to "others".
func (c *CreateImageRequest) Normalize() {
	c.Caption = strings.TrimSpace(c.Caption)

	c.Category = strings.TrimSpace(c.Category)
	if c.Category == "" {
		c.Category = model.DefaultCategory
	}
}

func (c *CreateImageRequest) ToModel(asset mediaModel.Asset, user string) model.Image {
	now := timezone.Now()

	return model.Image{
		ID:       uuid.NewString(),
		Asset:    asset,
		Caption:  c.Caption,
		Category: c.Category,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateImageRequest struct {
	Image    *multipart.FileHeader `db:"-"        form:"image"    swaggerignore:"true" validate:"omitempty,mimetypes=image/jpeg image/jpg image/png image/gif image/webp image/bmp image/tiff,maxfilesize=20"`
	Caption  *string               `db:"caption"  form:"caption"  validate:"omitempty,max=500"`
	Category *string               `db:"category" form:"category" validate:"omitempty,max=100"`
}

func (u *UpdateImageRequest) Normalize() {
	if u.Category == nil {
		return
	}

	category := strings.TrimSpace(*u.Category)
	if category == "" {
		category = model.DefaultCategory
	}

	u.Category = &category
}

type ImageResponse struct {
	ID string `json:"id"`
	mediaDto.AssetResponse
	Caption  string `json:"caption"`
	Category string `json:"category"`
	gDto.Metadata
}

func (r *ImageResponse) FromModel(model model.Image, baseURL string) {
	r.ID = model.ID
	r.AssetResponse.FromModel(model.Asset, baseURL)
	r.Caption = model.Caption
	r.Category = model.Category
	r.Metadata.FromModel(model.Metadata)
}

func FromModels(models []model.Image, baseURL string) []ImageResponse {
	res := make([]ImageResponse, len(models))
	for i, m := range models {
		res[i].FromModel(m, baseURL)
	}

	return res
}
