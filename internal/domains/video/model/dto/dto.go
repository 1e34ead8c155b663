package dto

import (
	"mime/multipart"
	"strings"

	mediaModel "studio/internal/domains/media/model"
	mediaDto "studio/internal/domains/media/model/dto"
	"studio/internal/domains/video/model"
	gDto "studio/shared/dto"
	gModel "studio/shared/model"
	"studio/shared/timezone"

	"github.com/google/uuid"
)

const (
	MessageDeleted   = "Video deleted successfully"
	MessageNoContent = "No video or link provided"
)

type CreateVideoRequest struct {
	Video    *multipart.FileHeader `form:"video"    swaggerignore:"true" validate:"omitempty,maxfilesize=150"`
	URL      string                `form:"url"      validate:"omitempty,url,max=2000"`
	Title    string                `form:"title"    validate:"required,max=200"`
	Category string                `form:"category" validate:"omitempty,max=100"`
}

func (c *CreateVideoRequest) Normalize() {
	c.URL = strings.TrimSpace(c.URL)
	c.Title = strings.TrimSpace(c.Title)

	c.Category = strings.TrimSpace(c.Category)
	if c.Category == "" {
		c.Category = model.DefaultCategory
	}
}

func (c *CreateVideoRequest) ToModel(asset mediaModel.Asset, user string) model.Video {
	now := timezone.Now()

	return model.Video{
		ID:       uuid.NewString(),
		Asset:    asset,
		Title:    c.Title,
		Category: c.Category,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateVideoRequest struct {
	Title    *string `db:"title"    json:"title"    validate:"omitempty,min=1,max=200"`
	Category *string `db:"category" json:"category" validate:"omitempty,max=100"`
}

func (u *UpdateVideoRequest) Normalize() {
	if u.Category == nil {
		return
	}

	category := strings.TrimSpace(*u.Category)
	if category == "" {
		category = model.DefaultCategory
	}

	u.Category = &category
}

type VideoResponse struct {
	ID string `json:"id"`
	mediaDto.AssetResponse
	Title    string `json:"title"`
	Category string `json:"category"`
	gDto.Metadata
}

func (r *VideoResponse) FromModel(model model.Video, baseURL string) {
	r.ID = model.ID
	r.AssetResponse.FromModel(model.Asset, baseURL)
	r.Title = model.Title
	r.Category = model.Category
	r.Metadata.FromModel(model.Metadata)
}

func FromModels(models []model.Video, baseURL string) []VideoResponse {
	res := make([]VideoResponse, len(models))
	for i, m := range models {
		res[i].FromModel(m, baseURL)
	}

	return res
}
