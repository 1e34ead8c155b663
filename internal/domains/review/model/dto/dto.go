package dto

import (
	"mime/multipart"
	"strings"

	mediaModel "studio/internal/domains/media/model"
	mediaDto "studio/internal/domains/media/model/dto"
	"studio/internal/domains/review/model"
	gDto "studio/shared/dto"
	gModel "studio/shared/model"
	"studio/shared/timezone"

	"github.com/google/uuid"
)

const MessageDeleted = "Review deleted"

type CreateReviewRequest struct {
	Image   *multipart.FileHeader `form:"image"   swaggerignore:"true" validate:"omitempty,mimetypes=image/jpeg image/jpg image/png image/gif image/webp image/bmp image/tiff,maxfilesize=20"`
	Name    string                `form:"name"    validate:"required,max=100"`
	Rating  int                   `form:"rating"  validate:"required,min=1,max=5"`
	Comment string                `form:"comment" validate:"required,max=2000"`
}

func (c *CreateReviewRequest) ToModel(asset mediaModel.Asset, user string) model.Review {
	now := timezone.Now()

	return model.Review{
		ID:      uuid.NewString(),
		Asset:   asset,
		Name:    strings.TrimSpace(c.Name),
		Rating:  c.Rating,
		Comment: strings.TrimSpace(c.Comment),
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateReviewRequest struct {
	Image   *multipart.FileHeader `db:"-"       form:"image"   swaggerignore:"true" validate:"omitempty,mimetypes=image/jpeg image/jpg image/png image/gif image/webp image/bmp image/tiff,maxfilesize=20"`
	Name    *string               `db:"name"    form:"name"    validate:"omitempty,min=1,max=100"`
	Rating  *int                  `db:"rating"  form:"rating"  validate:"omitempty,min=1,max=5"`
	Comment *string               `db:"comment" form:"comment" validate:"omitempty,min=1,max=2000"`
}

type ReviewResponse struct {
	ID string `json:"id"`
	mediaDto.AssetResponse
	Name    string `json:"name"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
	gDto.Metadata
}

func (r *ReviewResponse) FromModel(model model.Review, baseURL string) {
	r.ID = model.ID
	r.AssetResponse.FromModel(model.Asset, baseURL)
	r.Name = model.Name
	r.Rating = model.Rating
	r.Comment = model.Comment
	r.Metadata.FromModel(model.Metadata)
}

func FromModels(models []model.Review, baseURL string) []ReviewResponse {
	res := make([]ReviewResponse, len(models))
	for i, m := range models {
		res[i].FromModel(m, baseURL)
	}

	return res
}
