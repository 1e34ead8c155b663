package dto

import (
	"strings"

	"studio/internal/domains/inquiry/model"
	gDto "studio/shared/dto"
	gModel "studio/shared/model"
	"studio/shared/timezone"

	"github.com/google/uuid"
)

const (
	MessageCreated  = "Inquiry sent successfully"
	MessageRequired = "All fields are required"
)

type CreateInquiryRequest struct {
	Name    string `json:"name"    validate:"required,max=100"`
	Email   string `json:"email"   validate:"required,email,max=100"`
	Message string `json:"message" validate:"required,max=5000"`
}

func (c *CreateInquiryRequest) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Message = strings.TrimSpace(c.Message)
}

func (c *CreateInquiryRequest) ToModel(user string) model.Inquiry {
	now := timezone.Now()

	return model.Inquiry{
		ID:      uuid.NewString(),
		Name:    c.Name,
		Email:   c.Email,
		Message: c.Message,
		Status:  model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateStatusRequest struct {
	Status model.Status `db:"status" json:"status" validate:"required,oneof=pending responded closed"`
}

type InquiryResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Status  string `json:"status"`
	gDto.Metadata
}

func (r *InquiryResponse) FromModel(model model.Inquiry) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Message = model.Message
	r.Status = string(model.Status)
	r.Metadata.FromModel(model.Metadata)
}

func FromModels(models []model.Inquiry) []InquiryResponse {
	res := make([]InquiryResponse, len(models))
	for i, m := range models {
		res[i].FromModel(m)
	}

	return res
}

// Incomplete reports a blank required field, which clients get as a single message.
func (c *CreateInquiryRequest) Incomplete() bool {
	return strings.TrimSpace(c.Name) == "" || strings.TrimSpace(c.Email) == "" || strings.TrimSpace(c.Message) == ""
}
