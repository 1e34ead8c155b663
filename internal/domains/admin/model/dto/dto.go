package dto

import (
	"strings"

	"studio/infras/jwt"
	"studio/internal/domains/admin/model"
	gDto "studio/shared/dto"
	gModel "studio/shared/model"
	"studio/shared/timezone"

	"github.com/google/uuid"
)

const (
	MessageRegistered    = "Admin registered successfully"
	MessageAlreadyExists = "Admin already exists"
)

type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

func (r *RegisterRequest) Normalize() {
	r.Email = normalizeEmail(r.Email)
}

func (r *RegisterRequest) ToModel(user, hashedPassword string) model.Admin {
	now := timezone.Now()

	return model.Admin{
		ID:       uuid.NewString(),
		Email:    r.Email,
		Password: hashedPassword,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (l *LoginRequest) Normalize() {
	l.Email = normalizeEmail(l.Email)
}

type LoginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	ExpiresIn int64  `json:"expiresIn"`
}

func (l *LoginResponse) FromToken(token *jwt.Token) {
	l.Token = token.AccessToken
	l.TokenType = token.TokenType
	l.ExpiresIn = token.ExpiresIn
}

type AdminResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	gDto.Metadata
}

func (r *AdminResponse) FromModel(model model.Admin) {
	r.ID = model.ID
	r.Email = model.Email
	r.Metadata.FromModel(model.Metadata)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
