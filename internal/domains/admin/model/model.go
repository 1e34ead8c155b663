package model

import "studio/shared/model"

const (
	TableName  = "admins"
	EntityName = "Admin"

	FieldID       = "id"
	FieldEmail    = "email"
	FieldPassword = "password"
)

// Admin is a dashboard credential. Password holds the bcrypt hash, never the plaintext.
type Admin struct {
	ID       string `db:"id"`
	Email    string `db:"email"`
	Password string `db:"password"`
	model.Metadata
}
