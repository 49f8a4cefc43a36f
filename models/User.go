package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	ID               uint   `gorm:"primaryKey" json:"id"`
	Username         string `gorm:"unique;not null" json:"username" validate:"required,min=3,max=50"`
	Email            string `gorm:"unique;not null" json:"email" validate:"required,email"`
	Password         string `gorm:"not null" json:"-" validate:"required,min=6"`
	Role             string `gorm:"not null;default:user" json:"role" validate:"omitempty,oneof=user admin"`
	Address          string `json:"address"`
	Phone            string `json:"phone"`
	Avatar           string `json:"avatar"`
	TwoFactorEnabled bool   `gorm:"default:false" json:"two_factor_enabled"`
}

// RegisterInput - validated registration payload
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=100"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
}

// LoginInput - email or username plus password
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// UpdateProfileInput - partial profile update
type UpdateProfileInput struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=50"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Address  *string `json:"address"`
	Phone    *string `json:"phone"`
	Password *string `json:"password" validate:"omitempty,min=6,max=100"`
}
