package models

import "time"

type Review struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null" json:"userId"`
	GameID     uint      `gorm:"not null" json:"gameId" validate:"required,gte=1"`
	Rating     int       `gorm:"not null" json:"rating" validate:"required,gte=1,lte=5"`
	Comment    string    `json:"comment"`
	ReviewDate time.Time `gorm:"autoCreateTime" json:"review_date"`
	User       User      `gorm:"foreignKey:UserID" json:"user"`
}
