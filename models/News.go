package models

import "time"

type NewsArticle struct {
	ID        uint      `gorm:"primaryKey" json:"article_id"`
	Title     string    `gorm:"not null" json:"title" validate:"required"`
	Content   string    `gorm:"not null" json:"content" validate:"required"`
	Image     string    `json:"image"`
	UserID    uint      `json:"userId"`
	CreatedAt time.Time `json:"created_at"`
}
