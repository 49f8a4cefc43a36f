package models

type Game struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Title       string  `gorm:"not null" json:"title"`
	Genre       string  `json:"genre"`
	Description string  `json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	RentalPrice float64 `gorm:"not null" json:"rental_price"` // 7-day base rate, set independently of Price
	CoverImage  string  `json:"cover_image"`
	ReleaseDate string  `json:"release_date"`
}
