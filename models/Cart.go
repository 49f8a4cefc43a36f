package models

// Acquisition types stored on cart and library rows.
const (
	AcquisitionBuy  = "buy"
	AcquisitionRent = "rent"
)

// DefaultRentDuration is stored even for buy lines, where it is unused.
const DefaultRentDuration = 7

type CartItem struct {
	ID              uint   `gorm:"primaryKey" json:"cart_id"`
	UserID          uint   `gorm:"not null;uniqueIndex:idx_cart_user_game" json:"userId"`
	GameID          uint   `gorm:"not null;uniqueIndex:idx_cart_user_game" json:"gameId"`
	AcquisitionType string `gorm:"not null;default:buy" json:"acquisition_type"`
	RentDuration    int    `gorm:"not null;default:7" json:"rent_duration"`
	Quantity        int    `gorm:"not null;default:1" json:"quantity"`
	Game            Game   `gorm:"foreignKey:GameID" json:"game"`
}

// AddToCartInput - for add-to-cart requests
type AddToCartInput struct {
	GameID       uint   `json:"gameId" validate:"required,gte=1"`
	Type         string `json:"type" validate:"omitempty,oneof=buy rent"`
	RentDuration int    `json:"rentDuration" validate:"omitempty,gte=1"`
}
