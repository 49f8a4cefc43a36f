package models

import "time"

// Purchase is one row per successful checkout. It records the charged
// total only; the library rows are the itemized record.
type Purchase struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"userId"`
	TotalAmount  float64   `gorm:"not null" json:"total_amount"`
	PurchaseDate time.Time `gorm:"autoCreateTime" json:"purchase_date"`
}
