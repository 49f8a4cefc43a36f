package ledger

import (
	"errors"
	"time"

	"github.com/Naurose/Project-GameVault/models"
	"gorm.io/gorm"
)

var (
	ErrAlreadyOwned = errors.New("you already own this game")
	ErrActiveRental = errors.New("you already have an active rental for this game")
)

// CheckAcquisition decides whether a user may acquire a game. Only the
// most recent library row for the pair is consulted: a buy blocks
// everything, an unexpired rent blocks further rents but a buy may
// supersede it, an expired rent blocks nothing.
//
// Pass the open transaction at checkout time so the check and the
// subsequent library insert serialize against concurrent checkouts;
// at cart-add time the check is advisory and runs on the plain handle.
func CheckAcquisition(tx *gorm.DB, userID, gameID uint, requestedType string) error {
	var entry models.LibraryEntry
	err := tx.Where("user_id = ? AND game_id = ?", userID, gameID).
		Order("date_added DESC").
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if entry.Type == models.AcquisitionBuy {
		return ErrAlreadyOwned
	}

	isActive := entry.ExpiryDate != nil && entry.ExpiryDate.After(time.Now())
	if isActive && requestedType == models.AcquisitionRent {
		return ErrActiveRental
	}
	return nil
}
