package concurrent

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Naurose/Project-GameVault/db"
	"github.com/Naurose/Project-GameVault/models"
)

// The queries behind a game detail page and the admin dashboard are
// independent of each other, so both fan out across goroutines instead
// of running the statements back to back.

type GameDetails struct {
	Game         models.Game
	Reviews      []models.Review
	RelatedGames []models.Game
	Statistics   GameStatistics
}

type GameStatistics struct {
	TotalReviews  int64
	AverageRating float64
	TotalOwners   int64
}

// FetchGameWithDetails loads a game and its related data in parallel.
func FetchGameWithDetails(gameID uint) (*GameDetails, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result := &GameDetails{}

	gameChan := make(chan error, 1)
	reviewsChan := make(chan []models.Review, 1)
	relatedChan := make(chan []models.Game, 1)
	statsChan := make(chan GameStatistics, 1)

	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		var game models.Game
		err := db.DB.First(&game, gameID).Error
		if err != nil {
			gameChan <- err
			return
		}
		result.Game = game
		gameChan <- nil
	}()

	go func() {
		defer wg.Done()
		var reviews []models.Review
		err := db.DB.Where("game_id = ?", gameID).
			Preload("User").
			Order("review_date DESC").
			Limit(10).
			Find(&reviews).Error
		if err != nil {
			reviewsChan <- nil
		} else {
			reviewsChan <- reviews
		}
	}()

	// Related games need the genre from the main row first.
	go func() {
		defer wg.Done()
		select {
		case err := <-gameChan:
			gameChan <- err
		case <-ctx.Done():
			relatedChan <- nil
			return
		}

		var related []models.Game
		if result.Game.ID != 0 {
			db.DB.Where("genre = ? AND id != ?", result.Game.Genre, gameID).
				Limit(5).
				Find(&related)
		}
		relatedChan <- related
	}()

	go func() {
		defer wg.Done()
		stats := GameStatistics{}

		var statsWg sync.WaitGroup
		statsWg.Add(3)

		go func() {
			defer statsWg.Done()
			db.DB.Model(&models.Review{}).Where("game_id = ?", gameID).Count(&stats.TotalReviews)
		}()

		go func() {
			defer statsWg.Done()
			var avg struct{ Avg float64 }
			db.DB.Model(&models.Review{}).
				Select("AVG(rating) as avg").
				Where("game_id = ?", gameID).
				Scan(&avg)
			stats.AverageRating = avg.Avg
		}()

		go func() {
			defer statsWg.Done()
			db.DB.Model(&models.LibraryEntry{}).Where("game_id = ?", gameID).Count(&stats.TotalOwners)
		}()

		statsWg.Wait()
		statsChan <- stats
	}()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return nil, fmt.Errorf("timeout fetching game details")
	}

	select {
	case err := <-gameChan:
		if err != nil {
			return nil, err
		}
	default:
	}

	result.Reviews = <-reviewsChan
	result.RelatedGames = <-relatedChan
	result.Statistics = <-statsChan

	return result, nil
}

// DashboardStats aggregates storefront counters for the admin view.
type DashboardStats struct {
	TotalUsers     int64   `json:"total_users"`
	TotalGames     int64   `json:"total_games"`
	TotalReviews   int64   `json:"total_reviews"`
	TotalPurchases int64   `json:"total_purchases"`
	TotalRevenue   float64 `json:"total_revenue"`
	ActiveRentals  int64   `json:"active_rentals"`
}

// CalculateDashboardStats runs each COUNT / SUM in its own goroutine.
func CalculateDashboardStats() DashboardStats {
	stats := DashboardStats{}

	var wg sync.WaitGroup
	wg.Add(6)

	go func() {
		defer wg.Done()
		db.DB.Model(&models.User{}).Count(&stats.TotalUsers)
	}()
	go func() {
		defer wg.Done()
		db.DB.Model(&models.Game{}).Count(&stats.TotalGames)
	}()
	go func() {
		defer wg.Done()
		db.DB.Model(&models.Review{}).Count(&stats.TotalReviews)
	}()
	go func() {
		defer wg.Done()
		db.DB.Model(&models.Purchase{}).Count(&stats.TotalPurchases)
	}()
	go func() {
		defer wg.Done()
		var sum struct{ Total float64 }
		db.DB.Model(&models.Purchase{}).Select("COALESCE(SUM(total_amount), 0) as total").Scan(&sum)
		stats.TotalRevenue = sum.Total
	}()
	go func() {
		defer wg.Done()
		db.DB.Model(&models.LibraryEntry{}).
			Where("type = ? AND expiry_date > ?", models.AcquisitionRent, time.Now()).
			Count(&stats.ActiveRentals)
	}()

	wg.Wait()
	return stats
}
