package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/iliyamo/restaurant-reviews/internal/model"
)

// ReviewRepo encapsulates all database queries related to reviews.  Reviews
// are append-only, so there is no update or delete.
type ReviewRepo struct {
	db *gorm.DB
}

// NewReviewRepo constructs a ReviewRepo with the provided DB handle.
func NewReviewRepo(db *gorm.DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

// Create inserts a review.  The caller sets ReviewDate.
func (r *ReviewRepo) Create(ctx context.Context, rev *model.Review) error {
	if err := r.db.WithContext(ctx).Create(rev).Error; err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

// ListByRestaurant returns the reviews of one restaurant in insertion order.
func (r *ReviewRepo) ListByRestaurant(ctx context.Context, restaurantID uint) ([]model.Review, error) {
	var out []model.Review
	err := r.db.WithContext(ctx).
		Where("restaurant = ?", restaurantID).
		Order("id").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list reviews of %d: %w", restaurantID, err)
	}
	return out, nil
}

// RatingsByRestaurant returns only the rating column of one restaurant's reviews.
func (r *ReviewRepo) RatingsByRestaurant(ctx context.Context, restaurantID uint) ([]int, error) {
	var ratings []int
	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Where("restaurant = ?", restaurantID).
		Pluck("rating", &ratings).Error
	if err != nil {
		return nil, fmt.Errorf("ratings of %d: %w", restaurantID, err)
	}
	return ratings, nil
}

// RatingsByRestaurants returns ratings grouped by restaurant id for a page of
// restaurants in one query.  Restaurants without reviews are absent from the map.
func (r *ReviewRepo) RatingsByRestaurants(ctx context.Context, restaurantIDs []uint) (map[uint][]int, error) {
	out := make(map[uint][]int, len(restaurantIDs))
	if len(restaurantIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		Restaurant uint
		Rating     int
	}
	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Select("restaurant, rating").
		Where("restaurant IN ?", restaurantIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("ratings of restaurants: %w", err)
	}
	for _, row := range rows {
		out[row.Restaurant] = append(out[row.Restaurant], row.Rating)
	}
	return out, nil
}
