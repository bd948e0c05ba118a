// Package repository contains data access logic separated from HTTP handlers.
// This file holds the restaurant queries.
package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/iliyamo/restaurant-reviews/internal/model"
)

// RestaurantRepo encapsulates all database queries related to restaurants.
type RestaurantRepo struct {
	db *gorm.DB
}

// NewRestaurantRepo constructs a RestaurantRepo with the provided DB handle.
func NewRestaurantRepo(db *gorm.DB) *RestaurantRepo {
	return &RestaurantRepo{db: db}
}

// Create inserts a restaurant.  On success r.ID holds the generated id.
func (r *RestaurantRepo) Create(ctx context.Context, rest *model.Restaurant) error {
	if err := r.db.WithContext(ctx).Omit("Reviews").Create(rest).Error; err != nil {
		return fmt.Errorf("create restaurant: %w", err)
	}
	return nil
}

// GetByID fetches a restaurant by id.  It returns ErrRestaurantNotFound when
// no row matches.
func (r *RestaurantRepo) GetByID(ctx context.Context, id uint) (*model.Restaurant, error) {
	var rest model.Restaurant
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("get restaurant %d: %w", id, err)
	}
	return &rest, nil
}

// ListAll returns every restaurant ordered by id.
func (r *RestaurantRepo) ListAll(ctx context.Context) ([]model.Restaurant, error) {
	var out []model.Restaurant
	if err := r.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	return out, nil
}
