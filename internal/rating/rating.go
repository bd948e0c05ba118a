// Package rating computes the star rating shown next to a restaurant.
package rating

import (
	"context"
	"math"
)

// Summary is the aggregate of a restaurant's reviews.
type Summary struct {
	ReviewCount  int     `json:"review_count"`
	AvgRating    float64 `json:"avg_rating"`
	StarsPercent int     `json:"stars_percent"`
}

// Summarize returns the review count, mean rating and the share of five
// stars the mean represents, rounded half to even.  An empty input yields
// the zero Summary.
func Summarize(ratings []int) Summary {
	if len(ratings) == 0 {
		return Summary{}
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	avg := float64(sum) / float64(len(ratings))
	return Summary{
		ReviewCount:  len(ratings),
		AvgRating:    avg,
		StarsPercent: int(math.RoundToEven(avg / 5.0 * 100)),
	}
}

// RatingSource returns the ratings of one restaurant.
type RatingSource interface {
	RatingsByRestaurant(ctx context.Context, restaurantID uint) ([]int, error)
}

// Service summarizes ratings fetched from a RatingSource.  Results are not
// cached: a review added between two requests shows up in the second.
type Service struct {
	src RatingSource
}

// NewService constructs a Service over src.
func NewService(src RatingSource) *Service {
	return &Service{src: src}
}

// ForRestaurant loads and summarizes the ratings of one restaurant.
func (s *Service) ForRestaurant(ctx context.Context, restaurantID uint) (Summary, error) {
	ratings, err := s.src.RatingsByRestaurant(ctx, restaurantID)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(ratings), nil
}
