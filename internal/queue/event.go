// Package queue defines message payloads exchanged over the message broker
// and the consumer that records them.
package queue

// ReviewQueueName is the durable queue carrying ReviewCreatedEvent messages.
const ReviewQueueName = "review.created"

// ReviewCreatedEvent is published after a review has been stored.  It carries
// enough for downstream consumers to log or notify without querying the
// primary database.
type ReviewCreatedEvent struct {
	ReviewID       uint   `json:"review_id"`
	RestaurantID   uint   `json:"restaurant_id"`
	RestaurantName string `json:"restaurant_name"`
	UserName       string `json:"user_name"`
	Rating         int    `json:"rating"`
	ReviewDate     string `json:"review_date"`

	// Restaurant totals after this review; zero when they could not be read.
	ReviewCount int     `json:"review_count"`
	AvgRating   float64 `json:"avg_rating"`
}
