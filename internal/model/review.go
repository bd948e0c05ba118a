package model

import "time"

// Review is a single user's rating of a restaurant.  Reviews are written
// once and never updated.  It corresponds to a row in the `review` table.
type Review struct {
	ID           uint      `gorm:"primaryKey" json:"id"`                               // review.id
	RestaurantID uint      `gorm:"column:restaurant;not null;index" json:"restaurant"` // review.restaurant
	ReviewDate   time.Time `json:"review_date"`                                        // review.review_date
	UserName     string    `gorm:"size:30" json:"user_name"`                           // review.user_name
	Rating       int       `json:"rating"`                                             // review.rating
	ReviewText   string    `gorm:"size:500" json:"review_text"`                        // review.review_text
}

// TableName keeps the singular table name used by the existing schema.
func (Review) TableName() string { return "review" }
