package model

// Restaurant is a venue that collects reviews.  It corresponds to a row in
// the `restaurant` table.
type Restaurant struct {
	ID            uint     `gorm:"primaryKey" json:"id"`             // restaurant.id
	Name          string   `gorm:"size:50" json:"name"`              // restaurant.name
	StreetAddress string   `gorm:"size:50" json:"street_address"`    // restaurant.street_address
	Description   string   `gorm:"size:250" json:"description"`      // restaurant.description
	Reviews       []Review `gorm:"foreignKey:RestaurantID" json:"-"` // review.restaurant -> restaurant.id
}

// TableName keeps the singular table name used by the existing schema.
func (Restaurant) TableName() string { return "restaurant" }
