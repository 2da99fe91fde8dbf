package domain

import "time"

type Attraction struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Category    string    `db:"category" json:"category"`
	Location    string    `db:"location" json:"location"`
	Price       float64   `db:"price" json:"price"`
	Duration    string    `db:"duration" json:"duration"`
	Image       string    `db:"image" json:"image"`
	Rating      float64   `db:"rating" json:"rating"`
	ReviewCount int       `db:"review_count" json:"reviewCount"`
	Tags        []string  `db:"-" json:"tags"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// PriceFor returns the catalog price for a party of visitors.
func (a *Attraction) PriceFor(visitors int) float64 {
	return a.Price * float64(visitors)
}
