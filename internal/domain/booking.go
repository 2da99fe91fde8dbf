package domain

import "time"

type Booking struct {
	ID              string     `db:"id" json:"id"`
	AttractionID    string     `db:"attraction_id" json:"attractionId"`
	UserName        string     `db:"user_name" json:"userName"`
	UserEmail       string     `db:"user_email" json:"userEmail"`
	VisitDate       time.Time  `db:"visit_date" json:"visitDate"`
	Visitors        int        `db:"visitors" json:"visitors"`
	TotalPrice      float64    `db:"total_price" json:"totalPrice"`
	SpecialRequests *string    `db:"special_requests" json:"specialRequests,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"createdAt"`
	Attraction      Attraction `db:"-" json:"attraction"`
}
