package domain

type User struct {
	ID     string  `db:"id" json:"id"`
	Name   string  `db:"name" json:"name"`
	Email  string  `db:"email" json:"email"`
	Avatar *string `db:"avatar" json:"avatar,omitempty"`
}
