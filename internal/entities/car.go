package entities

// Car represents a car, optionally owned by a User
type Car struct {
	ID     int64
	Model  string
	Year   int
	Name   string
	UserID *int64 // nil when the car has no owner

	Favourites []*Favourite
}
