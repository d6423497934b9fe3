package entities

// Favourite links a User to a Car. Either side may be gone by the time the
// favourite is read, in which case the matching relation stays nil.
type Favourite struct {
	ID     int64
	UserID int64
	CarID  int64

	User *User
	Car  *Car
}
