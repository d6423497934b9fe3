package entities

// User represents a user entity in the database
type User struct {
	ID       int64
	Email    string
	Password string // bcrypt hash, never serialized
	Age      int

	// Relations, attached by the service before serialization
	Profile    *Profile
	Favourites []*Favourite
}
