package entities

// Profile is owned by exactly one User
type Profile struct {
	ID     int64
	Title  string
	Bio    string
	UserID int64
}
