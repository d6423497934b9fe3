package models

// UserResponse is the public projection of a user. It has no password field.
type UserResponse struct {
	ID         int64            `json:"id"`
	Email      string           `json:"email"`
	Age        int              `json:"age"`
	Profile    *ProfileResponse `json:"profile"`
	Favourites []CarResponse    `json:"favourites"`
}

type ProfileResponse struct {
	UserID int64  `json:"user_id"`
	Title  string `json:"title"`
	Bio    string `json:"bio"`
}

type CarResponse struct {
	ID          int64     `json:"id"`
	Model       string    `json:"model"`
	Year        int       `json:"year"`
	Name        string    `json:"name"`
	FavouriteOf []UserRef `json:"favourite_of"`
}

type FavouriteResponse struct {
	ID   int64    `json:"id"`
	User *UserRef `json:"user"`
	Car  *CarRef  `json:"car"`
}

// UserRef is the short form of a user embedded in other resources
type UserRef struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// CarRef is the short form of a car embedded in other resources
type CarRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
