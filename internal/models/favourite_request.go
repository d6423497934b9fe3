package models

// FavouritePatch holds the fields of PUT /favourites/:id
type FavouritePatch struct {
	UserID *int64 `json:"user_id"`
	CarID  *int64 `json:"car_id"`
}

func (p FavouritePatch) IsEmpty() bool {
	return p.UserID == nil && p.CarID == nil
}
