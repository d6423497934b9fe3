package models

import "garage-be/internal/entities"

// SerializeUser projects a user with its profile and favourited cars.
// Favourites whose car no longer exists are skipped.
func SerializeUser(u *entities.User) UserResponse {
	resp := UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Age:        u.Age,
		Favourites: make([]CarResponse, 0, len(u.Favourites)),
	}
	if u.Profile != nil {
		p := SerializeProfile(u.Profile)
		resp.Profile = &p
	}
	for _, fav := range u.Favourites {
		if fav == nil || fav.Car == nil {
			continue
		}
		resp.Favourites = append(resp.Favourites, SerializeCar(fav.Car))
	}
	return resp
}

func SerializeProfile(p *entities.Profile) ProfileResponse {
	return ProfileResponse{
		UserID: p.UserID,
		Title:  p.Title,
		Bio:    p.Bio,
	}
}

// SerializeCar projects a car with the users who favourited it.
// Favourites whose user no longer exists are skipped.
func SerializeCar(c *entities.Car) CarResponse {
	resp := CarResponse{
		ID:          c.ID,
		Model:       c.Model,
		Year:        c.Year,
		Name:        c.Name,
		FavouriteOf: make([]UserRef, 0, len(c.Favourites)),
	}
	for _, fav := range c.Favourites {
		if fav == nil || fav.User == nil {
			continue
		}
		resp.FavouriteOf = append(resp.FavouriteOf, UserRef{ID: fav.User.ID, Email: fav.User.Email})
	}
	return resp
}

func SerializeFavourite(f *entities.Favourite) FavouriteResponse {
	resp := FavouriteResponse{ID: f.ID}
	if f.User != nil {
		resp.User = &UserRef{ID: f.User.ID, Email: f.User.Email}
	}
	if f.Car != nil {
		resp.Car = &CarRef{ID: f.Car.ID, Name: f.Car.Name}
	}
	return resp
}

func SerializeUsers(users []*entities.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = SerializeUser(u)
	}
	return out
}

func SerializeProfiles(profiles []*entities.Profile) []ProfileResponse {
	out := make([]ProfileResponse, len(profiles))
	for i, p := range profiles {
		out[i] = SerializeProfile(p)
	}
	return out
}

func SerializeCars(cars []*entities.Car) []CarResponse {
	out := make([]CarResponse, len(cars))
	for i, c := range cars {
		out[i] = SerializeCar(c)
	}
	return out
}

func SerializeFavourites(favs []*entities.Favourite) []FavouriteResponse {
	out := make([]FavouriteResponse, len(favs))
	for i, f := range favs {
		out[i] = SerializeFavourite(f)
	}
	return out
}
