package models

// CreateCarRequest represents the request body for POST /cars.
// UserID is optional; when present the owner must exist.
type CreateCarRequest struct {
	Model  *string `json:"model" binding:"required,max=20"`
	Year   *int    `json:"year" binding:"required,min=-2147483648,max=2147483647"`
	Name   *string `json:"name" binding:"required,max=20"`
	UserID *int64  `json:"user_id,omitempty"`
}

// CarPatch holds the fields of PUT /cars/:id. A null user_id detaches the car from its owner.
type CarPatch struct {
	Model  *string    `json:"model" binding:"omitempty,max=20"`
	Year   *int       `json:"year" binding:"omitempty,min=-2147483648,max=2147483647"`
	Name   *string    `json:"name" binding:"omitempty,max=20"`
	UserID OptionalID `json:"user_id"`
}

func (p CarPatch) IsEmpty() bool {
	return p.Model == nil && p.Year == nil && p.Name == nil && !p.UserID.Set
}
