package models

// CreateProfileRequest represents the request body for POST /users/:id/profile
type CreateProfileRequest struct {
	Title *string `json:"title" binding:"required,max=20"`
	Bio   *string `json:"bio" binding:"required,max=120"`
}

type ProfilePatch struct {
	Title *string `json:"title" binding:"omitempty,max=20"`
	Bio   *string `json:"bio" binding:"omitempty,max=120"`
}

func (p ProfilePatch) IsEmpty() bool {
	return p.Title == nil && p.Bio == nil
}
