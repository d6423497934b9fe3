package models

// CreateUserRequest represents the request body for POST /users
type CreateUserRequest struct {
	Email    *string `json:"email" binding:"required,max=120"`
	Password *string `json:"password" binding:"required"`
	Age      *int    `json:"age" binding:"required,min=-2147483648,max=2147483647"`
}

// UserPatch holds the fields of PUT /users/:id; nil fields are left untouched
type UserPatch struct {
	Email    *string `json:"email" binding:"omitempty,max=120"`
	Password *string `json:"password"`
	Age      *int    `json:"age" binding:"omitempty,min=-2147483648,max=2147483647"`
}

func (p UserPatch) IsEmpty() bool {
	return p.Email == nil && p.Password == nil && p.Age == nil
}
