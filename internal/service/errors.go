package service

// Kind classifies service errors so transports can pick a status code
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindConflict
)

// Error is a client-facing failure of a service operation
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	ErrUserNotFound      = &Error{Kind: KindNotFound, Message: "User not found"}
	ErrProfileNotFound   = &Error{Kind: KindNotFound, Message: "This user does not have a profile"}
	ErrCarNotFound       = &Error{Kind: KindNotFound, Message: "Car not found"}
	ErrFavouriteNotFound = &Error{Kind: KindNotFound, Message: "Favourite not found"}

	ErrProfileExists   = &Error{Kind: KindConflict, Message: `User already has a profile, use "PUT" instead of "POST"`}
	ErrFavouriteExists = &Error{Kind: KindConflict, Message: "This car is already a favourite of this user"}
	ErrEmailTaken      = &Error{Kind: KindConflict, Message: "A user with this email already exists"}
)
