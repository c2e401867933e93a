package apperrors

// Domain errors raised by the services and repositories.
var (
	ErrInvalidToken       = Unauthenticated("invalid token")
	ErrInvalidCredentials = Unauthenticated("invalid email or password")
	ErrEmailTaken         = AlreadyExists("email already in use")
	ErrUserNotFound       = NotFound("user not found")
	ErrNotFriends         = Forbidden("not friends with this user")
	ErrAlreadyFriends     = AlreadyExists("friendship already exists")
	ErrMessageNotFound    = NotFound("message not found")
)
