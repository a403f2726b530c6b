package ports

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrRoomFull           = errors.New("room has no free seat for the pair")
	ErrAlreadyMatched     = errors.New("pair already matched")
	ErrEmailTaken         = errors.New("email already registered")
	ErrNoCurrentUser      = errors.New("no user currently logged in")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidDirection   = errors.New("direction must be right or left")
	ErrMissingTarget      = errors.New("swipe target is required")
	ErrSelfSwipe          = errors.New("cannot swipe on yourself")
	ErrInvalidSignup      = errors.New("invalid signup")
	ErrInvalidToken       = errors.New("invalid token")
)
