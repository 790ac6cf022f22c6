package domain

import "errors"

// ErrorKind classifies a domain error so the HTTP layer can pick a
// status without string-matching messages.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindConflict
	KindAuthentication
	KindNotFound
	KindUnavailable
)

// Error is a user-visible domain failure. The message is the exact
// single-line text returned to clients.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	ErrFieldsRequired    = &Error{KindValidation, "All fields must be filled"}
	ErrInvalidEmail      = &Error{KindValidation, "Email is not valid"}
	ErrWeakPassword      = &Error{KindValidation, "Password not strong enough"}
	ErrUsernameCharset   = &Error{KindValidation, "Username can only contain lowercase letters, numbers, and underscores"}
	ErrUsernameLength    = &Error{KindValidation, "Username must be between 3 and 25 characters"}
	ErrEmptyNewUsername  = &Error{KindValidation, "New username must be filled"}
	ErrSelfFollow        = &Error{KindValidation, "You cannot follow yourself"}
	ErrEmailInUse        = &Error{KindConflict, "Email already in use"}
	ErrUsernameInUse     = &Error{KindConflict, "Username already in use"}
	ErrEmailNotFound     = &Error{KindNotFound, "Email does not correlate to an account"}
	ErrIncorrectPassword = &Error{KindAuthentication, "Incorrect password"}
	ErrUserNotFound      = &Error{KindNotFound, "User not found"}
)

// IsDomain reports whether err carries a domain error and returns it.
func IsDomain(err error) (*Error, bool) {
	var derr *Error
	if errors.As(err, &derr) {
		return derr, true
	}
	return nil, false
}
