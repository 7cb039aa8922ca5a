package usecase

import "errors"

var (
	ErrNotOwner           = errors.New("user does not own this resource")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInactiveUser       = errors.New("user account is disabled")
	ErrInvalidSession     = errors.New("invalid session")
	ErrUsernameTaken      = errors.New("a user with that username already exists")
	ErrInvalidUsername    = errors.New("enter a valid username: letters, digits and @/./+/-/_ only")
	ErrPasswordMismatch   = errors.New("the two password fields didn't match")
	ErrWrongPassword      = errors.New("your old password was entered incorrectly")
	ErrPasswordTooShort   = errors.New("this password is too short, it must contain at least 8 characters")
	ErrPasswordTooLong    = errors.New("this password is too long, it must contain at most 72 bytes")
	ErrPasswordNumeric    = errors.New("this password is entirely numeric")
	ErrPasswordSimilar    = errors.New("the password is too similar to the username")
	ErrInvalidChoice      = errors.New("select a valid choice")
	ErrSlugTaken          = errors.New("a category with that slug already exists")
	ErrInvalidSlug        = errors.New("slug may contain only latin letters, digits, hyphens and underscores")
	ErrInvalidImage       = errors.New("upload a valid image")
)

// ValidationError ties a domain error to the form field that caused it.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func fieldError(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}
