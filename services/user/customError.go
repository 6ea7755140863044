package user

import "errors"

// ErrDuplicateEmail signals that the email is already registered.
var ErrDuplicateEmail = errors.New("a user with this email already exists")

// ErrInvalidCredentials signals a failed email/password check.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrUserNotFound signals that no user matches the given identifier.
var ErrUserNotFound = errors.New("user not found")
