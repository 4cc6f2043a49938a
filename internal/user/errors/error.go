// Package errors provides error types for user operations.
package errors

import "errors"

var ErrUserAlreadyExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")

var ErrCreateUser = errors.New("failed to create user")
var ErrFailedToFindUser = errors.New("failed to find user")
