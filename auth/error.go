package auth

import "errors"

var (
	ErrNotValid   = errors.New("not valid")
	ErrNoToken    = errors.New("no token")
	ErrForbidden  = errors.New("forbidden")
	ErrUnexpected = errors.New("unexpected")
)
