package gw

import "errors"

var (
	ErrAuthTimeout        = errors.New("authorization timed out")
	ErrBadConfig          = errors.New("bad config")
	ErrBadFormat          = errors.New("bad format")
	ErrBodyTooLarge       = errors.New("body too large")
	ErrInternal           = errors.New("internal error")
	ErrMethodNotAllowed   = errors.New("method not allowed")
	ErrNotFound           = errors.New("not found")
	ErrNotValid           = errors.New("invalid")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrUnsupportedCharset = errors.New("unsupported charset")
)
