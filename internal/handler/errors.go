package handler

import "errors"

var (
	errInvalidPostID   = errors.New("invalid post ID")
	errInvalidID       = errors.New("invalid ID")
	errMissingToken    = errors.New("token is not provided")
	errInvalidState    = errors.New("login state is missing or does not match")
	errAuthUnavailable = errors.New("authentication is unavailable")
	errFetchComments   = errors.New("failed to fetch comments")
)
