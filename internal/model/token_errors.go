package model

import "errors"

var (
	ErrTokenExpired      = errors.New("session token expired")
	ErrTokenBadSignature = errors.New("session token signature invalid")
	ErrTokenMalformed    = errors.New("session token malformed")
)
