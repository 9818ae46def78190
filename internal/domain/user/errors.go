package user

import "errors"

var (
	ErrNotFound    = errors.New("user not found")
	ErrUsersExist  = errors.New("there already are existing users")
	ErrNameTaken   = errors.New("user name already taken")
	ErrInvalidRole = errors.New("invalid role")
)
