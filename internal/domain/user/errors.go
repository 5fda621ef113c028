package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUserEmailExists         = errors.New("email already registered")
	ErrUsernameExists          = errors.New("username already taken")
	ErrInvalidRole             = errors.New("invalid role")
	ErrUserInactive            = errors.New("user account is inactive")
	ErrCannotDeleteSelf        = errors.New("cannot delete your own account")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrEmployeeAlreadyLinked   = errors.New("employee is already linked to another account")
)
