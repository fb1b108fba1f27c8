package user

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailExists           = errors.New("email already registered")
	ErrEmployeeCodeExists    = errors.New("employee code already exists")
	ErrManagerAccessRequired = errors.New("manager access required")
	ErrForbidden             = errors.New("not allowed to access another user's attendance")
)
