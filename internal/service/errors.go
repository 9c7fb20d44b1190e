package service

import "errors"

var (
	// ErrValidation: входные данные не прошли проверку (400).
	ErrValidation = errors.New("validation error")
	// ErrInvalidCredentials: неизвестный логин или неверный пароль, без уточнения что именно.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrLoginTaken         = errors.New("login already taken")
	ErrUserNotFound       = errors.New("user not found")

	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryInUse    = errors.New("category still has curtains")
	ErrCurtainNotFound  = errors.New("curtain not found")
	ErrImageNotFound    = errors.New("image not found")
)
