package api

import "errors"

// Ошибки identity-границы, различимые для UI. Всё остальное оборачивается
// как ошибка персистентности и показывается как общий сбой действия.
var (
	// ErrAuth — неверные учётные данные (вход или повторная аутентификация).
	ErrAuth = errors.New("invalid credentials")
	// ErrUserNotFound — учётная запись не существует.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken — регистрация на уже занятый email.
	ErrEmailTaken = errors.New("email already registered")
)
