package service

import "errors"

// Ошибки сервисного слоя. Обработчики переводят их в ответы пользователю
// через errors.Is, ничего не проглатывая молча.
var (
	// ErrInvalidCredentials неверный логин, пароль или роль. Несовпадение
	// роли неотличимо от неверного пароля, чтобы нельзя было перебором
	// выяснить роль аккаунта.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound аккаунт, книга или сабмишен не найдены
	ErrNotFound = errors.New("not found")

	// ErrAlreadySubmitted повторная сдача той же единицы работы
	ErrAlreadySubmitted = errors.New("already submitted")

	// Ошибки валидации видео-кружка
	ErrVideoTooLong   = errors.New("video note too long")
	ErrVideoTooLarge  = errors.New("video note too large")
	ErrForwardedVideo = errors.New("forwarded video not allowed")

	// ErrFileTooLarge файл превышает лимит Telegram на документ
	ErrFileTooLarge = errors.New("file too large")

	// ErrBookNotChosen отчёт о чтении без книги либо с двумя книгами сразу
	ErrBookNotChosen = errors.New("exactly one of book and custom book must be set")
)
