package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed    = errors.New("validation failed")
	ErrEmailRequired       = errors.New("email is required")
	ErrEmailInvalid        = errors.New("email address is not valid")
	ErrPasswordTooShort    = errors.New("password is too short")
	ErrPeladaNameRequired  = errors.New("pelada name is required")
	ErrPlayerNameRequired  = errors.New("player name is required")
	ErrPlayerRatingInvalid = errors.New("player rating must be a finite number")

	ErrDrawInvalidSize      = errors.New("the draw requires exactly 20 players")
	ErrDrawDuplicatePlayers = errors.New("the draw requires 20 distinct players")
	ErrDrawPlayersNotFound  = errors.New("one or more players were not found in this pelada")

	ErrMatchDateInvalid     = errors.New("match date must be formatted as YYYY-MM-DD")
	ErrMatchStatInvalid     = errors.New("goals and assists must not be negative")
	ErrMatchDuplicatePlayer = errors.New("a player can only appear once per match")
	ErrMatchUnknownPlayer   = errors.New("one or more players do not belong to this pelada")
	ErrMatchLimitReached    = errors.New("this pelada already reached the limit of 4 matches")

	// Ошибки конфликтов
	ErrUserEmailConflict = errors.New("email address is already in use")

	// Ошибки аутентификации и авторизации
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("not authorized to access this pelada")

	// Ошибки, специфичные для сущностей
	ErrUserNotFound   = errors.New("user not found")
	ErrPeladaNotFound = errors.New("pelada not found")
	ErrPlayerNotFound = errors.New("player not found in this pelada")

	ErrStorageUnavailable = errors.New("file storage is not configured")
)
