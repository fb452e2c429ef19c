package i18n

import "errors"

var (
	ErrEmptyLanguage  = errors.New("language cannot be empty")
	ErrInvalidTable   = errors.New("invalid translation table")
	ErrNoTranslations = errors.New("no translation tables found")
)
