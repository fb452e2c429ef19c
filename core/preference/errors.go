package preference

import "errors"

var (
	ErrNilStore            = errors.New("preference store is not provided")
	ErrNilResolver         = errors.New("translation resolver is not provided")
	ErrInvalidTheme        = errors.New("invalid theme")
	ErrUnsupportedLanguage = errors.New("unsupported language")
)
