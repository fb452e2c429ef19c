package contactform

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/dmitrymomot/contactform/core/form"
	"github.com/dmitrymomot/contactform/core/i18n"
	"github.com/dmitrymomot/contactform/core/logger"
)

//go:embed locales/*.yaml
var localesFS embed.FS

//go:embed fields.yaml
var fieldsYAML []byte

//go:embed assets
var assetsFS embed.FS

// DefaultLanguage is used when nothing better is known about the visitor.
const DefaultLanguage = "en"

// Locales returns the embedded translation tables.
func Locales() fs.FS {
	sub, err := fs.Sub(localesFS, "locales")
	if err != nil {
		panic(err)
	}
	return sub
}

// Assets returns the embedded static files.
func Assets() fs.FS {
	sub, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}

// NewResolver builds the translation resolver from the embedded tables.
// Missing keys are logged at debug level.
func NewResolver(log *slog.Logger) (*i18n.Resolver, error) {
	opts, err := i18n.LoadFS(Locales(), ".")
	if err != nil {
		return nil, fmt.Errorf("load locales: %w", err)
	}

	opts = append(opts,
		i18n.WithDefaultLanguage(DefaultLanguage),
		i18n.WithRTL("ar"),
	)
	if log != nil {
		opts = append(opts, i18n.WithMissingKeyHandler(func(lang, key string) {
			log.Debug("missing translation",
				logger.Component("i18n"),
				logger.Language(lang),
				logger.Key("key", key),
			)
		}))
	}

	return i18n.New(opts...)
}

// LoadFields reads the field registry from path, or the embedded default
// when path is empty.
func LoadFields(path string) (*form.Registry, error) {
	if path == "" {
		return form.LoadRegistry(bytes.NewReader(fieldsYAML))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fields file: %w", err)
	}
	defer f.Close()

	return form.LoadRegistry(f)
}
