package i18n_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactform/core/i18n"
)

func TestLoadFS(t *testing.T) {
	t.Run("loads every yaml table", func(t *testing.T) {
		fsys := fstest.MapFS{
			"locales/en.yaml": {Data: []byte("form.title: Contact Form\nform:\n  reset: Reset\n")},
			"locales/fr.yml":  {Data: []byte("form.title: Formulaire de Contact\n")},
			"locales/README":  {Data: []byte("ignored")},
		}

		opts, err := i18n.LoadFS(fsys, "locales")
		require.NoError(t, err)
		require.Len(t, opts, 2)

		resolver, err := i18n.New(opts...)
		require.NoError(t, err)

		assert.Equal(t, []string{"en", "fr"}, resolver.Languages())
		assert.Equal(t, "Formulaire de Contact", resolver.T("fr", "form.title"))
		assert.Equal(t, "Reset", resolver.T("fr", "form.reset"))
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := i18n.LoadFS(fstest.MapFS{}, "locales")
		assert.Error(t, err)
	})

	t.Run("no tables", func(t *testing.T) {
		fsys := fstest.MapFS{"locales/notes.txt": {Data: []byte("x")}}
		_, err := i18n.LoadFS(fsys, "locales")
		assert.ErrorIs(t, err, i18n.ErrNoTranslations)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		fsys := fstest.MapFS{"locales/en.yaml": {Data: []byte("form: [unclosed")}}
		_, err := i18n.LoadFS(fsys, "locales")
		assert.ErrorIs(t, err, i18n.ErrInvalidTable)
	})
}
