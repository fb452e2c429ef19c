package contactform_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactform/app/contactform"
	"github.com/dmitrymomot/contactform/core/form"
)

func TestResources(t *testing.T) {
	t.Parallel()

	t.Run("resolver loads every locale", func(t *testing.T) {
		t.Parallel()

		r, err := contactform.NewResolver(nil)
		require.NoError(t, err)

		assert.ElementsMatch(t, []string{"en", "fr", "es", "de", "ar"}, r.Languages())
		assert.Equal(t, "en", r.DefaultLanguage())
		assert.Equal(t, "rtl", r.Direction("ar"))
		assert.Equal(t, "ltr", r.Direction("fr"))
		assert.Equal(t, "Full Name", r.T("en", "form.name"))
	})

	t.Run("every locale has the form keys", func(t *testing.T) {
		t.Parallel()

		r, err := contactform.NewResolver(nil)
		require.NoError(t, err)

		keys := []string{
			"form.badge", "form.title", "form.subtitle", "form.name", "form.email",
			"form.phone", "form.message", "form.submit", "form.reset", "form.success",
			"form.error.required", "form.error.email", "form.error.minLength",
			"form.error.maxLength", "form.error.pattern", "theme.toggle", "language.label",
		}
		for _, lang := range r.Languages() {
			for _, key := range keys {
				assert.True(t, r.Has(lang, key), "%s missing %s", lang, key)
			}
		}
	})

	t.Run("embedded fields", func(t *testing.T) {
		t.Parallel()

		reg, err := contactform.LoadFields("")
		require.NoError(t, err)
		assert.Equal(t, []string{"name", "email", "phone", "message"}, reg.Names())
	})

	t.Run("fields file override", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "fields.yaml")
		require.NoError(t, os.WriteFile(path, []byte("fields:\n  - name: topic\n    kind: text\n    required: true\n"), 0o644))

		reg, err := contactform.LoadFields(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"topic"}, reg.Names())
	})

	t.Run("missing fields file", func(t *testing.T) {
		t.Parallel()

		_, err := contactform.LoadFields(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("empty fields file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "fields.yaml")
		require.NoError(t, os.WriteFile(path, nil, 0o644))

		_, err := contactform.LoadFields(path)
		assert.ErrorIs(t, err, form.ErrEmptyRegistry)
	})
}
