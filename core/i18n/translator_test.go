package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactform/core/i18n"
)

type switchableLanguage struct {
	lang string
}

func (s *switchableLanguage) Language() string { return s.lang }

func TestTranslator(t *testing.T) {
	resolver, err := i18n.New(
		i18n.WithTranslations("en", map[string]any{"form.submit": "Submit"}),
		i18n.WithTranslations("de", map[string]any{"form.submit": "Absenden"}),
		i18n.WithTranslations("ar", map[string]any{"form.submit": "إرسال"}),
		i18n.WithRTL("ar"),
	)
	require.NoError(t, err)

	t.Run("follows the active language at call time", func(t *testing.T) {
		source := &switchableLanguage{lang: "en"}
		tr := i18n.NewTranslator(resolver, source)

		assert.Equal(t, "Submit", tr.T("form.submit"))
		assert.Equal(t, i18n.LTR, tr.Direction())

		source.lang = "de"
		assert.Equal(t, "Absenden", tr.T("form.submit"))

		source.lang = "ar"
		assert.Equal(t, "إرسال", tr.T("form.submit"))
		assert.Equal(t, i18n.RTL, tr.Direction())
	})

	t.Run("nil source uses default language", func(t *testing.T) {
		tr := i18n.NewTranslator(resolver, nil)
		assert.Equal(t, "en", tr.Language())
		assert.Equal(t, "Submit", tr.T("form.submit"))
	})

	t.Run("empty language uses default language", func(t *testing.T) {
		tr := i18n.NewTranslator(resolver, i18n.Fixed(""))
		assert.Equal(t, "en", tr.Language())
	})

	t.Run("fixed source", func(t *testing.T) {
		tr := i18n.NewTranslator(resolver, i18n.Fixed("de"))
		assert.Equal(t, "Absenden", tr.T("form.submit"))
		assert.Same(t, resolver, tr.Resolver())
	})

	t.Run("panics without resolver", func(t *testing.T) {
		assert.Panics(t, func() {
			i18n.NewTranslator(nil, nil)
		})
	})
}
