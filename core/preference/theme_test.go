package preference_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactform/core/preference"
)

type failingStore struct {
	getErr error
	setErr error
	values map[string]string
}

func (s *failingStore) Get(_ context.Context, key string) (string, bool, error) {
	if s.getErr != nil {
		return "", false, s.getErr
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *failingStore) Set(_ context.Context, key, value string) error {
	return s.setErr
}

func TestNewTheme(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to light", func(t *testing.T) {
		c, err := preference.NewTheme(ctx, preference.NewMemoryStore(), false)
		require.NoError(t, err)
		assert.Equal(t, preference.ThemeLight, c.Theme())
		assert.Empty(t, c.ClassName())
	})

	t.Run("uses system preference", func(t *testing.T) {
		c, err := preference.NewTheme(ctx, preference.NewMemoryStore(), true)
		require.NoError(t, err)
		assert.Equal(t, preference.ThemeDark, c.Theme())
		assert.Equal(t, "dark", c.ClassName())
	})

	t.Run("persisted value wins over system preference", func(t *testing.T) {
		store := preference.NewMemoryStore()
		require.NoError(t, store.Set(ctx, preference.KeyTheme, "light"))

		c, err := preference.NewTheme(ctx, store, true)
		require.NoError(t, err)
		assert.Equal(t, preference.ThemeLight, c.Theme())
	})

	t.Run("invalid persisted value is ignored", func(t *testing.T) {
		store := preference.NewMemoryStore()
		require.NoError(t, store.Set(ctx, preference.KeyTheme, "sepia"))

		c, err := preference.NewTheme(ctx, store, true)
		require.NoError(t, err)
		assert.Equal(t, preference.ThemeDark, c.Theme())
	})

	t.Run("read error still yields controller", func(t *testing.T) {
		c, err := preference.NewTheme(ctx, &failingStore{getErr: errors.New("down")}, true)
		require.Error(t, err)
		require.NotNil(t, c)
		assert.Equal(t, preference.ThemeDark, c.Theme())
	})

	t.Run("requires store", func(t *testing.T) {
		_, err := preference.NewTheme(ctx, nil, false)
		assert.ErrorIs(t, err, preference.ErrNilStore)
	})
}

func TestThemeController_Toggle(t *testing.T) {
	ctx := context.Background()
	store := preference.NewMemoryStore()

	c, err := preference.NewTheme(ctx, store, false)
	require.NoError(t, err)

	theme, err := c.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, preference.ThemeDark, theme)

	v, ok, err := store.Get(ctx, preference.KeyTheme)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)

	theme, err = c.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, preference.ThemeLight, theme)

	reloaded, err := preference.NewTheme(ctx, store, true)
	require.NoError(t, err)
	assert.Equal(t, preference.ThemeLight, reloaded.Theme())
}

func TestThemeController_Set(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects unknown theme", func(t *testing.T) {
		c, err := preference.NewTheme(ctx, preference.NewMemoryStore(), false)
		require.NoError(t, err)
		assert.ErrorIs(t, c.Set(ctx, "sepia"), preference.ErrInvalidTheme)
		assert.Equal(t, preference.ThemeLight, c.Theme())
	})

	t.Run("write failure keeps in-memory change", func(t *testing.T) {
		boom := errors.New("readonly")
		c, err := preference.NewTheme(ctx, &failingStore{setErr: boom}, false)
		require.NoError(t, err)

		err = c.Set(ctx, preference.ThemeDark)
		assert.ErrorIs(t, err, boom)
		assert.True(t, c.Dark())
	})
}

func TestParseTheme(t *testing.T) {
	theme, err := preference.ParseTheme("dark")
	require.NoError(t, err)
	assert.Equal(t, preference.ThemeDark, theme)

	_, err = preference.ParseTheme("")
	assert.ErrorIs(t, err, preference.ErrInvalidTheme)
}
