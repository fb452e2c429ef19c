package preference

import (
	"context"
	"fmt"
	"sync"
)

// Theme is the color scheme of the interface.
type Theme string

// Supported themes. Light is the default.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme validates s as a theme.
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(s); t {
	case ThemeLight, ThemeDark:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTheme, s)
}

// ThemeController holds the active theme and persists every change.
type ThemeController struct {
	store Store

	mu    sync.RWMutex
	theme Theme
}

// NewTheme reads the persisted theme once. Without a valid persisted value
// the system preference decides, and light is the default.
// A store read error is returned together with a usable controller.
func NewTheme(ctx context.Context, store Store, prefersDark bool) (*ThemeController, error) {
	if store == nil {
		return nil, ErrNilStore
	}

	c := &ThemeController{store: store, theme: ThemeLight}
	if prefersDark {
		c.theme = ThemeDark
	}

	v, ok, err := store.Get(ctx, KeyTheme)
	if err != nil {
		return c, fmt.Errorf("read theme: %w", err)
	}
	if ok {
		if t, err := ParseTheme(v); err == nil {
			c.theme = t
		}
	}

	return c, nil
}

// Theme returns the active theme.
func (c *ThemeController) Theme() Theme {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.theme
}

// Dark reports whether the dark theme is active.
func (c *ThemeController) Dark() bool {
	return c.Theme() == ThemeDark
}

// ClassName returns the root style class of the active theme.
func (c *ThemeController) ClassName() string {
	if c.Dark() {
		return "dark"
	}
	return ""
}

// Toggle switches between light and dark and returns the new theme.
func (c *ThemeController) Toggle(ctx context.Context) (Theme, error) {
	c.mu.Lock()
	if c.theme == ThemeDark {
		c.theme = ThemeLight
	} else {
		c.theme = ThemeDark
	}
	theme := c.theme
	c.mu.Unlock()

	return theme, c.persist(ctx, theme)
}

// Set activates theme. The in-memory value changes even when persisting fails.
func (c *ThemeController) Set(ctx context.Context, theme Theme) error {
	if _, err := ParseTheme(string(theme)); err != nil {
		return err
	}

	c.mu.Lock()
	c.theme = theme
	c.mu.Unlock()

	return c.persist(ctx, theme)
}

func (c *ThemeController) persist(ctx context.Context, theme Theme) error {
	if err := c.store.Set(ctx, KeyTheme, string(theme)); err != nil {
		return fmt.Errorf("persist theme: %w", err)
	}
	return nil
}
