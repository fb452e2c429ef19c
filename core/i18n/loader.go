package i18n

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFS reads every <lang>.yaml (or .yml) file in dir and returns one
// WithTranslations option per file. Files may use nested maps or flat
// dotted keys; both flatten to the same lookup keys.
func LoadFS(fsys fs.FS, dir string) ([]Option, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read translations dir %q: %w", dir, err)
	}

	var opts []Option
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := path.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		lang := strings.TrimSuffix(entry.Name(), ext)

		data, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read translations for %q: %w", lang, err)
		}

		table, err := ParseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTable, entry.Name(), err)
		}
		opts = append(opts, WithTranslations(lang, table))
	}

	if len(opts) == 0 {
		return nil, fmt.Errorf("%w in %q", ErrNoTranslations, dir)
	}

	return opts, nil
}

// ParseYAML decodes a single translation table.
func ParseYAML(data []byte) (map[string]any, error) {
	table := make(map[string]any)
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, err
	}
	return table, nil
}
