package i18n

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// WithYAMLDir loads every {lang}/{namespace}.yaml (or .yml) file in fsys.
//
//	locales/fr/site.yaml
//	locales/en/site.yaml
func WithYAMLDir(fsys fs.FS) Option {
	return func(i *I18n) error {
		return fs.WalkDir(fsys, ".", func(filePath string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			ext := strings.ToLower(path.Ext(filePath))
			if ext != ".yaml" && ext != ".yml" {
				return nil
			}

			dir := path.Dir(filePath)
			if dir == "." {
				return fmt.Errorf("%w: %q must be inside a language directory", ErrInvalidFile, filePath)
			}
			lang := path.Base(dir)
			namespace := strings.TrimSuffix(path.Base(filePath), path.Ext(filePath))

			data, err := fs.ReadFile(fsys, filePath)
			if err != nil {
				return fmt.Errorf("i18n: read %q: %w", filePath, err)
			}
			var translations map[string]any
			if err := yaml.Unmarshal(data, &translations); err != nil {
				return fmt.Errorf("%w: parse %q: %w", ErrInvalidFile, filePath, err)
			}
			i.add(lang, namespace, translations)
			return nil
		})
	}
}
