package gallery

import (
	"context"
	_ "embed"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jordanlepera/essencek/pkg/storage"
)

var imageExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".avif": true}

// StorageSource lists images from object storage under
// {prefix}{category}/.
type StorageSource struct {
	store  storage.Storage
	prefix string
}

// NewStorageSource creates a StorageSource.
func NewStorageSource(store storage.Storage, prefix string) *StorageSource {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &StorageSource{store: store, prefix: prefix}
}

// Images implements Source. Non-image objects are skipped.
func (s *StorageSource) Images(ctx context.Context, category string) ([]Image, error) {
	objects, err := s.store.List(ctx, s.prefix+category+"/")
	if err != nil {
		return nil, err
	}

	images := make([]Image, 0, len(objects))
	for _, o := range objects {
		if !imageExtensions[strings.ToLower(path.Ext(o.Key))] {
			continue
		}
		u, err := s.store.URL(ctx, o.Key)
		if err != nil {
			return nil, err
		}
		images = append(images, Image{URL: u, Alt: altFromKey(o.Key), Category: category})
	}
	return images, nil
}

// altFromKey turns "realisations/dressing/dressing-chene_02.jpg" into
// "dressing chene 02".
func altFromKey(key string) string {
	name := strings.TrimSuffix(path.Base(key), path.Ext(key))
	return strings.Join(strings.FieldsFunc(name, func(r rune) bool { return r == '-' || r == '_' }), " ")
}

//go:embed catalogue.yaml
var catalogueYAML []byte

// Catalogue is a static Source read from YAML keyed by category.
type Catalogue map[string][]Image

// LoadCatalogue parses a YAML catalogue.
func LoadCatalogue(data []byte) (Catalogue, error) {
	var c Catalogue
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("gallery: parse catalogue: %w", err)
	}
	for category, images := range c {
		for i := range images {
			images[i].Category = category
		}
	}
	return c, nil
}

// DefaultCatalogue is the embedded catalogue.
func DefaultCatalogue() Catalogue {
	c, err := LoadCatalogue(catalogueYAML)
	if err != nil {
		panic(err)
	}
	return c
}

// Images implements Source.
func (c Catalogue) Images(_ context.Context, category string) ([]Image, error) {
	return c[category], nil
}
