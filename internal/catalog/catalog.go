// Package catalog loads the product options shown in the shop. The catalog
// lives in a YAML file and is held in process memory only; there is no remote
// persistence for it.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pinky890114/Xianluo/internal/models"
)

type category struct {
	Name     string           `yaml:"name"`
	Products []models.Product `yaml:"products"`
}

type file struct {
	Categories []category `yaml:"categories"`
}

// Catalog is the in-memory product catalog with a stable category order.
type Catalog struct {
	order   []string
	options models.ProductOptions
}

// Load reads and validates the catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes catalog YAML. Duplicate category names are rejected so the
// display order stays unambiguous.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{options: make(models.ProductOptions)}
	for _, cat := range f.Categories {
		if cat.Name == "" {
			return nil, fmt.Errorf("catalog category with empty name")
		}
		if _, dup := c.options[cat.Name]; dup {
			return nil, fmt.Errorf("duplicate catalog category %q", cat.Name)
		}
		c.order = append(c.order, cat.Name)
		c.options[cat.Name] = cat.Products
	}
	return c, nil
}

// Categories returns the category labels in display order.
func (c *Catalog) Categories() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Products returns the ordered product list for one category.
func (c *Catalog) Products(category string) []models.Product {
	return c.options[category]
}

// Options returns the full category map, for template use.
func (c *Catalog) Options() models.ProductOptions {
	return c.options
}
