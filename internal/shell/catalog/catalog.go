// Package catalog loads recipe definition documents from the embedded
// defaults and from custom recipe directories into an immutable catalog.
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/artpar/deploykit/internal/core/recipe"
)

//go:embed recipes/*.json
var embeddedRecipes embed.FS

// =============================================================================
// Error Types
// =============================================================================

var (
	// ErrDuplicateRecipeID is returned when two sources declare the same
	// recipe id.
	ErrDuplicateRecipeID = errors.New("duplicate recipe id")

	// ErrRecipeNotFound is returned when a lookup misses.
	ErrRecipeNotFound = errors.New("recipe not found")
)

// =============================================================================
// Catalog
// =============================================================================

// Catalog is an immutable collection of recipe definitions, loaded once from
// trusted sources. Embedded recipes load first, ordered by filename, then
// custom directories in the order given.
type Catalog struct {
	recipes []*recipe.Definition
	byID    map[string]*recipe.Definition
}

// Load builds a catalog from the embedded recipes plus any custom recipe
// directories. Custom directories may contain JSON or YAML documents; a
// missing directory is treated as empty.
func Load(customDirs ...string) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]*recipe.Definition)}

	if err := c.loadEmbedded(); err != nil {
		return nil, err
	}
	for _, dir := range customDirs {
		if err := c.loadDir(dir); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Get returns the recipe with the given id.
func (c *Catalog) Get(id string) (*recipe.Definition, error) {
	def, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("recipe %q: %w", id, ErrRecipeNotFound)
	}
	return def, nil
}

// List returns every loaded recipe in load order. The returned slice is a
// copy; the definitions themselves are shared and must not be mutated.
func (c *Catalog) List() []*recipe.Definition {
	return append([]*recipe.Definition(nil), c.recipes...)
}

// Len returns the number of loaded recipes.
func (c *Catalog) Len() int {
	return len(c.recipes)
}

// =============================================================================
// Loading
// =============================================================================

func (c *Catalog) loadEmbedded() error {
	entries, err := fs.ReadDir(embeddedRecipes, "recipes")
	if err != nil {
		return fmt.Errorf("read embedded recipes: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		data, err := embeddedRecipes.ReadFile("recipes/" + entry.Name())
		if err != nil {
			return fmt.Errorf("read embedded recipe %s: %w", entry.Name(), err)
		}
		if err := c.add(entry.Name(), data); err != nil {
			return err
		}
	}
	return nil
}

func (c *Catalog) loadDir(dir string) error {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		return nil
	}
	entries, err := os.ReadDir(trimmed)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read recipe directory %s: %w", trimmed, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		isYAML := isYAMLFile(name)
		if !isYAML && !strings.HasSuffix(name, ".json") {
			continue
		}

		path := filepath.Join(trimmed, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read recipe %s: %w", path, err)
		}
		if isYAML {
			data, err = yamlToJSON(data)
			if err != nil {
				return fmt.Errorf("recipe %s: %w", path, err)
			}
		}
		if err := c.add(path, data); err != nil {
			return err
		}
	}
	return nil
}

func (c *Catalog) add(source string, data []byte) error {
	def, err := recipe.ParseDefinition(data)
	if err != nil {
		return fmt.Errorf("recipe %s: %w", source, err)
	}
	if _, exists := c.byID[def.ID]; exists {
		return fmt.Errorf("recipe %s: id %q: %w", source, def.ID, ErrDuplicateRecipeID)
	}
	c.byID[def.ID] = def
	c.recipes = append(c.recipes, def)
	return nil
}

func isYAMLFile(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}
