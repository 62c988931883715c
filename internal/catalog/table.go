package catalog

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"shelve/internal/config"
)

// Others is the category assigned to files no table entry claims.
const Others = "Others"

// Category is a named set of extensions.
type Category struct {
	Name       string   `json:"name"`
	Extensions []string `json:"extensions"`
}

// Table is an immutable, ordered category table.
type Table struct {
	categories []Category
	// index maps an extension to the position of the first category listing it.
	index map[string]int
	names map[string]struct{}
}

// New validates and normalizes categories into a Table. Extensions are
// lowercased with leading dots stripped; blank entries are dropped and
// duplicates within a category collapsed. Category names must be unique
// (case-insensitively) and usable as folder names.
func New(categories []Category) (*Table, error) {
	t := &Table{
		categories: make([]Category, 0, len(categories)),
		index:      make(map[string]int),
		names:      make(map[string]struct{}, len(categories)+1),
	}
	for i, category := range categories {
		name := strings.TrimSpace(category.Name)
		if err := validName(name); err != nil {
			return nil, fmt.Errorf("category %d: %w", i, err)
		}
		key := strings.ToLower(name)
		if _, dup := t.names[key]; dup {
			return nil, fmt.Errorf("category %q is defined more than once", name)
		}
		t.names[key] = struct{}{}

		seen := make(map[string]struct{}, len(category.Extensions))
		exts := make([]string, 0, len(category.Extensions))
		for _, raw := range category.Extensions {
			ext := NormalizeExtension(raw)
			if ext == "" {
				continue
			}
			if _, ok := seen[ext]; ok {
				continue
			}
			seen[ext] = struct{}{}
			exts = append(exts, ext)
			if _, claimed := t.index[ext]; !claimed {
				t.index[ext] = len(t.categories)
			}
		}
		t.categories = append(t.categories, Category{Name: name, Extensions: exts})
	}
	t.names[strings.ToLower(Others)] = struct{}{}
	return t, nil
}

// FromConfig builds a table from the [[categories]] section of the config.
func FromConfig(categories []config.Category) (*Table, error) {
	converted := make([]Category, 0, len(categories))
	for _, c := range categories {
		converted = append(converted, Category{Name: c.Name, Extensions: c.Extensions})
	}
	return New(converted)
}

func validName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("category name must not be empty")
	case name == "." || name == "..":
		return fmt.Errorf("category name %q is not a valid folder name", name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("category name %q must not contain path separators", name)
	}
	return nil
}

// Len returns the number of categories, excluding Others.
func (t *Table) Len() int {
	return len(t.categories)
}

// Categories returns a copy of the categories in classification order.
func (t *Table) Categories() []Category {
	out := make([]Category, len(t.categories))
	for i, c := range t.categories {
		out[i] = Category{Name: c.Name, Extensions: append([]string(nil), c.Extensions...)}
	}
	return out
}

// Names returns the category names in classification order.
func (t *Table) Names() []string {
	names := make([]string, len(t.categories))
	for i, c := range t.categories {
		names[i] = c.Name
	}
	return names
}

// Lookup returns the first category listing ext. ext is normalized first.
func (t *Table) Lookup(ext string) (string, bool) {
	ext = NormalizeExtension(ext)
	if ext == "" {
		return "", false
	}
	pos, ok := t.index[ext]
	if !ok {
		return "", false
	}
	return t.categories[pos].Name, true
}

// Classify returns the category for a file name or path, or Others when no
// category lists its extension. Files without an extension are always Others.
func (t *Table) Classify(name string) string {
	if category, ok := t.Lookup(Extension(name)); ok {
		return category
	}
	return Others
}

// IsCategoryFolder reports whether a directory name is one of the table's
// category folders or Others.
func (t *Table) IsCategoryFolder(name string) bool {
	_, ok := t.names[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Extension returns the text after the last dot of the base name. Names
// without a dot, and dotfiles such as ".bashrc", have no extension.
func Extension(name string) string {
	base := filepath.Base(name)
	idx := strings.LastIndexByte(base, '.')
	if idx <= 0 {
		return ""
	}
	return base[idx+1:]
}

// NormalizeExtension lowercases ext and strips surrounding whitespace and
// leading dots.
func NormalizeExtension(ext string) string {
	ext = strings.TrimLeft(strings.TrimSpace(ext), ".")
	if ext == "" {
		return ""
	}
	// Casers are stateful; a fresh one keeps Classify safe for concurrent use.
	return cases.Lower(language.Und).String(ext)
}
