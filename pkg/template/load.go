package template

import (
	"io"
	"os"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/slidegen/slidegen/pkg/errors"
)

// catalogFile mirrors the TOML layout of a catalog file.
type catalogFile struct {
	Templates map[string]Spec  `toml:"templates"`
	Themes    map[string]Theme `toml:"themes"`
}

// Store bundles the template catalog with the themes loaded alongside it.
// Like the catalog, a Store is immutable after loading and safe for
// concurrent reads.
type Store struct {
	catalog *Catalog
	themes  map[string]Theme
}

// NewStore builds a store from an existing catalog and optional themes.
// The default theme is always available.
func NewStore(catalog *Catalog, themes map[string]Theme) *Store {
	all := map[string]Theme{DefaultTheme.Name: DefaultTheme}
	for name, th := range themes {
		all[name] = th
	}
	return &Store{catalog: catalog, themes: all}
}

// Catalog returns the template catalog.
func (s *Store) Catalog() *Catalog { return s.catalog }

// Theme returns the named theme. An empty name selects the default theme.
func (s *Store) Theme(name string) (Theme, error) {
	if name == "" {
		return s.themes[DefaultTheme.Name], nil
	}
	th, ok := s.themes[name]
	if !ok {
		return Theme{}, errors.New(errors.ErrCodeInvalidTheme, "theme %q not found", name)
	}
	return th, nil
}

// ThemeNames returns the sorted names of all available themes.
func (s *Store) ThemeNames() []string {
	names := make([]string, 0, len(s.themes))
	for name := range s.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Read parses a TOML catalog from r.
func Read(r io.Reader) (*Store, error) {
	var file catalogFile
	if _, err := toml.NewDecoder(r).Decode(&file); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "parse catalog")
	}
	return fromFile(file)
}

// Load reads a TOML catalog from the file at path.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "open catalog %s", path)
	}
	defer f.Close()
	return Read(f)
}

func fromFile(file catalogFile) (*Store, error) {
	specs := make([]*Spec, 0, len(file.Templates))
	for name, spec := range file.Templates {
		s := spec
		s.Name = name
		specs = append(specs, &s)
	}
	catalog, err := NewCatalog(specs)
	if err != nil {
		return nil, err
	}

	themes := make(map[string]Theme, len(file.Themes))
	for name, th := range file.Themes {
		th.Name = name
		th.Normalize()
		if err := th.Validate(); err != nil {
			return nil, err
		}
		themes[name] = th
	}

	return NewStore(catalog, themes), nil
}
