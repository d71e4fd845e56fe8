package collection

import (
	"context"
	"fmt"
	"strings"

	"github.com/goto/metasearch/core/validator"
)

// nameRule mirrors what the host accepts as a tree name.
const nameRule = "required,max=255,excludesall=/?#&"

// Preferences are the administrator choices that shape the registry.
type Preferences struct {
	// Order lists collection names to be shown first, in this order.
	Order []string
	// Defaults is the target set used when a caller names no collection.
	Defaults []string
	// Disabled collections are never exposed to search.
	Disabled []string
}

// Registry builds per-request catalogs from the host's collection list.
type Registry struct {
	repository Repository
}

func NewRegistry(repository Repository) *Registry {
	return &Registry{repository: repository}
}

// Catalog loads the host collections and applies prefs.
func (r *Registry) Catalog(ctx context.Context, prefs Preferences) (*Catalog, error) {
	all, err := r.repository.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return NewCatalog(all, prefs), nil
}

// Catalog is an immutable snapshot of the publicly searchable collections.
type Catalog struct {
	public   []Collection
	position map[string]int
	defaults []string
}

func NewCatalog(all []Collection, prefs Preferences) *Catalog {
	disabled := make(map[string]bool, len(prefs.Disabled))
	for _, name := range prefs.Disabled {
		disabled[name] = true
	}

	eligible := make([]Collection, 0, len(all))
	byName := make(map[string]Collection, len(all))
	for _, c := range all {
		if !c.Public {
			continue
		}
		c.Enabled = !disabled[c.Name]
		if !c.Enabled {
			continue
		}
		if _, dup := byName[c.Name]; dup {
			continue
		}
		byName[c.Name] = c
		eligible = append(eligible, c)
	}

	ordered := make([]Collection, 0, len(eligible))
	placed := make(map[string]bool, len(eligible))
	for _, name := range prefs.Order {
		c, ok := byName[name]
		if !ok || placed[name] {
			continue
		}
		placed[name] = true
		ordered = append(ordered, c)
	}
	for _, c := range eligible {
		if !placed[c.Name] {
			ordered = append(ordered, c)
		}
	}

	cat := &Catalog{
		public:   ordered,
		position: make(map[string]int, len(ordered)),
	}
	for i, c := range ordered {
		cat.position[c.Name] = i
	}

	for _, name := range dedupe(prefs.Defaults) {
		if _, ok := cat.position[name]; ok {
			cat.defaults = append(cat.defaults, name)
		}
	}
	cat.defaults = cat.Ordered(cat.defaults)

	return cat
}

// PublicCollections returns the public, enabled collections in display order.
func (c *Catalog) PublicCollections() []Collection {
	out := make([]Collection, len(c.public))
	copy(out, c.public)
	return out
}

// Lookup returns the public collection with the given name.
func (c *Catalog) Lookup(name string) (Collection, bool) {
	pos, ok := c.position[name]
	if !ok {
		return Collection{}, false
	}
	return c.public[pos], true
}

// DefaultNames returns the configured default set, or every public
// collection when none of the configured defaults is available.
func (c *Catalog) DefaultNames() []string {
	if len(c.defaults) > 0 {
		out := make([]string, len(c.defaults))
		copy(out, c.defaults)
		return out
	}
	out := make([]string, len(c.public))
	for i, col := range c.public {
		out[i] = col.Name
	}
	return out
}

// Resolve splits the requested names into known public collections, in
// input order, and names that are not. An empty request resolves to the
// default set.
func (c *Catalog) Resolve(names []string) (valid []string, invalid []string) {
	names = dedupe(names)
	if len(names) == 0 {
		return c.DefaultNames(), nil
	}

	for _, name := range names {
		if _, ok := c.position[name]; ok {
			valid = append(valid, name)
			continue
		}
		invalid = append(invalid, name)
	}
	return valid, invalid
}

// ResolveStrict resolves names and fails when any of them is malformed
// (InvalidNameError) or unknown (NotFoundError).
func (c *Catalog) ResolveStrict(names []string) ([]string, error) {
	for _, name := range dedupe(names) {
		if err := ValidateName(name); err != nil {
			return nil, err
		}
	}

	valid, invalid := c.Resolve(names)
	if len(invalid) > 0 {
		return nil, NotFoundError{Names: invalid}
	}
	return valid, nil
}

// Ordered sorts names by display order. Unknown names are dropped.
func (c *Catalog) Ordered(names []string) []string {
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		seen[name] = true
	}
	out := make([]string, 0, len(names))
	for _, col := range c.public {
		if seen[col.Name] {
			out = append(out, col.Name)
		}
	}
	return out
}

func ValidateName(name string) error {
	if err := validator.ValidateVar(name, nameRule); err != nil {
		return InvalidNameError{Name: name}
	}
	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			return InvalidNameError{Name: name}
		}
	}
	return nil
}

// SplitNames parses a comma separated list, trimming blanks.
func SplitNames(raw string) []string {
	var names []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			names = append(names, part)
		}
	}
	return names
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
