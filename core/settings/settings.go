package settings

//go:generate mockery --name=Repository -r --case underscore --with-expecter --structname SettingsRepository --filename settings_repository.go --output=./mocks

import (
	"context"
	"strconv"
	"strings"

	"github.com/goto/metasearch/core/collection"
	"github.com/goto/metasearch/core/credential"
)

// Preference keys as stored in the preference store.
const (
	KeySecret        = "secret_key"
	KeyUseHash       = "use_hash"
	KeyMaxHit        = "max_hit"
	KeyDefaultTrees  = "default_trees"
	KeyTreeOrder     = "tree_order"
	KeyDisabledTrees = "disabled_trees"
	KeyDatabaseName  = "database_name"
	KeyDatabaseURL   = "database_url"
	KeyModuleVersion = "module_version"
)

const (
	DefaultMaxHit   = 20
	MaxMaxHit       = 1000
	MinSecretLength = 8

	maskedSecret = "********"
)

// Repository is a string valued key-value preference store.
type Repository interface {
	GetAll(ctx context.Context) (map[string]string, error)
	// SetMany stores all values atomically.
	SetMany(ctx context.Context, values map[string]string) error
}

// Settings is an immutable snapshot of the module preferences.
type Settings struct {
	Secret        string   `json:"-" yaml:"secret_key" diff:"-"`
	UseHash       bool     `json:"use_hash" yaml:"use_hash" diff:"use_hash"`
	MaxHit        int      `json:"max_hit" yaml:"max_hit" diff:"max_hit"`
	DefaultTrees  []string `json:"default_trees" yaml:"default_trees" diff:"default_trees"`
	TreeOrder     []string `json:"tree_order" yaml:"tree_order" diff:"tree_order"`
	DisabledTrees []string `json:"disabled_trees" yaml:"disabled_trees" diff:"disabled_trees"`
	DatabaseName  string   `json:"database_name" yaml:"database_name" diff:"database_name"`
	DatabaseURL   string   `json:"database_url" yaml:"database_url" diff:"database_url"`
	ModuleVersion string   `json:"module_version" yaml:"module_version" diff:"module_version"`
}

func (s Settings) Credential() credential.Secret {
	return credential.Secret{Value: s.Secret, Hashed: s.UseHash}
}

func (s Settings) CollectionPreferences() collection.Preferences {
	return collection.Preferences{
		Order:    s.TreeOrder,
		Defaults: s.DefaultTrees,
		Disabled: s.DisabledTrees,
	}
}

// Masked returns a copy that is safe to print.
func (s Settings) Masked() Settings {
	if s.Secret != "" {
		s.Secret = maskedSecret
	}
	return s
}

// FromValues parses raw preference values, applying defaults.
func FromValues(values map[string]string) Settings {
	s := Settings{
		Secret:        values[KeySecret],
		UseHash:       parseBool(values[KeyUseHash]),
		MaxHit:        DefaultMaxHit,
		DefaultTrees:  collection.SplitNames(values[KeyDefaultTrees]),
		TreeOrder:     collection.SplitNames(values[KeyTreeOrder]),
		DisabledTrees: collection.SplitNames(values[KeyDisabledTrees]),
		DatabaseName:  strings.TrimSpace(values[KeyDatabaseName]),
		DatabaseURL:   strings.TrimRight(strings.TrimSpace(values[KeyDatabaseURL]), "/"),
		ModuleVersion: values[KeyModuleVersion],
	}
	if n, err := strconv.Atoi(strings.TrimSpace(values[KeyMaxHit])); err == nil && n > 0 {
		s.MaxHit = n
	}
	return s
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

func formatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
