package settings

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/goto/metasearch/core/collection"
	"github.com/goto/metasearch/core/credential"
	"github.com/goto/metasearch/core/validator"
	"github.com/goto/salt/log"
	"github.com/r3labs/diff/v2"
)

// UpdateRequest carries an administrative settings change. A blank
// NewSecret keeps the stored secret, subject to hash mode transitions.
type UpdateRequest struct {
	NewSecret     string   `json:"new_secret_key"`
	UseHash       bool     `json:"use_hash"`
	MaxHit        int      `json:"max_hit" validate:"gte=1,lte=1000"`
	DefaultTrees  []string `json:"default_trees"`
	TreeOrder     []string `json:"tree_order"`
	DisabledTrees []string `json:"disabled_trees"`
	DatabaseName  string   `json:"database_name" validate:"max=255"`
	DatabaseURL   string   `json:"database_url" validate:"omitempty,url"`
}

// Service manages the preference surface of the module.
type Service struct {
	repository Repository
	logger     log.Logger
}

func NewService(logger log.Logger, repository Repository) *Service {
	return &Service{
		repository: repository,
		logger:     logger,
	}
}

// Get returns a snapshot of the current settings.
func (s *Service) Get(ctx context.Context) (Settings, error) {
	values, err := s.repository.GetAll(ctx)
	if err != nil {
		return Settings{}, fmt.Errorf("get settings: %w", err)
	}
	return FromValues(values), nil
}

// Update applies an administrative change. A rejected new secret leaves
// the stored secret and hash mode untouched while the remaining fields are
// still saved; the rejection is returned as InvalidError together with the
// changelog of what was saved.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (diff.Changelog, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	next := current
	next.MaxHit = req.MaxHit
	next.DefaultTrees = collection.SplitNames(strings.Join(req.DefaultTrees, ","))
	next.TreeOrder = collection.SplitNames(strings.Join(req.TreeOrder, ","))
	next.DisabledTrees = collection.SplitNames(strings.Join(req.DisabledTrees, ","))
	next.DatabaseName = strings.TrimSpace(req.DatabaseName)
	next.DatabaseURL = strings.TrimRight(strings.TrimSpace(req.DatabaseURL), "/")

	updates := map[string]string{
		KeyMaxHit:        strconv.Itoa(next.MaxHit),
		KeyDefaultTrees:  strings.Join(next.DefaultTrees, ","),
		KeyTreeOrder:     strings.Join(next.TreeOrder, ","),
		KeyDisabledTrees: strings.Join(next.DisabledTrees, ","),
		KeyDatabaseName:  next.DatabaseName,
		KeyDatabaseURL:   next.DatabaseURL,
	}

	secret, secretErr := nextSecret(current, req)
	if secretErr == nil {
		if secret != current.Secret {
			updates[KeySecret] = secret
			next.Secret = secret
		}
		updates[KeyUseHash] = formatBool(req.UseHash)
		next.UseHash = req.UseHash
	}

	if err := s.repository.SetMany(ctx, updates); err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}

	changelog, err := diff.Diff(current, next)
	if err != nil {
		return nil, fmt.Errorf("diff settings: %w", err)
	}
	s.logger.Info("settings updated",
		"changes", len(changelog),
		"secret_changed", next.Secret != current.Secret,
	)

	return changelog, secretErr
}

// nextSecret decides the stored secret value for an update.
func nextSecret(current Settings, req UpdateRequest) (string, error) {
	switch {
	case req.NewSecret == "":
		if current.UseHash && !req.UseHash {
			// a hash cannot be turned back into the cleartext
			return "", nil
		}
		if !current.UseHash && req.UseHash && current.Secret != "" {
			return credential.Hash(current.Secret)
		}
		return current.Secret, nil
	case len(req.NewSecret) < MinSecretLength:
		return "", InvalidError{
			Field:  "secret key",
			Reason: fmt.Sprintf("too short, a minimum length of %d characters is required", MinSecretLength),
		}
	case html.EscapeString(req.NewSecret) != req.NewSecret:
		return "", InvalidError{
			Field:  "secret key",
			Reason: "contains characters which are not accepted",
		}
	case req.UseHash:
		return credential.Hash(req.NewSecret)
	default:
		return req.NewSecret, nil
	}
}

// Upgrade brings preferences written by older module versions up to date.
// It reports whether anything was changed.
func (s *Service) Upgrade(ctx context.Context, version string) (bool, error) {
	running, err := semver.NewVersion(version)
	if err != nil {
		return false, fmt.Errorf("parse running version %q: %w", version, err)
	}

	values, err := s.repository.GetAll(ctx)
	if err != nil {
		return false, fmt.Errorf("get settings: %w", err)
	}

	updates := map[string]string{}
	if values[KeySecret] != "" {
		if _, ok := values[KeyUseHash]; !ok {
			updates[KeyUseHash] = formatBool(false)
		}
	}

	stored, err := semver.NewVersion(values[KeyModuleVersion])
	if err != nil || running.GreaterThan(stored) {
		updates[KeyModuleVersion] = running.String()
	}

	if len(updates) == 0 {
		return false, nil
	}
	if err := s.repository.SetMany(ctx, updates); err != nil {
		return false, fmt.Errorf("upgrade settings: %w", err)
	}
	s.logger.Info("settings upgraded", "version", running.String(), "from", values[KeyModuleVersion])
	return true, nil
}

func validateRequest(req UpdateRequest) error {
	if err := validator.ValidateStruct(req); err != nil {
		var fe validator.FieldError
		if errors.As(err, &fe) {
			return InvalidError{Field: fe.Field, Reason: fe.Reason()}
		}
		return err
	}

	for _, names := range [][]string{req.DefaultTrees, req.TreeOrder, req.DisabledTrees} {
		for _, name := range collection.SplitNames(strings.Join(names, ",")) {
			if err := collection.ValidateName(name); err != nil {
				return InvalidError{Field: "tree", Reason: err.Error()}
			}
		}
	}
	return nil
}
