package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/safak4545x/swifttube/domain/model"
	"github.com/safak4545x/swifttube/infrastructure/cache"
)

const settingsKey = "settings"

// ISettingsUseCase persists the browser preferences. Settings are just
// another cached value under a very long TTL, not a separate subsystem.
type ISettingsUseCase interface {
	Get(ctx context.Context) (*model.Settings, error)
	Save(ctx context.Context, settings *model.Settings) error
}

// SettingsUseCase stores settings in the results namespace of the shared
// cache store.
type SettingsUseCase struct {
	store     *cache.Store
	ttl       time.Duration
	defaultHL string
	defaultGL string
}

// NewSettingsUseCase creates a settings use case with locale defaults used
// when nothing has been persisted yet.
func NewSettingsUseCase(store *cache.Store, ttl time.Duration, defaultHL, defaultGL string) ISettingsUseCase {
	return &SettingsUseCase{store: store, ttl: ttl, defaultHL: defaultHL, defaultGL: defaultGL}
}

// Get returns the persisted settings, or defaults when absent/expired.
func (u *SettingsUseCase) Get(ctx context.Context) (*model.Settings, error) {
	key := cache.Key(settingsKey)
	if hit := cache.Get[model.Settings](u.store, cache.NamespaceResults, key); hit != nil {
		return hit, nil
	}
	return &model.Settings{Language: u.defaultHL, Region: u.defaultGL}, nil
}

// Save overwrites the persisted settings.
func (u *SettingsUseCase) Save(ctx context.Context, settings *model.Settings) error {
	if settings == nil {
		return fmt.Errorf("settings required")
	}
	if settings.Language == "" {
		settings.Language = u.defaultHL
	}
	if settings.Region == "" {
		settings.Region = u.defaultGL
	}
	key := cache.Key(settingsKey)
	if err := cache.Set(u.store, cache.NamespaceResults, key, *settings, u.ttl); err != nil {
		return fmt.Errorf("persist settings: %w", err)
	}
	return nil
}
