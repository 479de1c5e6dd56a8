package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/safak4545x/swifttube/domain/model"
	"github.com/safak4545x/swifttube/infrastructure/cache"
	"github.com/safak4545x/swifttube/usecase"

	"github.com/stretchr/testify/assert"
)

func TestSettingsDefaultsWhenNothingPersisted(t *testing.T) {
	store, err := cache.NewStore(t.TempDir(), 8)
	assert.NoError(t, err)
	settings := usecase.NewSettingsUseCase(store, time.Hour, "tr", "TR")

	got, err := settings.Get(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "tr", got.Language)
	assert.Equal(t, "TR", got.Region)
	assert.Empty(t, got.Categories)
}

func TestSettingsSaveGetRoundTrip(t *testing.T) {
	store, err := cache.NewStore(t.TempDir(), 8)
	assert.NoError(t, err)
	settings := usecase.NewSettingsUseCase(store, time.Hour, "en", "US")

	err = settings.Save(context.Background(), &model.Settings{
		Language:   "de",
		Region:     "DE",
		Categories: []model.Category{{Name: "Tech", Keywords: []string{"golang"}}},
	})
	assert.NoError(t, err)

	got, err := settings.Get(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "de", got.Language)
	assert.Equal(t, "DE", got.Region)
	assert.Len(t, got.Categories, 1)
	assert.Equal(t, "Tech", got.Categories[0].Name)
}

func TestSettingsSaveFillsMissingLocale(t *testing.T) {
	store, err := cache.NewStore(t.TempDir(), 8)
	assert.NoError(t, err)
	settings := usecase.NewSettingsUseCase(store, time.Hour, "en", "US")

	err = settings.Save(context.Background(), &model.Settings{})
	assert.NoError(t, err)

	got, err := settings.Get(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "en", got.Language)
	assert.Equal(t, "US", got.Region)
}

func TestSettingsSaveNilIsAnError(t *testing.T) {
	store, err := cache.NewStore(t.TempDir(), 8)
	assert.NoError(t, err)
	settings := usecase.NewSettingsUseCase(store, time.Hour, "en", "US")

	assert.Error(t, settings.Save(context.Background(), nil))
}
