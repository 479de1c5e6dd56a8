package configuration

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultsAreApplied(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("PORT", "")
	t.Setenv("CACHE_ROOT", "")

	var c Config
	applyDefaults(&c)

	require.NotZero(t, c.App.Port)
	require.NotEmpty(t, c.Cache.Root)
	require.Positive(t, c.Cache.MemoryEntries)
	require.Positive(t, c.Cache.ResultTTLMinutes)
	require.Positive(t, c.Cache.EnrichTTLMinutes)
	require.Positive(t, c.Cache.SettingTTLMinutes)
	require.Equal(t, "en", c.Locale.Language)
	require.Equal(t, "US", c.Locale.Region)
	require.Equal(t, "WEB", c.Scraper.ClientName)
	require.NotEmpty(t, c.Scraper.ClientVersion)
	require.NotEmpty(t, c.Scraper.UserAgent)
	require.Positive(t, c.Scraper.PageLimit)
}

func TestDefaultsDoNotOverrideExplicitValues(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("PORT", "")

	c := Config{}
	c.App.Port = 9999
	c.Locale.Language = "tr"
	c.Locale.Region = "TR"
	c.Scraper.PageLimit = 4
	applyDefaults(&c)

	require.Equal(t, 9999, c.App.Port)
	require.Equal(t, "tr", c.Locale.Language)
	require.Equal(t, "TR", c.Locale.Region)
	require.Equal(t, 4, c.Scraper.PageLimit)
}
