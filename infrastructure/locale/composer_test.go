package locale_test

import (
	"strings"
	"testing"

	"github.com/safak4545x/swifttube/domain/model"
	"github.com/safak4545x/swifttube/infrastructure/locale"

	"github.com/stretchr/testify/assert"
)

func TestComposeQueriesCategoryKeywordsComeFirst(t *testing.T) {
	queries := locale.ComposeQueries("tr", "TR", locale.Seeds{
		Category: &model.Category{Name: "Music", Keywords: []string{"lofi"}},
		Keywords: []string{"chess"},
		Channels: []string{"Some Channel"},
	})

	assert.NotEmpty(t, queries)
	assert.Equal(t, "lofi", queries[0])
	assert.Equal(t, "lofi gündem", queries[1])
	assert.Contains(t, queries, "chess")
	assert.Contains(t, queries, "Some Channel")
	assert.Contains(t, queries, "gündem Türkiye")
}

func TestComposeQueriesWithoutSeedsStillProducesFillers(t *testing.T) {
	queries := locale.ComposeQueries("en", "US", locale.Seeds{})

	assert.Contains(t, queries, "trending United States")
	assert.Contains(t, queries, "shorts United States")
	assert.Contains(t, queries, "trending")
	assert.Contains(t, queries, "shorts")
}

func TestComposeQueriesDeduplicatesCaseInsensitively(t *testing.T) {
	queries := locale.ComposeQueries("en", "US", locale.Seeds{
		Keywords: []string{"Lofi", "lofi", "  "},
	})

	count := 0
	for _, q := range queries {
		if strings.EqualFold(q, "lofi") {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestComposeQueriesUnknownLanguageFallsBackToEnglish(t *testing.T) {
	queries := locale.ComposeQueries("xx", "ZZ", locale.Seeds{})

	// Unknown region contributes no region filler, but the bare vocab
	// entries still appear.
	assert.Contains(t, queries, "trending")
	assert.Contains(t, queries, "shorts")
}

func TestPrefCookieNormalizesLocale(t *testing.T) {
	assert.Equal(t, "PREF=hl=en&gl=US", locale.PrefCookie("en-US", "us"))
	assert.Equal(t, "PREF=hl=tr&gl=TR", locale.PrefCookie("TR_tr", "tr"))
	assert.Equal(t, "PREF=hl=en&gl=US", locale.PrefCookie("", "US"))
}

func TestCookieHeaderCarriesConsentMarkers(t *testing.T) {
	header := locale.CookieHeader("de", "DE")

	assert.True(t, strings.HasPrefix(header, "PREF=hl=de&gl=DE"))
	assert.Contains(t, header, "CONSENT=YES")
	assert.Contains(t, header, "SOCS=CAI")
}
