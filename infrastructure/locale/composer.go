// Package locale holds the pure query/cookie composition helpers. Nothing
// here touches the network or the cache; everything is deterministic and
// unit-testable by example.
package locale

import (
	"fmt"
	"strings"

	"github.com/safak4545x/swifttube/domain/model"
)

// trendingVocab maps a language code to its "trending" marker word used to
// diversify seed queries.
var trendingVocab = map[string]string{
	"en": "trending",
	"tr": "gündem",
	"de": "trends",
	"fr": "tendances",
	"es": "tendencias",
	"pt": "em alta",
	"it": "tendenze",
	"ru": "в тренде",
	"ja": "急上昇",
	"ko": "인기 급상승",
	"ar": "الأكثر رواجا",
	"hi": "रुझान",
}

// shortsVocab maps a language code to its short-form marker word.
var shortsVocab = map[string]string{
	"en": "shorts",
	"tr": "kısa videolar",
	"de": "kurzvideos",
	"fr": "vidéos courtes",
	"es": "videos cortos",
	"pt": "vídeos curtos",
	"it": "video brevi",
	"ru": "короткие видео",
	"ja": "ショート",
	"ko": "쇼츠",
}

// regionNames maps a region code to a human-readable name appended to
// trending queries, in the region's own language where it matters.
var regionNames = map[string]string{
	"US": "United States",
	"GB": "United Kingdom",
	"TR": "Türkiye",
	"DE": "Deutschland",
	"FR": "France",
	"ES": "España",
	"IT": "Italia",
	"BR": "Brasil",
	"RU": "Россия",
	"JP": "日本",
	"KR": "한국",
	"IN": "India",
	"CA": "Canada",
	"AU": "Australia",
	"MX": "México",
	"NL": "Nederland",
}

// Seeds carries the raw material for home-feed query composition: frequent
// channel names and keywords mined from watch history, plus an optional
// user-defined category.
type Seeds struct {
	Channels []string
	Keywords []string
	Category *model.Category
}

// ComposeQueries turns a language/region pair and seed terms into an
// ordered, de-duplicated list of candidate search queries.
func ComposeQueries(lang, region string, seeds Seeds) []string {
	lang = normalizeLang(lang)
	trending := trendingVocab[lang]
	if trending == "" {
		trending = trendingVocab["en"]
	}
	shorts := shortsVocab[lang]
	if shorts == "" {
		shorts = shortsVocab["en"]
	}
	regionName := regionNames[strings.ToUpper(region)]

	var queries []string

	if seeds.Category != nil {
		for _, kw := range seeds.Category.Keywords {
			queries = append(queries, kw)
			queries = append(queries, fmt.Sprintf("%s %s", kw, trending))
		}
	}
	for _, kw := range seeds.Keywords {
		queries = append(queries, kw)
		queries = append(queries, fmt.Sprintf("%s %s", kw, trending))
	}
	for _, ch := range seeds.Channels {
		queries = append(queries, ch)
	}

	// Generic locale fillers keep the feed alive with no history at all.
	if regionName != "" {
		queries = append(queries, fmt.Sprintf("%s %s", trending, regionName))
		queries = append(queries, fmt.Sprintf("%s %s", shorts, regionName))
	}
	queries = append(queries, trending)
	queries = append(queries, shorts)

	return dedupe(queries)
}

// PrefCookie derives the locale-steering preference cookie value.
func PrefCookie(hl, gl string) string {
	return fmt.Sprintf("PREF=hl=%s&gl=%s", normalizeLang(hl), strings.ToUpper(gl))
}

// CookieHeader derives the full Cookie header sent with every scrape
// request: locale preference plus the consent-bypass markers that keep the
// EU interstitial out of the response.
func CookieHeader(hl, gl string) string {
	return fmt.Sprintf("%s; CONSENT=YES+cb.20210328-17-p0.en+FX+678; SOCS=CAI", PrefCookie(hl, gl))
}

func normalizeLang(hl string) string {
	hl = strings.ToLower(strings.TrimSpace(hl))
	if hl == "" {
		return "en"
	}
	// "en-US" steers the same surface as "en".
	if idx := strings.IndexAny(hl, "-_"); idx > 0 {
		hl = hl[:idx]
	}
	return hl
}

func dedupe(queries []string) []string {
	seen := make(map[string]struct{}, len(queries))
	out := make([]string, 0, len(queries))
	for _, q := range queries {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		norm := strings.ToLower(q)
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		out = append(out, q)
	}
	return out
}
