package innertube

import (
	"bytes"
	"encoding/json"
	"regexp"

	"github.com/safak4545x/swifttube/domain/model"
	"github.com/safak4545x/swifttube/infrastructure/logger"
)

// Kind identifies the scraped surface, which determines the exact and
// alternate extraction paths to try before falling back to generic scans.
type Kind int

const (
	KindSearch Kind = iota
	KindRelated
	KindPlaylist
	KindChannel
)

func (k Kind) String() string {
	switch k {
	case KindSearch:
		return "search"
	case KindRelated:
		return "related"
	case KindPlaylist:
		return "playlist"
	default:
		return "channel"
	}
}

// strategy names, for the drift-visibility debug log only.
const (
	strategyExact     = "exact"
	strategyAlternate = "alternate"
	strategyDeepScan  = "deep_scan"
	strategyTextScan  = "text_scan"
	strategyIDScan    = "id_scan"
)

var videoIDPattern = regexp.MustCompile(`(?:watch\?v=|"videoId"\s*:\s*")([A-Za-z0-9_-]{11})`)

// ExtractVideos resolves video records from a raw payload, which may be a
// rendered HTML page or an RPC JSON response. Strategies run in a fixed
// priority order and the first non-empty result wins. "Nothing found" is an
// empty slice, never an error; only an undecodable payload upstream of this
// call counts as a failure.
func ExtractVideos(payload []byte, kind Kind) []model.Video {
	tree := parseTree(payload)

	if tree != nil {
		if videos := fromRenderers(exactPath(tree, kind)); len(videos) > 0 {
			return videos
		}
		if videos := fromRenderers(alternatePath(tree, kind)); len(videos) > 0 {
			logStrategy(kind, strategyAlternate)
			return videos
		}
		var deep []map[string]any
		collectRenderers(tree, rendererMarkers, deepScanLimit, &deep)
		if videos := fromRenderers(deep); len(videos) > 0 {
			logStrategy(kind, strategyDeepScan)
			return videos
		}
	}

	if videos := textScan(payload); len(videos) > 0 {
		logStrategy(kind, strategyTextScan)
		return videos
	}
	if videos := idScan(payload); len(videos) > 0 {
		logStrategy(kind, strategyIDScan)
		return videos
	}
	return nil
}

// ExtractContinuations returns every continuation token in the payload.
func ExtractContinuations(payload []byte) []string {
	tree := parseTree(payload)
	if tree == nil {
		return nil
	}
	return collectContinuations(tree)
}

// parseTree decodes an RPC response directly, or digs the ytInitialData
// blob out of a rendered page first. Returns nil when neither works; the
// raw-text strategies still get their shot at the bytes.
func parseTree(payload []byte) any {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil
	}
	if trimmed[0] == '{' {
		var tree any
		if err := json.Unmarshal(trimmed, &tree); err == nil {
			return tree
		}
		return nil
	}
	blob := initialData(payload)
	if blob == nil {
		return nil
	}
	var tree any
	if err := json.Unmarshal(blob, &tree); err != nil {
		return nil
	}
	return tree
}

// exactPath walks the single best-known location for the current surface.
func exactPath(tree any, kind Kind) []map[string]any {
	switch kind {
	case KindSearch:
		sections, _ := dig(tree, "contents", "twoColumnSearchResultsRenderer", "primaryContents", "sectionListRenderer", "contents").([]any)
		return sectionRenderers(sections)
	case KindRelated:
		results, _ := dig(tree, "contents", "twoColumnWatchNextResults", "secondaryResults", "secondaryResults", "results").([]any)
		return listRenderers(results)
	case KindPlaylist:
		contents, _ := dig(tree,
			"contents", "twoColumnBrowseResultsRenderer", "tabs", 0, "tabRenderer", "content",
			"sectionListRenderer", "contents", 0, "itemSectionRenderer", "contents", 0,
			"playlistVideoListRenderer", "contents").([]any)
		return listRenderers(contents)
	case KindChannel:
		var tabs []any
		tabs, _ = dig(tree, "contents", "twoColumnBrowseResultsRenderer", "tabs").([]any)
		for _, tab := range tabs {
			grid, _ := dig(tab, "tabRenderer", "content", "richGridRenderer", "contents").([]any)
			if len(grid) == 0 {
				continue
			}
			var out []map[string]any
			for _, item := range grid {
				if r, ok := dig(item, "richItemRenderer", "content", "videoRenderer").(map[string]any); ok {
					out = append(out, r)
				}
			}
			if len(out) > 0 {
				return out
			}
		}
	}
	return nil
}

// alternatePath covers the documented-but-less-common second location per
// surface (mobile layouts, appended continuation batches, the shallower
// secondaryResults shape).
func alternatePath(tree any, kind Kind) []map[string]any {
	switch kind {
	case KindSearch:
		sections, _ := dig(tree, "contents", "sectionListRenderer", "contents").([]any)
		return sectionRenderers(sections)
	case KindRelated:
		results, _ := dig(tree, "contents", "twoColumnWatchNextResults", "secondaryResults", "results").([]any)
		return listRenderers(results)
	case KindPlaylist, KindChannel:
		actions, _ := dig(tree, "onResponseReceivedActions").([]any)
		var out []map[string]any
		for _, action := range actions {
			items, _ := dig(action, "appendContinuationItemsAction", "continuationItems").([]any)
			out = append(out, listRenderers(items)...)
		}
		return out
	}
	return nil
}

func sectionRenderers(sections []any) []map[string]any {
	var out []map[string]any
	for _, section := range sections {
		items, _ := dig(section, "itemSectionRenderer", "contents").([]any)
		out = append(out, listRenderers(items)...)
	}
	return out
}

func listRenderers(items []any) []map[string]any {
	var out []map[string]any
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		for _, marker := range rendererMarkers {
			if r, ok := m[marker].(map[string]any); ok {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

func fromRenderers(renderers []map[string]any) []model.Video {
	videos := make([]model.Video, 0, len(renderers))
	for _, r := range renderers {
		if v, ok := videoFromRenderer(r); ok {
			videos = append(videos, v)
		}
	}
	return videos
}

// textScan is strategy four: the payload (or the parts of it the tree
// strategies could not see) is scanned as raw text for repeating renderer
// markers, and each balanced object is parsed independently.
func textScan(payload []byte) []model.Video {
	var videos []model.Video
	for _, marker := range rendererMarkers {
		for _, obj := range scanMarkedObjects(payload, marker, deepScanLimit) {
			var renderer map[string]any
			if err := json.Unmarshal(obj, &renderer); err != nil {
				continue
			}
			if v, ok := videoFromRenderer(renderer); ok {
				videos = append(videos, v)
			}
		}
		if len(videos) > 0 {
			return videos
		}
	}
	return nil
}

// idScan is the last resort: bare 11-character video ids with a nearby-text
// title guess, synthesized into placeholder records.
func idScan(payload []byte) []model.Video {
	raw := string(payload)
	matches := videoIDPattern.FindAllStringSubmatchIndex(raw, deepScanLimit)
	seen := make(map[string]struct{})
	var videos []model.Video
	for _, m := range matches {
		id := raw[m[2]:m[3]]
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		title := nearbyTitle(raw, m[1], 400)
		if title == "" {
			title = id
		}
		videos = append(videos, model.Video{ID: id, Title: title})
	}
	return videos
}

// videoFromRenderer maps one renderer dictionary onto a Video record,
// tolerating the field-shape drift across surfaces.
func videoFromRenderer(r map[string]any) (model.Video, bool) {
	id := firstText(
		dig(r, "videoId"),
		dig(r, "navigationEndpoint", "watchEndpoint", "videoId"),
	)
	if id == "" {
		return model.Video{}, false
	}

	title := firstText(
		dig(r, "title"),
		dig(r, "headline"),
	)
	channel := firstText(
		dig(r, "longBylineText"),
		dig(r, "shortBylineText"),
		dig(r, "ownerText"),
	)
	channelID := firstText(
		dig(r, "longBylineText", "runs", 0, "navigationEndpoint", "browseEndpoint", "browseId"),
		dig(r, "shortBylineText", "runs", 0, "navigationEndpoint", "browseEndpoint", "browseId"),
		dig(r, "ownerText", "runs", 0, "navigationEndpoint", "browseEndpoint", "browseId"),
		dig(r, "channelThumbnailSupportedRenderers", "channelThumbnailWithLinkRenderer", "navigationEndpoint", "browseEndpoint", "browseId"),
	)
	views := firstText(
		dig(r, "viewCountText"),
		dig(r, "shortViewCountText"),
		dig(r, "videoInfo"),
	)
	published := firstText(
		dig(r, "publishedTimeText"),
	)
	duration := firstText(
		dig(r, "lengthText"),
		dig(r, "thumbnailOverlays", 0, "thumbnailOverlayTimeStatusRenderer", "text"),
	)
	thumb := firstText(
		dig(r, "thumbnail", "thumbnails", 0, "url"),
	)
	avatar := firstText(
		dig(r, "channelThumbnailSupportedRenderers", "channelThumbnailWithLinkRenderer", "thumbnail", "thumbnails", 0, "url"),
		dig(r, "channelThumbnail", "thumbnails", 0, "url"),
	)
	description := firstText(
		dig(r, "detailedMetadataSnippets", 0, "snippetText"),
		dig(r, "descriptionSnippet"),
	)

	video := model.Video{
		ID:            id,
		Title:         title,
		ChannelTitle:  channel,
		ChannelID:     channelID,
		ViewCountText: views,
		PublishedText: published,
		Thumbnail:     thumb,
		ChannelAvatar: avatar,
		Description:   description,
		DurationText:  duration,
	}
	if secs := ParseDuration(duration); secs > 0 {
		video.DurationSeconds = secs
	}
	return video, true
}

// channelFromPage extracts the channel header from a rendered channel page.
func channelFromPage(payload []byte, channelID string) *model.Channel {
	tree := parseTree(payload)
	if tree == nil {
		return nil
	}
	header := dig(tree, "header", "c4TabbedHeaderRenderer")
	if header == nil {
		header = dig(tree, "header", "pageHeaderRenderer", "content", "pageHeaderViewModel")
	}
	metadata := dig(tree, "metadata", "channelMetadataRenderer")
	if header == nil && metadata == nil {
		return nil
	}
	ch := &model.Channel{
		ID: channelID,
		Title: firstText(
			dig(header, "title"),
			dig(metadata, "title"),
		),
		Description: firstText(
			dig(metadata, "description"),
			dig(header, "description"),
		),
		Avatar: firstText(
			dig(header, "avatar", "thumbnails", 0, "url"),
			dig(metadata, "avatar", "thumbnails", 0, "url"),
		),
		Banner: firstText(
			dig(header, "banner", "thumbnails", 0, "url"),
		),
	}
	if ch.ID == "" {
		ch.ID = digString(metadata, "externalId")
	}
	return ch
}

func logStrategy(kind Kind, strategy string) {
	// Late-stage fallbacks succeeding usually means the primary layout
	// drifted; keep that visible without changing behavior.
	logger.GetLogger().WithField("surface", kind.String()).WithField("strategy", strategy).Debug("Extraction used fallback strategy")
}
