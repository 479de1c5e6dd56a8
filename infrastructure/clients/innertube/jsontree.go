package innertube

import (
	"fmt"
	"html"
	"strings"
)

// dig walks a loosely-typed JSON tree by string keys and integer indexes,
// returning nil as soon as a step does not fit.
func dig(v any, keys ...any) any {
	cur := v
	for _, k := range keys {
		switch key := k.(type) {
		case string:
			m, ok := cur.(map[string]any)
			if !ok {
				return nil
			}
			cur = m[key]
		case int:
			a, ok := cur.([]any)
			if !ok || key < 0 || key >= len(a) {
				return nil
			}
			cur = a[key]
		default:
			return nil
		}
	}
	return cur
}

// digString is dig plus scalar coercion to a trimmed string.
func digString(v any, keys ...any) string {
	return scalarText(dig(v, keys...))
}

func scalarText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	case bool:
		return fmt.Sprintf("%v", t)
	default:
		return ""
	}
}

// text resolves the upstream's three text shapes in priority order: a plain
// simpleText, a list of styled runs to concatenate, then the accessibility
// label fallback. All free text is HTML-entity decoded.
func text(node any) string {
	if node == nil {
		return ""
	}
	if s := scalarText(node); s != "" {
		return html.UnescapeString(s)
	}
	if s := digString(node, "simpleText"); s != "" {
		return html.UnescapeString(s)
	}
	if runs, ok := dig(node, "runs").([]any); ok && len(runs) > 0 {
		var b strings.Builder
		for _, run := range runs {
			b.WriteString(digString(run, "text"))
		}
		if b.Len() > 0 {
			return html.UnescapeString(b.String())
		}
	}
	if s := digString(node, "accessibility", "accessibilityData", "label"); s != "" {
		return html.UnescapeString(s)
	}
	return ""
}

// firstText returns the first non-empty extraction among the candidate
// nodes, formalizing the "try this shape, then that shape" chains.
func firstText(nodes ...any) string {
	for _, n := range nodes {
		if s := text(n); s != "" {
			return s
		}
	}
	return ""
}

// rendererMarkers are the dictionary keys whose values carry one displayable
// video entity in the upstream's internal format.
var rendererMarkers = []string{
	"videoRenderer",
	"compactVideoRenderer",
	"gridVideoRenderer",
	"playlistVideoRenderer",
	"videoWithContextRenderer",
	"reelItemRenderer",
	"playlistRenderer",
	"radioRenderer",
}

// deepScanLimit bounds the recursive renderer collection so pathological
// payloads cannot produce runaway traversal results.
const deepScanLimit = 200

// collectRenderers walks the entire tree and gathers every dictionary node
// keyed by one of the given markers, in document order, up to limit.
func collectRenderers(node any, markers []string, limit int, out *[]map[string]any) {
	if len(*out) >= limit {
		return
	}
	switch typed := node.(type) {
	case map[string]any:
		for _, marker := range markers {
			if r, ok := typed[marker].(map[string]any); ok {
				*out = append(*out, r)
				if len(*out) >= limit {
					return
				}
			}
		}
		for _, v := range typed {
			collectRenderers(v, markers, limit, out)
		}
	case []any:
		for _, v := range typed {
			collectRenderers(v, markers, limit, out)
		}
	}
}

// collectContinuations gathers every continuation token anywhere in the
// response, in document order, de-duplicated. Tokens show up under several
// shapes depending on surface age.
func collectContinuations(node any) []string {
	var out []string
	seen := make(map[string]struct{})
	add := func(token string) {
		if token == "" {
			return
		}
		if _, ok := seen[token]; ok {
			return
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	var walk func(any)
	walk = func(n any) {
		switch typed := n.(type) {
		case map[string]any:
			add(digString(typed, "continuationCommand", "token"))
			add(digString(typed, "nextContinuationData", "continuation"))
			add(digString(typed, "reloadContinuationData", "continuation"))
			add(digString(typed, "continuationItemRenderer", "continuationEndpoint", "continuationCommand", "token"))
			for _, v := range typed {
				walk(v)
			}
		case []any:
			for _, v := range typed {
				walk(v)
			}
		}
	}
	walk(node)
	return out
}
