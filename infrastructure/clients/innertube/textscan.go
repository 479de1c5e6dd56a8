package innertube

import (
	"bytes"
	"strings"
)

// initialDataMarkers are the known lead-ins for the rendered-page JSON blob.
var initialDataMarkers = []string{
	"var ytInitialData = ",
	`window["ytInitialData"] = `,
	"ytInitialData = ",
}

// initialData locates the ytInitialData blob inside a rendered HTML page and
// returns the balanced JSON object following the marker, or nil.
func initialData(page []byte) []byte {
	for _, marker := range initialDataMarkers {
		idx := bytes.Index(page, []byte(marker))
		if idx < 0 {
			continue
		}
		if obj := balancedObject(page[idx+len(marker):]); obj != nil {
			return obj
		}
	}
	return nil
}

// balancedObject returns the first complete {...} object at the start of
// data (leading whitespace allowed), using a brace-depth counter that is
// string-aware: braces inside quoted strings do not count, and escaped
// quotes do not end a string.
func balancedObject(data []byte) []byte {
	start := 0
	for start < len(data) && (data[start] == ' ' || data[start] == '\t' || data[start] == '\n' || data[start] == '\r') {
		start++
	}
	if start >= len(data) || data[start] != '{' {
		return nil
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(data); i++ {
		c := data[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return data[start : i+1]
			}
		}
	}
	return nil
}

// scanMarkedObjects finds every `"<marker>":` occurrence in raw text and
// extracts the balanced JSON object that follows, up to limit objects. This
// is the strategy of last resort before the bare-id fallback, for payloads
// that cannot be parsed as a whole.
func scanMarkedObjects(raw []byte, marker string, limit int) [][]byte {
	needle := []byte(`"` + marker + `":`)
	var out [][]byte
	offset := 0
	for len(out) < limit {
		idx := bytes.Index(raw[offset:], needle)
		if idx < 0 {
			break
		}
		pos := offset + idx + len(needle)
		if obj := balancedObject(raw[pos:]); obj != nil {
			out = append(out, obj)
			offset = pos + len(obj)
		} else {
			offset = pos
		}
	}
	return out
}

// nearbyTitle guesses a display title near a matched id by scanning the
// following window for the first `"text":"..."` value. Used only by the
// identifier-only fallback, where anything beats showing the raw id.
func nearbyTitle(raw string, from, window int) string {
	end := from + window
	if end > len(raw) {
		end = len(raw)
	}
	segment := raw[from:end]
	const lead = `"text":"`
	idx := strings.Index(segment, lead)
	if idx < 0 {
		return ""
	}
	rest := segment[idx+len(lead):]
	var b strings.Builder
	escaped := false
	for i := 0; i < len(rest); i++ {
		c := rest[i]
		if escaped {
			b.WriteByte(c)
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			continue
		}
		if c == '"' {
			return b.String()
		}
		b.WriteByte(c)
	}
	return ""
}
