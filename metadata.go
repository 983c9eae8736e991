package mapevent

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/width"
)

// Marker names. Each concept has one canonical key followed by the aliases
// accepted from authored content.
var (
	NameMarkers     = []string{"Name", "名前"}
	PresetMarkers   = []string{"NamePreset", "名前プリセット"}
	LocateMarkers   = []string{"Locate"}
	ParentIDMarkers = []string{"ParentId", "Parent"}
)

// Marker is one <Key[Index]:Value> entry of an entity note. Full-width
// delimiters (＜＞：［］) are accepted as well.
type Marker struct {
	Key   string
	Index string
	Value string
}

var markerRe = regexp.MustCompile(
	`[<＜]\s*([^:：<>＜＞\[\]［］]+?)\s*(?:[\[［]\s*([^\]］]*?)\s*[\]］])?\s*[:：]\s*([^>＞]*?)\s*[>＞]`)

// Metadata is the parsed marker set of a note, in authoring order.
type Metadata struct {
	markers []Marker
}

// ParseMetadata extracts every marker from note. Text outside markers is
// ignored.
func ParseMetadata(note string) Metadata {
	var md Metadata
	for _, m := range markerRe.FindAllStringSubmatch(note, -1) {
		md.markers = append(md.markers, Marker{
			Key:   strings.TrimSpace(m[1]),
			Index: strings.TrimSpace(m[2]),
			Value: strings.TrimSpace(m[3]),
		})
	}
	return md
}

// Markers returns the parsed markers. The slice must not be mutated.
func (md Metadata) Markers() []Marker {
	return md.markers
}

// Lookup returns the first non-empty marker matching keys. Keys are tried in
// order; a later key is only consulted when no marker matches an earlier one.
// Matching ignores case and character width.
func (md Metadata) Lookup(keys ...string) (Marker, bool) {
	for _, k := range keys {
		want := foldKey(k)
		if want == "" {
			continue
		}
		for _, m := range md.markers {
			if m.Value != "" && foldKey(m.Key) == want {
				return m, true
			}
		}
	}
	return Marker{}, false
}

// Value returns the value of the first marker matching keys, or "".
func (md Metadata) Value(keys ...string) string {
	m, _ := md.Lookup(keys...)
	return m.Value
}

// foldKey normalizes a marker key for comparison.
func foldKey(k string) string {
	return cases.Fold().String(width.Fold.String(strings.TrimSpace(k)))
}

// foldDigits narrows full-width digits, signs and separators so numeric
// marker bodies parse the same either way they were typed.
func foldDigits(s string) string {
	return strings.ReplaceAll(width.Fold.String(s), "、", ",")
}

var (
	locateXRe    = regexp.MustCompile(`(?i)x\s*:?\s*([+-]?\d+)`)
	locateYRe    = regexp.MustCompile(`(?i)y\s*:?\s*([+-]?\d+)`)
	locatePairRe = regexp.MustCompile(`([+-]?\d+)\s*,\s*([+-]?\d+)`)
	digitsRe     = regexp.MustCompile(`^\d+$`)
)

// ParseLocateOffset reads a pixel nudge from a locate marker body such as
// "x +3, y -8" or "+3,-8". Variable placeholders are expanded through vars.
// Malformed bodies yield a zero offset.
func ParseLocateOffset(body string, vars Variables) Vec2 {
	body = strings.TrimSpace(foldDigits(body))
	if body == "" {
		return Vec2{}
	}
	body = expandVariables(body, vars)

	rx := locateXRe.FindStringSubmatch(body)
	ry := locateYRe.FindStringSubmatch(body)
	if rx != nil || ry != nil {
		var off Vec2
		if rx != nil {
			off.X = atof(rx[1])
		}
		if ry != nil {
			off.Y = atof(ry[1])
		}
		return off
	}
	if m := locatePairRe.FindStringSubmatch(body); m != nil {
		return Vec2{X: atof(m[1]), Y: atof(m[2])}
	}
	return Vec2{}
}

// ParentLink is a child's declared leader. ParentID 0 means no parent; a
// GateSwitch of 0 means the link is always enabled.
type ParentLink struct {
	ParentID   int
	GateSwitch int
}

// ParseParentLink reads the parent marker of md. A malformed id or gate
// yields the zero link.
func ParseParentLink(md Metadata) ParentLink {
	m, ok := md.Lookup(ParentIDMarkers...)
	if !ok {
		return ParentLink{}
	}
	id := strings.TrimSpace(foldDigits(m.Value))
	gate := strings.TrimSpace(foldDigits(m.Index))
	if !digitsRe.MatchString(id) || (gate != "" && !digitsRe.MatchString(gate)) {
		return ParentLink{}
	}
	link := ParentLink{ParentID: atoi(id)}
	if gate != "" {
		link.GateSwitch = atoi(gate)
	}
	return link
}

func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimPrefix(s, "+"))
	return n
}

func atof(s string) float64 {
	return float64(atoi(s))
}
