package cursor

import (
	"fmt"
	"strings"

	"curgen/common"
	"curgen/css"
)

type tier struct {
	scale  int
	folder string
}

var tiers = [...]tier{
	common.SizeTierSmall:  {scale: 1, folder: "32x32"},
	common.SizeTierMedium: {scale: 2, folder: "64x64"},
	common.SizeTierLarge:  {scale: 4, folder: "128x128"},
}

// Folder returns asset subfolder for size tier.
func Folder(size common.SizeTier) string {
	if !size.IsValid() {
		return ""
	}
	return tiers[size].folder
}

// Scale returns hotspot and image multiplier for size tier, 0 for invalid
// tiers.
func Scale(size common.SizeTier) int {
	if !size.IsValid() {
		return 0
	}
	return tiers[size].scale
}

// Resolved is a cursor assignment ready to be written out.
type Resolved struct {
	Selectors string // selector expression, registry identity
	Kind      common.CursorKind
	URL       string
	Size      common.SizeTier
	Offset    Offset // hotspot scaled for size tier
	Color     string
	CSSValue  string
}

// Resolve validates inputs and computes image URL, scaled hotspot and the
// value of css cursor property. Color is only checked against known variants
// for the built-in catalog, custom catalogs accept any color and never prefix
// file names with it.
func Resolve(selectors string, kind common.CursorKind, size common.SizeTier, color string, cat *Catalog) (*Resolved, error) {
	if cat == nil {
		cat = DefaultCatalog()
	}

	asset, err := cat.Lookup(kind)
	if err != nil {
		return nil, err
	}
	if !size.IsValid() {
		return nil, &ValidationError{Field: "size", Value: size.String(), Err: common.ErrInvalidSizeTier}
	}

	var prefix string
	if cat.Builtin() {
		variant, err := common.ParseColorVariant(color)
		if err != nil {
			return nil, &ValidationError{Field: "color", Value: color, Err: common.ErrInvalidColorVariant}
		}
		if variant != common.ColorVariantWhite {
			prefix = variant.String()
		}
	}

	t := tiers[size]
	res := &Resolved{
		Selectors: selectors,
		Kind:      kind,
		URL:       fmt.Sprintf("%s/%s/%s%s.png", cat.Dir(), t.folder, prefix, asset.Name),
		Size:      size,
		Offset:    Offset{X: asset.Offset.X * t.scale, Y: asset.Offset.Y * t.scale},
		Color:     color,
	}
	res.CSSValue = fmt.Sprintf(`url("%s") %d %d, auto`, css.EscapeDoubleQuoted(res.URL), res.Offset.X, res.Offset.Y)
	return res, nil
}

// keywordKinds maps css cursor keywords and kind names (lower case) to kinds.
var keywordKinds = map[string]common.CursorKind{
	"default":     common.CursorKindDefault,
	"pointer":     common.CursorKindPointer,
	"text":        common.CursorKindText,
	"progress":    common.CursorKindProgress,
	"wait":        common.CursorKindWait,
	"all-scroll":  common.CursorKindAllScroll,
	"allscroll":   common.CursorKindAllScroll,
	"move":        common.CursorKindAllScroll,
	"ew-resize":   common.CursorKindEwResize,
	"ewresize":    common.CursorKindEwResize,
	"e-resize":    common.CursorKindEwResize,
	"w-resize":    common.CursorKindEwResize,
	"col-resize":  common.CursorKindEwResize,
	"ns-resize":   common.CursorKindNsResize,
	"nsresize":    common.CursorKindNsResize,
	"n-resize":    common.CursorKindNsResize,
	"s-resize":    common.CursorKindNsResize,
	"row-resize":  common.CursorKindNsResize,
	"nesw-resize": common.CursorKindNeswResize,
	"neswresize":  common.CursorKindNeswResize,
	"ne-resize":   common.CursorKindNeswResize,
	"sw-resize":   common.CursorKindNeswResize,
	"nwse-resize": common.CursorKindNwseResize,
	"nwseresize":  common.CursorKindNwseResize,
	"nw-resize":   common.CursorKindNwseResize,
	"se-resize":   common.CursorKindNwseResize,
}

// ParseKeyword maps declared value of css cursor property to a cursor kind.
// For fallback lists ("url(x.cur), pointer") the last entry is used.
func ParseKeyword(value string) (common.CursorKind, bool) {
	v := strings.TrimSpace(value)
	if i := strings.LastIndexByte(v, '!'); i >= 0 && strings.EqualFold(strings.TrimSpace(v[i+1:]), "important") {
		v = v[:i]
	}
	if i := strings.LastIndexByte(v, ','); i >= 0 {
		v = v[i+1:]
	}
	kind, ok := keywordKinds[strings.ToLower(strings.TrimSpace(v))]
	return kind, ok
}
