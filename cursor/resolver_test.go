package cursor_test

import (
	"errors"
	"fmt"
	"regexp"
	"testing"

	"curgen/common"
	"curgen/cursor"
)

var cssValueRe = regexp.MustCompile(`^url\("[^"]+"\) (\d+) (\d+), auto$`)

func TestResolve_AllCombinations(t *testing.T) {
	scales := map[common.SizeTier]int{
		common.SizeTierSmall:  1,
		common.SizeTierMedium: 2,
		common.SizeTierLarge:  4,
	}
	cat := cursor.DefaultCatalog()

	for _, kindName := range common.CursorKindNames() {
		kind, _ := common.ParseCursorKind(kindName)
		asset, _ := cat.Lookup(kind)
		for size, scale := range scales {
			for _, color := range common.ColorVariantNames() {
				res, err := cursor.Resolve(".x", kind, size, color, cat)
				if err != nil {
					t.Fatalf("Resolve(%s, %s, %s) error = %v", kind, size, color, err)
				}
				m := cssValueRe.FindStringSubmatch(res.CSSValue)
				if m == nil {
					t.Fatalf("CSSValue %q has unexpected form", res.CSSValue)
				}
				want := fmt.Sprintf("%d", asset.Offset.X*scale)
				if m[1] != want {
					t.Errorf("%s/%s: x = %s, want %s", kind, size, m[1], want)
				}
				want = fmt.Sprintf("%d", asset.Offset.Y*scale)
				if m[2] != want {
					t.Errorf("%s/%s: y = %s, want %s", kind, size, m[2], want)
				}
			}
		}
	}
}

func TestResolve_URL(t *testing.T) {
	tests := []struct {
		name  string
		kind  common.CursorKind
		size  common.SizeTier
		color string
		cat   *cursor.Catalog
		url   string
		value string
	}{
		{
			name: "default large", kind: common.CursorKindDefault, size: common.SizeTierLarge, color: "white",
			url:   "web-friendly/128x128/pointer.png",
			value: `url("web-friendly/128x128/pointer.png") 12 12, auto`,
		},
		{
			name: "pointer gray", kind: common.CursorKindPointer, size: common.SizeTierSmall, color: "gray",
			url:   "web-friendly/32x32/graylink.png",
			value: `url("web-friendly/32x32/graylink.png") 5 2, auto`,
		},
		{
			name: "gray any case", kind: common.CursorKindWait, size: common.SizeTierMedium, color: "GRAY",
			url:   "web-friendly/64x64/graybusy.png",
			value: `url("web-friendly/64x64/graybusy.png") 32 32, auto`,
		},
		{
			name: "custom ignores color", kind: common.CursorKindText, size: common.SizeTierMedium, color: "red",
			cat:   cursor.NewCatalog(&cursor.Options{Dir: "theme"}),
			url:   "theme/64x64/beam.png",
			value: `url("theme/64x64/beam.png") 32 32, auto`,
		},
		{
			name: "custom gray not prefixed", kind: common.CursorKindText, size: common.SizeTierSmall, color: "gray",
			cat: cursor.NewCatalog(&cursor.Options{}),
			url: "web-friendly/32x32/beam.png",
		},
		{
			name: "quote in dir escaped", kind: common.CursorKindWait, size: common.SizeTierSmall, color: "white",
			cat:   cursor.NewCatalog(&cursor.Options{Dir: `a"b`}),
			url:   `a"b/32x32/busy.png`,
			value: `url("a\"b/32x32/busy.png") 16 16, auto`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := cursor.Resolve(".x", tt.kind, tt.size, tt.color, tt.cat)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if res.URL != tt.url {
				t.Errorf("URL = %q, want %q", res.URL, tt.url)
			}
			if tt.value != "" && res.CSSValue != tt.value {
				t.Errorf("CSSValue = %q, want %q", res.CSSValue, tt.value)
			}
			if res.Selectors != ".x" || res.Kind != tt.kind || res.Size != tt.size || res.Color != tt.color {
				t.Errorf("unexpected resolved fields %+v", res)
			}
		})
	}
}

func TestResolve_LargeHotspot(t *testing.T) {
	res, err := cursor.Resolve("body", common.CursorKindProgress, common.SizeTierLarge, "white", nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.Offset != (cursor.Offset{X: 12, Y: 12}) {
		t.Errorf("Offset = %+v, want (12,12)", res.Offset)
	}
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name  string
		kind  common.CursorKind
		size  common.SizeTier
		color string
		cat   *cursor.Catalog
		field string
		is    error
	}{
		{name: "unknown kind", kind: 99, size: common.SizeTierSmall, color: "white", field: "kind", is: cursor.ErrUnknownCursorKind},
		{name: "negative kind", kind: -1, size: common.SizeTierSmall, color: "white", field: "kind", is: cursor.ErrUnknownCursorKind},
		{name: "bad size", kind: common.CursorKindText, size: 7, color: "white", field: "size", is: common.ErrInvalidSizeTier},
		{name: "bad color", kind: common.CursorKindText, size: common.SizeTierSmall, color: "red", field: "color", is: common.ErrInvalidColorVariant},
		{name: "empty color", kind: common.CursorKindText, size: common.SizeTierSmall, color: "", field: "color", is: common.ErrInvalidColorVariant},
		{
			name: "custom catalog still checks kind", kind: 11, size: common.SizeTierSmall, color: "red",
			cat: cursor.NewCatalog(&cursor.Options{}), field: "kind", is: cursor.ErrUnknownCursorKind,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := cursor.Resolve(".x", tt.kind, tt.size, tt.color, tt.cat)
			if err == nil {
				t.Fatalf("Resolve() = %+v, want error", res)
			}
			if res != nil {
				t.Errorf("Resolve() returned partial result %+v", res)
			}
			var verr *cursor.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error %v is not ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Field = %q, want %q", verr.Field, tt.field)
			}
			if !errors.Is(err, tt.is) {
				t.Errorf("error %v does not wrap %v", err, tt.is)
			}
		})
	}
}

func TestParseKeyword(t *testing.T) {
	tests := []struct {
		value string
		kind  common.CursorKind
		ok    bool
	}{
		{"pointer", common.CursorKindPointer, true},
		{"  Pointer ", common.CursorKindPointer, true},
		{"default", common.CursorKindDefault, true},
		{"text", common.CursorKindText, true},
		{"progress", common.CursorKindProgress, true},
		{"wait !important", common.CursorKindWait, true},
		{"wait!IMPORTANT", common.CursorKindWait, true},
		{"all-scroll", common.CursorKindAllScroll, true},
		{"allScroll", common.CursorKindAllScroll, true},
		{"move", common.CursorKindAllScroll, true},
		{"ew-resize", common.CursorKindEwResize, true},
		{"col-resize", common.CursorKindEwResize, true},
		{"w-resize", common.CursorKindEwResize, true},
		{"ns-resize", common.CursorKindNsResize, true},
		{"row-resize", common.CursorKindNsResize, true},
		{"nesw-resize", common.CursorKindNeswResize, true},
		{"sw-resize", common.CursorKindNeswResize, true},
		{"nwse-resize", common.CursorKindNwseResize, true},
		{"se-resize", common.CursorKindNwseResize, true},
		{`url("hand.cur"), pointer`, common.CursorKindPointer, true},
		{"url(a.png) 2 2,text", common.CursorKindText, true},
		{"auto", 0, false},
		{"grab", 0, false},
		{"", 0, false},
		{"url(a.png)", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			kind, ok := cursor.ParseKeyword(tt.value)
			if ok != tt.ok {
				t.Fatalf("ParseKeyword(%q) ok = %v, want %v", tt.value, ok, tt.ok)
			}
			if ok && kind != tt.kind {
				t.Errorf("ParseKeyword(%q) = %s, want %s", tt.value, kind, tt.kind)
			}
		})
	}
}

func TestFolder(t *testing.T) {
	if got := cursor.Folder(common.SizeTierMedium); got != "64x64" {
		t.Errorf("Folder(medium) = %q", got)
	}
	if got := cursor.Folder(common.SizeTier(9)); got != "" {
		t.Errorf("Folder(9) = %q, want empty", got)
	}
}

func TestScale(t *testing.T) {
	for size, want := range map[common.SizeTier]int{
		common.SizeTierSmall:  1,
		common.SizeTierMedium: 2,
		common.SizeTierLarge:  4,
		common.SizeTier(7):    0,
	} {
		if got := cursor.Scale(size); got != want {
			t.Errorf("Scale(%d) = %d, want %d", size, got, want)
		}
	}
}
