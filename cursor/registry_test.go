package cursor_test

import (
	"errors"
	"strings"
	"testing"

	"curgen/common"
	"curgen/cursor"
)

func mustResolve(t *testing.T, selectors string, kind common.CursorKind) *cursor.Resolved {
	t.Helper()
	res, err := cursor.Resolve(selectors, kind, common.SizeTierSmall, "white", nil)
	if err != nil {
		t.Fatalf("Resolve(%s, %s) error = %v", selectors, kind, err)
	}
	return res
}

func TestRegistry_LastWriteWins(t *testing.T) {
	r := cursor.NewRegistry()
	r.Register(mustResolve(t, ".a", common.CursorKindPointer), false)
	r.Register(mustResolve(t, ".b", common.CursorKindText), false)
	r.Register(mustResolve(t, ".a", common.CursorKindWait), false)

	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}

	custom := r.Custom()
	if custom[0].Selectors != ".b" || custom[1].Selectors != ".a" {
		t.Errorf("replaced entry must move to the end, got %s, %s", custom[0].Selectors, custom[1].Selectors)
	}

	text, err := r.Serialize(false)
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	if n := strings.Count(text, ".a {"); n != 1 {
		t.Errorf("expected one rule for .a, got %d:\n%s", n, text)
	}
	if !strings.Contains(text, `.a { cursor: url("web-friendly/32x32/busy.png") 16 16, auto !important; }`) {
		t.Errorf("rule for .a does not reflect later value:\n%s", text)
	}
}

func TestRegistry_ReplaceAcrossGroups(t *testing.T) {
	link := `url("web-friendly/32x32/link.png") 5 2, auto`
	busy := `url("web-friendly/32x32/busy.png") 16 16, auto`

	tests := []struct {
		name      string
		semantic  bool
		wantLines []string
	}{
		{
			name:      "semantic to semantic",
			semantic:  true,
			wantLines: []string{
				"/* Semantic tags */",
				"y { cursor: " + link + " !important; }",
				"x { cursor: " + busy + " !important; }",
				"/* Custom selectors */",
			},
		},
		{
			name:      "semantic to custom",
			semantic:  false,
			wantLines: []string{
				"/* Semantic tags */",
				"y { cursor: " + link + " !important; }",
				"/* Custom selectors */",
				"x { cursor: " + busy + " !important; }",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := cursor.NewRegistry()
			r.Register(mustResolve(t, "x", common.CursorKindPointer), true)
			r.Register(mustResolve(t, "y", common.CursorKindPointer), true)
			r.Register(mustResolve(t, "x", common.CursorKindWait), tt.semantic)

			if r.Len() != 2 {
				t.Errorf("Len() = %d, want 2", r.Len())
			}
			text, err := r.Serialize(true)
			if err != nil {
				t.Fatalf("Serialize() error = %v", err)
			}
			want := strings.Join(tt.wantLines, "\n") + "\n"
			if text != want {
				t.Errorf("Serialize() =\n%s\nwant\n%s", text, want)
			}
		})
	}
}

func TestRegistry_CustomToSemantic(t *testing.T) {
	r := cursor.NewRegistry()
	r.Register(mustResolve(t, "a", common.CursorKindWait), false)
	r.Register(mustResolve(t, "a", common.CursorKindPointer), true)

	text, _ := r.Serialize(false)
	if n := strings.Count(text, "a {"); n != 1 {
		t.Errorf("expected one rule for a, got %d:\n%s", n, text)
	}
	if len(r.Custom()) != 0 {
		t.Errorf("custom list must be empty, got %d", len(r.Custom()))
	}
}

func TestRegistry_BucketValueFollowsFirstMember(t *testing.T) {
	r := cursor.NewRegistry()
	first, _ := cursor.Resolve("a", common.CursorKindPointer, common.SizeTierSmall, "white", nil)
	second, _ := cursor.Resolve("button", common.CursorKindPointer, common.SizeTierLarge, "white", nil)
	r.Register(first, true)
	r.Register(second, true)
	r.Register(mustResolve(t, "a", common.CursorKindText), false)

	text, _ := r.Serialize(false)
	if !strings.Contains(text, "\nbutton { cursor: "+second.CSSValue+" !important; }\n") {
		t.Errorf("remaining member must supply group value:\n%s", text)
	}
}

func TestRegistry_Conditional(t *testing.T) {
	r := cursor.NewRegistry()
	r.Register(mustResolve(t, ".menu", common.CursorKindPointer), false)
	r.RegisterConditional(mustResolve(t, ".menu", common.CursorKindNsResize), []string{"@media (max-width:600px)"})
	r.RegisterConditional(mustResolve(t, ".grid", common.CursorKindAllScroll), []string{"@media print", "@supports (display:grid)"})
	r.RegisterConditional(mustResolve(t, ".menu", common.CursorKindWait), []string{"@media (max-width:600px)"})

	if r.Len() != 3 {
		t.Errorf("Len() = %d, want 3", r.Len())
	}

	text, err := r.Serialize(true)
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	want := strings.Join([]string{
		"/* Semantic tags */",
		"/* Custom selectors */",
		`.menu { cursor: url("web-friendly/32x32/link.png") 5 2, auto !important; }`,
		`@media print { @supports (display:grid) { .grid { cursor: url("web-friendly/32x32/move.png") 16 16, auto !important; } } }`,
		`@media (max-width:600px) { .menu { cursor: url("web-friendly/32x32/busy.png") 16 16, auto !important; } }`,
		"",
	}, "\n")
	if text != want {
		t.Errorf("Serialize() =\n%s\nwant\n%s", text, want)
	}
}

func TestRegistry_SerializeLayout(t *testing.T) {
	r := cursor.NewRegistry()
	r.Register(mustResolve(t, "input", common.CursorKindText), true)
	r.Register(mustResolve(t, "body", common.CursorKindDefault), true)
	r.Register(mustResolve(t, "a", common.CursorKindPointer), true)
	r.Register(mustResolve(t, "p", common.CursorKindDefault), true)
	r.Register(mustResolve(t, ".btn", common.CursorKindPointer), false)
	r.Register(mustResolve(t, ".load", common.CursorKindProgress), false)

	text, err := r.Serialize(true)
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	want := strings.Join([]string{
		"/* Semantic tags */",
		`body, p { cursor: url("web-friendly/32x32/pointer.png") 3 3, auto !important; }`,
		`a { cursor: url("web-friendly/32x32/link.png") 5 2, auto !important; }`,
		`input { cursor: url("web-friendly/32x32/beam.png") 16 16, auto !important; }`,
		"/* Custom selectors */",
		`.btn { cursor: url("web-friendly/32x32/link.png") 5 2, auto !important; }`,
		`.load { cursor: url("web-friendly/32x32/working.png") 3 3, auto !important; }`,
		"",
	}, "\n")
	if text != want {
		t.Errorf("Serialize() =\n%s\nwant\n%s", text, want)
	}
}

func TestRegistry_BucketKeepsFirstValue(t *testing.T) {
	r := cursor.NewRegistry()
	first, _ := cursor.Resolve("a", common.CursorKindPointer, common.SizeTierSmall, "white", nil)
	second, _ := cursor.Resolve("button", common.CursorKindPointer, common.SizeTierLarge, "white", nil)
	r.Register(first, true)
	r.Register(second, true)

	text, _ := r.Serialize(false)
	if !strings.Contains(text, "a, button { cursor: "+first.CSSValue+" !important; }") {
		t.Errorf("bucket must keep first value:\n%s", text)
	}
}

func TestRegistry_Empty(t *testing.T) {
	r := cursor.NewRegistry()

	if _, err := r.Serialize(true); !errors.Is(err, cursor.ErrEmptyStylesheet) {
		t.Errorf("Serialize(true) error = %v, want ErrEmptyStylesheet", err)
	}

	text, err := r.Serialize(false)
	if err != nil {
		t.Fatalf("Serialize(false) error = %v", err)
	}
	if text != "/* Semantic tags */\n/* Custom selectors */\n" {
		t.Errorf("Serialize(false) = %q", text)
	}
}

func TestRegistry_String(t *testing.T) {
	r := cursor.NewRegistry()
	r.Register(mustResolve(t, "body", common.CursorKindDefault), true)
	r.Register(mustResolve(t, ".btn", common.CursorKindPointer), false)

	dump := r.String()
	for _, want := range []string{"Registry: 2 entries", "default: 1 selectors", ".btn (semantic=false)", `kind: "pointer"`} {
		if !strings.Contains(dump, want) {
			t.Errorf("dump missing %q:\n%s", want, dump)
		}
	}
}
