package cursor

import (
	"slices"
	"strings"

	"curgen/common"
)

// SemanticEntry assigns a cursor kind to an element selector.
type SemanticEntry struct {
	Selector   string
	Kind       common.CursorKind
	Sectioning bool // structural container, only gets disabled variant
}

// semanticTable is ordered by priority, earlier entries are more specific.
var semanticTable = []SemanticEntry{
	{Selector: "body", Kind: common.CursorKindDefault},
	{Selector: "[type]", Kind: common.CursorKindDefault},
	{Selector: "header", Kind: common.CursorKindDefault, Sectioning: true},
	{Selector: "nav", Kind: common.CursorKindDefault, Sectioning: true},
	{Selector: "div", Kind: common.CursorKindDefault, Sectioning: true},
	{Selector: "main", Kind: common.CursorKindDefault, Sectioning: true},
	{Selector: "section", Kind: common.CursorKindDefault, Sectioning: true},
	{Selector: "article", Kind: common.CursorKindDefault, Sectioning: true},
	{Selector: "aside", Kind: common.CursorKindDefault, Sectioning: true},
	{Selector: "footer", Kind: common.CursorKindDefault, Sectioning: true},
	{Selector: "details", Kind: common.CursorKindDefault, Sectioning: true},
	{Selector: "figure", Kind: common.CursorKindDefault, Sectioning: true},
	{Selector: "a", Kind: common.CursorKindPointer},
	{Selector: "p", Kind: common.CursorKindDefault},
	{Selector: "label", Kind: common.CursorKindDefault},
	{Selector: "span", Kind: common.CursorKindDefault},
	{Selector: "h1", Kind: common.CursorKindDefault},
	{Selector: "h2", Kind: common.CursorKindDefault},
	{Selector: "h3", Kind: common.CursorKindDefault},
	{Selector: "h4", Kind: common.CursorKindDefault},
	{Selector: "h5", Kind: common.CursorKindDefault},
	{Selector: "h6", Kind: common.CursorKindDefault},
	{Selector: `input[type="button"]`, Kind: common.CursorKindPointer},
	{Selector: `input[type="checkbox"]`, Kind: common.CursorKindPointer},
	{Selector: `input[type="reset"]`, Kind: common.CursorKindPointer},
	{Selector: `input[type="radio"]`, Kind: common.CursorKindPointer},
	{Selector: `input[type="image"]`, Kind: common.CursorKindPointer},
	{Selector: `input[type="range"]`, Kind: common.CursorKindPointer},
	{Selector: `input[type="submit"]`, Kind: common.CursorKindPointer},
	{Selector: "input", Kind: common.CursorKindText},
	{Selector: `input[type="file"]`, Kind: common.CursorKindText},
	{Selector: `input[type="text"]`, Kind: common.CursorKindText},
	{Selector: `input[type="email"]`, Kind: common.CursorKindText},
	{Selector: `input[type="password"]`, Kind: common.CursorKindText},
	{Selector: `input[type="search"]`, Kind: common.CursorKindText},
	{Selector: `input[type="date"]`, Kind: common.CursorKindText},
	{Selector: `input[type="datetime-local"]`, Kind: common.CursorKindText},
	{Selector: `input[type="month"]`, Kind: common.CursorKindText},
	{Selector: `input[type="week"]`, Kind: common.CursorKindText},
	{Selector: `input[type="number"]`, Kind: common.CursorKindText},
	{Selector: `input[type="tel"]`, Kind: common.CursorKindText},
	{Selector: `input[type="time"]`, Kind: common.CursorKindText},
	{Selector: `input[type="url"]`, Kind: common.CursorKindText},
	{Selector: "button", Kind: common.CursorKindPointer},
}

// SemanticTable returns a copy of the static semantic table.
func SemanticTable() []SemanticEntry {
	return slices.Clone(semanticTable)
}

// ExpandSemantic produces ordered (selector, kind) pairs for the whole table.
// First pass emits non-sectioning entries followed by their hover variant
// when the entry is neither an input nor a default cursor. Second pass emits
// disabled variants of every entry, so that disabled rules always come after
// base and hover ones.
func ExpandSemantic() []SemanticEntry {
	out := make([]SemanticEntry, 0, 2*len(semanticTable))
	for _, e := range semanticTable {
		if e.Sectioning {
			continue
		}
		out = append(out, SemanticEntry{Selector: e.Selector, Kind: e.Kind})
		if e.Kind != common.CursorKindDefault && !strings.Contains(e.Selector, "input") {
			out = append(out, SemanticEntry{Selector: e.Selector + ":hover", Kind: common.CursorKindPointer})
		}
	}
	for _, e := range semanticTable {
		out = append(out, SemanticEntry{Selector: e.Selector + ":disabled", Kind: common.CursorKindDefault})
	}
	return out
}
