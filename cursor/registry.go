package cursor

import (
	"fmt"
	"slices"
	"strings"

	"curgen/common"
	"curgen/utils/debug"
)

const (
	semanticMarker = "/* Semantic tags */"
	customMarker   = "/* Custom selectors */"
)

type entry struct {
	cursor     *Resolved
	semantic   bool
	conditions []string
}

// key identifies entry: selector expression within its conditional groups.
func (e entry) key() string {
	if len(e.conditions) == 0 {
		return e.cursor.Selectors
	}
	return strings.Join(e.conditions, "\x00") + "\x00" + e.cursor.Selectors
}

// bucket groups semantic selectors sharing a cursor kind. The first member
// supplies css value of the whole group.
type bucket struct {
	members []*Resolved
}

func (b *bucket) value() string {
	if len(b.members) == 0 {
		return ""
	}
	return b.members[0].CSSValue
}

func (b *bucket) selectors() string {
	var sb strings.Builder
	for i, m := range b.members {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(m.Selectors)
	}
	return sb.String()
}

// Registry accumulates resolved cursors of a single invocation. It is not
// safe for concurrent use and should not outlive the invocation.
type Registry struct {
	entries []entry
	// one bucket per kind, the last one collects kinds outside of known set
	buckets [kindCount + 1]bucket
}

// NewRegistry creates empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds resolved cursor. Registering selector expression already
// present replaces old entry wherever it was (semantic group or custom list)
// and moves it to the end. Semantic cursors are also grouped by kind.
func (r *Registry) Register(res *Resolved, semantic bool) {
	r.add(entry{cursor: res, semantic: semantic})
}

// RegisterConditional adds custom cursor which applies only inside given
// conditional groups ("@media print"), outermost first. The same selector
// expression under different conditions is a different entry.
func (r *Registry) RegisterConditional(res *Resolved, conditions []string) {
	r.add(entry{cursor: res, conditions: slices.Clone(conditions)})
}

func (r *Registry) add(e entry) {
	if e.semantic && len(e.conditions) > 0 {
		// semantic groups are never conditional
		e.conditions = nil
	}
	key := e.key()
	if i := slices.IndexFunc(r.entries, func(old entry) bool { return old.key() == key }); i >= 0 {
		if old := r.entries[i]; old.semantic {
			r.dropFromBucket(old.cursor)
		}
		r.entries = slices.Delete(r.entries, i, i+1)
	}
	r.entries = append(r.entries, e)

	if e.semantic {
		b := &r.buckets[bucketIndex(e.cursor.Kind)]
		b.members = append(b.members, e.cursor)
	}
}

func (r *Registry) dropFromBucket(res *Resolved) {
	b := &r.buckets[bucketIndex(res.Kind)]
	b.members = slices.DeleteFunc(b.members, func(m *Resolved) bool { return m.Selectors == res.Selectors })
}

func bucketIndex(kind common.CursorKind) int {
	if kind.IsValid() {
		return int(kind)
	}
	return kindCount
}

// Len returns number of distinct selector expressions registered.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Custom returns non-semantic cursors in registration order.
func (r *Registry) Custom() []*Resolved {
	var out []*Resolved
	for _, e := range r.entries {
		if !e.semantic {
			out = append(out, e.cursor)
		}
	}
	return out
}

// Serialize renders the stylesheet: grouped semantic rules in kind order,
// then custom rules in registration order, conditional ones wrapped into
// their groups. When required is set and nothing was registered
// ErrEmptyStylesheet is returned.
func (r *Registry) Serialize(required bool) (string, error) {
	if required && len(r.entries) == 0 {
		return "", ErrEmptyStylesheet
	}

	var sb strings.Builder
	sb.WriteString(semanticMarker)
	sb.WriteByte('\n')
	for i := range r.buckets {
		if b := &r.buckets[i]; len(b.members) > 0 {
			writeRule(&sb, nil, b.selectors(), b.value())
		}
	}
	sb.WriteString(customMarker)
	sb.WriteByte('\n')
	for _, e := range r.entries {
		if !e.semantic {
			writeRule(&sb, e.conditions, e.cursor.Selectors, e.cursor.CSSValue)
		}
	}
	return sb.String(), nil
}

func writeRule(sb *strings.Builder, conditions []string, selectors, value string) {
	for _, c := range conditions {
		sb.WriteString(c)
		sb.WriteString(" { ")
	}
	fmt.Fprintf(sb, "%s { cursor: %s !important; }", selectors, value)
	for range conditions {
		sb.WriteString(" }")
	}
	sb.WriteByte('\n')
}

// String dumps registry content for debugging.
func (r *Registry) String() string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "Registry: %d entries", len(r.entries))
	tw.Line(1, "Semantic buckets")
	for i := range r.buckets {
		b := &r.buckets[i]
		if len(b.members) == 0 {
			continue
		}
		name := "unknown"
		if i < kindCount {
			name = common.CursorKind(i).String()
		}
		tw.Line(2, "%s: %d selectors", name, len(b.members))
		tw.Field(3, "value", b.value(), false)
	}
	tw.Line(1, "Entries")
	for i, e := range r.entries {
		tw.Line(2, "[%d] %s (semantic=%t)", i, e.cursor.Selectors, e.semantic)
		tw.Field(3, "kind", e.cursor.Kind, false)
		tw.Field(3, "value", e.cursor.CSSValue, false)
		tw.Field(3, "condition", strings.Join(e.conditions, " "), true)
	}
	return tw.String()
}
