package css

import (
	"strings"
	"unicode"
)

// EscapeDoubleQuoted escapes a string for use inside CSS double quotes.
// Backslashes and double quotes are escaped per CSS syntax: \" and \\.
func EscapeDoubleQuoted(s string) string {
	// Fast path: nothing to escape.
	if !strings.ContainsAny(s, `"\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Value represents a parsed CSS property value.
type Value struct {
	Raw     string  // Original CSS value string without !important (e.g., "1.2em", "pointer", "url(a.png), auto")
	Value   float64 // Numeric value if applicable
	Unit    string  // Unit if applicable: "em", "px", "%", "pt", etc.
	Keyword string  // Keyword if applicable: "pointer", "bold", "center", etc.
}

// IsNumeric returns true if the value has a numeric component.
// This includes explicit zero values like "0" or "0px".
func (v Value) IsNumeric() bool {
	if v.Unit != "" {
		return true
	}
	if v.Value != 0 && v.Keyword == "" {
		return true
	}
	// handles "0"
	if v.Raw != "" && v.Keyword == "" {
		firstChar := rune(v.Raw[0])
		if unicode.IsDigit(firstChar) || firstChar == '.' || firstChar == '-' || firstChar == '+' {
			return true
		}
	}
	return false
}

// IsKeyword returns true if the value is a keyword (no numeric component).
func (v Value) IsKeyword() bool {
	return v.Keyword != "" && v.Unit == ""
}

// Declaration is a single property/value pair in source order.
type Declaration struct {
	Property  string // lower-cased property name
	Value     Value
	Important bool
}

// Rule is a qualified rule: an ordered selector list and ordered declarations.
// Grouped selectors ("h2, h3") stay together in one rule.
type Rule struct {
	Selectors    []string      // Trimmed selectors in source order
	Declarations []Declaration // Declarations in source order
	Conditions   []string      // Enclosing conditional groups ("@media screen"), outermost first
}

// Condition returns enclosing conditional groups as single string, empty for
// top level rules.
func (r Rule) Condition() string {
	return strings.Join(r.Conditions, " ")
}

// SelectorText returns the selector list joined the way it is written in
// generated stylesheets.
func (r Rule) SelectorText() string {
	return strings.Join(r.Selectors, ", ")
}

// GetProperty returns the last declared value for a property.
func (r Rule) GetProperty(name string) (Value, bool) {
	for i := len(r.Declarations) - 1; i >= 0; i-- {
		if r.Declarations[i].Property == name {
			return r.Declarations[i].Value, true
		}
	}
	return Value{}, false
}

// Stylesheet represents a parsed CSS stylesheet.
type Stylesheet struct {
	Rules    []Rule   // All rules in source order, nested conditional rules included
	Imports  []string // @import URLs in source order (not followed)
	Warnings []string // Warnings for skipped constructs
}

// RulesBySelector returns all rules which contain the given selector.
func (s *Stylesheet) RulesBySelector(selector string) []Rule {
	var matches []Rule
	for _, rule := range s.Rules {
		for _, sel := range rule.Selectors {
			if sel == selector {
				matches = append(matches, rule)
				break
			}
		}
	}
	return matches
}
