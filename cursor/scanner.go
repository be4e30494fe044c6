package cursor

import (
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"go.uber.org/zap"

	"curgen/common"
	"curgen/css"
)

// Variant tells which selector form a match was derived as.
type Variant int

const (
	VariantBase Variant = iota
	VariantHover
	VariantDisabled
)

var variantNames = [...]string{"base", "hover", "disabled"}

func (v Variant) String() string {
	if v < 0 || int(v) >= len(variantNames) {
		return fmt.Sprintf("Variant(%d)", int(v))
	}
	return variantNames[v]
}

// Scope selects which stylesheet rules are inspected.
type Scope struct {
	All       bool     // inspect every rule
	Selectors []string // literal terms, any of them found in rule selector text is a match
}

// MatchAll returns scope inspecting every rule.
func MatchAll() Scope {
	return Scope{All: true}
}

// ParseScope builds a scope from a comma separated selector list. When all
// is set the list is ignored. Only class and id selectors may be used to
// narrow the scope.
func ParseScope(selectors string, all bool) (Scope, error) {
	if all {
		return MatchAll(), nil
	}

	var terms []string
	for term := range strings.SplitSeq(selectors, ",") {
		if term = strings.TrimSpace(term); term != "" {
			terms = append(terms, term)
		}
	}
	if len(terms) == 0 {
		return Scope{}, &ValidationError{Field: "selectors", Value: selectors}
	}
	for _, term := range terms {
		if !strings.ContainsAny(term, ".#") {
			return Scope{}, &ValidationError{Field: "selectors", Value: term, Err: ErrUnsupportedSelector}
		}
		if _, err := cascadia.Parse(term); err != nil {
			return Scope{}, &ValidationError{Field: "selectors", Value: term, Err: err}
		}
	}
	return Scope{Selectors: terms}, nil
}

// Matches reports whether rule selector text is in scope. Terms are matched
// as literal substrings of the whole selector list, not per selector.
func (s Scope) Matches(selectorText string) bool {
	if s.All {
		return true
	}
	for _, term := range s.Selectors {
		if strings.Contains(selectorText, term) {
			return true
		}
	}
	return false
}

func (s Scope) String() string {
	if s.All {
		return "*"
	}
	return strings.Join(s.Selectors, ",")
}

// Match is a cursor declaration found in scope, in one of its derived forms.
type Match struct {
	Selectors string
	Value     string // declared value, "default" for disabled variant
	Kind      common.CursorKind
	Variant   Variant
	// enclosing conditional groups, outermost first
	Conditions []string
}

// Scanner extracts cursor declarations from parsed stylesheets.
type Scanner struct {
	log *zap.Logger
}

// NewScanner creates scanner.
func NewScanner(log *zap.Logger) *Scanner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scanner{log: log.Named("scanner")}
}

// Scan walks stylesheet rules in order and returns base, hover and disabled
// matches for every recognized cursor declaration of a rule in scope. A
// match-all scan which finds nothing fails with ErrNoCursorRules, a scoped
// one returns empty result.
func (s *Scanner) Scan(sheet *css.Stylesheet, scope Scope, source string) ([]Match, error) {
	var matches []Match

	if sheet != nil {
		for _, rule := range sheet.Rules {
			selectorText := rule.SelectorText()
			if selectorText == "" || !scope.Matches(selectorText) {
				continue
			}
			for _, decl := range rule.Declarations {
				if decl.Property != "cursor" {
					continue
				}
				kind, ok := ParseKeyword(decl.Value.Raw)
				if !ok {
					s.log.Debug("Skipping unrecognized cursor value",
						zap.String("selectors", selectorText), zap.String("value", decl.Value.Raw))
					continue
				}
				s.log.Debug("Matched cursor rule",
					zap.String("selectors", selectorText), zap.Stringer("kind", kind), zap.String("condition", rule.Condition()))
				matches = append(matches, derive(rule, decl.Value.Raw, kind)...)
			}
		}
	}

	if len(matches) == 0 && scope.All {
		return nil, fmt.Errorf("cannot find selectors with a cursor property in '%s': %w", source, ErrNoCursorRules)
	}
	return matches, nil
}

// derive returns base, hover and disabled forms of the rule selector list.
func derive(rule css.Rule, value string, kind common.CursorKind) []Match {
	base := make([]string, 0, len(rule.Selectors))
	for _, sel := range rule.Selectors {
		base = append(base, stripHover(sel))
	}
	return []Match{
		{Selectors: strings.Join(base, ", "), Value: value, Kind: kind, Variant: VariantBase, Conditions: rule.Conditions},
		{Selectors: suffixAll(base, ":hover"), Value: value, Kind: kind, Variant: VariantHover, Conditions: rule.Conditions},
		{Selectors: suffixAll(base, ":disabled"), Value: common.CursorKindDefault.String(), Kind: common.CursorKindDefault, Variant: VariantDisabled, Conditions: rule.Conditions},
	}
}

// stripHover removes ":hover" pseudo-classes of the selector itself. Ones
// nested in functional pseudo-classes, attribute selectors and strings are
// kept.
func stripHover(sel string) string {
	const hover = ":hover"

	var (
		sb    strings.Builder
		depth int
		quote byte
	)
	for i := 0; i < len(sel); i++ {
		c := sel[i]
		switch {
		case quote != 0:
			if c == '\\' && i+1 < len(sel) {
				sb.WriteByte(c)
				i++
				c = sel[i]
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			if depth > 0 {
				depth--
			}
		case depth == 0 && strings.HasPrefix(sel[i:], hover) && !isNameChar(sel, i+len(hover)):
			i += len(hover) - 1
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

// isNameChar reports whether byte at i continues an identifier.
func isNameChar(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	c := s[i]
	return c == '-' || c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80
}

func suffixAll(selectors []string, suffix string) string {
	var sb strings.Builder
	for i, sel := range selectors {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(sel)
		sb.WriteString(suffix)
	}
	return sb.String()
}
