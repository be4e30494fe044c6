package css

import (
	"bytes"
	"errors"
	"io"
	"slices"
	"strconv"
	"strings"
	"unicode"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS stylesheets into ordered rules.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{
		Rules:    make([]Rule, 0),
		Warnings: make([]string, 0),
	}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	input := parse.NewInput(bytes.NewReader(data))
	parser := css.NewParser(input, false)

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			// End of input or error
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				p.log.Debug("CSS parse error", zap.Error(err))
				sheet.Warnings = append(sheet.Warnings, "parse error: "+err.Error())
			}
			return sheet

		case css.BeginAtRuleGrammar:
			atRule := strings.ToLower(string(data))
			switch atRule {
			case "@media", "@supports", "@layer", "@document":
				// conditional group rules keep their nested rulesets
				cond := atRule
				if prelude := joinTokens(parser.Values()); prelude != "" {
					cond += " " + prelude
				}
				rules := p.parseNestedRules(parser, []string{cond})
				p.log.Debug("Parsed conditional block", zap.String("condition", cond), zap.Int("rules", len(rules)))
				sheet.Rules = append(sheet.Rules, rules...)
			default:
				p.skipAtRuleBlock(parser)
				p.log.Debug("Skipping @-rule", zap.String("rule", atRule))
			}

		case css.AtRuleGrammar:
			// Simple @-rule without block (e.g., @import)
			atRule := strings.ToLower(string(data))
			if atRule == "@import" {
				if url := extractImportURL(parser.Values()); url != "" {
					sheet.Imports = append(sheet.Imports, url)
					sheet.Warnings = append(sheet.Warnings, "imported stylesheet is not followed: "+url)
					p.log.Debug("Parsed @import", zap.String("url", url))
				}
			} else {
				p.log.Debug("Skipping @-rule", zap.String("rule", atRule))
			}

		case css.BeginRulesetGrammar:
			selectors := parseSelectors(data, parser.Values())
			decls := p.parseDeclarations(parser)
			sheet.Rules = append(sheet.Rules, Rule{Selectors: selectors, Declarations: decls})

		case css.QualifiedRuleGrammar:
			// qualified rule without block, nothing to keep
			p.log.Debug("Skipping qualified rule without block", zap.String("selector", joinTokens(parser.Values())))
		}
	}
}

// extractImportURL extracts the URL from @import tokens.
// Handles: @import "url"; @import url("url"); @import url(url);
func extractImportURL(tokens []css.Token) string {
	for _, t := range tokens {
		switch t.TokenType {
		case css.StringToken:
			return unquote(string(t.Data))
		case css.URLToken:
			s := string(t.Data)
			s = strings.TrimPrefix(s, "url(")
			s = strings.TrimSuffix(s, ")")
			return unquote(strings.TrimSpace(s))
		}
	}
	return ""
}

// parseSelectors splits ruleset prelude into selectors. Only top level commas
// separate selectors, commas inside functional pseudo-classes, attribute
// selectors and strings belong to the selector. Token text is kept as is.
func parseSelectors(data []byte, values []css.Token) []string {
	var (
		selectors []string
		sb        strings.Builder
		depth     int
	)
	flush := func() {
		if s := strings.TrimSpace(sb.String()); s != "" {
			selectors = append(selectors, s)
		}
		sb.Reset()
	}

	sb.Write(data)
	for _, v := range values {
		switch v.TokenType {
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			if depth > 0 {
				depth--
			}
		case css.CommaToken:
			if depth == 0 {
				flush()
				continue
			}
		case css.WhitespaceToken:
			if depth == 0 {
				sb.WriteByte(' ')
				continue
			}
		}
		sb.Write(v.Data)
	}
	flush()
	return selectors
}

// parseDeclarations parses property declarations until EndRulesetGrammar.
func (p *Parser) parseDeclarations(parser *css.Parser) []Declaration {
	decls := make([]Declaration, 0)

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return decls

		case css.DeclarationGrammar:
			values := parser.Values()
			if len(values) == 0 {
				continue
			}
			values, important := stripImportant(values)
			decls = append(decls, Declaration{
				Property:  strings.ToLower(string(data)),
				Value:     parsePropertyValue(values),
				Important: important,
			})

		case css.CustomPropertyGrammar:
			// CSS custom properties (--var) are not interesting
			continue

		case css.BeginRulesetGrammar, css.BeginAtRuleGrammar:
			// nested CSS - skip the whole block
			p.log.Debug("Skipping nested block", zap.ByteString("data", data))
			p.skipAtRuleBlock(parser)
		}
	}
}

// stripImportant removes trailing "!important" from value tokens.
func stripImportant(tokens []css.Token) ([]css.Token, bool) {
	end := len(tokens)
	for end > 0 && tokens[end-1].TokenType == css.WhitespaceToken {
		end--
	}
	if end < 2 {
		return tokens, false
	}
	last := tokens[end-1]
	if last.TokenType != css.IdentToken || !strings.EqualFold(string(last.Data), "important") {
		return tokens, false
	}
	i := end - 2
	for i >= 0 && tokens[i].TokenType == css.WhitespaceToken {
		i--
	}
	if i < 0 || tokens[i].TokenType != css.DelimToken || string(tokens[i].Data) != "!" {
		return tokens, false
	}
	return tokens[:i], true
}

// joinTokens builds normalized text from tokens collapsing whitespace.
func joinTokens(tokens []css.Token) string {
	var rawParts []string
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			rawParts = append(rawParts, string(t.Data))
		} else if len(rawParts) > 0 {
			rawParts = append(rawParts, " ")
		}
	}
	return strings.TrimSpace(strings.Join(rawParts, ""))
}

// parsePropertyValue converts CSS tokens to a Value.
func parsePropertyValue(tokens []css.Token) Value {
	if len(tokens) == 0 {
		return Value{}
	}

	raw := joinTokens(tokens)
	val := Value{Raw: raw}

	// drop surrounding whitespace to find single token values
	for len(tokens) > 0 && tokens[0].TokenType == css.WhitespaceToken {
		tokens = tokens[1:]
	}
	for len(tokens) > 0 && tokens[len(tokens)-1].TokenType == css.WhitespaceToken {
		tokens = tokens[:len(tokens)-1]
	}
	if len(tokens) == 1 {
		t := tokens[0]
		switch t.TokenType {
		case css.DimensionToken:
			val.Value, val.Unit = parseDimension(string(t.Data))
		case css.PercentageToken:
			val.Value, _ = strconv.ParseFloat(strings.TrimSuffix(string(t.Data), "%"), 64)
			val.Unit = "%"
		case css.NumberToken:
			val.Value, _ = strconv.ParseFloat(string(t.Data), 64)
		case css.IdentToken:
			val.Keyword = strings.ToLower(string(t.Data))
		case css.StringToken:
			val.Keyword = unquote(string(t.Data))
		case css.HashToken:
			val.Keyword = string(t.Data)
		default:
			val.Keyword = raw
		}
		return val
	}

	// Function tokens and multi-value properties - store as keyword with raw value
	val.Keyword = raw
	return val
}

// parseDimension extracts numeric value and unit from dimension token.
func parseDimension(s string) (float64, string) {
	numEnd := 0
	for i, r := range s {
		if unicode.IsDigit(r) || r == '.' || r == '-' || r == '+' {
			numEnd = i + 1
		} else {
			break
		}
	}

	if numEnd == 0 {
		return 0, ""
	}

	num, _ := strconv.ParseFloat(s[:numEnd], 64)
	unit := strings.ToLower(s[numEnd:])
	return num, unit
}

// skipAtRuleBlock skips tokens until the matching end of a block.
func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// parseNestedRules parses rulesets inside a conditional group block. Nested
// conditional groups are flattened, every rule keeps the whole chain of its
// enclosing conditions.
func (p *Parser) parseNestedRules(parser *css.Parser, conds []string) []Rule {
	var rules []Rule

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndAtRuleGrammar:
			return rules

		case css.BeginRulesetGrammar:
			selectors := parseSelectors(data, parser.Values())
			decls := p.parseDeclarations(parser)
			rules = append(rules, Rule{Selectors: selectors, Declarations: decls, Conditions: conds})

		case css.BeginAtRuleGrammar:
			inner := strings.ToLower(string(data))
			switch inner {
			case "@media", "@supports", "@layer", "@document":
				if prelude := joinTokens(parser.Values()); prelude != "" {
					inner += " " + prelude
				}
				rules = append(rules, p.parseNestedRules(parser, append(slices.Clip(conds), inner))...)
			default:
				p.skipAtRuleBlock(parser)
			}
		}
	}
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
