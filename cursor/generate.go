package cursor

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"curgen/common"
	"curgen/css"
)

// Request describes a single generation run.
type Request struct {
	Source   string // stylesheet location, used in messages
	CSS      []byte
	Scope    Scope
	Size     common.SizeTier
	Color    string
	Catalog  *Catalog // nil means built-in catalog
	Semantic bool     // register semantic table when scope is match-all
}

// Result of generation run.
type Result struct {
	Text     string
	Registry *Registry
	Matches  []Match
}

// Empty reports whether nothing was registered.
func (r *Result) Empty() bool {
	return r.Registry == nil || r.Registry.Len() == 0
}

// Generator runs scan, resolve and register pipeline. It keeps no state
// between calls and may be used concurrently.
type Generator struct {
	log     *zap.Logger
	parser  *css.Parser
	scanner *Scanner
}

// NewGenerator creates generator.
func NewGenerator(log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("generator")
	return &Generator{
		log:     log,
		parser:  css.NewParser(log),
		scanner: NewScanner(log),
	}
}

// invocation holds working state of a single Generate call.
type invocation struct {
	req      Request
	registry *Registry
}

func (inv *invocation) register(selectors string, kind common.CursorKind, semantic bool, conditions []string) error {
	res, err := Resolve(selectors, kind, inv.req.Size, inv.req.Color, inv.req.Catalog)
	if err != nil {
		return err
	}
	if len(conditions) > 0 {
		inv.registry.RegisterConditional(res, conditions)
		return nil
	}
	inv.registry.Register(res, semantic)
	return nil
}

// Generate produces cursor stylesheet for the request. Any failure aborts
// the run and no text is returned.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Catalog == nil {
		req.Catalog = DefaultCatalog()
	}

	// fail early on bad size or color even if nothing would be matched
	if _, err := Resolve("", common.CursorKindDefault, req.Size, req.Color, req.Catalog); err != nil {
		return nil, err
	}

	inv := &invocation{req: req, registry: NewRegistry()}

	if req.Scope.All && req.Semantic {
		for _, e := range ExpandSemantic() {
			if err := inv.register(e.Selector, e.Kind, true, nil); err != nil {
				return nil, fmt.Errorf("semantic selector '%s': %w", e.Selector, err)
			}
		}
	}

	sheet := g.parser.Parse(req.CSS, req.Source)
	for _, w := range sheet.Warnings {
		g.log.Warn("Stylesheet", zap.String("source", req.Source), zap.String("warning", w))
	}

	matches, err := g.scanner.Scan(sheet, req.Scope, req.Source)
	if err != nil {
		return nil, err
	}
	for _, m := range matches {
		if err := inv.register(m.Selectors, m.Kind, false, m.Conditions); err != nil {
			return nil, fmt.Errorf("selectors '%s': %w", m.Selectors, err)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text, err := inv.registry.Serialize(req.Scope.All)
	if err != nil {
		return nil, fmt.Errorf("unable to generate cursors for '%s': %w", req.Source, err)
	}

	g.log.Debug("Generated cursor stylesheet",
		zap.String("source", req.Source),
		zap.Stringer("scope", req.Scope),
		zap.Int("matches", len(matches)),
		zap.Int("entries", inv.registry.Len()))

	return &Result{Text: text, Registry: inv.registry, Matches: matches}, nil
}
