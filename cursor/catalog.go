package cursor

import (
	"net/url"
	"strings"

	"curgen/common"
)

// DefaultCursorDir is where built-in cursor images are expected relative to
// the generated stylesheet.
const DefaultCursorDir = "web-friendly"

const kindCount = int(common.CursorKindNwseResize) + 1

// Offset is a cursor hotspot in pixels.
type Offset struct {
	X int `yaml:"x" toml:"x"`
	Y int `yaml:"y" toml:"y"`
}

// Asset describes a cursor image: base file name and hotspot for the 32x32 tier.
type Asset struct {
	Name   string
	Offset Offset
}

var builtinAssets = [kindCount]Asset{
	common.CursorKindDefault:    {Name: "pointer", Offset: Offset{3, 3}},
	common.CursorKindPointer:    {Name: "link", Offset: Offset{5, 2}},
	common.CursorKindText:       {Name: "beam", Offset: Offset{16, 16}},
	common.CursorKindProgress:   {Name: "working", Offset: Offset{3, 3}},
	common.CursorKindWait:       {Name: "busy", Offset: Offset{16, 16}},
	common.CursorKindAllScroll:  {Name: "move", Offset: Offset{16, 16}},
	common.CursorKindEwResize:   {Name: "horz", Offset: Offset{16, 16}},
	common.CursorKindNsResize:   {Name: "vert", Offset: Offset{16, 16}},
	common.CursorKindNeswResize: {Name: "dgn2", Offset: Offset{16, 16}},
	common.CursorKindNwseResize: {Name: "dgn1", Offset: Offset{16, 16}},
}

// AssetOptions overrides a single catalog entry. Absent fields fall back to
// the built-in values.
type AssetOptions struct {
	Name   string  `yaml:"name,omitempty" toml:"name,omitempty"`
	Offset *Offset `yaml:"offset,omitempty" toml:"offset,omitempty"`
}

// Options is the caller supplied cursor configuration. Every key is optional.
type Options struct {
	Dir        string        `yaml:"dir,omitempty" toml:"dir,omitempty"`
	Default    *AssetOptions `yaml:"default,omitempty" toml:"default,omitempty"`
	Pointer    *AssetOptions `yaml:"pointer,omitempty" toml:"pointer,omitempty"`
	Text       *AssetOptions `yaml:"text,omitempty" toml:"text,omitempty"`
	Progress   *AssetOptions `yaml:"progress,omitempty" toml:"progress,omitempty"`
	Wait       *AssetOptions `yaml:"wait,omitempty" toml:"wait,omitempty"`
	AllScroll  *AssetOptions `yaml:"allScroll,omitempty" toml:"allScroll,omitempty"`
	EwResize   *AssetOptions `yaml:"ewResize,omitempty" toml:"ewResize,omitempty"`
	NsResize   *AssetOptions `yaml:"nsResize,omitempty" toml:"nsResize,omitempty"`
	NeswResize *AssetOptions `yaml:"neswResize,omitempty" toml:"neswResize,omitempty"`
	NwseResize *AssetOptions `yaml:"nwseResize,omitempty" toml:"nwseResize,omitempty"`
}

// entries returns overrides indexed by cursor kind.
func (o *Options) entries() [kindCount]*AssetOptions {
	return [kindCount]*AssetOptions{
		o.Default, o.Pointer, o.Text, o.Progress, o.Wait,
		o.AllScroll, o.EwResize, o.NsResize, o.NeswResize, o.NwseResize,
	}
}

// IsZero reports whether no option is set.
func (o *Options) IsZero() bool {
	if o == nil {
		return true
	}
	if o.Dir != "" {
		return false
	}
	for _, e := range o.entries() {
		if e != nil {
			return false
		}
	}
	return true
}

// Overlay returns copy of o with every entry set in over replacing the
// corresponding entry of o.
func (o Options) Overlay(over *Options) Options {
	if over == nil {
		return o
	}
	if over.Dir != "" {
		o.Dir = over.Dir
	}
	fields := [kindCount]**AssetOptions{
		&o.Default, &o.Pointer, &o.Text, &o.Progress, &o.Wait,
		&o.AllScroll, &o.EwResize, &o.NsResize, &o.NeswResize, &o.NwseResize,
	}
	for kind, e := range over.entries() {
		if e != nil {
			*fields[kind] = e
		}
	}
	return o
}

// Catalog maps cursor kinds to assets. It is immutable once built and may be
// shared between invocations.
type Catalog struct {
	dir     string
	assets  [kindCount]Asset
	builtin bool
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() *Catalog {
	return &Catalog{dir: DefaultCursorDir, assets: builtinAssets, builtin: true}
}

// NewCatalog merges opts over the built-in catalog field by field. A nil
// opts yields the built-in catalog, anything else is treated as custom even
// when it carries no changes: custom catalogs do not validate or prefix
// color variants.
func NewCatalog(opts *Options) *Catalog {
	if opts == nil {
		return DefaultCatalog()
	}

	c := &Catalog{dir: normalizeDir(opts.Dir), assets: builtinAssets}
	if c.dir == "" {
		c.dir = DefaultCursorDir
	}
	for kind, o := range opts.entries() {
		if o == nil {
			continue
		}
		if name := strings.TrimSpace(o.Name); name != "" {
			c.assets[kind].Name = name
		}
		if o.Offset != nil {
			c.assets[kind].Offset = *o.Offset
		}
	}
	return c
}

// normalizeDir makes directory usable as URL prefix.
func normalizeDir(dir string) string {
	dir = strings.ReplaceAll(strings.TrimSpace(dir), `\`, "/")
	if unescaped, err := url.PathUnescape(dir); err == nil {
		dir = unescaped
	}
	for len(dir) > 1 && strings.HasSuffix(dir, "/") {
		dir = dir[:len(dir)-1]
	}
	return dir
}

// Dir returns cursor images location.
func (c *Catalog) Dir() string {
	return c.dir
}

// Builtin reports whether the catalog is the unmodified built-in one.
func (c *Catalog) Builtin() bool {
	return c.builtin
}

// Lookup returns asset for the kind.
func (c *Catalog) Lookup(kind common.CursorKind) (Asset, error) {
	if !kind.IsValid() {
		return Asset{}, &ValidationError{Field: "kind", Value: kind.String(), Err: ErrUnknownCursorKind}
	}
	return c.assets[kind], nil
}
