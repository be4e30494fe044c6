package assets

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/h2non/filetype"
	"github.com/maruel/natural"

	"curgen/common"
	"curgen/cursor"
)

// Status of a single cursor image.
type Status int

const (
	StatusOK Status = iota
	StatusMissing
	StatusNotPNG
	StatusWrongSize
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusMissing:
		return "missing"
	case StatusNotPNG:
		return "not png"
	case StatusWrongSize:
		return "wrong size"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Item describes expected cursor image.
type Item struct {
	Path   string // relative to checked directory, slash separated
	Kind   common.CursorKind
	Size   common.SizeTier
	Status Status
	Detail string
}

// Report lists every image theme requires, sorted naturally by path.
type Report struct {
	Dir   string
	Items []Item
}

// Problems returns items which are not ok.
func (r *Report) Problems() []Item {
	var out []Item
	for _, it := range r.Items {
		if it.Status != StatusOK {
			out = append(out, it)
		}
	}
	return out
}

// OK reports whether theme is complete.
func (r *Report) OK() bool {
	return len(r.Problems()) == 0
}

func (r *Report) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Cursor images in '%s': %d expected, %d problems\n", r.Dir, len(r.Items), len(r.Problems()))
	for _, it := range r.Items {
		fmt.Fprintf(&sb, "  %-10s %-8s %-11s %s", it.Status, it.Size, it.Kind, it.Path)
		if it.Detail != "" {
			fmt.Fprintf(&sb, " (%s)", it.Detail)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Check verifies that dir has every image catalog refers to for all tiers and
// color variants, that images are PNG and have tier dimensions.
func Check(cat *cursor.Catalog, dir string) (*Report, error) {
	if cat == nil {
		cat = cursor.DefaultCatalog()
	}
	fi, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: '%s': %w", cursor.ErrResourceNotFound, dir, err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("'%s' is not a directory", dir)
	}

	rpt := &Report{Dir: dir}
	for _, kindName := range common.CursorKindNames() {
		kind, _ := common.ParseCursorKind(kindName)
		asset, err := cat.Lookup(kind)
		if err != nil {
			return nil, err
		}
		for _, v := range variants(cat) {
			for _, sizeName := range common.SizeTierNames() {
				size, _ := common.ParseSizeTier(sizeName)
				path := filepath.Join(dir, cursor.Folder(size), v.prefix+asset.Name+".png")
				it := Item{Path: relPath(dir, path), Kind: kind, Size: size}
				it.Status, it.Detail = checkImage(path, TierSize(size))
				rpt.Items = append(rpt.Items, it)
			}
		}
	}

	sort.SliceStable(rpt.Items, func(i, j int) bool {
		return natural.Less(rpt.Items[i].Path, rpt.Items[j].Path)
	})
	return rpt, nil
}

func checkImage(path string, side int) (Status, string) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return StatusMissing, ""
		}
		return StatusMissing, err.Error()
	}
	defer f.Close()

	// header is enough for magic numbers
	head := make([]byte, 262)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return StatusMissing, err.Error()
	}
	kind, _ := filetype.Match(head[:n])
	if kind.Extension != "png" {
		return StatusNotPNG, kind.MIME.Value
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return StatusMissing, err.Error()
	}
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return StatusNotPNG, err.Error()
	}
	if cfg.Width != side || cfg.Height != side {
		return StatusWrongSize, fmt.Sprintf("%dx%d", cfg.Width, cfg.Height)
	}
	return StatusOK, ""
}
