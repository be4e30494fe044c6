package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"curgen/common"
	"curgen/cursor"
)

// baseSize is side of small tier cursor image in pixels.
const baseSize = 32

// sourceExts lists accepted source image extensions in lookup order.
var sourceExts = []string{".svg", ".png", ".webp", ".bmp", ".tiff", ".gif", ".jpg"}

// TierSize returns side of cursor image for size tier.
func TierSize(size common.SizeTier) int {
	return baseSize * cursor.Scale(size)
}

// variant is a file name prefix with the color it stands for.
type variant struct {
	color  common.ColorVariant
	prefix string
}

// variants returns color variants cursor images must exist in. Custom themes
// have no color variants.
func variants(cat *cursor.Catalog) []variant {
	if !cat.Builtin() {
		return []variant{{prefix: ""}}
	}
	return []variant{
		{color: common.ColorVariantWhite, prefix: ""},
		{color: common.ColorVariantGray, prefix: common.ColorVariantGray.String()},
	}
}

// sourceImage is a decoded (or vector) cursor picture.
type sourceImage struct {
	path   string
	svg    []byte
	raster image.Image
}

func (s *sourceImage) render(side int) (image.Image, error) {
	var (
		img image.Image
		err error
	)
	if s.svg != nil {
		if img, err = RasterizeSVG(s.svg, side, side); err != nil {
			return nil, fmt.Errorf("unable to rasterize '%s': %w", s.path, err)
		}
	} else {
		b := s.raster.Bounds()
		if b.Dx() >= b.Dy() {
			img = imaging.Resize(s.raster, side, 0, imaging.NearestNeighbor)
		} else {
			img = imaging.Resize(s.raster, 0, side, imaging.NearestNeighbor)
		}
	}
	// cursor images are always square
	return imaging.PasteCenter(imaging.New(side, side, color.NRGBA{}), img), nil
}

func (s *sourceImage) gray() (*sourceImage, error) {
	if s.svg != nil {
		data, err := GraySVG(s.svg)
		if err != nil {
			return nil, fmt.Errorf("unable to derive gray variant from '%s': %w", s.path, err)
		}
		return &sourceImage{path: s.path, svg: data}, nil
	}
	return &sourceImage{path: s.path, raster: GrayImage(s.raster)}, nil
}

// findSource looks for cursor picture with given base name. Nil is returned
// when nothing was found.
func findSource(dir, name string) (*sourceImage, error) {
	for _, ext := range sourceExts {
		path := filepath.Join(dir, name+ext)
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		if ext == ".svg" {
			return &sourceImage{path: path, svg: data}, nil
		}
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("unable to decode '%s': %w", path, err)
		}
		return &sourceImage{path: path, raster: img}, nil
	}
	return nil, nil
}

// Build produces cursor images for every kind, tier and color variant of the
// catalog. Sources are looked up in src by asset name ("gray" prefixed names
// for gray variant, derived from white ones when absent), results are put into
// tier subdirectories of dst. Paths of written files are returned.
func Build(ctx context.Context, cat *cursor.Catalog, src, dst string, log *zap.Logger) ([]string, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if cat == nil {
		cat = cursor.DefaultCatalog()
	}
	log = log.Named("assets")

	written := make([]string, 0, len(common.CursorKindNames())*len(common.SizeTierNames())*2)
	for _, kindName := range common.CursorKindNames() {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		kind, _ := common.ParseCursorKind(kindName)
		asset, err := cat.Lookup(kind)
		if err != nil {
			return written, err
		}

		base, err := findSource(src, asset.Name)
		if err != nil {
			return written, err
		}
		if base == nil {
			return written, fmt.Errorf("%w: no source image for %s cursor '%s' in '%s'", cursor.ErrResourceNotFound, kindName, asset.Name, src)
		}

		for _, v := range variants(cat) {
			img := base
			if v.prefix != "" {
				if img, err = findSource(src, v.prefix+asset.Name); err != nil {
					return written, err
				}
				if img == nil {
					log.Debug("Deriving cursor variant", zap.String("kind", kindName), zap.Stringer("color", v.color))
					if img, err = base.gray(); err != nil {
						return written, err
					}
				}
			}
			for _, sizeName := range common.SizeTierNames() {
				size, _ := common.ParseSizeTier(sizeName)
				path := filepath.Join(dst, cursor.Folder(size), v.prefix+asset.Name+".png")
				if err := writeImage(img, TierSize(size), path); err != nil {
					return written, err
				}
				written = append(written, path)
			}
		}
		log.Debug("Cursor images prepared", zap.String("kind", kindName), zap.String("source", base.path))
	}
	log.Info("Cursor images built", zap.String("destination", dst), zap.Int("files", len(written)))
	return written, nil
}

func writeImage(src *sourceImage, side int, path string) error {
	img, err := src.render(side)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("%w: %w", cursor.ErrIO, err)
	}

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
		return fmt.Errorf("unable to encode '%s': %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("unable to write '%s': %w: %w", path, cursor.ErrIO, err)
	}
	return nil
}

// relPath is used in reports.
func relPath(dir, path string) string {
	if rel, err := filepath.Rel(dir, path); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(path)
}
