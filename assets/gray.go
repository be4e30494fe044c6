package assets

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/beevik/etree"
	"github.com/disintegration/imaging"
)

// grayShade replaces white in derived gray cursor variants.
var grayShade = color.NRGBA{R: 0x9b, G: 0x9b, B: 0x9b, A: 0xff}

var whites = map[string]bool{
	"#fff":                true,
	"#ffffff":             true,
	"white":               true,
	"rgb(255,255,255)":    true,
	"rgb(100%,100%,100%)": true,
}

func isWhite(value string) bool {
	return whites[strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), " ", "")]
}

func grayHex() string {
	return fmt.Sprintf("#%02x%02x%02x", grayShade.R, grayShade.G, grayShade.B)
}

// GraySVG derives gray variant from white cursor SVG replacing white fill and
// stroke paint, both in attributes and inline styles.
func GraySVG(svgData []byte) ([]byte, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(svgData); err != nil {
		return nil, fmt.Errorf("unable to parse svg: %w", err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("unable to parse svg: no root element")
	}

	gray := grayHex()
	for _, el := range append([]*etree.Element{doc.Root()}, doc.Root().FindElements("//*")...) {
		for _, name := range []string{"fill", "stroke", "stop-color"} {
			if attr := el.SelectAttr(name); attr != nil && isWhite(attr.Value) {
				attr.Value = gray
			}
		}
		if attr := el.SelectAttr("style"); attr != nil {
			attr.Value = grayStyle(attr.Value, gray)
		}
	}
	return doc.WriteToBytes()
}

func grayStyle(style, gray string) string {
	decls := strings.Split(style, ";")
	for i, decl := range decls {
		name, value, found := strings.Cut(decl, ":")
		if !found {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "fill", "stroke", "stop-color":
			if isWhite(value) {
				decls[i] = name + ":" + gray
			}
		}
	}
	return strings.Join(decls, ";")
}

// GrayImage derives gray variant from white cursor image: light neutral
// pixels become gray keeping their alpha.
func GrayImage(img image.Image) *image.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		if c.A == 0 || c.R < 0xe0 || c.G < 0xe0 || c.B < 0xe0 {
			return c
		}
		return color.NRGBA{R: grayShade.R, G: grayShade.G, B: grayShade.B, A: c.A}
	})
}
