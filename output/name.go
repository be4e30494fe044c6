package output

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/gosimple/slug"

	"curgen/config"
	"curgen/source"
)

// Values is a struct that holds variables we make available for file name
// template expansion
type Values struct {
	SourceFile string
	Mode       string
	Size       string
	Color      string
}

func buildValues(out Output) Values {
	values := Values{
		Mode:  "selectors",
		Size:  out.Size,
		Color: out.Color,
	}
	if out.AllElements {
		values.Mode = "all"
	}
	var name string
	switch out.Source.Kind {
	case source.KindRemote:
		name = out.Source.URL.Path
	case source.KindArchive:
		name = out.Source.Member
	default:
		name = out.Source.Path
	}
	name = filepath.Base(filepath.FromSlash(name))
	values.SourceFile = strings.TrimSuffix(name, filepath.Ext(name))
	return values
}

// expandFileName expands file name template and cleans the result. Extension
// of the expanded name is kept intact when transliterating.
func expandFileName(field string, transliterate bool, out Output) (string, error) {
	tmpl, err := template.New(config.FileNameTemplateFieldName).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", config.FileNameTemplateFieldName, err)
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, buildValues(out)); err != nil {
		return "", fmt.Errorf("unable to expand template field %s: %w", config.FileNameTemplateFieldName, err)
	}

	name := strings.TrimSpace(buf.String())
	if transliterate {
		ext := filepath.Ext(name)
		name = slug.Make(strings.TrimSuffix(name, ext)) + ext
	}
	return config.CleanFileName(name), nil
}
