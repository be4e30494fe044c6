package output

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/andybalholm/cascadia"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"curgen/cursor"
)

// HTMLSink injects stylesheet into <style> element with given id inside
// document head, creating element when necessary. Document is rewritten in
// place.
type HTMLSink struct {
	Path    string
	StyleID string

	mu    sync.Mutex
	head  cascadia.Matcher
	style cascadia.Matcher
	log   *zap.Logger
}

func NewHTMLSink(path, styleID string, log *zap.Logger) (*HTMLSink, error) {
	if log == nil {
		log = zap.NewNop()
	}
	style, err := cascadia.Parse("head > style#" + styleID)
	if err != nil {
		return nil, &cursor.ValidationError{Field: "style id", Value: styleID, Err: err}
	}
	return &HTMLSink{
		Path:    path,
		StyleID: styleID,
		head:    cascadia.MustCompile("head"),
		style:   style,
		log:     log.Named("sink"),
	}, nil
}

func (s *HTMLSink) Write(ctx context.Context, out Output) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fi, err := os.Stat(s.Path)
	if err != nil {
		return fmt.Errorf("unable to access '%s': %w: %w", s.Path, cursor.ErrIO, err)
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return fmt.Errorf("unable to read '%s': %w: %w", s.Path, cursor.ErrIO, err)
	}
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("unable to parse '%s': %w", s.Path, err)
	}

	if err := s.inject(doc, out.Text); err != nil {
		return fmt.Errorf("unable to update '%s': %w", s.Path, err)
	}

	buf := new(bytes.Buffer)
	if err := html.Render(buf, doc); err != nil {
		return fmt.Errorf("unable to render '%s': %w", s.Path, err)
	}
	if err := os.WriteFile(s.Path, buf.Bytes(), fi.Mode().Perm()); err != nil {
		return fmt.Errorf("unable to write '%s': %w: %w", s.Path, cursor.ErrIO, err)
	}
	return nil
}

func (s *HTMLSink) inject(doc *html.Node, text string) error {
	content := &html.Node{Type: html.TextNode, Data: "\n" + text + "\n"}

	if style := cascadia.Query(doc, s.style); style != nil {
		style.AppendChild(content)
		s.log.Debug("Style element updated", zap.String("id", s.StyleID))
		return nil
	}

	head := cascadia.Query(doc, s.head)
	if head == nil {
		// parser always synthesizes head, this should never happen
		return fmt.Errorf("document has no head element")
	}
	style := &html.Node{
		Type:     html.ElementNode,
		Data:     atom.Style.String(),
		DataAtom: atom.Style,
		Attr:     []html.Attribute{{Key: "id", Val: s.StyleID}},
	}
	style.AppendChild(content)
	head.AppendChild(style)
	s.log.Debug("Style element created", zap.String("id", s.StyleID))
	return nil
}
