package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"regexp"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"curgen/archive"
	"curgen/cursor"
)

// maxStylesheetSize limits how much is read from any single location.
const maxStylesheetSize = 16 << 20

// Options controls how stylesheets are retrieved.
type Options struct {
	Timeout   time.Duration
	AuthToken string
	UserAgent string
	// CodePage when set overrides any charset detection.
	CodePage encoding.Encoding
}

// Fetcher retrieves stylesheet text as UTF-8. It is safe for concurrent use.
type Fetcher struct {
	log    *zap.Logger
	client *http.Client
	opts   Options
}

func NewFetcher(opts Options, log *zap.Logger) *Fetcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Fetcher{
		log:    log.Named("source"),
		client: &http.Client{Timeout: opts.Timeout},
		opts:   opts,
	}
}

// Fetch reads the stylesheet. Missing files, archive members and 404 responses
// are reported with cursor.ErrResourceNotFound.
func (f *Fetcher) Fetch(ctx context.Context, loc Location) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		data        []byte
		contentType string
		err         error
	)
	switch loc.Kind {
	case KindRemote:
		data, contentType, err = f.fetchRemote(ctx, loc)
	case KindArchive:
		data, err = f.fetchArchive(loc)
	default:
		data, err = fetchFile(loc)
	}
	if err != nil {
		return nil, err
	}

	text, err := f.decode(data, contentType)
	if err != nil {
		return nil, fmt.Errorf("unable to decode stylesheet '%s': %w", loc, err)
	}
	if len(bytes.TrimSpace(text)) == 0 {
		return nil, fmt.Errorf("stylesheet '%s' is empty", loc)
	}

	f.log.Debug("Stylesheet retrieved",
		zap.Stringer("location", loc), zap.Stringer("kind", loc.Kind), zap.Int("bytes", len(text)))
	return text, nil
}

func (f *Fetcher) fetchRemote(ctx context.Context, loc Location) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loc.URL.String(), nil)
	if err != nil {
		return nil, "", fmt.Errorf("unable to prepare request: %w", err)
	}
	req.Header.Set("Accept", "text/css,*/*;q=0.1")
	if f.opts.UserAgent != "" {
		req.Header.Set("User-Agent", f.opts.UserAgent)
	}
	if f.opts.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+f.opts.AuthToken)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("unable to retrieve '%s': %w", loc, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return nil, "", fmt.Errorf("%w: '%s' (%s)", cursor.ErrResourceNotFound, loc, resp.Status)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, "", fmt.Errorf("unable to retrieve '%s': unexpected status %s", loc, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxStylesheetSize))
	if err != nil {
		return nil, "", fmt.Errorf("unable to read '%s': %w", loc, err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

func fetchFile(loc Location) ([]byte, error) {
	data, err := os.ReadFile(loc.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: '%s'", cursor.ErrResourceNotFound, loc)
		}
		return nil, fmt.Errorf("unable to read '%s': %w", loc, err)
	}
	return data, nil
}

func (f *Fetcher) fetchArchive(loc Location) ([]byte, error) {
	data, err := archive.ReadMember(loc.Path, loc.Member, maxStylesheetSize)
	if err != nil {
		if errors.Is(err, archive.ErrMemberNotFound) {
			if names, er := archive.List(loc.Path, ".css"); er == nil {
				f.log.Debug("Stylesheets available in archive", zap.String("archive", loc.Path), zap.Strings("members", names))
			}
			return nil, fmt.Errorf("%w: '%s'", cursor.ErrResourceNotFound, loc)
		}
		return nil, fmt.Errorf("unable to read '%s': %w", loc, err)
	}
	return data, nil
}

var charsetRule = regexp.MustCompile(`^@charset\s+"([^"]+)"\s*;`)

// decode converts stylesheet to UTF-8. Forced code page wins, then BOM, then
// transport content type, then @charset rule.
func (f *Fetcher) decode(data []byte, contentType string) ([]byte, error) {
	var r io.Reader
	if f.opts.CodePage != nil {
		r = f.opts.CodePage.NewDecoder().Reader(bytes.NewReader(data))
	} else {
		if m := charsetRule.FindSubmatch(data); m != nil {
			if _, _, certain := charset.DetermineEncoding(data, contentType); !certain {
				if enc, err := ianaindex.IANA.Encoding(string(m[1])); err == nil && enc != nil {
					contentType = "text/css; charset=" + string(m[1])
				}
			}
		}
		if contentType == "" {
			contentType = "text/css"
		}
		var err error
		if r, err = charset.NewReader(bytes.NewReader(data), contentType); err != nil {
			return nil, err
		}
	}
	return io.ReadAll(r)
}
