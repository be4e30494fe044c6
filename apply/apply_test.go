package apply

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"curgen/common"
	"curgen/cursor"
	"curgen/output"
	"curgen/source"
)

const siteCSS = `
body { margin: 0; }
.btn { cursor: pointer; }
.menu .item { cursor: text; }
`

func writeSite(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "site.css")
	if err := os.WriteFile(path, []byte(siteCSS), 0644); err != nil {
		t.Fatal(err)
	}
	return dir, path
}

func newApplier(t *testing.T, sink output.Sink) *Applier {
	t.Helper()
	log := zaptest.NewLogger(t)
	return New(source.NewFetcher(source.Options{Timeout: 5 * time.Second}, log), sink, log)
}

func TestApply(t *testing.T) {
	dir, path := writeSite(t)
	a := newApplier(t, output.NewFileSink("", "cursors.css", false, zaptest.NewLogger(t)))

	outcome, err := a.Apply(context.Background(), Params{
		Source:   path,
		Size:     common.SizeTierSmall,
		Color:    "white",
		Delay:    -1,
		Semantic: true,
	})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if !outcome.Written {
		t.Error("Expected output to be written")
	}
	if outcome.Location.Kind != source.KindFile {
		t.Errorf("Location kind = %v", outcome.Location.Kind)
	}

	got, err := os.ReadFile(filepath.Join(dir, "cursors.css"))
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	text := string(got)
	if !strings.HasPrefix(text, "/* Semantic tags */\nbody, ") {
		t.Errorf("unexpected output start:\n%s", text)
	}
	for _, want := range []string{
		`.btn { cursor: url("web-friendly/32x32/link.png") 5 2, auto !important; }`,
		`.menu .item { cursor: url("web-friendly/32x32/beam.png") 16 16, auto !important; }`,
		`.btn:disabled { cursor: url("web-friendly/32x32/pointer.png") 3 3, auto !important; }`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output is missing %q", want)
		}
	}
}

func TestApplySelectors(t *testing.T) {
	t.Run("appends matching rules", func(t *testing.T) {
		dir, path := writeSite(t)
		target := filepath.Join(dir, "cursors.css")
		existing := "/* Semantic tags */\n/* Custom selectors */\n"
		if err := os.WriteFile(target, []byte(existing), 0644); err != nil {
			t.Fatal(err)
		}
		a := newApplier(t, output.NewFileSink("", "cursors.css", false, zaptest.NewLogger(t)))

		outcome, err := a.ApplySelectors(context.Background(), Params{
			Source:    path,
			Selectors: ".btn",
			Size:      common.SizeTierMedium,
			Color:     "gray",
			Delay:     -1,
		})
		if err != nil {
			t.Fatalf("ApplySelectors() error = %v", err)
		}
		if !outcome.Written {
			t.Fatal("Expected output to be written")
		}
		got, _ := os.ReadFile(target)
		want := existing + "\n" + "/* Semantic tags */\n/* Custom selectors */\n" +
			`.btn { cursor: url("web-friendly/64x64/graylink.png") 10 4, auto !important; }` + "\n"
		if !strings.HasPrefix(string(got), want) {
			t.Errorf("output = %q\nwant prefix %q", got, want)
		}
		if strings.Contains(string(got), ".menu") {
			t.Error("unrelated rule was written")
		}
	})

	t.Run("nothing matched", func(t *testing.T) {
		dir, path := writeSite(t)
		a := newApplier(t, output.NewFileSink("", "cursors.css", false, zaptest.NewLogger(t)))
		outcome, err := a.ApplySelectors(context.Background(), Params{
			Source:    path,
			Selectors: ".absent, #none",
			Color:     "white",
			Delay:     -1,
		})
		if err != nil {
			t.Fatalf("ApplySelectors() error = %v", err)
		}
		if outcome.Written {
			t.Error("Expected nothing to be written")
		}
		if _, err := os.Stat(filepath.Join(dir, "cursors.css")); !os.IsNotExist(err) {
			t.Errorf("output file should not exist, stat error = %v", err)
		}
	})

	t.Run("unsupported selector", func(t *testing.T) {
		_, path := writeSite(t)
		a := newApplier(t, &output.WriterSink{W: new(bytes.Buffer)})
		_, err := a.ApplySelectors(context.Background(), Params{Source: path, Selectors: "div", Color: "white", Delay: -1})
		if !errors.Is(err, cursor.ErrUnsupportedSelector) {
			t.Errorf("ApplySelectors() error = %v, want ErrUnsupportedSelector", err)
		}
	})
}

func TestApply_Errors(t *testing.T) {
	_, path := writeSite(t)
	sink := &output.WriterSink{W: new(bytes.Buffer)}

	tests := []struct {
		name   string
		params Params
		field  string
		target error
	}{
		{name: "empty source", params: Params{Color: "white", Delay: -1}, field: "source"},
		{name: "bad color", params: Params{Source: path, Color: "red", Delay: -1}, field: "color"},
		{name: "bad size", params: Params{Source: path, Size: common.SizeTier(9), Color: "white", Delay: -1}, field: "size"},
		{name: "missing file", params: Params{Source: path + ".none", Color: "white", Delay: -1}, target: cursor.ErrResourceNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newApplier(t, sink).Apply(context.Background(), tt.params)
			if tt.target != nil {
				if !errors.Is(err, tt.target) {
					t.Errorf("Apply() error = %v, want %v", err, tt.target)
				}
				return
			}
			var verr *cursor.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Apply() error = %v, want ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Field = %q, want %q", verr.Field, tt.field)
			}
		})
	}

	t.Run("no sink", func(t *testing.T) {
		if _, err := newApplier(t, nil).Apply(context.Background(), Params{Source: path, Color: "white", Delay: -1}); err == nil {
			t.Error("Apply() expected error without sink")
		}
	})

	t.Run("no cursor rules", func(t *testing.T) {
		dir := t.TempDir()
		plain := filepath.Join(dir, "plain.css")
		if err := os.WriteFile(plain, []byte("body { margin: 0; }"), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := newApplier(t, sink).Apply(context.Background(), Params{Source: plain, Color: "white", Delay: -1})
		if !errors.Is(err, cursor.ErrNoCursorRules) {
			t.Errorf("Apply() error = %v, want ErrNoCursorRules", err)
		}
	})
}

func TestApply_Delay(t *testing.T) {
	_, path := writeSite(t)

	t.Run("waits", func(t *testing.T) {
		a := newApplier(t, &output.WriterSink{W: new(bytes.Buffer)})
		start := time.Now()
		if _, err := a.Apply(context.Background(), Params{Source: path, Color: "white", Delay: 50 * time.Millisecond}); err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
		if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
			t.Errorf("elapsed %v, expected at least 50ms", elapsed)
		}
	})

	t.Run("canceled while waiting", func(t *testing.T) {
		buf := new(bytes.Buffer)
		a := newApplier(t, &output.WriterSink{W: buf})
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err := a.ApplySelectors(ctx, Params{Source: path, Selectors: ".btn", Color: "white"})
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("ApplySelectors() error = %v, want context.DeadlineExceeded", err)
		}
		if buf.Len() != 0 {
			t.Error("nothing should be written after cancellation")
		}
	})
}

func TestApply_Remote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/css/site.css" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/css")
		_, _ = w.Write([]byte(siteCSS))
	}))
	defer srv.Close()

	buf := new(bytes.Buffer)
	a := newApplier(t, &output.WriterSink{W: buf})

	outcome, err := a.ApplySelectors(context.Background(), Params{
		Source:    srv.URL + "/css/site.css",
		Selectors: ".item",
		Size:      common.SizeTierLarge,
		Color:     "white",
		Delay:     -1,
	})
	if err != nil {
		t.Fatalf("ApplySelectors() error = %v", err)
	}
	if outcome.Location.Kind != source.KindRemote {
		t.Errorf("Location kind = %v", outcome.Location.Kind)
	}
	want := `.menu .item { cursor: url("web-friendly/128x128/beam.png") 64 64, auto !important; }`
	if !strings.Contains(buf.String(), want) {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}

	_, err = a.Apply(context.Background(), Params{Source: srv.URL + "/missing.css", Color: "white", Delay: -1})
	if !errors.Is(err, cursor.ErrResourceNotFound) {
		t.Errorf("Apply() error = %v, want ErrResourceNotFound", err)
	}
}

func TestApply_Concurrent(t *testing.T) {
	_, path := writeSite(t)
	sink := &output.WriterSink{W: new(bytes.Buffer)}
	a := newApplier(t, sink)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var (
				outcome *Outcome
				err     error
			)
			if i%2 == 0 {
				outcome, err = a.Apply(context.Background(), Params{Source: path, Color: "white", Delay: -1, Semantic: true})
			} else {
				outcome, err = a.ApplySelectors(context.Background(), Params{Source: path, Selectors: ".btn", Color: "gray", Delay: -1})
			}
			if err != nil {
				t.Errorf("run %d error = %v", i, err)
				return
			}
			custom := outcome.Result.Registry.Custom()
			if i%2 == 0 && len(custom) != 6 {
				t.Errorf("run %d: custom entries = %d, want 6", i, len(custom))
			}
			if i%2 == 1 && len(custom) != 3 {
				t.Errorf("run %d: custom entries = %d, want 3", i, len(custom))
			}
		}(i)
	}
	wg.Wait()
}
