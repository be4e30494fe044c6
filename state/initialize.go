package state

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"curgen/cursor"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start:   time.Now(),
		Catalog: cursor.DefaultCatalog(),
	}
}

// PrepareCursors builds cursor catalog and stylesheet code page from loaded
// configuration. Non-empty optionsFile takes precedence over the one set in
// configuration.
func (e *LocalEnv) PrepareCursors(optionsFile string) error {
	if e.Cfg == nil {
		return fmt.Errorf("configuration is not loaded")
	}
	log := e.Log
	if log == nil {
		log = zap.NewNop()
	}

	conf := e.Cfg.Cursors
	if optionsFile != "" {
		conf.OptionsFile = optionsFile
	}
	opts, err := conf.CursorOptions()
	if err != nil {
		return fmt.Errorf("unable to load cursor options: %w", err)
	}
	e.Catalog = cursor.NewCatalog(opts)

	e.CodePage = nil
	if cp := e.Cfg.Source.Charset; cp != "" {
		if e.CodePage, err = ianaindex.IANA.Encoding(cp); err != nil {
			return fmt.Errorf("unknown stylesheet charset %q: %w", cp, err)
		}
		if e.CodePage == nil {
			return fmt.Errorf("unsupported stylesheet charset %q", cp)
		}
		n, _ := ianaindex.IANA.Name(e.CodePage)
		log.Debug("Forcefully decoding stylesheets", zap.String("charset", n))
	}

	log.Debug("Cursor catalog prepared",
		zap.String("dir", e.Catalog.Dir()),
		zap.Bool("builtin", e.Catalog.Builtin()),
		zap.String("options", conf.OptionsFile))
	return nil
}
