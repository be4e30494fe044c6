package output

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"curgen/cursor"
)

// minMergeSize is the smallest existing file which is considered worth
// keeping when appending selector rules.
const minMergeSize = 10

// FileSink writes stylesheet into a file. When processing all elements the
// file is replaced, otherwise rules are appended to what is already there.
type FileSink struct {
	Dir           string
	FileName      string
	Transliterate bool

	mu  sync.Mutex
	log *zap.Logger
}

func NewFileSink(dir, fileName string, transliterate bool, log *zap.Logger) *FileSink {
	if log == nil {
		log = zap.NewNop()
	}
	return &FileSink{
		Dir:           dir,
		FileName:      fileName,
		Transliterate: transliterate,
		log:           log.Named("sink"),
	}
}

// Target returns full path of the file stylesheet would be written to.
func (s *FileSink) Target(out Output) (string, error) {
	dir := s.Dir
	if dir == "" {
		dir = out.Source.Dir()
	}
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("unable to get working directory: %w", err)
		}
		dir = wd
	}
	name, err := expandFileName(s.FileName, s.Transliterate, out)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

func (s *FileSink) Write(ctx context.Context, out Output) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, err := s.Target(out)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("unable to create directory for '%s': %w: %w", target, cursor.ErrIO, err)
	}

	if !out.AllElements {
		fi, err := os.Stat(target)
		switch {
		case err == nil && fi.Size() > minMergeSize:
			return s.append(target, out.Text)
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return fmt.Errorf("unable to access '%s': %w: %w", target, cursor.ErrIO, err)
		}
	}

	if err := os.WriteFile(target, []byte(out.Text), 0644); err != nil {
		return fmt.Errorf("unable to write '%s': %w: %w", target, cursor.ErrIO, err)
	}
	s.log.Debug("Stylesheet written", zap.String("file", target), zap.Bool("all", out.AllElements))
	return nil
}

func (s *FileSink) append(target, text string) (err error) {
	f, err := os.OpenFile(target, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("unable to open '%s': %w: %w", target, cursor.ErrIO, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close '%s': %w: %w", target, cursor.ErrIO, cerr))
		}
	}()

	if _, err := f.WriteString("\n" + text); err != nil {
		return fmt.Errorf("unable to append to '%s': %w: %w", target, cursor.ErrIO, err)
	}
	s.log.Debug("Stylesheet appended", zap.String("file", target))
	return nil
}
