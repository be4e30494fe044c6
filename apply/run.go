package apply

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gosimple/slug"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"curgen/common"
	"curgen/config"
	"curgen/cursor"
	"curgen/output"
	"curgen/source"
	"curgen/state"
)

// RunApply is "apply" command action: cursors for all elements.
func RunApply(ctx context.Context, cmd *cli.Command) error {
	return run(ctx, cmd, true)
}

// RunSelect is "select" command action: cursors for listed class and id
// selectors.
func RunSelect(ctx context.Context, cmd *cli.Command) error {
	return run(ctx, cmd, false)
}

func run(ctx context.Context, cmd *cli.Command, all bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named(cmd.Name)

	params, err := prepareParams(cmd, env, all)
	if err != nil {
		return err
	}

	if err := env.PrepareCursors(cmd.String("options")); err != nil {
		return err
	}
	params.Catalog = env.Catalog
	params.Semantic = env.Cfg.Cursors.Semantic && !cmd.Bool("no-semantic")

	sink, err := prepareSink(cmd, env, log)
	if err != nil {
		return err
	}

	fetcher := source.NewFetcher(source.Options{
		Timeout:   env.Cfg.Source.Timeout,
		AuthToken: env.Cfg.Source.AuthToken.Value(),
		UserAgent: env.Cfg.Source.UserAgent,
		CodePage:  env.CodePage,
	}, log)

	a := New(fetcher, sink, log)

	var outcome *Outcome
	if all {
		outcome, err = a.Apply(ctx, params)
	} else {
		outcome, err = a.ApplySelectors(ctx, params)
	}
	if err != nil {
		return err
	}
	return storeOutcome(env.Rpt, outcome, sink)
}

func prepareParams(cmd *cli.Command, env *state.LocalEnv, all bool) (Params, error) {
	conf := env.Cfg.Select
	if all {
		conf = env.Cfg.Apply
	}

	params := Params{
		Source: cmd.Args().Get(0),
		Size:   conf.Size,
		Color:  conf.Color,
		Delay:  conf.Delay,
	}
	if len(params.Source) == 0 {
		return Params{}, errors.New("no stylesheet location has been specified")
	}

	expected := 1
	if !all {
		expected = 2
		params.Selectors = cmd.Args().Get(1)
		if len(params.Selectors) == 0 {
			return Params{}, errors.New("no selectors have been specified")
		}
	}
	if cmd.Args().Len() > expected {
		env.Log.Warn("Mailformed command line, too many arguments", zap.Strings("ignoring", cmd.Args().Slice()[expected:]))
	}

	if s := cmd.String("size"); len(s) > 0 {
		size, err := common.ParseSizeTier(s)
		if err != nil {
			return Params{}, &cursor.ValidationError{Field: "size", Value: s, Err: common.ErrInvalidSizeTier}
		}
		params.Size = size
	}
	if c := cmd.String("color"); len(c) > 0 {
		params.Color = c
	}
	// zero in configuration means no waiting
	if params.Delay == 0 {
		params.Delay = -1
	}
	if cmd.IsSet("delay") {
		params.Delay = cmd.Duration("delay")
		if params.Delay == 0 {
			params.Delay = -1
		}
	}
	return params, nil
}

func prepareSink(cmd *cli.Command, env *state.LocalEnv, log *zap.Logger) (output.Sink, error) {
	env.Stdout = cmd.Bool("stdout")

	if doc := cmd.String("html"); len(doc) > 0 {
		if env.Stdout {
			log.Warn("Both HTML document and standard output were requested, using HTML document", zap.String("html", doc))
		}
		doc, err := filepath.Abs(doc)
		if err != nil {
			return nil, err
		}
		return output.NewHTMLSink(doc, env.Cfg.Output.StyleID, log)
	}
	if env.Stdout {
		return &output.WriterSink{W: os.Stdout}, nil
	}

	dir := env.Cfg.Output.Dir
	if d := cmd.String("out"); len(d) > 0 {
		dir = d
	}
	if len(dir) > 0 {
		var err error
		if dir, err = filepath.Abs(dir); err != nil {
			return nil, err
		}
	}
	return output.NewFileSink(dir, env.Cfg.Output.FileName, env.Cfg.Output.Transliterate, log), nil
}

// storeOutcome puts everything needed to reproduce the run into debug report.
func storeOutcome(rpt *config.Report, outcome *Outcome, sink output.Sink) error {
	if rpt == nil || outcome == nil {
		return nil
	}

	prefix := outcome.ID.String()
	rpt.StoreData(fmt.Sprintf("%s/%s.css", prefix, slug.Make(outcome.Location.String())), outcome.CSS)
	rpt.StoreData(prefix+"/registry.txt", []byte(outcome.Result.Registry.String()))
	rpt.StoreData(prefix+"/cursors.css", []byte(outcome.Result.Text))

	if !outcome.Written {
		return nil
	}
	switch s := sink.(type) {
	case *output.FileSink:
		target, err := s.Target(outcome.Output)
		if err != nil {
			return err
		}
		return rpt.StoreCopy(prefix+"/output.css", target)
	case *output.HTMLSink:
		return rpt.StoreCopy(prefix+"/output.html", s.Path)
	}
	return nil
}
