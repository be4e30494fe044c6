package assets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"curgen/state"
)

// RunBuild is "assets build" command action.
func RunBuild(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("build")

	if err := env.PrepareCursors(cmd.String("options")); err != nil {
		return err
	}

	src := firstNonEmpty(cmd.Args().Get(0), env.Cfg.Assets.SourceDir)
	if len(src) == 0 {
		return errors.New("no source directory has been specified")
	}
	dst, err := destination(cmd.Args().Get(1), env)
	if err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Mailformed command line, too many arguments", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	written, err := Build(ctx, env.Catalog, src, dst, log)
	if err != nil {
		return err
	}
	if env.Rpt != nil {
		if err := env.Rpt.StoreCopy("assets", dst); err != nil {
			log.Warn("Unable to store built assets in report", zap.Error(err))
		}
	}
	log.Debug("Build finished", zap.Int("files", len(written)))
	return nil
}

// RunCheck is "assets check" command action.
func RunCheck(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("check")

	if err := env.PrepareCursors(cmd.String("options")); err != nil {
		return err
	}
	dir, err := destination(cmd.Args().Get(0), env)
	if err != nil {
		return err
	}

	rpt, err := Check(env.Catalog, dir)
	if err != nil {
		return err
	}
	text := rpt.String()
	if env.Rpt != nil {
		env.Rpt.StoreData("assets-check.txt", []byte(text))
	}
	if _, err := fmt.Fprint(os.Stdout, text); err != nil {
		return err
	}
	if problems := rpt.Problems(); len(problems) > 0 {
		log.Warn("Cursor theme is incomplete", zap.String("dir", dir), zap.Int("problems", len(problems)))
		return fmt.Errorf("cursor theme in '%s' has %d problems", dir, len(problems))
	}
	log.Info("Cursor theme is complete", zap.String("dir", dir), zap.Int("images", len(rpt.Items)))
	return nil
}

// destination picks images directory: argument, configuration, then catalog
// directory relative to the current one.
func destination(arg string, env *state.LocalEnv) (string, error) {
	dir := firstNonEmpty(arg, env.Cfg.Assets.DestDir)
	if len(dir) == 0 {
		dir = filepath.FromSlash(env.Catalog.Dir())
	}
	return filepath.Abs(dir)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if len(v) > 0 {
			return v
		}
	}
	return ""
}
