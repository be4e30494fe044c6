package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"curgen/apply"
	"curgen/assets"
	"curgen/common"
	"curgen/config"
	"curgen/misc"
	"curgen/state"
)

// initializeAppContext prepares application context before command execution but
// after command line has been parsed
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	if cmd.NArg() == 0 {
		// nothing to do, just return
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		if env.Rpt, err = env.Cfg.Reporting.Prepare(); err != nil {
			return ctx, fmt.Errorf("unable to prepare debug reporter: %w", err)
		}
		// save complete processed configuration if external configuration was provided
		if len(configFile) > 0 {
			// we do not want any of your secrets!
			if data, err := config.Dump(env.Cfg); err == nil {
				env.Rpt.StoreData(fmt.Sprintf("config/%s", filepath.Base(configFile)), data)
			}
		}
		if len(env.Cfg.Cursors.OptionsFile) > 0 {
			env.Rpt.Store(fmt.Sprintf("config/%s", filepath.Base(env.Cfg.Cursors.OptionsFile)), env.Cfg.Cursors.OptionsFile)
		}
	}
	if env.Log, err = env.Cfg.Logging.Prepare(env.Rpt); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", misc.GetVersion()), zap.String("runtime", runtime.Version()), zap.String("hash", misc.GetGitHash()))

	if env.Rpt != nil {
		env.Log.Info("Creating debug report", zap.String("location", env.Rpt.Name()))
	}
	if len(configFile) == 0 && env.Log != nil {
		env.Log.Info("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}

	// close logging
	env.RestoreStdLog()

	// log is synced now and result can be used in report if necessary, errors
	// must be reported directly to stderr from now on
	if env.Rpt != nil {
		if er := env.Rpt.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close debug report: %w", er))
		}
	}
	// reporting is closed now - remove empty panic file if any
	if env.Cfg != nil && len(env.Cfg.Logging.FileLogger.Destination) > 0 {
		debug.SetCrashOutput(nil, debug.CrashOptions{})
		fname := filepath.Join(filepath.Dir(env.Cfg.Logging.FileLogger.Destination), misc.GetAppName()+"-panic.log")
		if fi, er := os.Stat(fname); er == nil && fi.Size() == 0 {
			if er := os.Remove(fname); er != nil {
				err = multierr.Append(err, fmt.Errorf("unable to remove empty panic log file '%s': %w", fname, er))
			}
		}
	}
	return
}

// Ignore urfave/cli default error handling - cli.Exit() looks non-transparent
// and unnecessary. Subcommands return regular errors.
var errWasHandled bool

// this is called before appContext is destroyed, so we have a chance to
// properly log any error from subcommand
func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {

	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	// do nothing special, error is reported either by exitErrHandler or on
	// exit directly to stderr.
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	state.EnvFromContext(ctx).Log.Warn("Unknown command, nothing to do", zap.String("command", name))
}

// generationFlags are shared by "apply" and "select".
func generationFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "size", Aliases: []string{"s"},
			Usage: "cursor size `TIER` (supported: " + strings.Join(common.SizeTierNames(), ", ") + "), overrides configuration"},
		&cli.StringFlag{Name: "color", Usage: "cursor color `VARIANT` (built-in theme: " + strings.Join(common.ColorVariantNames(), ", ") + "), overrides configuration"},
		&cli.StringFlag{Name: "options", Aliases: []string{"o"}, Usage: "load cursor theme from `FILE` (YAML or TOML), overrides configuration"},
		&cli.DurationFlag{Name: "delay", Usage: "wait `DURATION` before processing, overrides configuration"},
		&cli.StringFlag{Name: "out", Usage: "write generated stylesheet into `DIRECTORY`"},
		&cli.StringFlag{Name: "html", Usage: "inject generated rules into style element of HTML `DOCUMENT` instead of writing stylesheet"},
		&cli.BoolFlag{Name: "stdout", Usage: "write generated stylesheet to STDOUT"},
	}
}

const sourceHelp = `
SOURCE:
    stylesheet location, following formats are supported:
        path to a file: "[path_to_file]site.css"
        path to archive with path inside archive: "[path_to_archive]theme.zip[path_in_archive]/site.css"
        remote location: "http(s)://host/path/site.css"
`

func main() {

	// allow graceful shutdown on interrupt.
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "themed cursor stylesheet generator",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "changes program behavior to help troubleshooting, produces report archive"},
		},
		Commands: []*cli.Command{
			{
				Name:         "apply",
				Usage:        "Generates cursor rules for all elements of the stylesheet",
				OnUsageError: usageErrorHandler,
				Action:       apply.RunApply,
				Flags: append(generationFlags(),
					&cli.BoolFlag{Name: "no-semantic", Usage: "do not generate rules for semantic HTML elements"},
				),
				ArgsUsage: "SOURCE",
				CustomHelpTemplate: fmt.Sprintf(`%s%s
Rules are generated for semantic HTML elements and every rule of the stylesheet
declaring cursor. Output file is replaced.
`, cli.CommandHelpTemplate, sourceHelp),
			},
			{
				Name:         "select",
				Usage:        "Generates cursor rules for stylesheet rules matching class and id selectors",
				OnUsageError: usageErrorHandler,
				Action:       apply.RunSelect,
				Flags:        generationFlags(),
				ArgsUsage:    "SOURCE SELECTORS",
				CustomHelpTemplate: fmt.Sprintf(`%s%s
SELECTORS:
    comma separated list of class (".name") and id ("#name") selectors, rules
    whose selector text contains any of them are processed. Generated rules are
    appended to output file.
`, cli.CommandHelpTemplate, sourceHelp),
			},
			{
				Name:  "assets",
				Usage: "Prepares and verifies cursor images",
				Commands: []*cli.Command{
					{
						Name:         "build",
						Usage:        "Produces cursor images for all size tiers and color variants",
						OnUsageError: usageErrorHandler,
						Action:       assets.RunBuild,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "options", Aliases: []string{"o"}, Usage: "load cursor theme from `FILE` (YAML or TOML), overrides configuration"},
						},
						ArgsUsage: "[SOURCE] [DESTINATION]",
						CustomHelpTemplate: fmt.Sprintf(`%s
SOURCE:
    directory with cursor pictures named after theme assets (SVG or raster),
    "gray" prefixed pictures are used for gray variant and derived when absent.
    If absent - assets.source_dir from configuration

DESTINATION:
    directory to put 32x32, 64x64 and 128x128 subdirectories with PNG images.
    If absent - assets.dest_dir from configuration or theme directory
`, cli.CommandHelpTemplate),
					},
					{
						Name:         "check",
						Usage:        "Verifies that all cursor images of the theme are present",
						OnUsageError: usageErrorHandler,
						Action:       assets.RunCheck,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "options", Aliases: []string{"o"}, Usage: "load cursor theme from `FILE` (YAML or TOML), overrides configuration"},
						},
						ArgsUsage: "[DIRECTORY]",
					},
				},
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
				CustomHelpTemplate: fmt.Sprintf(`%s

DESTINATION:
    file name to write configuration to, if absent - STDOUT

Produces file with actual "active" configuration values which is composition of
default values and values specified in configuration file. To see default
configuration embedded into the program use --default flag.
`, cli.CommandHelpTemplate),
			},
		},
	}

	var err error
	// NOTE: os.Exit is called at the end of main to set exit code, make sure
	// there are no other deffered functions after that
	defer func() {
		stop()
		if err != nil {
			// It may happen that log is either not set yet (argument parsing) or already closed,
			// report errors to stderr directly
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	fname := cmd.Args().Get(0)

	var (
		err   error
		data  []byte
		state string
	)

	out := os.Stdout
	if len(fname) > 0 {
		out, err = os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()

	}

	if cmd.Bool("default") {
		state = "default"
		data, err = config.Prepare()
	} else {
		state = "actual"
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	if len(fname) == 0 {
		fname = "STDOUT"
	}
	env.Log.Info("Outputing configuration", zap.String("state", state), zap.String("file", fname))

	_, err = out.Write(data)
	if err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
