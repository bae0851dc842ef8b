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

	"lbe/common"
	"lbe/config"
	"lbe/lesson"
	"lbe/misc"
	"lbe/state"
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
	if store := cmd.String("store"); len(store) > 0 {
		env.Cfg.Store.Path = store
	}
	if cmd.Bool("debug") {
		if env.Rpt, err = env.Cfg.Reporting.Prepare(); err != nil {
			return ctx, fmt.Errorf("unable to prepare debug reporter: %w", err)
		}
		if len(configFile) > 0 {
			if data, err := config.Dump(env.Cfg); err == nil {
				env.Rpt.StoreData(fmt.Sprintf("config/%s", filepath.Base(configFile)), data)
			}
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
	if len(configFile) == 0 {
		env.Log.Info("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}

	env.RestoreStdLog()

	// log is synced now and result can be used in report, errors must be
	// reported directly to stderr from now on
	if env.Rpt != nil {
		if er := env.Rpt.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close debug report: %w", er))
		}
	}
	// remove empty panic file if any
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

// Subcommands return regular errors, cli.Exit() is not used.
var errWasHandled bool

// called before appContext is destroyed, so error could be logged
func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := state.EnvFromContext(ctx)
	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	if log := state.EnvFromContext(ctx).Log; log != nil {
		log.Warn("Unknown command, nothing to do", zap.String("command", name))
	}
}

func overwriteFlag() cli.Flag {
	return &cli.BoolFlag{Name: "overwrite", Aliases: []string{"ow"}, Usage: "continue even if destination exists, overwrite files or stored lessons"}
}

const sourceHelp = `
SOURCE:
    path to lesson file: "[path_to_file]lesson.html" (.html, .htm and .xhtml are recognized)
    Complete documents are reduced to their <body>, fragments are taken as is.
    Encoding is detected from BOM (UTF-8, UTF-16, UTF-32) or from <meta> declarations.
`

func main() {
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "block editor engine for HTML lessons",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.StringFlag{Name: "store", Aliases: []string{"s"}, Usage: "use lesson store `DATABASE` instead of configured one"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "changes program behavior to help troubleshooting, produces report archive"},
		},
		Commands: []*cli.Command{
			{
				Name:         "blocks",
				Usage:        "Parses lesson into blocks and prints resulting document",
				OnUsageError: usageErrorHandler,
				Action:       lesson.Blocks,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "xml", Usage: "print XML block manifest instead of text tree"},
				},
				ArgsUsage:          "SOURCE",
				CustomHelpTemplate: cli.CommandHelpTemplate + sourceHelp,
			},
			{
				Name:         "normalize",
				Usage:        "Rewrites lesson in normal form (parse and serialize)",
				OnUsageError: usageErrorHandler,
				Action:       lesson.Normalize,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "check", Usage: "only verify that lesson is already in normal form"},
					overwriteFlag(),
				},
				ArgsUsage: "SOURCE [DESTINATION]",
				CustomHelpTemplate: cli.CommandHelpTemplate + sourceHelp + `
DESTINATION:
    file to write normalized lesson to, if absent - STDOUT
`,
			},
			{
				Name:         "edit",
				Usage:        "Applies editing script to lesson file or stored lesson",
				OnUsageError: usageErrorHandler,
				Action:       lesson.Edit,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "lesson", Aliases: []string{"l"}, Usage: "edit stored lesson with `ID` instead of file, every change is saved with undo snapshot"},
					overwriteFlag(),
				},
				ArgsUsage: "SCRIPT [SOURCE [DESTINATION]]",
				CustomHelpTemplate: fmt.Sprintf(`%s
SCRIPT:
    YAML file with list of steps, each step is one of: %s
    Blocks are addressed by position at the moment step is executed.
%s
DESTINATION:
    file to write edited lesson to, if absent - STDOUT
`, cli.CommandHelpTemplate, strings.Join(common.EditOpNames(), ", "), sourceHelp),
			},
			{
				Name:         "import",
				Usage:        "Normalizes lesson(s) and puts them into store",
				OnUsageError: usageErrorHandler,
				Action:       lesson.Import,
				Flags: []cli.Flag{
					overwriteFlag(),
					&cli.StringFlag{Name: "force-zip-cp",
						Usage: "Force `ENCODING` for ALL non UTF-8 file names in processed archives (see IANA.org for character set names)"},
				},
				ArgsUsage: "SOURCE",
				CustomHelpTemplate: fmt.Sprintf(`%s
SOURCE:
    path to lesson(s) to import, following forms are supported:
        path to a file: "[path_to_file]lesson.html"
        path to a directory: "[path_to_directory]directory" - recursively process all files under directory (symbolic links are not followed)
        path to archive with path inside archive: "[path_to_archive]archive.zip[path_in_archive]" - process all lessons under archive path

    Lesson id is derived from file path relative to SOURCE, title from its first heading.
`, cli.CommandHelpTemplate),
			},
			{
				Name:         "export",
				Usage:        "Writes stored lesson",
				OnUsageError: usageErrorHandler,
				Action:       lesson.Export,
				Flags:        []cli.Flag{overwriteFlag()},
				ArgsUsage:    "ID [DESTINATION]",
			},
			{
				Name:         "undo",
				Usage:        "Restores stored lesson from its latest snapshot",
				OnUsageError: usageErrorHandler,
				Action:       lesson.Undo,
				ArgsUsage:    "ID",
			},
			{
				Name:         "lessons",
				Usage:        "Lists stored lessons",
				OnUsageError: usageErrorHandler,
				Action:       lesson.Lessons,
			},
			{
				Name:         "palette",
				Usage:        "Lists block templates available for insertion",
				OnUsageError: usageErrorHandler,
				Action:       lesson.Palette,
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
			// log may be not set yet (argument parsing) or already closed
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

	if _, err = out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
