package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/studydesk/studydesk/internal/commands"
	"github.com/studydesk/studydesk/internal/core/config"
	"github.com/studydesk/studydesk/internal/core/entity"
	"github.com/studydesk/studydesk/internal/core/logging"
	"github.com/studydesk/studydesk/internal/core/notify"
	"github.com/studydesk/studydesk/internal/data/db"
	"github.com/studydesk/studydesk/internal/data/stores"
	"github.com/studydesk/studydesk/internal/store/jsonfile"
	"github.com/studydesk/studydesk/internal/studydesk"
	"github.com/studydesk/studydesk/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	return fmt.Sprintf("%s, commit %s, built at %s", v, c, d)
}

func main() {
	ctx := context.Background()

	// Local .env files may supply STUDYDESK_* variables during development.
	_ = godotenv.Load()

	var (
		logCloser func()
		database  *db.DB
		notifier  *notify.Queue
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "studydesk",
		Usage:     "Manage tasks, study resources, and collaboration rooms",
		UsageText: "studydesk [global options] command [command options]",
		Description: `Studydesk is a local-first study workspace: a task list, a resource
library, and live collaboration rooms with a shared code editor.

Run 'studydesk' with no arguments for the dashboard summary.
Run 'studydesk room join <id>' to open a room's live view.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("STUDYDESK_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/studydesk.log)",
				Sources:     cli.EnvVars("STUDYDESK_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("STUDYDESK_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("STUDYDESK_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Always log to a file; the terminal belongs to tables and forms.
			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(flags.DataDir, "studydesk.log")
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger.Hook(logging.ContextHook{})
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			var adapter entity.Adapter
			switch cfg.Storage {
			case config.StorageSQLite:
				database, err = db.Open(cfg.DataDir)
				if err != nil {
					return ctx, fmt.Errorf("open database: %w", err)
				}
				adapter = stores.NewSnapshotStore(database)
			default:
				adapter = jsonfile.NewSnapshotStore(cfg.DataDir)
			}

			notifier = notify.NewQueue(notify.WithDefaultDuration(cfg.ToastDuration()))

			app, err := studydesk.New(ctx, cfg, adapter, notifier)
			if err != nil {
				return ctx, fmt.Errorf("init application: %w", err)
			}
			flags.App = app

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if notifier != nil {
				notifier.Close()
			}

			if database != nil {
				if err := database.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close database")
					return err
				}
			}

			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	statsCmd := commands.NewStatsCmd(flags)

	app = commands.NewTaskCmd(flags).Register(app)
	app = commands.NewRoomCmd(flags).Register(app)
	app = commands.NewResourceCmd(flags).Register(app)
	app = statsCmd.Register(app)

	// Show the dashboard summary when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'studydesk --help' for usage", c.Args().First())
		}
		return statsCmd.Run(ctx, c)
	}

	exitCode := 0
	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Println()
		fmt.Println(err.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
