package main

import (
	"io"
	"log/slog"
	"os"

	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"
	"github.com/tartampluch/go-agecalc/internal/config"
	"github.com/tartampluch/go-agecalc/internal/engine"
	"github.com/tartampluch/go-agecalc/internal/insight"
	"github.com/tartampluch/go-agecalc/internal/server"
	"github.com/tartampluch/go-agecalc/internal/session"
	"github.com/tartampluch/go-agecalc/internal/ui"
)

// cli carries the state shared by every subcommand.
type cli struct {
	debug   bool
	envFile string

	env        config.Env
	newFetcher ui.FetcherFactory
	logCloser  io.Closer
}

func newCLI() *cli {
	return &cli{newFetcher: insight.New}
}

func (c *cli) close() {
	if c.logCloser != nil {
		_ = c.logCloser.Close()
	}
}

// newRootCmd builds the command tree. Without a subcommand the desktop app starts.
func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           config.CLIName,
		Short:         config.CmdShortRoot,
		Long:          config.CmdLongRoot,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runDesktop(cmd)
		},
	}

	root.PersistentFlags().BoolVar(&c.debug, config.FlagDebug, false, config.FlagDescDebug)
	root.PersistentFlags().StringVar(&c.envFile, config.FlagEnvFile, "", config.FlagDescEnvFile)

	root.AddCommand(newCalcCmd(c), newServeCmd(c), newVersionCmd())
	return root
}

// setup configures logging and reads the environment. The calc command logs
// warnings only, to stderr, so its output stays clean.
func (c *cli) setup(cmd *cobra.Command) error {
	console, level := io.Writer(os.Stdout), slog.LevelInfo
	if cmd.Name() == config.CmdCalc {
		console, level = cmd.ErrOrStderr(), slog.LevelWarn
	}
	if c.debug {
		level = slog.LevelDebug
	}
	c.logCloser = setupLogging(console, level, c.debug, cmd == cmd.Root())
	logStartupInfo()

	var files []string
	if c.envFile != "" {
		files = append(files, c.envFile)
	}
	env, err := config.LoadEnv(files...)
	if err != nil {
		return err
	}
	c.env = env
	return nil
}

// buildFetcher returns the insight backend configured by the environment,
// or nil when it cannot be built.
func (c *cli) buildFetcher(cmd *cobra.Command) insight.Fetcher {
	opts := insight.OptionsFromEnv(c.env)
	f, err := c.newFetcher(cmd.Context(), opts)
	if err != nil {
		slog.Warn(config.ErrClientInit,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyProvider, opts.Provider,
			config.LogKeyError, err)
		return nil
	}
	return f
}

// runDesktop starts the Fyne application and blocks until its window closes.
func (c *cli) runDesktop(cmd *cobra.Command) error {
	ctx := cmd.Context()
	a := app.NewWithID(config.AppID)

	// Record the version for potential migration logic in future updates.
	a.Preferences().SetString(config.PrefLastRun, config.Version)

	calc := engine.NewCalculator()
	port := a.Preferences().StringWithFallback(config.PrefServerPort, c.env.Port)

	sess := session.New(calc, nil, c.env.InsightTimeout)
	defer sess.Close()
	srv := server.New(port, calc, nil, c.env.InsightTimeout)

	gui := ui.NewAgeCalcApp(a, ctx, c.env, calc, srv, sess)
	gui.Run()

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return nil
}
