package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"filemanager/internal/clipboard"
	"filemanager/internal/config"
	"filemanager/internal/fsmodel"
	"filemanager/internal/logging"
	"filemanager/internal/settings"
	"filemanager/internal/telemetry"
	"filemanager/internal/ui"
)

// version is set with -ldflags "-X main.version=...".
var version = "dev"

type options struct {
	configPath string
	left       string
	right      string
	showHidden bool
	resetState bool
	logFile    string
	logLevel   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "filemanager",
		Short: "A two-pane terminal file manager",
		Long: `A two-pane terminal file manager with a directory tree, cut/copy/paste,
delete, new folder, rename and persistent window state.

Press SPC for the command menu.`,
		Example: `
filemanager
filemanager --left ~/src --right /tmp
filemanager --show-hidden --log-level debug
`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, o)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.configPath, "config", "", "config file (default <UserConfigDir>/filemanager/config.yaml)")
	f.StringVar(&o.left, "left", "", "open the left pane at this folder")
	f.StringVar(&o.right, "right", "", "open the right pane at this folder")
	f.BoolVar(&o.showHidden, "show-hidden", false, "show hidden files")
	f.BoolVar(&o.resetState, "reset-state", false, "forget the saved window state")
	f.StringVar(&o.logFile, "log-file", "", "log file (overrides config)")
	f.StringVar(&o.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	})
	return cmd
}

func run(cmd *cobra.Command, o *options) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.logFile != "" {
		cfg.Log.File = o.logFile
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	closer, err := logging.Setup(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	tp, err := telemetry.Setup(ctx)
	if err != nil {
		log.WithError(err).Warn("tracing disabled")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("flush traces")
		}
	}()

	stateDir := cfg.StateDir
	if stateDir == "" {
		if stateDir, err = settings.DefaultDir(cfg.Organization, cfg.Application); err != nil {
			return err
		}
	}
	store, err := settings.Open(stateDir)
	if err != nil {
		return err
	}
	if o.resetState {
		if err := store.Clear(); err != nil {
			return err
		}
		log.WithField("dir", stateDir).Info("window state cleared")
	}

	var sys clipboard.System
	if cfg.MirrorSystemClipboard {
		sys = clipboard.Host()
	}

	var watcher *fsmodel.Watcher
	if cfg.Watch {
		if watcher, err = fsmodel.NewWatcher(); err != nil {
			log.WithError(err).Warn("change notification disabled")
			watcher = nil
		} else {
			defer watcher.Close()
			go watcher.Run(ctx)
		}
	}

	opts := ui.Options{
		Context:   ctx,
		Config:    cfg,
		Model:     fsmodel.New(),
		Store:     store,
		StateDir:  stateDir,
		Clipboard: clipboard.New(sys),
		Watcher:   watcher,
		Version:   version,
		Left:      o.left,
		Right:     o.right,
	}
	if cmd.Flags().Changed("show-hidden") {
		opts.ShowHidden = &o.showHidden
	}

	log.WithFields(log.Fields{"version": version, "config": cfg.Source, "state": stateDir}).Info("starting")
	app := ui.NewAppModel(opts)
	p := tea.NewProgram(app.AsTeaModel(),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); app.Finish(err) != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
