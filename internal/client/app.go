package client

import (
	"flag"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-field-sync/internal/adapter"
	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/service"
	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/models"
)

const appName = "fieldsync"

type App struct {
	buildInfo models.AppBuildInfo
	flags     *config.FlagConfig

	cfg      *config.StructuredConfig
	services *service.ClientServices
	db       *store.DB
	logger   *logger.Logger

	// connect builds the runtime on first use. Tests replace it.
	connect func(cmd *cobra.Command) error
}

func NewApp(buildInfo models.AppBuildInfo) *App {
	a := &App{buildInfo: buildInfo}
	a.connect = a.open
	return a
}

// Run implements Client.
func (a *App) Run(args []string) error {
	root := a.command()
	root.SetArgs(args)
	return root.Execute()
}

func (a *App) command() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Offline-first sync of field cases and licenses",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.connect(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			a.close()
		},
	}

	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	a.flags = config.RegisterFlags(fs)
	root.PersistentFlags().AddGoFlagSet(fs)

	root.AddCommand(
		a.pullCmd(),
		a.pushCmd(),
		a.forceSyncCmd(),
		a.pendingCmd(),
		a.historyCmd(),
		a.serveCmd(),
		a.versionCmd(),
	)

	return root
}

// open loads the configuration and builds the services. It is a no-op when
// the runtime is already built.
func (a *App) open(cmd *cobra.Command) error {
	if a.services != nil {
		return nil
	}

	cfg, err := config.GetStructuredConfig(a.flags.Config())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.App.Version == "" {
		cfg.App.Version = a.buildInfo.BuildVersion()
	}

	log := logger.NewClientLogger(appName, cfg.Log.Level)

	db, err := store.NewConnect(cmd.Context(), cfg.Storage.DB, log)
	if err != nil {
		return fmt.Errorf("open local cache: %w", err)
	}

	gateway, err := adapter.NewHTTPGateway(cfg.Adapter, log)
	if err != nil {
		db.Close()
		return fmt.Errorf("create remote gateway: %w", err)
	}

	services, err := service.NewClientServices(store.NewRepositories(db, log), gateway, cfg, log)
	if err != nil {
		db.Close()
		return fmt.Errorf("create services: %w", err)
	}

	a.cfg, a.db, a.services, a.logger = cfg, db, services, log
	return nil
}

func (a *App) close() {
	if a.db == nil {
		return
	}
	if err := a.db.Close(); err != nil {
		a.logger.Err(err).Msg("close local cache")
	}
	a.db = nil
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		// the build information does not need the runtime
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			printBuildInfo(cmd.OutOrStdout(), a.buildInfo)
		},
	}
}

func printBuildInfo(w io.Writer, info models.AppBuildInfo) {
	fmt.Fprintf(w, "Build version: %s\n", orNA(info.BuildVersion()))
	fmt.Fprintf(w, "Build date: %s\n", orNA(info.BuildDate()))
	fmt.Fprintf(w, "Build commit: %s\n", orNA(info.BuildCommit()))
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
