package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/goforj/geoassist"
	"github.com/goforj/geoassist/geoapify"
	"github.com/spf13/cobra"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	verbose    bool
}

// app is what a command needs to talk to the provider and the cache.
type app struct {
	cfg    Config
	client *geoapify.Client
	svc    *geoassist.Service
	logger *slog.Logger
	close  func()
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:   "geoassist",
		Short: "Location search with a persistent lookup cache",
		Long: `geoassist looks up places through the Geoapify API and caches answers in a
persistent tier (file, redis, sql, nats or dynamodb) so repeated searches
are served without another request.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default ~/.geoassist/config.toml)")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log cache and lookup activity")

	root.Version = versionString()
	root.SetVersionTemplate("{{.Version}}\n")

	root.AddCommand(
		newSearchCmd(flags),
		newGeocodeCmd(flags),
		newReverseCmd(flags),
		newRememberedCmd(flags),
		newForgetCmd(flags),
		newCacheCmd(flags),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command with signal-aware context.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "geoassist:", err)
		os.Exit(1)
	}
}

// openApp loads configuration and wires the store, client and service.
// Configuration problems fail here, before any lookup runs.
func openApp(cmd *cobra.Command, flags *globalFlags) (*app, error) {
	level := slog.LevelWarn
	if flags.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	cfg, err := LoadConfig(flags.configPath)
	if err != nil {
		return nil, err
	}

	var clientOpts []geoapify.Option
	if cfg.Lookup.BaseURL != "" {
		clientOpts = append(clientOpts, geoapify.WithBaseURL(cfg.Lookup.BaseURL))
	}
	client, err := geoapify.New(cfg.APIKey, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w (set api_key in the config file or %s)", err, apiKeyEnv)
	}

	store, closeStore, err := openStore(cmd.Context(), cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}

	svc, err := geoassist.New(client, store,
		geoassist.WithLogger(logger),
		geoassist.WithTTL(cfg.Lookup.TTL.Duration),
		geoassist.WithLookupTimeout(cfg.Lookup.Timeout.Duration),
	)
	if err != nil {
		closeStore()
		return nil, err
	}
	return &app{cfg: cfg, client: client, svc: svc, logger: logger, close: closeStore}, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), versionString())
			return err
		},
	}
}
