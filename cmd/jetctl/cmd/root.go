// Package cmd implements the jetctl CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/donaldgifford/jet-merchant-client/internal/config"
	"github.com/donaldgifford/jet-merchant-client/internal/jet"
	"github.com/donaldgifford/jet-merchant-client/pkg/logger"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "jetctl",
		Short: "CLI client for the Jet merchant API",
		Long: "jetctl is a command-line client for the Jet merchant API.\n" +
			"It logs in on demand and lets you inspect and update merchant SKUs\n" +
			"or send raw authenticated requests from the terminal.",
		SilenceUsage: true,
	}

	metricsServer *http.Server
)

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := execute(ctx, rootCmd)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// execute runs cmd and then stops the metrics server, including when the
// command returned an error.
func execute(ctx context.Context, cmd *cobra.Command) error {
	err := cmd.ExecuteContext(ctx)
	if serr := stopMetrics(); serr != nil {
		fmt.Fprintf(os.Stderr, "stopping metrics server: %v\n", serr)
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (YAML)")
	flags.String("output", "table", "output format (table, json)")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (text, json)")
	flags.String("metrics-addr", "", "serve Prometheus metrics on this address while running")
	flags.String("username", "", "merchant API user")
	flags.String("password", "", "merchant API secret")
	flags.String("base-url", "", "API root URL")
	flags.String("reauth-mode", "", "behavior during an in-flight login (proceed, wait)")

	for _, name := range []string{
		"output", "log-level", "log-format", "metrics-addr",
		"username", "password", "base-url", "reauth-mode",
	} {
		cobra.CheckErr(viper.BindPFlag(name, flags.Lookup(name)))
	}

	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(productsCmd())
	rootCmd.AddCommand(skusCmd())
	rootCmd.AddCommand(requestCmd())
	rootCmd.AddCommand(versionCmd())
}

func initConfig() {
	viper.SetEnvPrefix("JETCTL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// loadConfig reads the config file when one is given and layers flags and
// JETCTL_* environment variables on top.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if cfgFile != "" {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	overlay(&cfg.Jet.Username, "username")
	overlay(&cfg.Jet.Password, "password")
	overlay(&cfg.Jet.BaseURL, "base-url")
	overlay(&cfg.Jet.ReauthMode, "reauth-mode")
	overlay(&cfg.Logging.Level, "log-level")
	overlay(&cfg.Logging.Format, "log-format")
	if addr := viper.GetString("metrics-addr"); addr != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Addr = addr
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func overlay(dst *string, key string) {
	if v := viper.GetString(key); v != "" {
		*dst = v
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logger.New(cfg.Logging.Level, cfg.Logging.Format)
}

func newClient(cfg *config.Config, log *slog.Logger) *jet.Client {
	opts := []jet.Option{
		jet.WithBaseURL(cfg.Jet.BaseURL),
		jet.WithHTTPClient(&http.Client{Timeout: cfg.Jet.Timeout}),
		jet.WithLogger(log),
		jet.WithReauthMode(jet.ParseReauthMode(cfg.Jet.ReauthMode)),
		jet.WithUserAgent(cfg.Jet.UserAgent + "/" + Version),
	}
	if cfg.Jet.AuthURL != "" {
		opts = append(opts, jet.WithAuthURL(cfg.Jet.AuthURL))
	}
	if cfg.Jet.AuthTestURL != "" {
		opts = append(opts, jet.WithAuthTestURL(cfg.Jet.AuthTestURL))
	}
	return jet.New(cfg.Jet.Username, cfg.Jet.Password, opts...)
}

// setup loads config and returns a ready client for a subcommand.
func setup() (*jet.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log := newLogger(cfg)
	if cfg.Metrics.Enabled {
		startMetrics(cfg.Metrics.Addr, log)
	}
	return newClient(cfg, log), nil
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}

// startMetrics serves /metrics until the command finishes.
func startMetrics(addr string, log *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	metricsServer = srv

	go func() {
		log.Debug("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server", "err", err)
		}
	}()
}

// stopMetrics shuts down the metrics server, if one was started.
func stopMetrics() error {
	srv := metricsServer
	if srv == nil {
		return nil
	}
	metricsServer = nil

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
