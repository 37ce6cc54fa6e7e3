package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cuemby/brokerage/pkg/coordsrv"
	"github.com/cuemby/brokerage/pkg/log"
	"github.com/cuemby/brokerage/pkg/metrics"
	"github.com/cuemby/brokerage/pkg/registry"
	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "brokercoordinatord",
	Short:   "Run the worker-brokerage coordinator daemon",
	Version: Version,
	RunE:    runCoordinator,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("brokercoordinatord version %s\nCommit: %s\n", Version, Commit))

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Output logs in JSON format")
	rootCmd.Flags().String("listen", fmt.Sprintf(":%d", 19086), "Address to accept worker connections on")
	rootCmd.Flags().String("metrics-addr", "127.0.0.1:9090", "Address to serve /metrics, /health, /ready, /live on")

	cobra.OnInitialize(initLogging)
}

func initLogging() {
	logLevel, _ := rootCmd.PersistentFlags().GetString("log-level")
	logJSON, _ := rootCmd.PersistentFlags().GetBool("log-json")

	log.Init(log.Config{
		Level:      log.Level(logLevel),
		JSONOutput: logJSON,
	})
}

func runCoordinator(cmd *cobra.Command, args []string) error {
	listenAddr, _ := cmd.Flags().GetString("listen")
	metricsAddr, _ := cmd.Flags().GetString("metrics-addr")

	logger := log.WithComponent("brokercoordinatord")

	metrics.SetVersion(Version)
	metrics.RegisterComponent("backend", true, "coordinator registry initialized")

	reg := registry.New()
	srv, err := coordsrv.New(listenAddr, reg)
	if err != nil {
		return err
	}
	defer srv.Close()

	logger.Info().Str("addr", srv.Addr().String()).Msg("coordinator listening")

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		mux.HandleFunc("/health", metrics.HealthHandler())
		mux.HandleFunc("/ready", metrics.ReadyHandler())
		mux.HandleFunc("/live", metrics.LivenessHandler())

		logger.Info().Str("addr", metricsAddr).Msg("metrics/health server listening")
		if err := http.ListenAndServe(metricsAddr, mux); err != nil {
			logger.Error().Err(err).Msg("metrics server stopped")
			metrics.UpdateComponent("backend", false, "metrics server stopped: "+err.Error())
		}
	}()

	serveErrCh := make(chan error, 1)
	go func() { serveErrCh <- srv.Serve() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serveErrCh:
		metrics.UpdateComponent("backend", false, "accept loop stopped: "+err.Error())
		return err
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
		return nil
	}
}
