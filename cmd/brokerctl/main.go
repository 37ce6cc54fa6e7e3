package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cuemby/brokerage/pkg/brokerage"
	"github.com/cuemby/brokerage/pkg/config"
	"github.com/cuemby/brokerage/pkg/health"
	"github.com/cuemby/brokerage/pkg/identity"
	"github.com/cuemby/brokerage/pkg/log"
	"github.com/cuemby/brokerage/pkg/types"
	"github.com/spf13/cobra"
)

var (
	// Version information (set via ldflags during build).
	Version = "dev"
	Commit  = "unknown"
)

// protocolVersion partitions incompatible fleets automatically (spec.md
// §4.4). A real deployment would set this via ldflags alongside Version;
// here it is a fixed constant for the reference implementation.
const protocolVersion uint32 = 1

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "brokerctl",
	Short:   "Query and announce build-farm worker availability",
	Version: Version,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("brokerctl version %s\nCommit: %s\n", Version, Commit))

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().String("defaults-file", "", "Optional YAML defaults file (lowest-priority config source)")
	rootCmd.PersistentFlags().String("fs-root", "", "Filesystem rendezvous root (overrides FASTBUILD_BROKERAGE_PATH)")
	rootCmd.PersistentFlags().String("coordinator", "", "Coordinator address (overrides FASTBUILD_COORDINATOR)")
	rootCmd.PersistentFlags().Int("coordinator-port", config.DefaultCoordinatorPort(), "Coordinator port")
	rootCmd.PersistentFlags().String("identity", "", "Override the resolved host identity")

	cobra.OnInitialize(initLogging)

	rootCmd.AddCommand(listCmd, announceCmd, revokeCmd, watchCmd, doctorCmd)
}

func initLogging() {
	logLevel, _ := rootCmd.PersistentFlags().GetString("log-level")
	logJSON, _ := rootCmd.PersistentFlags().GetBool("log-json")

	log.Init(log.Config{
		Level:      log.Level(logLevel),
		JSONOutput: logJSON,
	})
}

// resolveFacade builds a brokerage.Facade from persistent flags, falling
// back through the environment and an optional YAML defaults file
// (SPEC_FULL.md §10.2).
func resolveFacade(cmd *cobra.Command) (*brokerage.Facade, error) {
	fsRoot, _ := cmd.Flags().GetString("fs-root")
	coordinatorAddr, _ := cmd.Flags().GetString("coordinator")
	coordinatorPort, _ := cmd.Flags().GetInt("coordinator-port")
	defaultsFile, _ := cmd.Flags().GetString("defaults-file")
	identityOverride, _ := cmd.Flags().GetString("identity")

	var explicit *config.BackendConfig
	switch {
	case coordinatorAddr != "":
		c := config.NewCoordinatorConfig(coordinatorAddr, coordinatorPort)
		explicit = &c
	case fsRoot != "":
		c := config.NewFilesystemConfig(fsRoot)
		explicit = &c
	}

	var defaults *config.FileDefaults
	if defaultsFile != "" {
		d, err := config.LoadFileDefaults(defaultsFile)
		if err != nil {
			return nil, err
		}
		defaults = d
	}

	cfg := config.Resolve(explicit, defaults)

	hostIdentity := identity.Resolve()
	if identityOverride != "" {
		hostIdentity = types.HostIdentity(identityOverride)
	}

	return brokerage.New(cfg, hostIdentity, protocolVersion), nil
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the currently available workers",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := resolveFacade(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		workers, err := f.FindWorkers(ctx)
		if err != nil {
			return err
		}
		for _, w := range workers {
			fmt.Println(w)
		}
		return nil
	},
}

var announceCmd = &cobra.Command{
	Use:   "announce",
	Short: "Announce this host as available once",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := resolveFacade(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return f.SetAvailability(ctx, true)
	},
}

var revokeCmd = &cobra.Command{
	Use:   "revoke",
	Short: "Revoke this host's availability once",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := resolveFacade(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return f.SetAvailability(ctx, false)
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Announce availability on a loop until interrupted, then revoke",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := resolveFacade(cmd)
		if err != nil {
			return err
		}

		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		if err := f.SetAvailability(context.Background(), true); err != nil {
			log.Logger.Warn().Err(err).Msg("initial announce failed")
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

		fmt.Println("Watching. Press Ctrl+C to stop.")
		for {
			select {
			case <-ticker.C:
				// SetAvailability's own throttle (spec.md §4.5) makes this
				// safe to call every tick without re-announcing every time.
				if err := f.SetAvailability(context.Background(), true); err != nil {
					log.Logger.Warn().Err(err).Msg("re-announce failed")
				}
			case <-sigCh:
				fmt.Println("\nRevoking availability...")
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				err := f.SetAvailability(ctx, false)
				cancel()
				return err
			}
		}
	},
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check whether the configured backend is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		coordinatorAddr, _ := cmd.Flags().GetString("coordinator")
		coordinatorPort, _ := cmd.Flags().GetInt("coordinator-port")

		if coordinatorAddr == "" {
			fmt.Println("No coordinator address configured; filesystem/disabled backends have no network reachability to check.")
			return nil
		}

		checker := health.NewTCPChecker(fmt.Sprintf("%s:%d", coordinatorAddr, coordinatorPort))
		result := checker.Check(context.Background())

		fmt.Printf("coordinator %s: %s (%s)\n", checker.Address, result.Message, result.Duration)
		if !result.Healthy {
			os.Exit(1)
		}
		return nil
	},
}
