// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/searchhintio/searchhint/cmd/config"
	"github.com/searchhintio/searchhint/internal/json"
	"github.com/searchhintio/searchhint/internal/log/zerolog"
	loglib "github.com/searchhintio/searchhint/pkg/log"
)

// Version is the searchhint version
var (
	Version = "development"
	Env     string
)

const trueStr = "true"

func Prepare() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "searchhint",
		SilenceUsage: true,
		Version:      version(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(); err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}

			return nil
		},
	}

	viper.SetEnvPrefix("SEARCHHINT")
	viper.AutomaticEnv()

	// Flag definition

	// root cmd
	rootCmd.PersistentFlags().StringP("config", "c", "", ".env or .yaml config file to use with searchhint if any")
	rootCmd.PersistentFlags().String("log-level", "info", "log level for the application. One of trace, debug, info, warn, error, fatal, panic")
	rootCmd.PersistentFlags().String("purview-account", "", "Purview account name hosting the data catalog")

	// collections cmd
	collectionsCmd.Flags().Bool("json", false, "Output the collections in JSON format")

	// assets cmd
	assetsCmd.Flags().String("collection", "", "Collection ID to search assets in")
	assetsCmd.Flags().String("keywords", "", "Keywords to filter assets by")
	assetsCmd.Flags().Int("limit", 0, "Maximum number of assets returned")
	assetsCmd.Flags().Bool("json", false, "Output the assets in JSON format")

	// infer cmd
	inferCmd.Flags().String("collection", "", "Collection ID whose assets will be inferred")
	inferCmd.Flags().String("guid", "", "GUID of a single asset to infer instead of a whole collection")
	inferCmd.Flags().Bool("sample", false, "Whether to sample data from the asset's backing store to refine the inference")
	inferCmd.Flags().Bool("apply", false, "Whether to apply the produced index definitions to the search service")
	inferCmd.Flags().String("dump-dir", "", "Directory where raw entity payloads will be dumped for debugging")
	inferCmd.Flags().String("index-name-template", "", "Template used to derive index names from asset metadata")
	inferCmd.Flags().Int("concurrency", 0, "Number of assets processed in parallel")
	inferCmd.Flags().Bool("json", false, "Output the inference reports in JSON format")

	// Flag binding for root cmd
	rootFlagBinding(rootCmd)

	// register subcommands
	rootCmd.AddCommand(collectionsCmd)
	rootCmd.AddCommand(assetsCmd)
	rootCmd.AddCommand(inferCmd)
	return rootCmd
}

// Execute executes the root command.
func Execute() error {
	cmd := Prepare()
	return cmd.Execute()
}

func withSignalWatcher(fn func(ctx context.Context) error) func(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)
	go func() {
		<-sigc
		cancel()
	}()

	return func(cmd *cobra.Command, args []string) error {
		defer cancel()
		return fn(ctx)
	}
}

func rootFlagBinding(cmd *cobra.Command) {
	bindFlags(cmd.PersistentFlags(), map[string]string{
		"config":                          "config",
		"SEARCHHINT_LOG_LEVEL":            "log-level",
		"SEARCHHINT_PURVIEW_ACCOUNT_NAME": "purview-account",
	})
}

// bindFlags binds viper keys to CLI flags so flag values overwrite file and
// env configuration.
func bindFlags(flags *pflag.FlagSet, bindings map[string]string) {
	for key, flag := range bindings {
		viper.BindPFlag(key, flags.Lookup(flag))
	}
}

func version() string {
	if Env != "" {
		return Env + " (" + Version + ")"
	}
	return Version
}

func newLogger() loglib.Logger {
	logger := zerolog.NewLogger(&zerolog.Config{
		LogLevel: viper.GetString("SEARCHHINT_LOG_LEVEL"),
	})
	zerolog.SetGlobalLogger(logger)
	return zerolog.NewStdLogger(logger)
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v)
	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}
	fmt.Println(string(data)) //nolint:forbidigo
	return nil
}
