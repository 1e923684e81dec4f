package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"portfolio-backend/pkg/config"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:          "portfolio-backend",
		Short:        "Portfolio API with live synthetic telemetry feeds",
		Long:         "portfolio-backend serves the portfolio JSON API, the terminal simulator and endless SSE/WebSocket feeds of synthetic ML telemetry. Running it without a subcommand starts the server.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, v)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("addr", ":8000", "HTTP listen address")
	flags.String("catalog", "", "TOML catalog overriding the embedded portfolio tables")
	flags.Int("training-epochs", 50, "epochs per simulated training run")
	flags.Bool("mqtt", false, "mirror feeds to the MQTT broker")

	if err := bindFlags(v, rootCmd, map[string]string{
		config.KeyHTTPAddr:       "addr",
		config.KeyCatalogPath:    "catalog",
		config.KeyTrainingEpochs: "training-epochs",
		config.KeyMQTTEnabled:    "mqtt",
	}); err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newServeCmd(v),
		newStreamCmd(v),
	)

	return rootCmd
}

// bindFlags lets each flag, when set, take precedence over its environment variable
func bindFlags(v *viper.Viper, cmd *cobra.Command, keys map[string]string) error {
	for key, name := range keys {
		if err := v.BindPFlag(key, cmd.PersistentFlags().Lookup(name)); err != nil {
			return err
		}
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version)
			return err
		},
	}
}
