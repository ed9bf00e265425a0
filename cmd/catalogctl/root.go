package main

import (
	"fmt"
	"os"

	"storefeed/go/logging"
	"storefeed/go/shopify"
	"storefeed/go/shopify/adminapi"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	Out      string
	LogLevel string
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:          "catalogctl",
		Short:        "Render the product feeds and the duplicate report from the Shopify catalog",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg := logging.ConfigFromEnv()
			cfg.Output = cmd.ErrOrStderr()
			if opts.LogLevel != "" {
				cfg.Level = opts.LogLevel
			}
			logging.Setup(cfg)
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.Out, "out", "o", "-", "Output file, - for stdout")
	rootCmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "Log level, overrides LOG_LEVEL")

	rootCmd.AddCommand(newFeedCmd(opts), newDuplicatesCmd(opts))
	return rootCmd
}

func newClient() (*adminapi.Client, error) {
	cfg, err := shopify.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading Shopify configuration:\n>>> %w", err)
	}
	return adminapi.NewClient(cfg), nil
}

func writeOutput(cmd *cobra.Command, out string, body []byte) error {
	if out == "" || out == "-" {
		_, err := cmd.OutOrStdout().Write(body)
		return err
	}
	if err := os.WriteFile(out, body, 0o644); err != nil {
		return fmt.Errorf("error writing %s:\n>>> %w", out, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d bytes to %s\n", len(body), out)
	return nil
}
