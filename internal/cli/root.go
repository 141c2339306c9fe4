// Package cli wires the tgw command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edgefn/translation-gateway/internal/config"
	"github.com/edgefn/translation-gateway/internal/server"
	"github.com/edgefn/translation-gateway/internal/version"
)

func Execute() error {
	root := &cobra.Command{
		Use:           "tgw",
		Short:         "HTTP gateway relaying translation requests to a completion endpoint",
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newServeCmd(),
		newCheckCmd(),
		newVersionCmd(),
	)
	return root.Execute()
}

func newServeCmd() *cobra.Command {
	cfgPath := "tgw.yaml"
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.Run(cfgPath)
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", cfgPath, "config yaml path")
	return cmd
}

func newCheckCmd() *cobra.Command {
	cfgPath := "tgw.yaml"
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate configuration and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: config (provider=%s listen=%s)\n", cfg.Upstream.Provider, cfg.Server.Listen)
			return nil
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", cfgPath, "config yaml path")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
		},
	}
}
