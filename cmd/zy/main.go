// Zy is a static file server for local development and small deployments.
//
// It serves a directory over HTTP with cache headers suited to fingerprinted
// assets, an optional single-page-application fallback and a custom 404
// page.
//
// Usage:
//
//	zy [DIR] [flags]
//
// See 'zy --help' for available options.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/muurk/zy/internal/config"
	"github.com/muurk/zy/internal/shutdown"
	"github.com/muurk/zy/internal/version"
)

// exitForced is the conventional status for a process ended by SIGINT.
const exitForced = 130

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if errors.Is(err, shutdown.ErrForcedExit) {
			os.Exit(exitForced)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := config.NewViper()
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "zy [DIR]",
		Short: "Static file server",
		Long: `Serve DIR (default: the current directory) over HTTP.

HTML documents are sent with no-cache so deploys show up at once; scripts,
styles, images and fonts are cached for --cache seconds. With --spa, unknown
paths requested by a browser get the index document so client-side routing
can take over. Everything else that cannot be served gets the --404 page.`,
		Example: `  # Serve the current directory on 127.0.0.1:3000
  zy

  # Serve a build directory as a single-page app on all interfaces
  zy ./dist --spa -l 0.0.0.0

  # Several listeners, short cache, request logging
  zy public -l 8080 -l [::1]:8080 -c 60 -v`,
		Version:       version.Full(),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, configPath, args)
			if err != nil {
				return err
			}
			return runServe(cfg)
		},
	}

	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	registerFlags(rootCmd, v)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: "+defaultConfigHint()+")")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(v, &configPath))
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (commit: %s)\n", version.Product, version.Version, version.Commit)
		},
	}
}

func newConfigCmd(v *viper.Viper, configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "config [DIR]",
		Short: "Print the effective configuration as YAML",
		Long: `Resolve flags, ZY_* environment variables and the config file exactly as
'zy' would, validate the result and print it as YAML. The output can be used
as a config file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, *configPath, args)
			if err != nil {
				return err
			}
			data, err := cfg.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func defaultConfigHint() string {
	p, err := config.GetConfigPath()
	if err != nil {
		return "none"
	}
	return p
}
