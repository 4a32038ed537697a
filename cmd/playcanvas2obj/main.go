// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the playcanvas2obj CLI, which converts
// PlayCanvas JSON model exports into Wavefront OBJ files.
package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/playcanvas2obj/internal/convert"
	"github.com/pdiddy/playcanvas2obj/internal/report"
	"github.com/pdiddy/playcanvas2obj/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets secrets.Set

// secretDefault returns fallback if it is set, or the secret value for key
// otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	return loadedSecrets.Get(key)
}

// rootCmd converts one document; subcommands handle inspection and the cache.
var rootCmd = &cobra.Command{
	Use:   "playcanvas2obj INPUT",
	Short: "Convert PlayCanvas JSON models to Wavefront OBJ",
	Long: `playcanvas2obj converts a PlayCanvas JSON model export into Wavefront OBJ
text with v, vn, and f records.

INPUT is a local file path or an http(s) URL. The model must hold a single
vertex buffer with 3-component position and normal attributes and a single
triangle mesh. OBJ is written to standard output unless -o is given.`,
	Args:          cobra.ExactArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(secrets.DefaultDir, statusWriter(cmd))
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			fmt.Fprintf(statusWriter(cmd), "Loaded secrets: %v\n", s.Keys())
		}
		return nil
	},
	RunE: runConvert,
}

func init() {
	cobra.OnInitialize(initConfig)

	viper.SetDefault("fetch.timeout", defaultTimeout)
	viper.SetDefault("fetch.user_agent", defaultUserAgent)
	viper.SetDefault("fetch.rate_limit_retries", 0)
	viper.SetDefault("output.normal_index", "position")

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./playcanvas2obj.yaml or ~/.config/playcanvas2obj/config.yaml)")
	pf.Duration("timeout", defaultTimeout, "HTTP request timeout")
	pf.String("cache-db", "", "SQLite cache for fetched documents (empty disables caching)")
	pf.BoolP("verbose", "v", false, "print status lines (config file, secrets, cache hits) to stderr")
	viper.BindPFlag("fetch.timeout", pf.Lookup("timeout"))
	viper.BindPFlag("cache.path", pf.Lookup("cache-db"))

	f := rootCmd.Flags()
	f.StringP("output", "o", "-", "output file path (defaults to stdout)")
	f.String("report", "", "write a YAML conversion report to this path")
	f.String("normal-index", "position", "face normal index: position, vertex, or face")
	f.Bool("refresh", false, "fetch URLs even when cached")
	viper.BindPFlag("output.normal_index", f.Lookup("normal-index"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("playcanvas2obj")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "playcanvas2obj"))
		}
	}

	viper.SetEnvPrefix("PLAYCANVAS2OBJ")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(statusWriter(rootCmd), "Using config file:", viper.ConfigFileUsed())
	}
}

// statusWriter returns stderr when --verbose is set and io.Discard otherwise,
// so a failed run prints nothing but its error line.
func statusWriter(cmd *cobra.Command) io.Writer {
	if verbose, _ := rootCmd.PersistentFlags().GetBool("verbose"); verbose {
		return cmd.ErrOrStderr()
	}
	return io.Discard
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	input := args[0]
	outPath, _ := cmd.Flags().GetString("output")
	reportPath, _ := cmd.Flags().GetString("report")
	refresh, _ := cmd.Flags().GetBool("refresh")
	stderr := cmd.ErrOrStderr()

	loader, closeLoader, err := newLoader(cfg, refresh, statusWriter(cmd))
	if err != nil {
		return err
	}
	defer closeLoader()

	doc, err := loader.Load(cmd.Context(), input)
	if err != nil {
		return err
	}

	sink, err := convert.OpenOutput(outPath, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer sink.Close()

	res, err := convert.Convert(doc, sink, convert.Options{NormalIndex: cfg.Output.NormalIndex})
	if err != nil {
		return err
	}
	if err := sink.Commit(); err != nil {
		return err
	}
	if !sink.IsStdout() {
		fmt.Fprintf(stderr, "converted: %s -> %s (%s)\n", input, sink.Name(), res.Summary())
	}

	if reportPath != "" {
		r := report.Build(input, res.Mesh)
		r.Output = sink.Name()
		r.NormalIndex = cfg.Output.NormalIndex
		if err := report.Write(reportPath, r); err != nil {
			return fmt.Errorf("writing report %s: %w", reportPath, err)
		}
	}
	return nil
}

// reportError prints err as the single line the CLI emits on failure.
func reportError(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %v\n", err)
}

// routeSIGPIPE makes writes to a closed stdout fail with EPIPE instead of
// killing the process, so the OBJ writer can stop quietly.
func routeSIGPIPE() {
	signal.Notify(make(chan os.Signal, 1), syscall.SIGPIPE)
}

func main() {
	routeSIGPIPE()
	if err := rootCmd.Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}
