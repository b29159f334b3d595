// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the givelit CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/juanvillada/givelit/internal/config"
	"github.com/juanvillada/givelit/internal/logger"
	"github.com/juanvillada/givelit/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// log is built once flags and config are known.
var log = zap.NewNop()

// rootCmd is the base command for the givelit CLI.
var rootCmd = &cobra.Command{
	Use:   "givelit",
	Short: "Surface the most relevant recent papers from the journals you follow",
	Long: `givelit queries Crossref for recent papers in a set of journals, scores them
against your keywords and prints a ranked report.

Settings come from flags, GIVELIT_* environment variables, a .env file and
givelit.yaml (./givelit.yaml or ~/.config/givelit/givelit.yaml), in that order
of precedence. The Crossref contact email may be stored in .secrets/crossref-mailto.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log = logger.New(viper.GetString(config.KeyLogLevel), viper.GetString(config.KeyLogFormat), cmd.ErrOrStderr())
		if used := viper.ConfigFileUsed(); used != "" {
			log.Info("using config file", zap.String("path", used))
		}

		s, err := secrets.Load(secrets.DefaultDir, log)
		if err != nil {
			return err
		}
		if len(s) > 0 {
			log.Debug("loaded secrets", zap.Strings("keys", s.Keys()))
		}
		if mailto := s.Get(secrets.CrossrefMailto); mailto != "" {
			// flags, env and the config file still take precedence
			viper.SetDefault(config.KeyMailto, mailto)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./givelit.yaml or ~/.config/givelit/givelit.yaml)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "console", "log format: console or json")
	_ = viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag(config.KeyLogFormat, rootCmd.PersistentFlags().Lookup("log-format"))
}

func initConfig() {
	config.LoadDotEnv(".env")
	config.SetDefaults(viper.GetViper())

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("givelit")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "givelit"))
		}
	}

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		fmt.Fprintf(os.Stderr, "warning: could not read config %s: %v\n", cfgFile, err)
	}
}

// execute runs the CLI with args and returns the process exit code. A
// failure is reported as a single "error: ..." line on stderr.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
