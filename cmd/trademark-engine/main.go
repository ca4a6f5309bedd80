// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the trademark-engine CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/trademark-engine/internal/logger"
	"github.com/pdiddy/trademark-engine/internal/secrets"
	"github.com/pdiddy/trademark-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// Loaded in PersistentPreRunE and shared by every subcommand.
var (
	cfg types.Config
	log = zap.NewNop()
)

// rootCmd is the base command for the trademark-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "trademark-engine",
	Short: "Search trademark registries and the local record store",
	Long: `trademark-engine runs clearance searches across trademark registries
(TMview, EUIPO, WIPO Madrid, a national office) and a local record store,
scoring every hit against the query and returning one ranked result.

Subcommands cover searching, managing the local store, estimating filing
fees, and serving the same operations over HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig()
		if err != nil {
			return err
		}
		l, err := logger.New(loaded.Log)
		if err != nil {
			return err
		}

		s, err := secrets.Load(".secrets/", l)
		if err != nil {
			return err
		}
		secrets.ApplyRegistryKeys(&loaded.Sources, s)
		if len(s) > 0 {
			l.Debug("loaded secrets", zap.Int("count", len(s)))
		}

		cfg, log = loaded, l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		log.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./trademark-engine.yaml or ~/.config/trademark-engine/trademark-engine.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("trademark-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "trademark-engine"))
		}
	}

	setDefaults(viper.GetViper())

	viper.SetEnvPrefix("TRADEMARK_ENGINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
