package main

import (
	"github.com/spf13/cobra"

	"github.com/dshills/vimcore/internal/app"
	"github.com/dshills/vimcore/internal/config"
	"github.com/dshills/vimcore/internal/log"
	"github.com/dshills/vimcore/internal/plugin/lua"
)

// Version information, set with -ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

type rootFlags struct {
	configPath string
	initPath   string
	logLevel   string
	noInit     bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "vimcore",
		Short:         "A vi-style modal editing engine",
		Long:          `vimcore interprets vi keystrokes over a text surface: an interactive terminal editor and a headless key replayer.`,
		Version:       version + " (" + commit + ")",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if flags.logLevel == "" {
				return nil
			}
			_, err := log.ParseLevel(flags.logLevel)
			return err
		},
	}

	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", config.DefaultPath(),
		"config file (TOML or YAML)")
	root.PersistentFlags().StringVar(&flags.initPath, "init", lua.DefaultInitPath(),
		"Lua init script")
	root.PersistentFlags().BoolVar(&flags.noInit, "no-init", false,
		"skip the Lua init script")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "",
		"log level (debug, info, warn, error); overrides the config file")

	root.AddCommand(newEditCmd(flags), newKeysCmd(flags))
	return root
}

// options builds application options from the global flags.
func (f *rootFlags) options(files []string) app.Options {
	opts := app.Options{ConfigPath: f.configPath, Files: files}
	if !f.noInit {
		opts.InitPath = f.initPath
	}
	return opts
}

// overrideLogLevel applies --log-level over the configured level.
func (f *rootFlags) overrideLogLevel() {
	if level, err := log.ParseLevel(f.logLevel); err == nil {
		log.SetLevel(level)
	}
}
