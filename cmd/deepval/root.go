package main

import (
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "deepval",
	Short: "Inspect, compare, merge, and store structured values",
	Long: `deepval works with structured values (mappings, sequences, sets, and
friends) read from EDN, JSON, or YAML files. It can pretty-print them, test
deep equality, deep-merge mappings, and keep fingerprinted snapshots in a
local store.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if viper.GetBool("no-color") || !isatty.IsTerminal(os.Stdout.Fd()) {
			color.NoColor = true
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default ~/.deepval.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"disable colored output")
	viper.BindPFlag("no-color", rootCmd.PersistentFlags().Lookup("no-color"))
}

// initConfig reads ~/.deepval.yaml and DEEPVAL_* environment variables.
// Precedence: flags, then environment, then the config file.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigName(".deepval")
			viper.SetConfigType("yaml")
		}
	}

	viper.SetEnvPrefix("DEEPVAL")
	viper.AutomaticEnv()

	viper.SetDefault("merge.arrays", "concat")
	viper.SetDefault("merge.max-depth", 50)
	viper.SetDefault("store.path", defaultStorePath())

	// A missing config file is fine; anything else should be heard about.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			cobra.CheckErr(err)
		}
	}
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".deepval-store"
	}
	return filepath.Join(home, ".deepval-store")
}
