package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"valet/sim"
)

const envPrefix = "VALET"

var cfgFile string

// rootCmd starts the game when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "valet",
	Short: "Top-down valet parking arcade game",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(0, "")
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	d := sim.DefaultSettings()
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/valet.yaml or ./valet.yaml)")
	rootCmd.PersistentFlags().String("logLevel", d.LogLevel,
		"log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("scoresDb", d.ScoresDB,
		"path of the high score database")

	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newSimCmd())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("valet")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	bindFlags(rootCmd, viper.GetViper())
	for _, cmd := range rootCmd.Commands() {
		bindFlags(cmd, viper.GetViper())
	}
}

// bindFlags makes every persistent flag a viper key so an explicit flag
// wins over the config file and the environment.
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" {
			return
		}
		if err := v.BindPFlag(f.Name, f); err != nil {
			fmt.Fprintf(os.Stderr, "Could not bind flag %s: %v\n", f.Name, err)
		}
	})
}

// loadSettings reads the merged configuration
func loadSettings() (sim.Settings, error) {
	return sim.LoadSettings(viper.GetViper())
}
