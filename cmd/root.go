package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/prepsmart/internal/config"
)

var (
	vip = config.New()
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "prepsmart",
	Short: "Disaster preparedness trainer",
	Long:  "PrepSmart — terminal app that teaches disaster preparedness through short modules, drills and quizzes.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd, vip)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(modulesCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves configuration from flags, environment and .env files.
func loadConfig(cmd *cobra.Command, v *viper.Viper) error {
	if err := config.LoadDotEnv(config.DotEnvPaths()...); err != nil {
		fmt.Fprintln(os.Stderr, "Ignoring .env:", err)
	}
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	c, err := config.Load(v)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = c
	return nil
}
