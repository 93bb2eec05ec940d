package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"mathsolver/internal/config"
)

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:           "mathsolver",
		Short:         "Automated math problem solver",
		Long:          "Watches a GitHub repository folder for math problem files, solves them, publishes solutions back to the repository, and sends email notifications.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file (default config.yaml)")

	root.AddCommand(
		newStartCmd(&cfgFile),
		newWebCmd(&cfgFile),
		newTriggerCmd(&cfgFile),
		newStatusCmd(&cfgFile),
		newTestCmd(&cfgFile),
		newReportCmd(&cfgFile),
		newTokenCmd(&cfgFile),
	)

	return root
}

// loadConfig reads .env (when present) and the config file. The config path
// comes from --config, then MATHSOLVER_CONFIG, then ./config.yaml.
func loadConfig(cfgFile string) (*config.Config, error) {
	_ = godotenv.Load()

	path := cfgFile
	if path == "" {
		path = os.Getenv("MATHSOLVER_CONFIG")
	}
	if path == "" {
		path = "config.yaml"
	}
	return config.Load(path)
}
