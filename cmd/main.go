package main

import (
	"fmt"
	"os"

	"github.com/Abraxas-365/hiresight/internal/config"
	"github.com/Abraxas-365/hiresight/pkg/logx"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "hiresight",
	Short: "Recruitment workspace API with candidate scoring",
	Long: `hiresight serves the recruitment API (candidates, jobs, notes, tags,
matching and analytics), runs the resume enrichment workers, applies database
migrations and scores candidate/job pairs from the command line.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration and applies the logging settings
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logx.SetLevel(logx.ParseLevel(cfg.Log.Level))
	logx.SetFormat(cfg.Log.Format)
	if cfg.UsesDevSecret() {
		logx.Warn("JWT_SECRET is not set, using the development secret")
	}
	return cfg, nil
}
