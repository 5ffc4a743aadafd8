package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"alkoteka/parser/internal/config"
	"alkoteka/parser/internal/container"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	var (
		configPath string
		outputPath string
		logLevel   string
	)

	rootCmd := &cobra.Command{
		Use:           "alkoteka-parser",
		Short:         "Collects alkoteka.com catalog listings into a JSON file.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), configPath, outputPath, logLevel)
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&outputPath, "output", "", "Output file, overrides output.path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level, overrides log.level")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Fatalf("Application exited with error: %v", err)
	}
}

func run(ctx context.Context, configPath, outputPath, logLevel string) error {
	log.Info("Starting alkoteka parser...")

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if outputPath != "" {
		cfg.Output.Path = outputPath
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	log.Info("Configuration loaded successfully")

	app, err := container.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Run(ctx); err != nil {
		return err
	}

	log.Info("Application finished successfully")
	return nil
}
