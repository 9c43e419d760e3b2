// Command rawprobe is the llm-camera diagnostic CLI: it inspects
// iPhone ProRAW DNG directories and simulates feeding synthetic sensor
// data through the neural ISP model.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taku2365/llm-camera/internal/config"
	"github.com/taku2365/llm-camera/internal/inspect"
	"github.com/taku2365/llm-camera/internal/logging"
	"github.com/taku2365/llm-camera/internal/report"
	"github.com/taku2365/llm-camera/internal/simulate"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rawprobe",
		Short:         "Diagnostics for the llm-camera neural ISP pipeline",
		Version:       config.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newInspectCmd())
	root.AddCommand(newSimulateCmd())
	return root
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	logging.Init(false, logging.ParseLevel(cfg.LogLevel))
	return cfg, nil
}

func newInspectCmd() *cobra.Command {
	var exiftoolPath string

	cmd := &cobra.Command{
		Use:   "inspect <dir>",
		Short: "Analyze a directory of ProRAW DNG files and report compatibility",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if exiftoolPath != "" {
				cfg.Inspect.ExiftoolPath = exiftoolPath
			}

			ins := inspect.New(cfg.Inspect, report.NewConsole(cmd.OutOrStdout()))
			_, err = ins.Run(cmd.Context(), args[0])
			return err
		},
	}
	cmd.Flags().StringVar(&exiftoolPath, "exiftool", "", "exiftool command (default from config)")
	return cmd
}

func newSimulateCmd() *cobra.Command {
	var (
		modelPath string
		limit     int
		thumbs    bool
	)

	cmd := &cobra.Command{
		Use:   "simulate <dir>",
		Short: "Feed synthetic sensor data through the ONNX model as a smoke test",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if modelPath != "" {
				cfg.Simulate.ModelPath = modelPath
			}
			if cmd.Flags().Changed("limit") {
				cfg.Simulate.Limit = limit
			}
			if thumbs {
				cfg.Simulate.Thumbs = true
			}

			sim := simulate.New(cfg.Simulate, report.NewConsole(cmd.OutOrStdout()))
			_, err = sim.Run(args[0])
			return err
		},
	}
	cmd.Flags().StringVar(&modelPath, "model", "", "path to the ONNX model artifact")
	cmd.Flags().IntVar(&limit, "limit", 3, "max files to simulate (0 = all)")
	cmd.Flags().BoolVar(&thumbs, "thumbs", false, "write PNG thumbnails of synthetic previews")
	return cmd
}
