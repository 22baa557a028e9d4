package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/demoreel/demoreel/internal/agent"
	"github.com/demoreel/demoreel/internal/config"
	"github.com/demoreel/demoreel/internal/orchestrator"
	"github.com/demoreel/demoreel/internal/recording"
)

var (
	cfgFile     string
	exportFmt   string
	quality     string
	recordMode  string
	windowTitle string
)

var rootCmd = &cobra.Command{
	Use:   "demoreel",
	Short: "Screen recording to polished-zoom export pipeline",
}

var exportCmd = &cobra.Command{
	Use:   "export [recording-id]",
	Short: "Render a recorded session into an mp4/gif/webm export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		logger, _ := zap.NewProduction()
		defer logger.Sync()

		o := orchestrator.New(cfg.Recording.OutputDir, cfg, logger)
		outputPath, err := o.Export(args[0], exportFmt, quality, func(p orchestrator.Progress) {
			fmt.Printf("\r%s: %.0f%%", p.Stage, p.Fraction*100)
			if p.Stage == "complete" || p.Stage == "error" {
				fmt.Println()
			}
		})
		if err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outputPath)
		return nil
	},
}

var recordCmd = &cobra.Command{
	Use:   "record [recording-id]",
	Short: "Capture a screen recording until interrupted",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		sess := agent.New(cfg.Recording)
		if err := sess.Start(args[0], agent.StartOpts{
			Mode:        recording.Mode(recordMode),
			WindowTitle: windowTitle,
		}); err != nil {
			return fmt.Errorf("starting recording: %w", err)
		}

		fmt.Println("recording... press Ctrl+C to stop")
		waitForInterrupt()

		dir, err := sess.Stop()
		if err != nil {
			return fmt.Errorf("stopping recording: %w", err)
		}
		fmt.Printf("wrote recording to %s\n", dir)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: built-in defaults)")

	exportCmd.Flags().StringVar(&exportFmt, "format", "mp4", "output format: mp4, gif, webm")
	exportCmd.Flags().StringVar(&quality, "quality", "high", "quality preset: low, medium, high, social")

	recordCmd.Flags().StringVar(&recordMode, "mode", "display", "capture mode: display, window, area")
	recordCmd.Flags().StringVar(&windowTitle, "window-title", "", "window title to track, for --mode window")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(recordCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
