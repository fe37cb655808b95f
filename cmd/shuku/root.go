package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/welpo/shuku/internal/config"
	"github.com/welpo/shuku/internal/logging"
	"github.com/welpo/shuku/internal/pipeline"
)

func newRootCommand() *cobra.Command {
	var (
		configFlag    string
		outputDir     string
		subtitlesPath string
		audioTrackID  int
		subTrackID    int
		subDelayMS    int
		logLevel      string
		logFile       string
		noColor       bool
		jobs          int
	)

	rootCmd := &cobra.Command{
		Use:   "shuku [flags] <media files or directories>",
		Short: "Condense media into dialogue-only audio, video, and subtitles",
		Long: `shuku condenses media files by keeping only the moments with dialogue,
guided by subtitle timing. It produces condensed audio, video, and
subtitle files for language study.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}

			cfg, _, _, err := config.Load(configFlag)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if logLevel == "" {
				logLevel = cfg.LogLevel
			}
			log, _, err := logging.New(logging.Options{
				Level:    logLevel,
				FilePath: logFile,
				NoColor:  noColor,
			})
			if err != nil {
				return fmt.Errorf("set up logging: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			p, err := pipeline.New(pipeline.Options{
				Config:          cfg,
				Logger:          log,
				OutputDirectory: outputDir,
				SubtitlesPath:   subtitlesPath,
				AudioTrackID:    audioTrackID,
				SubtitleTrackID: subTrackID,
				SubtitleDelay:   float64(subDelayMS) / 1000,
				Ask:             askChoice,
				ChooseTrack:     chooseTrack,
				Version:         version,
			})
			if err != nil {
				return err
			}

			if err := p.Preflight(); err != nil {
				return err
			}

			inputs := pipeline.Discover(args, log)
			if len(inputs) == 0 {
				return fmt.Errorf("no media files found in the given paths")
			}
			log.Info("starting run", "files", len(inputs))

			summary := p.Batch(ctx, inputs, jobs)
			log.Info("run finished",
				"succeeded", summary.Succeeded,
				"failed", summary.Failed)
			if code := summary.ExitCode(); code != 0 {
				return &exitError{code: code}
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "",
		`Configuration file path ("none" skips loading)`)
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "",
		"Directory for condensed output files")
	rootCmd.Flags().StringVarP(&subtitlesPath, "subtitles", "s", "",
		"Subtitle file or directory to use instead of searching")
	rootCmd.Flags().IntVar(&audioTrackID, "audio-track-id", pipeline.NoTrack,
		"Audio stream index to condense")
	rootCmd.Flags().IntVar(&subTrackID, "sub-track-id", pipeline.NoTrack,
		"Embedded subtitle stream index to use")
	rootCmd.Flags().IntVar(&subDelayMS, "sub-delay", 0,
		"Shift subtitle timing by this many milliseconds")
	rootCmd.Flags().StringVarP(&logLevel, "loglevel", "v", "",
		"Log level: debug, info, warning, error")
	rootCmd.Flags().StringVar(&logFile, "log-file", "",
		"Append JSON logs to this file")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false,
		"Disable colored console output")
	rootCmd.Flags().IntVarP(&jobs, "jobs", "j", 1,
		"Number of files to process concurrently")
	rootCmd.SetVersionTemplate("shuku {{.Version}}\n")

	rootCmd.AddCommand(newConfigCommand(&configFlag))

	return rootCmd
}
