package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"whisperlite/internal/history"
	"whisperlite/internal/language"
	"whisperlite/internal/logging"
	"whisperlite/internal/output"
	"whisperlite/internal/runner"
	"whisperlite/internal/services"
	"whisperlite/internal/transcribe"
)

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	var (
		modelFlag    string
		languageFlag string
		deviceFlag   string
		computeFlag  string
		outputDir    string
		outputName   string
		beamSize     int
		numWorkers   int
		cpuThreads   int
		vadFilter    bool
		srt          bool
		vtt          bool
		timestamps   bool
	)

	cmd := &cobra.Command{
		Use:   "transcribe <audio-file>",
		Short: "Transcribe an audio file to text and subtitles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("model") {
				cfg.Model.Name = modelFlag
			}
			if flags.Changed("device") {
				cfg.Model.Device = deviceFlag
			}
			if flags.Changed("compute-type") {
				cfg.Model.ComputeType = computeFlag
			}
			if flags.Changed("beam-size") {
				cfg.Model.BeamSize = beamSize
			}
			if flags.Changed("num-workers") {
				cfg.Model.NumWorkers = numWorkers
			}
			if flags.Changed("cpu-threads") {
				cfg.Model.CPUThreads = cpuThreads
			}
			if flags.Changed("vad-filter") {
				cfg.Model.VADFilter = vadFilter
			}
			if flags.Changed("srt") {
				cfg.Outputs.SRT = srt
			}
			if flags.Changed("vtt") {
				cfg.Outputs.VTT = vtt
			}
			if flags.Changed("timestamps") {
				cfg.Outputs.Timestamps = timestamps
			}
			if flags.Changed("output-dir") {
				cfg.Paths.OutputDir = outputDir
			}

			lang := language.Normalize(languageFlag)
			if languageFlag != "" && !strings.EqualFold(languageFlag, "auto") && lang == "" {
				return services.Wrap(services.ErrValidation, "cli", "transcribe",
					fmt.Sprintf("unsupported language %q", languageFlag), nil)
			}

			out := cmd.OutOrStdout()
			errOut := cmd.ErrOrStderr()

			engine, warning, err := transcribe.NewEngine(transcribe.OptionsFromConfig(cfg.Model))
			if err != nil {
				return err
			}
			if warning != "" {
				fmt.Fprintln(errOut, "warning: "+warning)
			}

			var store *history.Store
			if store, err = history.Open(cfg.Paths.LogDir); err != nil {
				fmt.Fprintf(errOut, "warning: history journal unavailable: %v\n", err)
				store = nil
			} else {
				defer store.Close()
			}

			writer := output.NewWriter(cfg.Paths.FallbackDir, logging.NewNop())
			run := runner.New(engine, writer, store, logging.NewNop())

			job := runner.Job{
				AudioPath:      args[0],
				Language:       lang,
				BeamSize:       cfg.Model.BeamSize,
				VADFilter:      cfg.Model.VADFilter,
				EchoTimestamps: cfg.Outputs.Timestamps,
				Targets:        output.Targets{Text: true, SRT: cfg.Outputs.SRT, VTT: cfg.Outputs.VTT},
				OutputDir:      cfg.Paths.OutputDir,
				BaseName:       outputName,
				Model:          engine.Model(),
				Device:         engine.Device(),
				ComputeType:    engine.ComputeType(),
			}

			result := make(chan error, 1)
			events := runner.Events{
				Progress: func(message string) {
					fmt.Fprintln(out, message)
				},
				Cue: func(line string) {
					fmt.Fprintln(out, line)
				},
				Done: func(summary runner.Summary) {
					info := summary.Info
					fmt.Fprintf(out, "Detected language: %s (probability %.2f)\n",
						language.Display(info.Language), info.LanguageProbability)
					fmt.Fprintf(out, "Audio duration: %.1fs\n", info.Duration)
					if summary.Manifest.Fallback {
						fmt.Fprintf(errOut, "warning: output directory was not writable; wrote to %s instead\n",
							summary.Manifest.Dir)
					}
					fmt.Fprintln(out, "Wrote: "+strings.Join(summary.Manifest.Paths, ", "))
					result <- nil
				},
				Failed: func(err error) {
					result <- err
				},
			}

			if err := run.Start(cmd.Context(), job, events); err != nil {
				return err
			}
			return <-result
		},
	}

	cmd.Flags().StringVar(&modelFlag, "model", "", "Model name (tiny, base, small, medium, large-v3)")
	cmd.Flags().StringVarP(&languageFlag, "language", "l", "", "Spoken language (code or name; blank auto-detects)")
	cmd.Flags().StringVar(&deviceFlag, "device", "", "Inference device (auto, cpu, metal, cuda)")
	cmd.Flags().StringVar(&computeFlag, "compute-type", "", "Numeric precision (int8, float16, float32)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for transcript files")
	cmd.Flags().StringVar(&outputName, "output", "", "Base name for transcript files (default: audio file name)")
	cmd.Flags().IntVar(&beamSize, "beam-size", 0, "Beam search width")
	cmd.Flags().IntVar(&numWorkers, "num-workers", 0, "Parallel engine workers")
	cmd.Flags().IntVar(&cpuThreads, "cpu-threads", 0, "CPU threads for inference (0 = engine default)")
	cmd.Flags().BoolVar(&vadFilter, "vad-filter", true, "Filter silence with voice activity detection")
	cmd.Flags().BoolVar(&srt, "srt", true, "Write an SRT subtitle file")
	cmd.Flags().BoolVar(&vtt, "vtt", false, "Write a WebVTT subtitle file")
	cmd.Flags().BoolVar(&timestamps, "timestamps", false, "Echo each segment with its time range")

	return cmd
}
