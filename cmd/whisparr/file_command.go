package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"whisparr/internal/config"
	"whisparr/internal/journal"
	"whisparr/internal/processor"
)

type pipelineFlags struct {
	output    string
	format    string
	model     string
	language  string
	device    string
	translate bool
	overwrite bool
}

func (f *pipelineFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output path")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "Subtitle format (srt or vtt)")
	cmd.Flags().StringVarP(&f.model, "model", "m", "", "Whisper model size (tiny, base, small, medium, large)")
	cmd.Flags().StringVarP(&f.language, "language", "l", "", "Source language code (e.g. en, es, fr)")
	cmd.Flags().StringVarP(&f.device, "device", "d", "", "Device to use (cpu or cuda)")
	cmd.Flags().BoolVar(&f.translate, "translate", false, "Translate segments with the configured LLM provider")
	cmd.Flags().BoolVar(&f.overwrite, "overwrite", false, "Overwrite existing subtitle files")
}

// apply folds the CLI overrides into a copy of the loaded configuration and
// re-validates it.
func (f *pipelineFlags) apply(cfg *config.Config) (*config.Config, error) {
	out := *cfg
	if f.model != "" {
		out.Whisper.ModelSize = f.model
	}
	if f.language != "" {
		out.Whisper.Language = f.language
	}
	if f.device != "" {
		out.Whisper.Device = f.device
	}
	if f.format != "" {
		out.Subtitle.Format = f.format
	}
	if f.translate {
		out.Translation.Enabled = true
	}
	if f.overwrite {
		out.Processing.OverwriteExisting = true
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return &out, nil
}

// buildProcessor assembles the pipeline for a command run: journal when
// enabled, progress bars when interactive.
func buildProcessor(ctx *commandContext, cfg *config.Config) (*processor.Processor, func(), error) {
	logger, err := ctx.ensureLogger()
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {}
	opts := []processor.Option{}
	if cfg.Journal.Enabled {
		store, err := journal.Open(cfg.Journal.Path)
		if err != nil {
			return nil, nil, err
		}
		cleanup = func() { _ = store.Close() }
		opts = append(opts, processor.WithJournal(store))
	}
	if fn := newProgressFunc(); fn != nil {
		opts = append(opts, processor.WithProgress(fn))
	}

	proc, err := processor.New(cfg, logger, opts...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return proc, cleanup, nil
}

func newFileCommand(ctx *commandContext) *cobra.Command {
	flags := &pipelineFlags{}

	cmd := &cobra.Command{
		Use:   "file <input>",
		Short: "Generate subtitles for a single media file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg, err = flags.apply(cfg)
			if err != nil {
				return err
			}
			proc, cleanup, err := buildProcessor(ctx, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			path, err := proc.ProcessFile(cmd.Context(), args[0], flags.output, flags.format)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Subtitle generated: %s\n", path)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
