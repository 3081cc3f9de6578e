package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDirectoryCommand(ctx *commandContext) *cobra.Command {
	flags := &pipelineFlags{}
	var recursive bool

	cmd := &cobra.Command{
		Use:   "directory <input>",
		Short: "Generate subtitles for every media file in a directory",
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

			generated, err := proc.ProcessDirectory(cmd.Context(), args[0], flags.output, recursive)
			if err != nil {
				return err
			}
			for _, path := range generated {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Successfully processed %d files\n", len(generated))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Process subdirectories")
	return cmd
}
