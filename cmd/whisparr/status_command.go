package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"whisparr/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the environment whisparr depends on",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			results := preflight.Run(cfg)
			headers := []string{"Check", "Status", "Detail"}
			rows := make([][]string, 0, len(results))
			failed := 0
			for _, result := range results {
				status := "ok"
				if !result.Passed {
					status = "FAIL"
					failed++
				}
				rows = append(rows, []string{result.Name, status, result.Detail})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config: %s\n", ctx.cfgPath)
			fmt.Fprintln(cmd.OutOrStdout(), renderRows(headers, rows, nil))
			if failed > 0 {
				return fmt.Errorf("%d preflight check(s) failed", failed)
			}
			return nil
		},
	}
}
