package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"sentrim/internal/pairing"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Show recordings discovered in the input directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			pairs, err := pairing.Discover(cfg.Paths.InputDir, cfg.Pairing.OriginalMarker, cfg.Pairing.DiarizedMarker)
			if err != nil {
				return err
			}
			if len(pairs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recordings found")
				return nil
			}

			rows := make([][]string, 0, len(pairs))
			for _, pair := range pairs {
				rows = append(rows, []string{
					pair.Base,
					baseName(pair.OriginalPath),
					baseName(pair.DiarizedPath),
					yesNo(pair.Complete()),
				})
			}

			table := renderTable(
				[]string{"Base", "Original", "Diarized", "Paired"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			)
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}
}

func baseName(path string) string {
	if path == "" {
		return "-"
	}
	return filepath.Base(path)
}
