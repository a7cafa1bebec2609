package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/xonecas/hitext/internal/presets"
)

func (a *app) presetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the built-in presets (* marks those enabled in config)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range presets.Names() {
				mark := " "
				if slices.Contains(a.cfg.Presets, name) {
					mark = "*"
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", mark, name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
