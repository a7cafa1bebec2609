package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xonecas/hitext/internal/highlight"
	"github.com/xonecas/hitext/internal/render"
	"github.com/xonecas/hitext/internal/styled"
)

func (a *app) renderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [FILE]",
		Short: "Print FILE (or stdin) highlighted with ANSI escapes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.highlightInput(cmd, args)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), render.ANSI(st))
			return err
		},
	}
	a.addRuleFlags(cmd)
	return cmd
}

func (a *app) dumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump [FILE]",
		Short: "Print the styled runs of FILE (or stdin)",
		Long: `Print one line per styled run: its code point range, the quoted text and
its attributes. UTF-16 (u16) and grapheme (g) ranges follow when they differ
from the code point range.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.highlightInput(cmd, args)
			if err != nil {
				return err
			}
			return render.Dump(cmd.OutOrStdout(), st)
		},
	}
	a.addRuleFlags(cmd)
	return cmd
}

// highlightInput reads the optional FILE argument and runs the rule list over it.
func (a *app) highlightInput(cmd *cobra.Command, args []string) (*styled.Text, error) {
	var path string
	if len(args) > 0 {
		path = args[0]
	}
	text, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}
	rs, err := a.ruleList(cmd.Context(), cmd, path)
	if err != nil {
		return nil, err
	}
	return highlight.Highlight(text, rs, a.cfg.Base()), nil
}
