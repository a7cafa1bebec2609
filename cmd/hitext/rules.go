package main

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/xonecas/hitext/internal/rules"
)

func (a *app) rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage named rule sets in the catalog",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "save NAME",
			Short: "Save the config file's [[rules]] as rule set NAME",
			Args:  cobra.ExactArgs(1),
			RunE:  a.runRulesSave,
		},
		&cobra.Command{
			Use:   "list",
			Short: "List saved rule sets",
			Args:  cobra.NoArgs,
			RunE:  a.runRulesList,
		},
		&cobra.Command{
			Use:   "show NAME",
			Short: "Print rule set NAME as TOML [[rules]] tables",
			Args:  cobra.ExactArgs(1),
			RunE:  a.runRulesShow,
		},
		&cobra.Command{
			Use:   "delete NAME",
			Short: "Delete rule set NAME",
			Args:  cobra.ExactArgs(1),
			RunE:  a.runRulesDelete,
		},
	)
	return cmd
}

func (a *app) runRulesSave(cmd *cobra.Command, args []string) error {
	if len(a.cfg.Rules) == 0 {
		return errors.New("no [[rules]] in config to save")
	}
	cat, err := a.openCatalog()
	if err != nil {
		return err
	}
	defer cat.Close()

	if err := cat.Save(cmd.Context(), args[0], a.cfg.Rules); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "saved %d rules as %q\n", len(a.cfg.Rules), args[0])
	return err
}

func (a *app) runRulesList(cmd *cobra.Command, _ []string) error {
	cat, err := a.openCatalog()
	if err != nil {
		return err
	}
	defer cat.Close()

	entries, err := cat.List(cmd.Context())
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tRULES\tUPDATED")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", e.Name, e.Rules, e.Updated.Format(time.DateTime))
	}
	return tw.Flush()
}

func (a *app) runRulesShow(cmd *cobra.Command, args []string) error {
	cat, err := a.openCatalog()
	if err != nil {
		return err
	}
	defer cat.Close()

	specs, err := cat.Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	doc := struct {
		Rules []rules.Spec `toml:"rules"`
	}{Rules: specs}
	return toml.NewEncoder(cmd.OutOrStdout()).Encode(doc)
}

func (a *app) runRulesDelete(cmd *cobra.Command, args []string) error {
	cat, err := a.openCatalog()
	if err != nil {
		return err
	}
	defer cat.Close()

	if err := cat.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "deleted %q\n", args[0])
	return err
}
