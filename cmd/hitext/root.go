package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/xonecas/hitext/internal/config"
	"github.com/xonecas/hitext/internal/presets"
	"github.com/xonecas/hitext/internal/rules"
	"github.com/xonecas/hitext/internal/store"
)

// app carries the state shared by every subcommand.
type app struct {
	cfgFile  string
	logLevel string
	cfg      *config.Config

	// per-command rule selection
	ruleset     string
	presetNames []string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "hitext",
		Short: "Rule-based text highlighting",
		Long: `hitext styles text with ordered regular-expression rules.

Rules come from the built-in presets (markdown, url), the [[rules]] tables of
the config file and named rule sets saved in the catalog.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "",
		"config file (default: ~/.config/hitext/config.toml if present)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "",
		"log level: debug, info, warn, error (overrides config)")

	root.AddCommand(
		a.renderCmd(),
		a.dumpCmd(),
		a.watchCmd(),
		a.rulesCmd(),
		a.presetsCmd(),
	)
	return root
}

// setup loads configuration and configures logging before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	path := a.cfgFile
	if path == "" {
		if dir, err := config.DataDir(); err == nil {
			candidate := filepath.Join(dir, "config.toml")
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
			}
		}
	}

	var err error
	if path != "" {
		a.cfg, err = config.Load(path)
	} else {
		a.cfg, err = config.LoadDefault()
	}
	if err != nil {
		return err
	}

	level := a.cfg.LogLevel
	if a.logLevel != "" {
		level = a.logLevel
	}
	if err := setupLogging(cmd.ErrOrStderr(), level); err != nil {
		return err
	}
	log.Debug().Str("config", path).Str("theme", a.cfg.Theme).Strs("presets", a.cfg.Presets).Msg("configuration loaded")
	return nil
}

// setupLogging points the global logger at w with a console format.
func setupLogging(w io.Writer, level string) error {
	lvl := zerolog.InfoLevel
	if level != "" {
		parsed, err := zerolog.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", level, err)
		}
		lvl = parsed
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
	return nil
}

// addRuleFlags registers the rule selection flags shared by render, dump and watch.
func (a *app) addRuleFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&a.ruleset, "ruleset", "r", "",
		"append a rule set from the catalog")
	cmd.Flags().StringSliceVarP(&a.presetNames, "preset", "p", nil,
		"presets to apply, in order (default: configured presets matching the file type)")
}

// ruleList assembles presets, config rules and the optional catalog rule set,
// in that order.
func (a *app) ruleList(ctx context.Context, cmd *cobra.Command, path string) ([]rules.Rule, error) {
	names := a.presetsFor(cmd, path)
	out, err := a.cfg.RuleListFor(names)
	if err != nil {
		return nil, err
	}

	if a.ruleset != "" {
		cat, err := a.openCatalog()
		if err != nil {
			return nil, err
		}
		defer cat.Close()
		extra, err := cat.Rules(ctx, a.ruleset)
		if err != nil {
			return nil, err
		}
		out = append(out, extra...)
	}

	log.Debug().Strs("presets", names).Int("rules", len(out)).Msg("rule list built")
	return out, nil
}

// presetsFor returns the --preset list if given. Otherwise it keeps the
// configured presets that suit the file type, or all of them for stdin.
func (a *app) presetsFor(cmd *cobra.Command, path string) []string {
	if cmd.Flags().Changed("preset") {
		return a.presetNames
	}
	if path == "" {
		return a.cfg.Presets
	}
	suited := presets.ForPath(path)
	var out []string
	for _, name := range a.cfg.Presets {
		if slices.Contains(suited, name) {
			out = append(out, name)
		}
	}
	return out
}

// openCatalog opens the rule-set catalog, creating its directory if needed.
func (a *app) openCatalog() (*store.Catalog, error) {
	path, err := a.cfg.Store.PathOrDefault()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, err
	}
	return store.Open(path)
}

// readInput reads the named file, or the command's stdin when path is empty.
func readInput(cmd *cobra.Command, path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
