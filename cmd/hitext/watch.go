package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/xonecas/hitext/internal/config"
	"github.com/xonecas/hitext/internal/scheduler"
	"github.com/xonecas/hitext/internal/tui"
	"github.com/xonecas/hitext/internal/watch"
)

func (a *app) watchCmd() *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Preview FILE highlighted, refreshing whenever it is saved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWatch(cmd, args[0], workers)
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 2, "highlight passes allowed to run at once")
	a.addRuleFlags(cmd)
	return cmd
}

func (a *app) runWatch(cmd *cobra.Command, path string, workers int) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	rs, err := a.ruleList(cmd.Context(), cmd, path)
	if err != nil {
		return err
	}

	// The preview owns the terminal, so logs go to a file.
	logFile, err := redirectLogs()
	if err != nil {
		return err
	}
	defer logFile.Close()

	w, err := watch.New(path, 0)
	if err != nil {
		return err
	}
	changes, err := w.Start()
	if err != nil {
		return err
	}
	defer w.Stop() //nolint:errcheck // best-effort cleanup

	p := tea.NewProgram(tui.New(path, a.cfg.Palette()))
	sched := scheduler.New(rs, a.cfg.Base(), workers, func(r scheduler.Result) {
		p.Send(tui.ResultMsg(r))
	})

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	submit := func() {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Warn().Err(err).Str("file", path).Msg("read failed")
			p.Send(tui.ErrMsg(err))
			return
		}
		seq := sched.Submit(ctx, string(data))
		log.Debug().Uint64("seq", seq).Int("bytes", len(data)).Msg("highlight pass submitted")
	}

	go func() {
		submit()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					return
				}
				submit()
			}
		}
	}()

	_, err = p.Run()
	cancel()
	sched.Wait()
	if err != nil {
		return fmt.Errorf("running preview: %w", err)
	}
	return nil
}

// redirectLogs sends the global logger to hitext.log in the data directory.
func redirectLogs() (*os.File, error) {
	dir, err := config.EnsureDataDir()
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(filepath.Join(dir, "hitext.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: f, NoColor: true}).With().Timestamp().Logger()
	return f, nil
}
