// Package scheduler runs highlighting off the caller's goroutine. Passes are
// numbered on submission and only a pass newer than everything delivered so
// far reaches the consumer, so a slow stale pass never overwrites a fresh one.
package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/xonecas/hitext/internal/highlight"
	"github.com/xonecas/hitext/internal/rules"
	"github.com/xonecas/hitext/internal/styled"
)

// Result is one finished pass.
type Result struct {
	Seq     uint64
	Text    *styled.Text
	Elapsed time.Duration
}

// Scheduler highlights submitted texts with a fixed rule list.
type Scheduler struct {
	rules   []rules.Rule
	base    highlight.Base
	sem     *semaphore.Weighted
	deliver func(Result)

	seq atomic.Uint64
	wg  sync.WaitGroup

	mu        sync.Mutex
	delivered uint64
	latest    Result
}

// New returns a scheduler running at most workers passes at once. deliver is
// called for each accepted result, in increasing Seq order, and must not call
// back into the scheduler. A nil deliver only records Latest.
func New(rs []rules.Rule, base highlight.Base, workers int, deliver func(Result)) *Scheduler {
	if workers < 1 {
		workers = 1
	}
	return &Scheduler{
		rules:   append([]rules.Rule(nil), rs...),
		base:    base,
		sem:     semaphore.NewWeighted(int64(workers)),
		deliver: deliver,
	}
}

// Submit queues a pass over text and returns its sequence number. The pass
// is dropped if ctx ends first or a newer submission arrives before it
// starts.
func (s *Scheduler) Submit(ctx context.Context, text string) uint64 {
	seq := s.seq.Add(1)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(ctx, seq, text)
	}()
	return seq
}

func (s *Scheduler) run(ctx context.Context, seq uint64, text string) {
	if ctx.Err() != nil {
		return
	}
	if err := s.sem.Acquire(ctx, 1); err != nil {
		log.Debug().Uint64("seq", seq).Err(err).Msg("highlight pass cancelled")
		return
	}
	defer s.sem.Release(1)

	if s.seq.Load() != seq {
		log.Debug().Uint64("seq", seq).Msg("highlight pass superseded")
		return
	}

	start := time.Now()
	st := highlight.Highlight(text, s.rules, s.base)
	if ctx.Err() != nil {
		return
	}
	s.publish(Result{Seq: seq, Text: st, Elapsed: time.Since(start)})
}

func (s *Scheduler) publish(r Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.Seq <= s.delivered {
		log.Debug().Uint64("seq", r.Seq).Uint64("delivered", s.delivered).Msg("stale highlight result dropped")
		return
	}
	s.delivered = r.Seq
	s.latest = r
	log.Debug().Uint64("seq", r.Seq).Dur("elapsed", r.Elapsed).Int("runs", len(r.Text.Runs())).Msg("highlight pass done")
	if s.deliver != nil {
		s.deliver(r)
	}
}

// Latest returns the most recent delivered result.
func (s *Scheduler) Latest() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest, s.delivered > 0
}

// Wait blocks until every submitted pass has finished or been dropped.
func (s *Scheduler) Wait() { s.wg.Wait() }
