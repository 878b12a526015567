package core

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"

	"invconv/internal/types"
)

type scheduledOperation struct {
	phase types.Phase
	name  string
	run   func(ctx context.Context) error
}

// Scheduler holds the finalize work registered while a mapping file is
// parsed. RunAll drains it once, phase by phase, in registration order.
type Scheduler struct {
	ops     []scheduledOperation
	running bool
	current types.Phase
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Add registers fn to run in phase. While RunAll is draining, work may only
// be added to a later phase than the one executing.
func (s *Scheduler) Add(phase types.Phase, name string, fn func(ctx context.Context) error) error {
	if !isKnownPhase(phase) {
		return errInvalidPriority(phase)
	}
	if s.running && phase <= s.current {
		return errInvalidPriority(phase)
	}
	s.ops = append(s.ops, scheduledOperation{phase: phase, name: name, run: fn})
	return nil
}

// Len reports how many operations are waiting.
func (s *Scheduler) Len() int {
	return len(s.ops)
}

// Count reports how many operations are waiting in phase.
func (s *Scheduler) Count(phase types.Phase) int {
	count := 0
	for _, op := range s.ops {
		if op.phase == phase {
			count++
		}
	}
	return count
}

// RunAll runs and discards every waiting operation. The first error stops
// the run; the remaining operations are dropped.
func (s *Scheduler) RunAll(ctx context.Context) error {
	s.running = true
	defer func() {
		s.running = false
	}()
	for len(s.ops) > 0 {
		sort.SliceStable(s.ops, func(i, j int) bool {
			return s.ops[i].phase < s.ops[j].phase
		})
		op := s.ops[0]
		s.ops = s.ops[1:]
		s.current = op.phase
		log.Ctx(ctx).Debug().Str("phase", op.phase.String()).Str("operation", op.name).Msg("running scheduled operation")
		if err := op.run(ctx); err != nil {
			s.ops = nil
			return err
		}
	}
	return nil
}

func isKnownPhase(phase types.Phase) bool {
	for _, known := range types.Phases {
		if phase == known {
			return true
		}
	}
	return false
}
