package ostinato

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fogfish/opts"
	"github.com/go-openapi/strfmt"

	"github.com/stavekit/ostinato/pkg/slogx"
	"github.com/stavekit/ostinato/pkg/uuidx"
	"github.com/stavekit/ostinato/sequence"
)

// Defaults for the generation loop.
const (
	DefaultStepsPerTurn = sequence.DefaultStepsPerBar
	DefaultMaxTurns     = 64
)

var (
	// ErrNoProgress reports a generator turn that returned without adding a
	// single event.
	ErrNoProgress = errors.New("generator made no progress")

	// ErrTurnBudget reports a run that exhausted its turn budget before the
	// sequence reached the requested length.
	ErrTurnBudget = errors.New("turn budget exhausted")
)

// Generator produces events. Generate receives the sequence so far and the
// total number of events wanted after the turn; it returns the extended
// sequence, which may be the input mutated in place or a replacement. The
// loop treats the returned sequence as the new state, so implementations
// must not hold on to it across turns.
type Generator[E comparable] interface {
	Generate(ctx context.Context, seq *sequence.Events[E], target int) (*sequence.Events[E], error)
}

// GeneratorFunc adapts a plain function to the Generator interface.
type GeneratorFunc[E comparable] func(ctx context.Context, seq *sequence.Events[E], target int) (*sequence.Events[E], error)

func (f GeneratorFunc[E]) Generate(ctx context.Context, seq *sequence.Events[E], target int) (*sequence.Events[E], error) {
	return f(ctx, seq, target)
}

// Request carries the tunables of one generation run.
type Request struct {
	stepsPerTurn int
	maxTurns     int
	hook         Hook
}

// Options accepted by Generate.
var (
	// StepsPerTurn bounds how many new steps are requested from the
	// generator per turn.
	StepsPerTurn = opts.ForName[Request, int]("stepsPerTurn")
	// MaxTurns bounds how many generator turns a run may take before it
	// fails with ErrTurnBudget.
	MaxTurns = opts.ForName[Request, int]("maxTurns")
	// WithHook registers an observer for the run.
	WithHook = opts.ForName[Request, Hook]("hook")
)

// Generate drives gen until seq covers exactly totalSteps steps. The primer
// sequence is consumed: it is extended turn by turn and trimmed to the exact
// length at the end, so callers who need the primer afterwards should Clone
// it first. An empty primer is padded with up to one turn's worth of pad
// events before the first turn. Generate returns the finished sequence, or
// the first error from the generator, the turn budget, or a cancelled
// context.
func Generate[E comparable](ctx context.Context, gen Generator[E], seq *sequence.Events[E], totalSteps int, options ...opts.Option[Request]) (*sequence.Events[E], error) {
	req := Request{
		stepsPerTurn: DefaultStepsPerTurn,
		maxTurns:     DefaultMaxTurns,
		hook:         NoopHook{},
	}
	if err := opts.Apply(&req, options); err != nil {
		return nil, err
	}

	switch {
	case gen == nil:
		return nil, fmt.Errorf("%w: nil generator", sequence.ErrInvalidArgument)
	case seq == nil:
		return nil, fmt.Errorf("%w: nil primer sequence", sequence.ErrInvalidArgument)
	case totalSteps < 0:
		return nil, fmt.Errorf("%w: total steps %d is negative", sequence.ErrInvalidArgument, totalSteps)
	case req.stepsPerTurn < 1:
		return nil, fmt.Errorf("%w: steps per turn %d, need at least 1", sequence.ErrInvalidArgument, req.stepsPerTurn)
	case req.maxTurns < 1:
		return nil, fmt.Errorf("%w: turn budget %d, need at least 1", sequence.ErrInvalidArgument, req.maxTurns)
	}

	runID := uuidx.New()
	log := slog.With(slogx.LoggerName("ostinato"), slogx.Stringer("run_id", runID))

	// An empty primer starts from silence.
	if seq.Len() == 0 && totalSteps > 0 {
		if err := seq.SetLength(min(req.stepsPerTurn, totalSteps), sequence.Right); err != nil {
			return nil, err
		}
	}

	turn := 0
	for seq.Len() < totalSteps {
		if err := ctx.Err(); err != nil {
			req.hook.OnError(ctx, err)
			return nil, err
		}
		if turn == req.maxTurns {
			err := fmt.Errorf("%w: %d turns spent, %d of %d steps generated",
				ErrTurnBudget, turn, seq.Len(), totalSteps)
			req.hook.OnError(ctx, err)
			return nil, err
		}
		turn++

		target := min(seq.Len()+req.stepsPerTurn, totalSteps)
		log.InfoContext(ctx, "requesting events",
			slog.Int("turn", turn), slog.Int("have", seq.Len()), slog.Int("want", target))

		before := seq.Len()
		next, err := gen.Generate(ctx, seq, target)
		if err != nil {
			err = fmt.Errorf("turn %d: %w", turn, err)
			req.hook.OnError(ctx, err)
			return nil, err
		}
		if next == nil || next.Len() <= before {
			err := fmt.Errorf("%w: turn %d", ErrNoProgress, turn)
			req.hook.OnError(ctx, err)
			return nil, err
		}
		seq = next

		req.hook.OnTurn(ctx, Progress{
			RunID:     runID,
			Turn:      turn,
			Generated: seq.Len() - before,
			Remaining: max(totalSteps-seq.Len(), 0),
			Timestamp: strfmt.DateTime(time.Now()),
		})
	}

	// Trim overshoot so the result covers the requested span exactly.
	if err := seq.SetLength(totalSteps, sequence.Right); err != nil {
		return nil, err
	}

	req.hook.OnResult(ctx, Result{
		RunID:     runID,
		Turns:     turn,
		Steps:     totalSteps,
		Timestamp: strfmt.DateTime(time.Now()),
	})
	log.InfoContext(ctx, "run complete", slog.Int("turns", turn), slog.Int("steps", totalSteps))
	return seq, nil
}
