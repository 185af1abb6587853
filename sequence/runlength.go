package sequence

import (
	"fmt"
	"iter"
	"slices"

	"github.com/fogfish/opts"
)

// Run is one entry of a run-length encoded sequence: an event and the number
// of consecutive grid steps it covers.
type Run[E comparable] struct {
	Event  E   `json:"event"`
	Length int `json:"length"`
}

// Policy holds the encoding knobs fixed when a RunLength sequence is built.
type Policy struct {
	padOnly bool
}

// PadRunsOnly restricts compression to the pad event. Every non-pad event
// keeps a run of exactly one step, so positional structure survives encoding
// and only stretches of padding collapse.
func PadRunsOnly() opts.Option[Policy] {
	return opts.Type[Policy](func(p *Policy) error {
		p.padOnly = true
		return nil
	})
}

// RunLength is the run-length encoded form of an Events stream. Instead of
// one entry per step it stores runs, each covering up to the maximum run
// length fixed at construction. The sequence spans
// [StartStep, StartStep+NumSteps) on the same absolute grid as its source.
//
// The runs are canonical after Encode and after every SetLength: adjacent
// runs only share an event when the earlier run sits at the maximum run
// length. Append deliberately skips canonicalization so callers can stage raw
// runs; the next resize folds them back into canonical form.
type RunLength[E comparable] struct {
	Timebase
	maxRunLength int
	padOnly      bool
	pad          E
	runs         []Run[E]
}

var _ EventSequence[Run[int]] = (*RunLength[int])(nil)

// Encode compresses base into runs bounded by maxRunLength. The result
// copies the source's start step, grid resolution, and pad event, so decoding
// restores the source exactly. The source is read, never mutated. A
// maxRunLength below one fails with ErrPrecondition.
func Encode[E comparable](base *Events[E], maxRunLength int, options ...opts.Option[Policy]) (*RunLength[E], error) {
	if maxRunLength < 1 {
		return nil, fmt.Errorf("%w: maximum run length %d, need at least 1", ErrPrecondition, maxRunLength)
	}

	var policy Policy
	if err := opts.Apply(&policy, options); err != nil {
		return nil, err
	}

	s := &RunLength[E]{
		Timebase:     base.Timebase,
		maxRunLength: maxRunLength,
		padOnly:      policy.padOnly,
		pad:          base.pad,
	}

	var (
		current E
		length  int
	)
	for _, event := range base.events {
		if length > 0 && (event != current || length == maxRunLength || (s.padOnly && event != s.pad)) {
			s.runs = append(s.runs, Run[E]{Event: current, Length: length})
			length = 0
		}
		current = event
		length++
	}
	if length > 0 {
		s.runs = append(s.runs, Run[E]{Event: current, Length: length})
	}
	return s, nil
}

// EndStep is the absolute grid step one past the last covered step.
func (s *RunLength[E]) EndStep() int { return s.startStep + s.NumSteps() }

// NumSteps is the total number of grid steps covered by all runs.
func (s *RunLength[E]) NumSteps() int {
	steps := 0
	for _, run := range s.runs {
		steps += run.Length
	}
	return steps
}

// Len is the number of runs, not the number of covered steps.
func (s *RunLength[E]) Len() int { return len(s.runs) }

// At returns the run at index i. It panics when i is out of range, matching
// slice indexing.
func (s *RunLength[E]) At(i int) Run[E] { return s.runs[i] }

// All iterates the runs in order.
func (s *RunLength[E]) All() iter.Seq[Run[E]] { return slices.Values(s.runs) }

// Runs returns a copy of the underlying run slice.
func (s *RunLength[E]) Runs() []Run[E] { return slices.Clone(s.runs) }

// MaxRunLength is the upper bound on the length of a single run.
func (s *RunLength[E]) MaxRunLength() int { return s.maxRunLength }

// PadOnly reports whether only pad-event runs are compressed.
func (s *RunLength[E]) PadOnly() bool { return s.padOnly }

// PadEvent is the reserved fill event inherited from the encoded source.
func (s *RunLength[E]) PadEvent() E { return s.pad }

// Append adds run at the tail, advancing the end step by the run's length.
// The run is stored verbatim: no merging with the previous run and no
// canonicalization happen until the next resize. A length outside
// [1, MaxRunLength] fails with ErrInvalidArgument and leaves the sequence
// untouched.
func (s *RunLength[E]) Append(run Run[E]) error {
	if run.Length < 1 || run.Length > s.maxRunLength {
		return fmt.Errorf("%w: run length %d outside [1, %d]", ErrInvalidArgument, run.Length, s.maxRunLength)
	}
	s.runs = append(s.runs, run)
	return nil
}

// SetLength resizes the sequence to cover exactly steps grid steps. Growth
// adds pad runs on the chosen side, each capped at the maximum run length;
// shrinking consumes runs from that side, truncating a partially consumed
// run in place. A Left resize moves the start step so surviving steps keep
// their absolute positions. The runs are re-standardized afterwards, whether
// or not the length changed. Negative steps fail with ErrInvalidArgument and
// leave the sequence untouched.
func (s *RunLength[E]) SetLength(steps int, side Side) error {
	if steps < 0 {
		return fmt.Errorf("%w: sequence length %d is negative", ErrInvalidArgument, steps)
	}

	total := s.NumSteps()
	switch {
	case steps > total:
		padding := s.padding(steps - total)
		if side == Left {
			s.startStep -= steps - total
			s.runs = slices.Insert(s.runs, 0, padding...)
		} else {
			s.runs = append(s.runs, padding...)
		}
	case steps < total:
		if side == Left {
			s.startStep += total - steps
			s.trimLeft(total - steps)
		} else {
			s.trimRight(total - steps)
		}
	}

	s.standardize()
	return nil
}

// padding returns pad runs covering steps grid steps, each capped at the
// maximum run length.
func (s *RunLength[E]) padding(steps int) []Run[E] {
	runs := make([]Run[E], 0, (steps+s.maxRunLength-1)/s.maxRunLength)
	for steps > 0 {
		length := min(steps, s.maxRunLength)
		runs = append(runs, Run[E]{Event: s.pad, Length: length})
		steps -= length
	}
	return runs
}

func (s *RunLength[E]) trimLeft(steps int) {
	for steps > 0 {
		if s.runs[0].Length > steps {
			s.runs[0].Length -= steps
			return
		}
		steps -= s.runs[0].Length
		s.runs = slices.Delete(s.runs, 0, 1)
	}
}

func (s *RunLength[E]) trimRight(steps int) {
	for steps > 0 {
		last := len(s.runs) - 1
		if s.runs[last].Length > steps {
			s.runs[last].Length -= steps
			return
		}
		steps -= s.runs[last].Length
		s.runs = s.runs[:last]
	}
}

// standardize rebuilds the run list in canonical form: consecutive runs of
// one event are pooled and re-emitted in maximal chunks, so no two adjacent
// runs share an event unless the earlier one carries the maximum run length.
// In pad-only mode non-pad runs pass through untouched and only pad runs are
// pooled.
func (s *RunLength[E]) standardize() {
	runs := make([]Run[E], 0, len(s.runs))

	var (
		current E
		pooled  int
	)
	flush := func() {
		if pooled > 0 {
			runs = append(runs, Run[E]{Event: current, Length: pooled})
			pooled = 0
		}
	}

	for _, run := range s.runs {
		if s.padOnly && run.Event != s.pad {
			flush()
			runs = append(runs, run)
			continue
		}
		if run.Event != current {
			flush()
			current = run.Event
		}
		pooled += run.Length
		for pooled >= s.maxRunLength {
			runs = append(runs, Run[E]{Event: current, Length: s.maxRunLength})
			pooled -= s.maxRunLength
		}
	}
	flush()

	s.runs = runs
}

// Decode expands the runs into target, appending each run's event once per
// covered step. Afterwards target holds the exact event stream the runs
// describe and its start step and grid resolution are aligned with the
// codec's, so a sequence that was encoded and decoded compares Equal to the
// original. The target must be empty; a non-empty target fails with
// ErrPrecondition and is left untouched.
func (s *RunLength[E]) Decode(target *Events[E]) error {
	if target.Len() > 0 {
		return fmt.Errorf("%w: decode target holds %d events, want an empty sequence", ErrPrecondition, target.Len())
	}

	target.Timebase = s.Timebase
	target.events = slices.Grow(target.events, s.NumSteps())
	for _, run := range s.runs {
		for range run.Length {
			target.events = append(target.events, run.Event)
		}
	}
	return nil
}

// Clone returns an independent copy. Mutating either sequence afterwards
// leaves the other untouched.
func (s *RunLength[E]) Clone() *RunLength[E] {
	clone := *s
	clone.runs = slices.Clone(s.runs)
	return &clone
}

// Equal reports whether both sequences hold the same runs at the same grid
// positions and resolution, under the same maximum run length, pad event,
// and pad-only policy.
func (s *RunLength[E]) Equal(o *RunLength[E]) bool {
	return s.startStep == o.startStep &&
		s.stepsPerBar == o.stepsPerBar &&
		s.stepsPerQuarter == o.stepsPerQuarter &&
		s.maxRunLength == o.maxRunLength &&
		s.padOnly == o.padOnly &&
		s.pad == o.pad &&
		slices.Equal(s.runs, o.runs)
}
