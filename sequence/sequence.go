package sequence

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/fogfish/opts"
)

// Default resolution of the quantized step grid. A sequence built without
// options places sixteen steps in a bar and four in a quarter note.
const (
	DefaultStepsPerBar     = 16
	DefaultStepsPerQuarter = 4

	// DefaultMaxRunLength caps runs at one bar when the caller of Encode has
	// no better bound at hand.
	DefaultMaxRunLength = DefaultStepsPerBar
)

var (
	// ErrInvalidArgument reports a caller-supplied value that no sequence
	// state could make acceptable, such as a negative length or a run whose
	// length falls outside the configured bounds.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrPrecondition reports an operation invoked against state it cannot
	// work with, such as decoding into a non-empty target.
	ErrPrecondition = errors.New("precondition violated")
)

// Side selects which end of a sequence SetLength grows or shrinks.
type Side uint8

const (
	// Right resizes at the tail: padding appends, shrinking truncates.
	Right Side = iota
	// Left resizes at the head and shifts the start step so that untouched
	// events keep their absolute positions.
	Left
)

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// Timebase carries the positional metadata every sequence variant shares:
// where the sequence starts on the absolute step grid and how fine that grid
// is. It is embedded by the containers and configured through the package
// options.
type Timebase struct {
	startStep       int
	stepsPerBar     int
	stepsPerQuarter int
}

// Options accepted by New, FromEvents, and Encode.
var (
	// StartStep anchors the first event at an absolute step offset. The
	// default anchor is step zero.
	StartStep = opts.ForName[Timebase, int]("startStep")
	// StepsPerBar sets how many grid steps make up one bar.
	StepsPerBar = opts.ForName[Timebase, int]("stepsPerBar")
	// StepsPerQuarter sets how many grid steps make up one quarter note.
	StepsPerQuarter = opts.ForName[Timebase, int]("stepsPerQuarter")
)

func defaultTimebase() Timebase {
	return Timebase{
		stepsPerBar:     DefaultStepsPerBar,
		stepsPerQuarter: DefaultStepsPerQuarter,
	}
}

// StartStep is the absolute grid step occupied by the first event.
func (t Timebase) StartStep() int { return t.startStep }

// StepsPerBar is the number of grid steps in one bar.
func (t Timebase) StepsPerBar() int { return t.stepsPerBar }

// StepsPerQuarter is the number of grid steps in one quarter note.
func (t Timebase) StepsPerQuarter() int { return t.stepsPerQuarter }

// EventSequence is the capability set shared by the sequence containers: a
// half-open span [StartStep, EndStep) on the step grid, indexed access,
// iteration, appending, and resizing from either end. Events satisfies it
// with T = E, RunLength with T = Run[E].
type EventSequence[T any] interface {
	StartStep() int
	EndStep() int
	StepsPerQuarter() int
	Len() int
	At(i int) T
	All() iter.Seq[T]
	Append(T) error
	SetLength(steps int, side Side) error
}

var (
	_ EventSequence[int]    = (*Events[int])(nil)
	_ EventSequence[string] = (*Events[string])(nil)
)

// Events is a dense stream of quantized events. Every event occupies exactly
// one grid step, so the stream spans the half-open step range
// [StartStep, StartStep+Len). The zero value is not usable; construct through
// New or FromEvents.
type Events[E comparable] struct {
	Timebase
	pad    E
	events []E
}

// New returns an empty sequence that uses pad as fill material whenever the
// sequence grows.
func New[E comparable](pad E, options ...opts.Option[Timebase]) *Events[E] {
	tb := defaultTimebase()
	if err := opts.Apply(&tb, options); err != nil {
		panic(err)
	}

	return &Events[E]{
		Timebase: tb,
		pad:      pad,
	}
}

// FromEvents returns a sequence primed with a copy of events. The input slice
// stays owned by the caller.
func FromEvents[E comparable](pad E, events []E, options ...opts.Option[Timebase]) *Events[E] {
	s := New[E](pad, options...)
	s.events = slices.Clone(events)
	return s
}

// EndStep is the absolute grid step one past the last event.
func (s *Events[E]) EndStep() int { return s.startStep + len(s.events) }

// Len is the number of events, which equals the number of occupied steps.
func (s *Events[E]) Len() int { return len(s.events) }

// At returns the event at index i. It panics when i is out of range, matching
// slice indexing.
func (s *Events[E]) At(i int) E { return s.events[i] }

// All iterates the events in order.
func (s *Events[E]) All() iter.Seq[E] { return slices.Values(s.events) }

// Events returns a copy of the underlying event slice.
func (s *Events[E]) Events() []E { return slices.Clone(s.events) }

// PadEvent is the reserved fill event for this sequence.
func (s *Events[E]) PadEvent() E { return s.pad }

// Append adds event at the tail, advancing the end step by one. The returned
// error is always nil.
func (s *Events[E]) Append(event E) error {
	s.events = append(s.events, event)
	return nil
}

// SetLength resizes the sequence to exactly steps events. Growth inserts pad
// events on the chosen side; shrinking discards events from that side. A
// Left resize moves the start step so the surviving events keep their
// absolute grid positions, a Right resize moves the end step. Negative steps
// fail with ErrInvalidArgument and leave the sequence untouched.
func (s *Events[E]) SetLength(steps int, side Side) error {
	if steps < 0 {
		return fmt.Errorf("%w: sequence length %d is negative", ErrInvalidArgument, steps)
	}

	switch {
	case steps > len(s.events):
		padding := slices.Repeat([]E{s.pad}, steps-len(s.events))
		if side == Left {
			s.startStep -= len(padding)
			s.events = slices.Insert(s.events, 0, padding...)
		} else {
			s.events = append(s.events, padding...)
		}
	case steps < len(s.events):
		if side == Left {
			s.startStep += len(s.events) - steps
			s.events = slices.Delete(s.events, 0, len(s.events)-steps)
		} else {
			s.events = s.events[:steps]
		}
	}
	return nil
}

// IncreaseResolution rescales the step grid by a factor of k, spreading each
// event across k steps. Without a fill event the source event repeats for all
// k steps; with one, each source event is followed by k-1 copies of fill.
// The start step and grid resolution scale by the same factor, so the
// sequence keeps its absolute position in time. k below one, or more than one
// fill event, fail with ErrInvalidArgument.
func (s *Events[E]) IncreaseResolution(k int, fill ...E) error {
	if k < 1 {
		return fmt.Errorf("%w: resolution factor %d, need at least 1", ErrInvalidArgument, k)
	}
	if len(fill) > 1 {
		return fmt.Errorf("%w: %d fill events, want at most one", ErrInvalidArgument, len(fill))
	}

	scaled := make([]E, 0, len(s.events)*k)
	for _, event := range s.events {
		scaled = append(scaled, event)
		for range k - 1 {
			if len(fill) == 1 {
				scaled = append(scaled, fill[0])
			} else {
				scaled = append(scaled, event)
			}
		}
	}

	s.events = scaled
	s.startStep *= k
	s.stepsPerBar *= k
	s.stepsPerQuarter *= k
	return nil
}

// Clone returns an independent copy. Mutating either sequence afterwards
// leaves the other untouched.
func (s *Events[E]) Clone() *Events[E] {
	clone := *s
	clone.events = slices.Clone(s.events)
	return &clone
}

// Equal reports whether both sequences hold the same events at the same grid
// positions and resolution. The pad event is fill material, not sequence
// content, and is not compared.
func (s *Events[E]) Equal(o *Events[E]) bool {
	return s.startStep == o.startStep &&
		s.stepsPerBar == o.stepsPerBar &&
		s.stepsPerQuarter == o.stepsPerQuarter &&
		slices.Equal(s.events, o.events)
}
