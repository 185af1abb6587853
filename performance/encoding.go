package performance

import (
	"fmt"

	"github.com/fogfish/opts"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/stavekit/ostinato/sequence"
)

// classRange is the closed value interval one event kind occupies in the
// label space.
type classRange struct {
	min int
	max int
}

func (r classRange) size() int { return r.max - r.min + 1 }

// Encoding is the one-hot vocabulary for performance events. Each event kind
// owns a contiguous block of class labels; the blocks are laid out in a fixed
// order (note-on, note-off, time-shift, then velocity when configured), so a
// label is an offset into the concatenation of the kind ranges.
type Encoding struct {
	velocityBins int
	ranges       *orderedmap.OrderedMap[Kind, classRange]
	classes      int
}

// VelocityBins adds a velocity block with the given number of bins to the
// vocabulary. Without it the vocabulary covers only notes and time shifts.
var VelocityBins = opts.ForName[Encoding, int]("velocityBins")

// NewEncoding builds the vocabulary.
func NewEncoding(options ...opts.Option[Encoding]) *Encoding {
	e := Encoding{}
	if err := opts.Apply(&e, options); err != nil {
		panic(err)
	}

	e.ranges = orderedmap.New[Kind, classRange]()
	e.ranges.Set(NoteOn, classRange{min: MinPitch, max: MaxPitch})
	e.ranges.Set(NoteOff, classRange{min: MinPitch, max: MaxPitch})
	e.ranges.Set(TimeShift, classRange{min: 1, max: MaxShiftSteps})
	if e.velocityBins > 0 {
		e.ranges.Set(Velocity, classRange{min: 1, max: e.velocityBins})
	}

	for pair := e.ranges.Oldest(); pair != nil; pair = pair.Next() {
		e.classes += pair.Value.size()
	}
	return &e
}

// NumClasses is the size of the label space.
func (e *Encoding) NumClasses() int { return e.classes }

// VelocityBins is the configured number of velocity bins, zero when the
// vocabulary has no velocity block.
func (e *Encoding) VelocityBins() int { return e.velocityBins }

// DefaultEvent is the event a generator should fall back to when it has
// nothing better to emit.
func (e *Encoding) DefaultEvent() Event { return DefaultEvent() }

// Encode maps an event to its class label. Events of a kind outside the
// vocabulary, or with a value outside the kind's range, fail with
// ErrInvalidArgument.
func (e *Encoding) Encode(event Event) (int, error) {
	offset := 0
	for pair := e.ranges.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Key == event.Kind {
			if event.Value < pair.Value.min || event.Value > pair.Value.max {
				return 0, fmt.Errorf("%w: %s outside the %s range [%d, %d]",
					sequence.ErrInvalidArgument, event, pair.Key, pair.Value.min, pair.Value.max)
			}
			return offset + event.Value - pair.Value.min, nil
		}
		offset += pair.Value.size()
	}
	return 0, fmt.Errorf("%w: no label range for %s", sequence.ErrInvalidArgument, event)
}

// Decode maps a class label back to its event. Labels outside
// [0, NumClasses) fail with ErrInvalidArgument.
func (e *Encoding) Decode(label int) (Event, error) {
	offset := 0
	for pair := e.ranges.Oldest(); pair != nil; pair = pair.Next() {
		if label >= offset && label <= offset+pair.Value.max-pair.Value.min {
			return Event{Kind: pair.Key, Value: pair.Value.min + label - offset}, nil
		}
		offset += pair.Value.size()
	}
	return Event{}, fmt.Errorf("%w: label %d outside [0, %d)", sequence.ErrInvalidArgument, label, e.classes)
}

// Labels encodes every event of a performance stream in order. The first
// out-of-vocabulary event aborts with its position in the error.
func (e *Encoding) Labels(seq *sequence.Events[Event]) ([]int, error) {
	labels := make([]int, 0, seq.Len())
	for event := range seq.All() {
		label, err := e.Encode(event)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", len(labels), err)
		}
		labels = append(labels, label)
	}
	return labels, nil
}
