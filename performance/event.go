package performance

import (
	"fmt"

	"github.com/stavekit/ostinato/sequence"
)

// MIDI pitch bounds and the largest number of grid steps a single time-shift
// event may advance the performance clock.
const (
	MinPitch      = 0
	MaxPitch      = 127
	MaxShiftSteps = 100
)

// Kind discriminates performance events.
type Kind uint8

const (
	NoteOn Kind = iota + 1
	NoteOff
	TimeShift
	Velocity
)

func (k Kind) String() string {
	switch k {
	case NoteOn:
		return "note_on"
	case NoteOff:
		return "note_off"
	case TimeShift:
		return "time_shift"
	case Velocity:
		return "velocity"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "note_on":
		*k = NoteOn
	case "note_off":
		*k = NoteOff
	case "time_shift":
		*k = TimeShift
	case "velocity":
		*k = Velocity
	default:
		return fmt.Errorf("unknown performance event kind: %q", text)
	}
	return nil
}

// Event is one entry of a performance stream. Note events carry a MIDI
// pitch, time shifts a step count, velocity changes a bin number. Events are
// plain comparable values, so they slot directly into the sequence
// containers.
type Event struct {
	Kind  Kind `json:"kind"`
	Value int  `json:"value"`
}

func (e Event) String() string {
	return fmt.Sprintf("%s(%d)", e.Kind, e.Value)
}

// NewNoteOn returns a note-onset event for the given MIDI pitch.
func NewNoteOn(pitch int) (Event, error) {
	if pitch < MinPitch || pitch > MaxPitch {
		return Event{}, fmt.Errorf("%w: pitch %d outside [%d, %d]", sequence.ErrInvalidArgument, pitch, MinPitch, MaxPitch)
	}
	return Event{Kind: NoteOn, Value: pitch}, nil
}

// NewNoteOff returns a note-release event for the given MIDI pitch.
func NewNoteOff(pitch int) (Event, error) {
	if pitch < MinPitch || pitch > MaxPitch {
		return Event{}, fmt.Errorf("%w: pitch %d outside [%d, %d]", sequence.ErrInvalidArgument, pitch, MinPitch, MaxPitch)
	}
	return Event{Kind: NoteOff, Value: pitch}, nil
}

// NewTimeShift returns a clock advance of the given number of grid steps.
func NewTimeShift(steps int) (Event, error) {
	if steps < 1 || steps > MaxShiftSteps {
		return Event{}, fmt.Errorf("%w: time shift %d outside [1, %d]", sequence.ErrInvalidArgument, steps, MaxShiftSteps)
	}
	return Event{Kind: TimeShift, Value: steps}, nil
}

// NewVelocity returns a velocity change to the given bin. The upper bin
// bound depends on the vocabulary, so only positivity is checked here;
// Encoding.Encode enforces the configured bin count.
func NewVelocity(bin int) (Event, error) {
	if bin < 1 {
		return Event{}, fmt.Errorf("%w: velocity bin %d, need at least 1", sequence.ErrInvalidArgument, bin)
	}
	return Event{Kind: Velocity, Value: bin}, nil
}

// DefaultEvent is the neutral filler for performance streams: the maximal
// time shift. It doubles as the pad event when a performance sequence grows.
func DefaultEvent() Event {
	return Event{Kind: TimeShift, Value: MaxShiftSteps}
}
