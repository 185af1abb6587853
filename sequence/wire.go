package sequence

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Wire form. Both containers marshal to a self-describing JSON object with a
// type discriminator, so a stored sequence can be rebuilt without out-of-band
// knowledge of its encoding policy or grid placement. Event payloads are
// whatever JSON the event type itself marshals to.

const (
	eventsType    = "events"
	runLengthType = "runlength"
)

var (
	eventsJSON    = []byte(`{"type":"events"}`)
	runLengthJSON = []byte(`{"type":"runlength"}`)
)

func setRawJSON(data []byte, path string, value any) ([]byte, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return sjson.SetRawBytes(data, path, raw)
}

func (s *Events[E]) MarshalJSON() ([]byte, error) {
	result := eventsJSON
	var err error
	if result, err = setRawJSON(result, "pad_event", s.pad); err != nil {
		return nil, err
	}
	if result, err = sjson.SetBytes(result, "start_step", s.startStep); err != nil {
		return nil, err
	}
	if result, err = sjson.SetBytes(result, "steps_per_bar", s.stepsPerBar); err != nil {
		return nil, err
	}
	if result, err = sjson.SetBytes(result, "steps_per_quarter", s.stepsPerQuarter); err != nil {
		return nil, err
	}
	if result, err = setRawJSON(result, "events", s.events); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Events[E]) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid json data: %s", data)
	}

	tpe := gjson.GetBytes(data, "type")
	if !tpe.Exists() {
		return errors.New("missing type field")
	}
	if tpe.Str != eventsType {
		return fmt.Errorf("invalid type field, expected %s but got: %s", eventsType, tpe.Str)
	}

	pad := gjson.GetBytes(data, "pad_event")
	if !pad.Exists() {
		return errors.New("missing pad_event field")
	}

	decoded := Events[E]{Timebase: defaultTimebase()}
	if err := json.Unmarshal([]byte(pad.Raw), &decoded.pad); err != nil {
		return fmt.Errorf("invalid pad_event field: %w", err)
	}
	if v := gjson.GetBytes(data, "start_step"); v.Exists() {
		decoded.startStep = int(v.Int())
	}
	if v := gjson.GetBytes(data, "steps_per_bar"); v.Exists() {
		decoded.stepsPerBar = int(v.Int())
	}
	if v := gjson.GetBytes(data, "steps_per_quarter"); v.Exists() {
		decoded.stepsPerQuarter = int(v.Int())
	}
	if v := gjson.GetBytes(data, "events"); v.Exists() {
		if err := json.Unmarshal([]byte(v.Raw), &decoded.events); err != nil {
			return fmt.Errorf("invalid events field: %w", err)
		}
	}

	*s = decoded
	return nil
}

func (s *RunLength[E]) MarshalJSON() ([]byte, error) {
	result := runLengthJSON
	var err error
	if result, err = sjson.SetBytes(result, "max_run_length", s.maxRunLength); err != nil {
		return nil, err
	}
	if result, err = sjson.SetBytes(result, "only_encode_pad_event", s.padOnly); err != nil {
		return nil, err
	}
	if result, err = setRawJSON(result, "pad_event", s.pad); err != nil {
		return nil, err
	}
	if result, err = sjson.SetBytes(result, "start_step", s.startStep); err != nil {
		return nil, err
	}
	if result, err = sjson.SetBytes(result, "steps_per_bar", s.stepsPerBar); err != nil {
		return nil, err
	}
	if result, err = sjson.SetBytes(result, "steps_per_quarter", s.stepsPerQuarter); err != nil {
		return nil, err
	}
	if result, err = setRawJSON(result, "runs", s.runs); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *RunLength[E]) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid json data: %s", data)
	}

	tpe := gjson.GetBytes(data, "type")
	if !tpe.Exists() {
		return errors.New("missing type field")
	}
	if tpe.Str != runLengthType {
		return fmt.Errorf("invalid type field, expected %s but got: %s", runLengthType, tpe.Str)
	}

	maxRun := gjson.GetBytes(data, "max_run_length")
	if !maxRun.Exists() {
		return errors.New("missing max_run_length field")
	}
	pad := gjson.GetBytes(data, "pad_event")
	if !pad.Exists() {
		return errors.New("missing pad_event field")
	}

	decoded := RunLength[E]{
		Timebase:     defaultTimebase(),
		maxRunLength: int(maxRun.Int()),
	}
	if decoded.maxRunLength < 1 {
		return fmt.Errorf("invalid max_run_length field: %d, need at least 1", decoded.maxRunLength)
	}
	if err := json.Unmarshal([]byte(pad.Raw), &decoded.pad); err != nil {
		return fmt.Errorf("invalid pad_event field: %w", err)
	}
	decoded.padOnly = gjson.GetBytes(data, "only_encode_pad_event").Bool()
	if v := gjson.GetBytes(data, "start_step"); v.Exists() {
		decoded.startStep = int(v.Int())
	}
	if v := gjson.GetBytes(data, "steps_per_bar"); v.Exists() {
		decoded.stepsPerBar = int(v.Int())
	}
	if v := gjson.GetBytes(data, "steps_per_quarter"); v.Exists() {
		decoded.stepsPerQuarter = int(v.Int())
	}
	if v := gjson.GetBytes(data, "runs"); v.Exists() {
		if err := json.Unmarshal([]byte(v.Raw), &decoded.runs); err != nil {
			return fmt.Errorf("invalid runs field: %w", err)
		}
	}
	for i, run := range decoded.runs {
		if run.Length < 1 || run.Length > decoded.maxRunLength {
			return fmt.Errorf("invalid runs field: run %d has length %d outside [1, %d]", i, run.Length, decoded.maxRunLength)
		}
	}

	*s = decoded
	return nil
}
