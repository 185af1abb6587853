package ostinato

import (
	"context"
	"log/slog"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"

	"github.com/stavekit/ostinato/pkg/slogx"
)

// Progress describes one completed generator turn.
type Progress struct {
	RunID     uuid.UUID       `json:"run_id"`
	Turn      int             `json:"turn"`
	Generated int             `json:"generated"`
	Remaining int             `json:"remaining"`
	Timestamp strfmt.DateTime `json:"timestamp,omitempty"`
}

// Result describes a finished generation run.
type Result struct {
	RunID     uuid.UUID       `json:"run_id"`
	Turns     int             `json:"turns"`
	Steps     int             `json:"steps"`
	Timestamp strfmt.DateTime `json:"timestamp,omitempty"`
}

// Hook observes a generation run. Callbacks run synchronously on the
// generation goroutine, so implementations must return quickly and must not
// mutate the sequence being generated.
type Hook interface {
	OnTurn(context.Context, Progress)
	OnResult(context.Context, Result)
	OnError(ctx context.Context, err error)
}

var (
	_ Hook = NoopHook{}
	_ Hook = loggingHook{}
)

// NoopHook ignores every callback.
type NoopHook struct{}

func (NoopHook) OnTurn(context.Context, Progress) {}
func (NoopHook) OnResult(context.Context, Result) {}
func (NoopHook) OnError(context.Context, error)   {}

// LoggingHook reports run progress through log. A nil log falls back to
// slog.Default.
func LoggingHook(log *slog.Logger) Hook {
	if log == nil {
		log = slog.Default()
	}
	return loggingHook{log: log}
}

type loggingHook struct {
	log *slog.Logger
}

func (h loggingHook) OnTurn(ctx context.Context, p Progress) {
	h.log.InfoContext(ctx, "turn complete",
		slogx.Stringer("run_id", p.RunID),
		slog.Int("turn", p.Turn),
		slog.Int("generated", p.Generated),
		slog.Int("remaining", p.Remaining),
	)
}

func (h loggingHook) OnResult(ctx context.Context, r Result) {
	h.log.InfoContext(ctx, "generation complete",
		slogx.Stringer("run_id", r.RunID),
		slog.Int("turns", r.Turns),
		slog.Int("steps", r.Steps),
	)
}

func (h loggingHook) OnError(ctx context.Context, err error) {
	h.log.ErrorContext(ctx, "generation failed", slogx.Error(err))
}
