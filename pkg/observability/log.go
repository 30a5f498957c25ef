package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/stepwise/pkg/domain"
)

// LogHooks returns lifecycle hooks that write one record per event.
// Steps are logged at debug level, everything else at info.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStateChange: func(ctx context.Context, e *domain.StateEvent) {
			logger.InfoContext(ctx, "state_change",
				"session_id", e.SessionID,
				"from", e.From,
				"to", e.To,
			)
		},
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "step",
				"session_id", e.SessionID,
				"lane", e.Lane,
				"seq", e.Step.Seq,
				"kind", e.Step.Kind,
				"line", e.Step.Line,
			)
		},
		OnLaneDone: func(ctx context.Context, e *domain.LaneEvent) {
			logger.InfoContext(ctx, "lane_done",
				"session_id", e.SessionID,
				"lane", e.Summary.Lane,
				"algorithm", e.Summary.Algorithm,
				"steps", e.Summary.Steps,
				"elapsed", e.Summary.Elapsed,
				"found", e.Summary.Found,
			)
		},
	}
}
