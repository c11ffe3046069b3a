package extract

import (
	"fmt"

	"go.uber.org/zap"
)

// TraceStep records one stage of an extraction run. The trace is returned
// alongside the result so callers can surface it without wiring a logger.
type TraceStep struct {
	Stage  string `json:"stage"`
	Detail string `json:"detail"`
}

// tracer accumulates trace steps and mirrors them to a zap logger at debug
// level.
type tracer struct {
	steps []TraceStep
	log   *zap.Logger
}

func (t *tracer) step(stage, format string, args ...any) {
	detail := fmt.Sprintf(format, args...)
	t.steps = append(t.steps, TraceStep{Stage: stage, Detail: detail})
	t.log.Debug(detail, zap.String("stage", stage))
}
