package extract

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sdcforms/sdc-extract-go/r4"
)

// Result is the outcome of one extraction run. Observations and Errors are
// independent: a run can produce both when some templates resolve and
// others fail.
type Result struct {
	Observations []*r4.Observation `json:"observations"`
	Errors       []ProcessingError `json:"errors,omitempty"`
	Trace        []TraceStep       `json:"trace,omitempty"`
}

// Option configures an extraction run.
type Option func(*options)

type options struct {
	log *zap.Logger
}

// WithLogger mirrors trace steps to log at debug level. The default logger
// is a no-op.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// ProcessTemplateObservations extracts Observations from response using the
// contained templates of q. The questionnaire must carry the SDC template
// profile; beyond that, each processor decides for itself whether it can
// handle the questionnaire's template shape, so malformed families degrade
// to per-field errors rather than rejecting the whole run.
//
// The context is accepted for call-site uniformity with other resource
// operations; extraction itself is pure and does not block.
func ProcessTemplateObservations(_ context.Context, q *r4.Questionnaire, response *r4.QuestionnaireResponse, opts ...Option) (result Result) {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	t := &tracer{log: o.log}

	defer func() {
		result.Trace = t.steps
		if r := recover(); r != nil {
			result = Result{
				Errors: []ProcessingError{{
					Code:    CodeProcessingError,
					Message: fmt.Sprintf("extraction panicked: %v", r),
					Details: r,
				}},
				Trace: t.steps,
			}
		}
	}()

	id := ""
	if q != nil {
		id = q.ID
	}
	t.step("verify-profile", "checking questionnaire %q for the template profile", id)
	if res := VerifyTemplateProfile(q); !res.IsValid {
		t.step("verify-profile", "rejected: %s", res.Error.Message)
		return Result{Errors: []ProcessingError{{
			Code:    CodeTemplateExtractionError,
			Message: res.Error.Message,
			Details: res.Error,
		}}}
	}

	templates := containedObservations(q)
	t.step("collect-templates", "found %d contained observation template(s)", len(templates))
	if len(templates) == 0 {
		return Result{Errors: []ProcessingError{{
			Code:    CodeNoTemplatesFound,
			Message: "questionnaire contains no observation templates",
		}}}
	}

	for _, p := range processors {
		if !p.CanProcess(q) {
			continue
		}
		t.step("dispatch", "processing with %T", p)
		observations, errs := p.Process(q, response)
		t.step("done", "extracted %d observation(s), %d error(s)", len(observations), len(errs))
		return Result{Observations: observations, Errors: errs}
	}

	t.step("dispatch", "no processor accepted the questionnaire")
	return Result{Errors: []ProcessingError{{
		Code:    CodeNoProcessor,
		Message: "no processor can handle the questionnaire's templates",
	}}}
}
