package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jsamuelsen/quotevault/internal/platform/logging"
)

// Step names a stage of a staged operation. Operations run
// validate, perform, verify, archive, respond in that order and stop at the
// first failure, so nothing is archived from an unverified result.
type Step string

const (
	StepValidate Step = "validate"
	StepPerform  Step = "perform"
	StepVerify   Step = "verify"
	StepArchive  Step = "archive"
	StepRespond  Step = "respond"
)

// StepError records the stage where an operation failed.
type StepError struct {
	Op    string
	Step  Step
	Cause error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Step, e.Cause)
}

func (e *StepError) Unwrap() error {
	return e.Cause
}

// FailedStep returns the stage an operation failed at, if err came from Execute.
func FailedStep(err error) (Step, bool) {
	var stepErr *StepError
	if errors.As(err, &stepErr) {
		return stepErr.Step, true
	}

	return "", false
}

// Executor runs staged operations with consistent logging.
type Executor struct {
	logger *slog.Logger
}

// NewExecutor returns an executor logging to logger, or slog.Default.
func NewExecutor(logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Executor{logger: logger}
}

// Operation is a staged operation from input I to output O. P is the raw
// result of Perform and V the result after Verify. Nil stages are skipped;
// a nil Perform yields the zero P.
type Operation[I, P, V, O any] struct {
	Name     string
	Validate func(ctx context.Context, in I) error
	Perform  func(ctx context.Context, in I) (P, error)
	Verify   func(ctx context.Context, in I, performed P) (V, error)
	Archive  func(ctx context.Context, in I, verified V) error
	Respond  func(ctx context.Context, in I, verified V) (O, error)
}

// Execute runs op against input. The request logger from ctx is preferred
// over the executor's own; stages receive a ctx whose logger carries the
// operation name.
func Execute[I, P, V, O any](ctx context.Context, exec *Executor, op Operation[I, P, V, O], input I) (O, error) {
	var zero O

	if _, ok := logging.Lookup(ctx); !ok {
		ctx = logging.WithContext(ctx, exec.logger)
	}

	ctx = logging.WithOperation(ctx, op.Name)
	logger := logging.FromContext(ctx)
	start := time.Now()

	fail := func(step Step, err error) (O, error) {
		logger.WarnContext(ctx, "operation failed",
			slog.String("step", string(step)),
			slog.Any("error", err),
			slog.Duration("duration", time.Since(start)),
		)

		return zero, &StepError{Op: op.Name, Step: step, Cause: err}
	}

	if op.Validate != nil {
		if err := op.Validate(ctx, input); err != nil {
			return fail(StepValidate, err)
		}
	}

	var performed P

	if op.Perform != nil {
		var err error

		logger.DebugContext(ctx, "performing")

		if performed, err = op.Perform(ctx, input); err != nil {
			return fail(StepPerform, err)
		}
	}

	var verified V

	if op.Verify != nil {
		var err error

		if verified, err = op.Verify(ctx, input, performed); err != nil {
			return fail(StepVerify, err)
		}
	}

	if op.Archive != nil {
		if err := op.Archive(ctx, input, verified); err != nil {
			return fail(StepArchive, err)
		}
	}

	result := zero

	if op.Respond != nil {
		var err error

		if result, err = op.Respond(ctx, input, verified); err != nil {
			return fail(StepRespond, err)
		}
	}

	logger.InfoContext(ctx, "operation completed", slog.Duration("duration", time.Since(start)))

	return result, nil
}
