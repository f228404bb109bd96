package comments

import (
	"context"

	"inkwell/internal/logger"
)

type State int

const (
	Idle State = iota
	Submitting
	Submitted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Submitted:
		return "submitted"
	}
	return "unknown"
}

// Flow is the lifecycle of one comment form: idle, then submitting while the
// request is in flight, then submitted on success or idle again on failure.
type Flow struct {
	submitter Submitter
	log       *logger.Logger

	state  State
	input  Input
	errors []FieldError
}

func NewFlow(submitter Submitter, log *logger.Logger) *Flow {
	return &Flow{submitter: submitter, log: log}
}

func (f *Flow) State() State { return f.state }

// Input is the last input handed to Submit, so the form can be shown again with it.
func (f *Flow) Input() Input { return f.input }

// Errors holds the required-field errors of the last Submit.
func (f *Flow) Errors() []FieldError { return f.errors }

// Submit validates in and, if every required field is present, sends it once.
// Transport failures are logged and never surfaced to the reader.
func (f *Flow) Submit(ctx context.Context, in Input) State {
	if f.state == Submitted {
		return f.state
	}

	f.input = in
	f.errors = in.Validate()
	if len(f.errors) > 0 {
		f.state = Idle
		return f.state
	}

	f.state = Submitting
	if err := f.submitter.Submit(ctx, in); err != nil {
		f.log.Warn("comment for post %s not submitted: %v", in.PostID, err)
		f.state = Idle
		return f.state
	}

	f.state = Submitted
	return f.state
}
