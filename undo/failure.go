package undo

import (
	stderrors "errors"

	"github.com/pkg/errors"
)

// Failure is raised for the two non-recoverable error categories of spec
// §7: precondition violations inside encoders, and live-object mismatches
// during inversion where the target must exist (a deleted collaborator is
// tolerated silently; a type/shape mismatch is not). It carries a stack
// trace via github.com/pkg/errors so the caller can log where the engine
// gave up.
type Failure struct {
	Kind Kind
	msg  string
	err  error
}

func (f *Failure) Error() string {
	if f.err != nil {
		return f.Kind.String() + ": " + f.msg + ": " + f.err.Error()
	}
	return f.Kind.String() + ": " + f.msg
}

func (f *Failure) Unwrap() error { return f.err }

// newFailure builds a stack-carrying Failure for kind.
func newFailure(kind Kind, msg string) error {
	return errors.WithStack(&Failure{Kind: kind, msg: msg})
}

// wrapFailure builds a stack-carrying Failure for kind wrapping err.
func wrapFailure(kind Kind, msg string, err error) error {
	return errors.WithStack(&Failure{Kind: kind, msg: msg, err: err})
}

// AsFailure reports whether err is (or wraps) an undo.Failure.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if stderrors.As(err, &f) {
		return f, true
	}
	return nil, false
}
