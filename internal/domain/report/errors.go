package report

import (
	"errors"
	"fmt"
)

// ErrorKind classifies which pipeline stage failed.
type ErrorKind string

const (
	KindConfig     ErrorKind = "ConfigError"
	KindRepository ErrorKind = "RepositoryError"
	KindRender     ErrorKind = "RenderError"
	KindStore      ErrorKind = "StoreError"
	KindNotify     ErrorKind = "NotifyError"
)

var stageKinds = map[State]ErrorKind{
	StateValidating: KindConfig,
	StateFetching:   KindRepository,
	StateRendering:  KindRender,
	StateStoring:    KindStore,
	StateNotifying:  KindNotify,
}

// KindForState returns the error kind raised by a failing stage.
func KindForState(s State) (ErrorKind, bool) {
	k, ok := stageKinds[s]
	return k, ok
}

// StageError is a failure raised while the run was in Stage.
type StageError struct {
	Kind  ErrorKind
	Stage State
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// NewStageError wraps err with the kind of the stage it was raised in.
// Stages with no kind yield an empty Kind.
func NewStageError(stage State, err error) *StageError {
	kind, _ := KindForState(stage)
	return &StageError{Kind: kind, Stage: stage, Err: err}
}

// KindOf returns the kind of the first StageError in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Kind, true
	}
	return "", false
}
