package scripts

import (
	"errors"
	"fmt"
)

var (
	ErrNoAttachmentPoint = errors.New("no attachment point for injected scripts")
	ErrModuleNotFound    = errors.New("module not found")
	ErrFetchFailed       = errors.New("script fetch failed")
)

// ScriptError is a failure to reload one code module.
type ScriptError struct {
	Path string
	Err  error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("unable to reload script %s: %v", e.Path, e.Err)
}

func (e *ScriptError) Unwrap() error { return e.Err }
