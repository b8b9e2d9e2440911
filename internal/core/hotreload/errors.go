package hotreload

import "errors"

var (
	ErrNoScriptLoader = errors.New("no script loader configured")
	ErrNoGame         = errors.New("no running game")
)
