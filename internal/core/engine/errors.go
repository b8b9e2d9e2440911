package engine

import "errors"

var (
	ErrUnknownBehaviorType = errors.New("unknown behavior type")
	ErrBehaviorExists      = errors.New("behavior already attached")
	ErrObjectNotDeclared   = errors.New("object is not declared in the scene")
	ErrSceneNotFound       = errors.New("scene not found")
	ErrEmptySceneStack     = errors.New("scene stack is empty")
	ErrObjectDestroyed     = errors.New("object is destroyed")
	ErrNoScene             = errors.New("object does not belong to a scene")
)
