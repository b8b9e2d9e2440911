// Package builtin provides the stock object kinds and behaviors every game starts with.
package builtin

import (
	"github.com/zeusync/hotreload/internal/core/engine"
)

const (
	SpriteObject = "Sprite"
	TextObject   = "TextObject::Text"

	MoverBehavior = "Movement::Mover"
	FlashBehavior = "Effects::Flash"
)

// Register installs the stock constructors into reg.
func Register(reg *engine.Registry) {
	reg.RegisterObject(SpriteObject, NewSprite)
	reg.RegisterObject(TextObject, NewText)
	reg.RegisterBehavior(MoverBehavior, NewMover)
	reg.RegisterBehavior(FlashBehavior, NewFlash)
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	}
	return 0
}
