package builtin

import (
	"maps"

	"github.com/zeusync/hotreload/internal/core/engine"
	"github.com/zeusync/hotreload/internal/core/project"
)

// Sprite is an animated image. Its content declares a default size and the
// initial animation.
type Sprite struct {
	content   map[string]any
	animation int
	flippedX  bool
	opacity   float64
}

func NewSprite(data project.ObjectData) engine.ObjectKind {
	s := &Sprite{content: maps.Clone(data.Content), opacity: 255}
	s.animation = int(toFloat(data.Content["animation"]))
	return s
}

func (s *Sprite) DefaultSize() (float64, float64) {
	return toFloat(s.content["width"]), toFloat(s.content["height"])
}

func (s *Sprite) Animation() int     { return s.animation }
func (s *Sprite) FlippedX() bool     { return s.flippedX }
func (s *Sprite) Opacity() float64   { return s.opacity }
func (s *Sprite) SetAnimation(a int) { s.animation = a }

// UpdateFromObjectData replaces the declared content. The current animation is
// kept unless the declared initial animation changed.
func (s *Sprite) UpdateFromObjectData(_ *engine.Object, old, new project.ObjectData) bool {
	if toFloat(old.Content["animation"]) != toFloat(new.Content["animation"]) {
		s.animation = int(toFloat(new.Content["animation"]))
	}
	s.content = maps.Clone(new.Content)
	return true
}

func (s *Sprite) ExtraInitializationFromInstance(_ *engine.Object, inst project.InstanceData) {
	for _, p := range inst.NumberProperties {
		switch p.Name {
		case "animation":
			s.animation = int(p.Value)
		case "opacity":
			s.opacity = p.Value
		}
	}
	for _, p := range inst.StringProperties {
		if p.Name == "flippedX" {
			s.flippedX = p.Value == "true"
		}
	}
}

// Text draws a string.
type Text struct {
	text     string
	fontSize float64
}

func NewText(data project.ObjectData) engine.ObjectKind {
	t := &Text{fontSize: 20}
	if s, ok := data.Content["text"].(string); ok {
		t.text = s
	}
	if size := toFloat(data.Content["characterSize"]); size > 0 {
		t.fontSize = size
	}
	return t
}

func (t *Text) Text() string      { return t.text }
func (t *Text) SetText(s string)  { t.text = s }
func (t *Text) FontSize() float64 { return t.fontSize }

// UpdateFromObjectData changes the text only if its declaration changed, so that
// text set by gameplay survives unrelated edits.
func (t *Text) UpdateFromObjectData(_ *engine.Object, old, new project.ObjectData) bool {
	oldText, _ := old.Content["text"].(string)
	newText, _ := new.Content["text"].(string)
	if oldText != newText {
		t.text = newText
	}
	if toFloat(old.Content["characterSize"]) != toFloat(new.Content["characterSize"]) {
		t.fontSize = toFloat(new.Content["characterSize"])
	}
	return true
}

func (t *Text) ExtraInitializationFromInstance(_ *engine.Object, inst project.InstanceData) {
	for _, p := range inst.StringProperties {
		if p.Name == "text" {
			t.text = p.Value
		}
	}
}
