package engine

import (
	"maps"

	"github.com/zeusync/hotreload/internal/core/project"
)

// Effect is a visual post-processing unit attached to an object or a layer. Only its
// parameters are modeled; drawing belongs to the renderer.
type Effect struct {
	name       string
	effectType string
	booleans   map[string]bool
	doubles    map[string]float64
	strings    map[string]string
}

func NewEffect(data project.EffectData) *Effect {
	e := &Effect{
		name:       data.Name,
		effectType: data.EffectType,
		booleans:   maps.Clone(data.BooleanParameters),
		doubles:    maps.Clone(data.DoubleParameters),
		strings:    maps.Clone(data.StringParameters),
	}
	if e.booleans == nil {
		e.booleans = make(map[string]bool)
	}
	if e.doubles == nil {
		e.doubles = make(map[string]float64)
	}
	if e.strings == nil {
		e.strings = make(map[string]string)
	}
	return e
}

func (e *Effect) Name() string { return e.name }
func (e *Effect) Type() string { return e.effectType }

func (e *Effect) BooleanParameter(name string) (bool, bool) {
	v, ok := e.booleans[name]
	return v, ok
}

func (e *Effect) DoubleParameter(name string) (float64, bool) {
	v, ok := e.doubles[name]
	return v, ok
}

func (e *Effect) StringParameter(name string) (string, bool) {
	v, ok := e.strings[name]
	return v, ok
}

func (e *Effect) SetBooleanParameter(name string, v bool)   { e.booleans[name] = v }
func (e *Effect) SetDoubleParameter(name string, v float64) { e.doubles[name] = v }
func (e *Effect) SetStringParameter(name string, v string)  { e.strings[name] = v }

// EffectSet is an ordered, name-keyed list of effects.
type EffectSet struct {
	effects []*Effect
}

func NewEffectSet(data []project.EffectData) *EffectSet {
	s := &EffectSet{}
	for _, d := range data {
		s.Add(d)
	}
	return s
}

// Add attaches an effect built from data, replacing one with the same name.
func (s *EffectSet) Add(data project.EffectData) *Effect {
	e := NewEffect(data)
	for i, existing := range s.effects {
		if existing.name == data.Name {
			s.effects[i] = e
			return e
		}
	}
	s.effects = append(s.effects, e)
	return e
}

func (s *EffectSet) Remove(name string) bool {
	for i, e := range s.effects {
		if e.name == name {
			s.effects = append(s.effects[:i], s.effects[i+1:]...)
			return true
		}
	}
	return false
}

func (s *EffectSet) Get(name string) (*Effect, bool) {
	for _, e := range s.effects {
		if e.name == name {
			return e, true
		}
	}
	return nil, false
}

func (s *EffectSet) Names() []string {
	names := make([]string, len(s.effects))
	for i, e := range s.effects {
		names[i] = e.name
	}
	return names
}

func (s *EffectSet) Len() int { return len(s.effects) }
