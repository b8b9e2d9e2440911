package engine

import (
	"fmt"
	"maps"

	"github.com/zeusync/hotreload/internal/core/project"
	"github.com/zeusync/hotreload/internal/core/variables"
)

// ObjectKind is the type-specific part of an object (sprite, text, ...).
type ObjectKind interface {
	// UpdateFromObjectData patches the type-specific fields of o from a changed
	// declaration. It returns false when the type cannot hot-patch them.
	UpdateFromObjectData(o *Object, old, new project.ObjectData) bool

	// ExtraInitializationFromInstance applies the type-specific parts of an
	// authored instance (custom properties, size).
	ExtraInitializationFromInstance(o *Object, inst project.InstanceData)
}

// DefaultSizer is implemented by kinds that know the size of an object without a
// custom size.
type DefaultSizer interface {
	DefaultSize() (width, height float64)
}

// genericKind backs objects whose type has no registered constructor.
type genericKind struct {
	content map[string]any
}

func (k *genericKind) UpdateFromObjectData(_ *Object, _, new project.ObjectData) bool {
	k.content = maps.Clone(new.Content)
	return true
}

func (k *genericKind) ExtraInitializationFromInstance(*Object, project.InstanceData) {}

// Object is a live instance of a declared object.
type Object struct {
	id             uint64
	name           string
	typeName       string
	persistentUUID string
	scene          *Scene
	kind           ObjectKind

	x, y, z              float64
	angle                float64
	rotationX, rotationY float64
	zOrder               int
	layer                string
	hidden               bool

	customSize          bool
	customDepth         bool
	width, height, depth float64

	Variables *variables.Container
	behaviors []Behavior
	effects   *EffectSet
	destroyed bool
}

func (o *Object) ID() uint64               { return o.id }
func (o *Object) Name() string             { return o.name }
func (o *Object) TypeName() string         { return o.typeName }
func (o *Object) PersistentUUID() string   { return o.persistentUUID }
func (o *Object) Scene() *Scene            { return o.scene }
func (o *Object) Kind() ObjectKind         { return o.kind }
func (o *Object) Effects() *EffectSet      { return o.effects }
func (o *Object) IsDestroyed() bool        { return o.destroyed }
func (o *Object) X() float64               { return o.x }
func (o *Object) Y() float64               { return o.y }
func (o *Object) Z() float64               { return o.z }
func (o *Object) SetX(x float64)           { o.x = x }
func (o *Object) SetY(y float64)           { o.y = y }
func (o *Object) SetZ(z float64)           { o.z = z }
func (o *Object) Angle() float64           { return o.angle }
func (o *Object) SetAngle(a float64)       { o.angle = a }
func (o *Object) RotationX() float64       { return o.rotationX }
func (o *Object) RotationY() float64       { return o.rotationY }
func (o *Object) SetRotationX(a float64)   { o.rotationX = a }
func (o *Object) SetRotationY(a float64)   { o.rotationY = a }
func (o *Object) ZOrder() int              { return o.zOrder }
func (o *Object) SetZOrder(z int)          { o.zOrder = z }
func (o *Object) Layer() string            { return o.layer }
func (o *Object) SetLayer(name string)     { o.layer = name }
func (o *Object) IsHidden() bool           { return o.hidden }
func (o *Object) SetHidden(hidden bool)    { o.hidden = hidden }
func (o *Object) HasCustomSize() bool      { return o.customSize }
func (o *Object) HasCustomDepth() bool     { return o.customDepth }
func (o *Object) SetPosition(x, y float64) { o.x, o.y = x, y }

// Width is the custom width if one is set, the kind's default otherwise.
func (o *Object) Width() float64 {
	if o.customSize {
		return o.width
	}
	if s, ok := o.kind.(DefaultSizer); ok {
		w, _ := s.DefaultSize()
		return w
	}
	return 0
}

// Height is the custom height if one is set, the kind's default otherwise.
func (o *Object) Height() float64 {
	if o.customSize {
		return o.height
	}
	if s, ok := o.kind.(DefaultSizer); ok {
		_, h := s.DefaultSize()
		return h
	}
	return 0
}

func (o *Object) Depth() float64 { return o.depth }

func (o *Object) SetCustomSize(width, height float64) {
	o.customSize = true
	o.width, o.height = width, height
}

func (o *Object) SetCustomDepth(depth float64) {
	o.customDepth = true
	o.depth = depth
}

// ClearCustomDepth drops the custom depth and keeps the custom width and height.
func (o *Object) ClearCustomDepth() {
	o.customDepth = false
	o.depth = 0
}

// ClearCustomSize makes the object use its default size again.
func (o *Object) ClearCustomSize() {
	o.customSize, o.customDepth = false, false
	o.width, o.height, o.depth = 0, 0, 0
}

// Behaviors returns the attached behaviors in attachment order.
func (o *Object) Behaviors() []Behavior {
	return append([]Behavior(nil), o.behaviors...)
}

func (o *Object) Behavior(name string) (Behavior, bool) {
	for _, b := range o.behaviors {
		if b.Name() == name {
			return b, true
		}
	}
	return nil, false
}

// AddBehavior builds a behavior from its declaration with the constructor currently
// registered for its type and attaches it.
func (o *Object) AddBehavior(data project.BehaviorData) (Behavior, error) {
	if o.destroyed {
		return nil, ErrObjectDestroyed
	}
	if o.scene == nil {
		return nil, ErrNoScene
	}
	if _, exists := o.Behavior(data.Name); exists {
		return nil, fmt.Errorf("%w: %s on %s", ErrBehaviorExists, data.Name, o.name)
	}
	var shared *project.BehaviorSharedData
	if sd, ok := o.scene.SharedData(data.Name); ok {
		shared = &sd
	}
	b, err := o.scene.game.registry.NewBehavior(o, data, shared)
	if err != nil {
		return nil, fmt.Errorf("behavior %s of %s: %w", data.Name, o.name, err)
	}
	o.behaviors = append(o.behaviors, b)
	return b, nil
}

// RemoveBehavior detaches and destroys the named behavior.
func (o *Object) RemoveBehavior(name string) bool {
	b, ok := o.DetachBehavior(name)
	if ok {
		b.OnDestroy()
	}
	return ok
}

// DetachBehavior removes the named behavior without destroying it, for callers
// that replace it with another instance carrying the same state.
func (o *Object) DetachBehavior(name string) (Behavior, bool) {
	for i, b := range o.behaviors {
		if b.Name() == name {
			o.behaviors = append(o.behaviors[:i], o.behaviors[i+1:]...)
			return b, true
		}
	}
	return nil, false
}

// UpdateFromObjectData delegates to the object's kind.
func (o *Object) UpdateFromObjectData(old, new project.ObjectData) bool {
	return o.kind.UpdateFromObjectData(o, old, new)
}

// ExtraInitializationFromInstance delegates to the object's kind.
func (o *Object) ExtraInitializationFromInstance(inst project.InstanceData) {
	o.kind.ExtraInitializationFromInstance(o, inst)
}

// NotifyHotReloaded tells every behavior that the object was patched externally.
func (o *Object) NotifyHotReloaded() {
	for _, b := range o.behaviors {
		b.OnObjectHotReloaded()
	}
}

// Step runs one frame of every behavior.
func (o *Object) Step(dt float64) {
	for _, b := range o.behaviors {
		b.Step(dt)
	}
}

func (o *Object) destroy() {
	if o.destroyed {
		return
	}
	o.destroyed = true
	for _, b := range o.behaviors {
		b.OnDestroy()
	}
	o.behaviors = nil
}

// applyInstance sets the authored fields of an instance on a fresh object.
func (o *Object) applyInstance(inst project.InstanceData) {
	o.persistentUUID = inst.PersistentUUID
	o.x, o.y, o.z = inst.X, inst.Y, inst.Z
	o.angle = inst.Angle
	o.rotationX, o.rotationY = inst.RotationX, inst.RotationY
	o.zOrder = inst.ZOrder
	o.layer = inst.Layer
	if inst.CustomSize {
		o.SetCustomSize(inst.Width, inst.Height)
		if inst.Depth != 0 {
			o.SetCustomDepth(inst.Depth)
		}
	}
	if len(inst.InitialVariables) > 0 {
		variables.Patch(nil, inst.InitialVariables, o.Variables)
	}
	o.ExtraInitializationFromInstance(inst)
}
