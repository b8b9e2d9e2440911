package engine

import (
	"maps"

	"github.com/zeusync/hotreload/internal/core/project"
)

// Behavior is a named unit of per-object logic configured from a declaration.
type Behavior interface {
	Name() string
	TypeName() string
	Owner() *Object

	Step(dt float64)

	// UpdateFromBehaviorData applies a changed declaration in place. It returns
	// false when the behavior cannot hot-swap the changed fields.
	UpdateFromBehaviorData(old, new project.BehaviorData) bool

	// OnObjectHotReloaded is called after the owner's fields were patched from
	// outside gameplay, so that copies of them kept by the behavior can resync.
	OnObjectHotReloaded()

	// ExportRuntimeState and ImportRuntimeState transplant accumulated state from
	// an instance built by a replaced constructor into a fresh one.
	ExportRuntimeState() RuntimeState
	ImportRuntimeState(state RuntimeState)

	OnDestroy()
}

// RuntimeState is the transplantable state of a behavior: its runtime fields and
// its declarative configuration.
type RuntimeState struct {
	Fields map[string]any
	Config map[string]any
}

// MergeRuntimeState keeps every runtime field of old. Configuration is merged key
// by key: values from old win, keys only the fresh instance knows are kept so that
// newly declared settings are not lost.
func MergeRuntimeState(old, fresh RuntimeState) RuntimeState {
	merged := RuntimeState{
		Fields: make(map[string]any, len(old.Fields)+len(fresh.Fields)),
		Config: make(map[string]any, len(old.Config)+len(fresh.Config)),
	}
	maps.Copy(merged.Fields, fresh.Fields)
	maps.Copy(merged.Fields, old.Fields)
	maps.Copy(merged.Config, fresh.Config)
	maps.Copy(merged.Config, old.Config)
	return merged
}

// BaseBehavior implements Behavior with a plain configuration map and a map of
// runtime fields. Concrete behaviors embed it and override what they support.
type BaseBehavior struct {
	name     string
	typeName string
	owner    *Object

	Config map[string]any
	Fields map[string]any
}

func NewBaseBehavior(owner *Object, data project.BehaviorData) BaseBehavior {
	config := make(map[string]any, len(data.Properties))
	maps.Copy(config, data.Properties)
	return BaseBehavior{
		name:     data.Name,
		typeName: data.Type,
		owner:    owner,
		Config:   config,
		Fields:   make(map[string]any),
	}
}

func (b *BaseBehavior) Name() string     { return b.name }
func (b *BaseBehavior) TypeName() string { return b.typeName }
func (b *BaseBehavior) Owner() *Object   { return b.owner }

func (b *BaseBehavior) Step(float64) {}

func (b *BaseBehavior) UpdateFromBehaviorData(_, _ project.BehaviorData) bool {
	return false
}

func (b *BaseBehavior) OnObjectHotReloaded() {}

func (b *BaseBehavior) ExportRuntimeState() RuntimeState {
	return RuntimeState{Fields: maps.Clone(b.Fields), Config: maps.Clone(b.Config)}
}

func (b *BaseBehavior) ImportRuntimeState(state RuntimeState) {
	b.Fields = maps.Clone(state.Fields)
	b.Config = maps.Clone(state.Config)
	if b.Fields == nil {
		b.Fields = make(map[string]any)
	}
	if b.Config == nil {
		b.Config = make(map[string]any)
	}
}

func (b *BaseBehavior) OnDestroy() {}
