package engine

import (
	"fmt"
	"sort"
	"sync"

	"github.com/zeusync/hotreload/internal/core/project"
)

// BehaviorFactory builds a behavior for owner from its declaration. shared is the
// scene's shared data for the behavior name, nil when the scene declares none.
type BehaviorFactory func(owner *Object, data project.BehaviorData, shared *project.BehaviorSharedData) (Behavior, error)

// ObjectFactory builds the type-specific part of an object from its declaration.
type ObjectFactory func(data project.ObjectData) ObjectKind

type registration[F any] struct {
	factory  F
	revision uint64
}

// Registry maps type names to the constructors currently registered for them.
// Re-running code re-registers constructors; every registration gets a fresh
// revision, which is the constructor identity compared across a reload.
type Registry struct {
	mu        sync.RWMutex
	behaviors map[string]registration[BehaviorFactory]
	objects   map[string]registration[ObjectFactory]
	revision  uint64
}

func NewRegistry() *Registry {
	return &Registry{
		behaviors: make(map[string]registration[BehaviorFactory]),
		objects:   make(map[string]registration[ObjectFactory]),
	}
}

func (r *Registry) RegisterBehavior(typeName string, factory BehaviorFactory) {
	r.mu.Lock()
	r.revision++
	r.behaviors[typeName] = registration[BehaviorFactory]{factory: factory, revision: r.revision}
	r.mu.Unlock()
}

func (r *Registry) UnregisterBehavior(typeName string) {
	r.mu.Lock()
	delete(r.behaviors, typeName)
	r.mu.Unlock()
}

func (r *Registry) RegisterObject(typeName string, factory ObjectFactory) {
	r.mu.Lock()
	r.revision++
	r.objects[typeName] = registration[ObjectFactory]{factory: factory, revision: r.revision}
	r.mu.Unlock()
}

// NewBehavior builds a behavior with the constructor registered for data.Type.
func (r *Registry) NewBehavior(owner *Object, data project.BehaviorData, shared *project.BehaviorSharedData) (Behavior, error) {
	r.mu.RLock()
	reg, ok := r.behaviors[data.Type]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBehaviorType, data.Type)
	}
	return reg.factory(owner, data, shared)
}

// ObjectFactory returns the constructor registered for an object type.
func (r *Registry) ObjectFactory(typeName string) (ObjectFactory, bool) {
	r.mu.RLock()
	reg, ok := r.objects[typeName]
	r.mu.RUnlock()
	return reg.factory, ok
}

func (r *Registry) HasBehavior(typeName string) bool {
	r.mu.RLock()
	_, ok := r.behaviors[typeName]
	r.mu.RUnlock()
	return ok
}

// BehaviorTypes returns the registered behavior type names, sorted.
func (r *Registry) BehaviorTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.behaviors))
	for name := range r.behaviors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegistrySnapshot records the behavior constructor identities at a point in time.
type RegistrySnapshot map[string]uint64

// Snapshot captures every registered behavior constructor identity.
func (r *Registry) Snapshot() RegistrySnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s := make(RegistrySnapshot, len(r.behaviors))
	for name, reg := range r.behaviors {
		s[name] = reg.revision
	}
	return s
}

// RegistryChanges lists the behavior types whose constructor changed or vanished
// since a snapshot. Types registered after the snapshot are not reported.
type RegistryChanges struct {
	Changed []string
	Removed []string
}

// IsChanged reports whether typeName is in Changed.
func (c RegistryChanges) IsChanged(typeName string) bool {
	for _, name := range c.Changed {
		if name == typeName {
			return true
		}
	}
	return false
}

// Diff compares the live registry against an earlier snapshot.
func (r *Registry) Diff(old RegistrySnapshot) RegistryChanges {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var changes RegistryChanges
	for name, revision := range old {
		reg, ok := r.behaviors[name]
		switch {
		case !ok:
			changes.Removed = append(changes.Removed, name)
		case reg.revision != revision:
			changes.Changed = append(changes.Changed, name)
		}
	}
	sort.Strings(changes.Changed)
	sort.Strings(changes.Removed)
	return changes
}
