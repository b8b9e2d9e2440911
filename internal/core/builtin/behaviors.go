package builtin

import (
	"math"

	"github.com/zeusync/hotreload/internal/core/engine"
	"github.com/zeusync/hotreload/internal/core/project"
)

// Mover accelerates its owner along the x axis up to a maximum speed. It keeps a
// copy of the owner position to detect teleports, which must be resynced when
// the owner is patched from outside.
type Mover struct {
	engine.BaseBehavior

	speed            float64
	anchorX, anchorY float64
	resyncs          int
}

func NewMover(owner *engine.Object, data project.BehaviorData, _ *project.BehaviorSharedData) (engine.Behavior, error) {
	m := &Mover{BaseBehavior: engine.NewBaseBehavior(owner, data)}
	m.anchorX, m.anchorY = owner.X(), owner.Y()
	return m, nil
}

func (m *Mover) MaxSpeed() float64     { return toFloat(m.Config["maxSpeed"]) }
func (m *Mover) Acceleration() float64 { return toFloat(m.Config["acceleration"]) }
func (m *Mover) Speed() float64        { return m.speed }
func (m *Mover) SetSpeed(s float64)    { m.speed = s }
func (m *Mover) Resyncs() int          { return m.resyncs }

func (m *Mover) Step(dt float64) {
	owner := m.Owner()
	if owner.X() != m.anchorX || owner.Y() != m.anchorY {
		// moved by something else: start again from rest
		m.speed = 0
	}
	m.speed = math.Min(m.speed+m.Acceleration()*dt, m.MaxSpeed())
	owner.SetX(owner.X() + m.speed*dt)
	m.anchorX, m.anchorY = owner.X(), owner.Y()
}

// UpdateFromBehaviorData applies every changed property; all of them are safe to swap.
func (m *Mover) UpdateFromBehaviorData(old, new project.BehaviorData) bool {
	for key, value := range new.Properties {
		if prev, ok := old.Properties[key]; !ok || !project.Same(prev, value) {
			m.Config[key] = value
		}
	}
	for key := range old.Properties {
		if _, ok := new.Properties[key]; !ok {
			delete(m.Config, key)
		}
	}
	if limit := m.MaxSpeed(); m.speed > limit {
		m.speed = limit
	}
	return true
}

func (m *Mover) OnObjectHotReloaded() {
	m.anchorX, m.anchorY = m.Owner().X(), m.Owner().Y()
	m.resyncs++
}

func (m *Mover) ExportRuntimeState() engine.RuntimeState {
	state := m.BaseBehavior.ExportRuntimeState()
	state.Fields["speed"] = m.speed
	state.Fields["anchorX"] = m.anchorX
	state.Fields["anchorY"] = m.anchorY
	return state
}

func (m *Mover) ImportRuntimeState(state engine.RuntimeState) {
	m.BaseBehavior.ImportRuntimeState(state)
	m.speed = toFloat(state.Fields["speed"])
	m.anchorX = toFloat(state.Fields["anchorX"])
	m.anchorY = toFloat(state.Fields["anchorY"])
}

// Flash blinks its owner. Its configuration cannot be hot-swapped.
type Flash struct {
	engine.BaseBehavior

	elapsed float64
}

func NewFlash(owner *engine.Object, data project.BehaviorData, _ *project.BehaviorSharedData) (engine.Behavior, error) {
	return &Flash{BaseBehavior: engine.NewBaseBehavior(owner, data)}, nil
}

func (f *Flash) Elapsed() float64 { return f.elapsed }

func (f *Flash) Step(dt float64) {
	interval := toFloat(f.Config["interval"])
	if interval <= 0 {
		return
	}
	f.elapsed += dt
	if f.elapsed >= interval {
		f.elapsed = 0
		f.Owner().SetHidden(!f.Owner().IsHidden())
	}
}

func (f *Flash) ExportRuntimeState() engine.RuntimeState {
	state := f.BaseBehavior.ExportRuntimeState()
	state.Fields["elapsed"] = f.elapsed
	return state
}

func (f *Flash) ImportRuntimeState(state engine.RuntimeState) {
	f.BaseBehavior.ImportRuntimeState(state)
	f.elapsed = toFloat(state.Fields["elapsed"])
}

func (f *Flash) OnDestroy() {
	f.Owner().SetHidden(false)
}
