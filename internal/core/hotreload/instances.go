package hotreload

import (
	"github.com/zeusync/hotreload/internal/core/engine"
	"github.com/zeusync/hotreload/internal/core/project"
	"github.com/zeusync/hotreload/internal/core/variables"
)

func instancesByUUID(instances []project.InstanceData) map[string]*project.InstanceData {
	m := make(map[string]*project.InstanceData, len(instances))
	for i := range instances {
		if id := instances[i].PersistentUUID; id != "" {
			m[id] = &instances[i]
		}
	}
	return m
}

func liveByUUID(scene *engine.Scene) map[string]*engine.Object {
	m := make(map[string]*engine.Object)
	for _, o := range scene.AllObjects() {
		id := o.PersistentUUID()
		if id == "" {
			continue
		}
		if _, dup := m[id]; !dup {
			m[id] = o
		}
	}
	return m
}

// patchInstances matches authored instances with live objects by persistent
// uuid. Instances that vanished or were renamed are deleted, new ones are
// created, and the others get the authored fields that changed. Objects spawned
// at runtime have no uuid and are never touched.
func (p *patcher) patchInstances(scene *engine.Scene, oldInstances, newInstances []project.InstanceData) {
	old := instancesByUUID(oldInstances)
	fresh := instancesByUUID(newInstances)
	live := liveByUUID(scene)

	for id, oi := range old {
		o, alive := live[id]
		if !alive {
			continue
		}
		ni, kept := fresh[id]
		if !kept || ni.Name != oi.Name || o.Name() != ni.Name {
			scene.DeleteObject(o)
			delete(live, id)
		}
	}

	for i := range newInstances {
		ni := &newInstances[i]
		id := ni.PersistentUUID
		if id == "" {
			continue
		}
		oi, existed := old[id]
		o, alive := live[id]
		switch {
		case !alive && (!existed || oi.Name != ni.Name):
			if _, err := scene.CreateObjectFromInstance(*ni); err != nil {
				p.logs.addOnce(KindWarning, "Unable to create instance of %s in scene %s: %v", ni.Name, scene.Name(), err)
			}
		case alive && existed:
			p.patchInstance(o, oi, ni)
		}
	}
}

func (p *patcher) patchInstance(o *engine.Object, oi, ni *project.InstanceData) {
	changed := false
	set := func(differs bool, apply func()) {
		if differs {
			apply()
			changed = true
		}
	}

	set(oi.X != ni.X, func() { o.SetX(ni.X) })
	set(oi.Y != ni.Y, func() { o.SetY(ni.Y) })
	set(oi.Z != ni.Z, func() { o.SetZ(ni.Z) })
	set(oi.Angle != ni.Angle, func() { o.SetAngle(ni.Angle) })
	set(oi.RotationX != ni.RotationX, func() { o.SetRotationX(ni.RotationX) })
	set(oi.RotationY != ni.RotationY, func() { o.SetRotationY(ni.RotationY) })
	set(oi.ZOrder != ni.ZOrder, func() { o.SetZOrder(ni.ZOrder) })
	set(oi.Layer != ni.Layer, func() { o.SetLayer(ni.Layer) })

	sizeChanged := oi.CustomSize != ni.CustomSize ||
		(ni.CustomSize && (oi.Width != ni.Width || oi.Height != ni.Height || oi.Depth != ni.Depth))
	set(sizeChanged, func() {
		if !ni.CustomSize {
			o.ClearCustomSize()
			return
		}
		o.SetCustomSize(ni.Width, ni.Height)
		if ni.Depth != 0 {
			o.SetCustomDepth(ni.Depth)
		} else {
			o.ClearCustomDepth()
		}
	})

	set(!project.Same(oi.InitialVariables, ni.InitialVariables), func() {
		// The object diff already ran, so the scene holds the new declaration.
		var declared []project.VariableData
		if od, ok := o.Scene().ObjectData(o.Name()); ok {
			declared = od.Variables
		}
		variables.Patch(
			withOverrides(declared, oi.InitialVariables),
			withOverrides(declared, ni.InitialVariables),
			o.Variables,
		)
	})

	propertiesChanged := numberPropertiesChanged(oi.NumberProperties, ni.NumberProperties) ||
		stringPropertiesChanged(oi.StringProperties, ni.StringProperties)
	set(sizeChanged || propertiesChanged, func() { o.ExtraInitializationFromInstance(*ni) })

	if changed {
		o.NotifyHotReloaded()
	}
}

// withOverrides is the variable list an instance starts with: the object's
// declared variables, replaced by name with the instance's own values.
func withOverrides(declared, overrides []project.VariableData) []project.VariableData {
	out := append([]project.VariableData(nil), declared...)
	index := make(map[string]int, len(out))
	for i, v := range out {
		index[v.Name] = i
	}
	for _, v := range overrides {
		if i, ok := index[v.Name]; ok {
			out[i] = v
			continue
		}
		index[v.Name] = len(out)
		out = append(out, v)
	}
	return out
}

// numberPropertiesChanged reports whether a new property is missing from old or
// has a different value there.
func numberPropertiesChanged(old, new []project.NumberProperty) bool {
	prev := make(map[string]float64, len(old))
	for _, prop := range old {
		prev[prop.Name] = prop.Value
	}
	for _, prop := range new {
		if v, ok := prev[prop.Name]; !ok || v != prop.Value {
			return true
		}
	}
	return false
}

func stringPropertiesChanged(old, new []project.StringProperty) bool {
	prev := make(map[string]string, len(old))
	for _, prop := range old {
		prev[prop.Name] = prop.Value
	}
	for _, prop := range new {
		if v, ok := prev[prop.Name]; !ok || v != prop.Value {
			return true
		}
	}
	return false
}
